// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"fmt"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

// Default and hard caps for joined transcript text returned to agents.
const (
	DefaultMaxChars = 20000
	HardMaxChars    = 200000
)

// ClampMaxChars normalises a max_chars tool argument.
func ClampMaxChars(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxChars
	case n > HardMaxChars:
		return HardMaxChars
	}
	return n
}

// ErrorKind returns the pipeline failure kind name for err, or "internal".
func ErrorKind(err error) string {
	if kind, ok := youtube.KindOf(err); ok {
		return kind.String()
	}
	return "internal"
}

// ToolError prefixes err with its kind so agents can branch on it
// without parsing the message.
func ToolError(err error) error {
	return fmt.Errorf("[%s] %w", ErrorKind(err), err)
}
