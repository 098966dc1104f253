package main

import (
	"fmt"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/spf13/cobra"
)

func newIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id <input>...",
		Short: "Resolve video ids from URLs without fetching",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			failed := 0
			for _, in := range args {
				id := youtube.ResolveVideoID(in)
				if id == "" {
					failed++
					id = "-"
				}
				rows = append(rows, []string{in, id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Input", "Video ID"}, rows, nil))
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs: %w", failed, len(args), youtube.ErrInvalidIdentifier)
			}
			return nil
		},
	}
}
