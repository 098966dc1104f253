package main

import (
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

// commandContext carries what subcommands share. newClient is replaced in
// tests.
type commandContext struct {
	newClient func() *youtube.Client
}

func newCommandContext() *commandContext {
	return &commandContext{newClient: defaultClient}
}

func defaultClient() *youtube.Client {
	engine.Init(engine.Config{
		FetchTimeout: env.Duration("FETCH_TIMEOUT", 15*time.Second),
		FetchRetries: env.Int("FETCH_RETRIES", 2),
		MaxPageBytes: int64(env.Int("MAX_PAGE_BYTES", 6*1024*1024)),
		DefaultProxy: env.Str("TRANSCRIPT_PROXY", ""),
	})
	return youtube.NewClient(nil)
}
