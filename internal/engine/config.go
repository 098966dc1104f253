package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	FetchTimeout       time.Duration
	FetchRetries       int
	MaxPageBytes       int64
	DefaultProxy       string // proxy descriptor used when a request carries none
	BatchConcurrency   int
	BatchRPS           float64
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	HTTPClient         *http.Client
	BrowserClient      *BrowserClient // nil = plain net/http transport
	LLMClient          *llm.Client    // nil = summarization disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (youtube, transcriptserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// DefaultFetcher builds the transport selected by the current configuration:
// the stealth browser client when one is configured, net/http otherwise.
func DefaultFetcher() Fetcher {
	if cfg.BrowserClient != nil {
		return NewBrowserFetcher(cfg.BrowserClient)
	}
	return NewHTTPFetcher(HTTPFetcherOptions{
		Client:   cfg.HTTPClient,
		Timeout:  cfg.FetchTimeout,
		MaxTries: uint(max(cfg.FetchRetries, 0)) + 1,
		MaxBytes: cfg.MaxPageBytes,
	})
}
