package youtube

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Config selects the caption language and outbound proxy for one call.
type Config struct {
	Lang  string `json:"lang,omitempty"`  // preferred language code; empty = first track
	Proxy string `json:"proxy,omitempty"` // scheme://[user:pass@]host[:port]; malformed = no proxy
}

// Client runs the transcript pipeline over an injected transport.
// A Client holds no per-call state and is safe for concurrent use.
type Client struct {
	fetcher engine.Fetcher
}

// NewClient creates a Client. A nil fetcher selects engine.DefaultFetcher.
func NewClient(f engine.Fetcher) *Client {
	if f == nil {
		f = engine.DefaultFetcher()
	}
	return &Client{fetcher: f}
}

// FetchTranscript fetches a transcript with the engine's default transport.
func FetchTranscript(ctx context.Context, videoIDOrURL string, cfg Config) ([]Segment, error) {
	return NewClient(nil).FetchTranscript(ctx, videoIDOrURL, cfg)
}

// WatchURL returns the watch page URL for a video id.
func WatchURL(videoID string) string {
	return youtubeOrigin + "/watch?v=" + videoID
}

// requestHeaders builds the headers sent with both requests of a call.
func requestHeaders(lang string) map[string]string {
	h := map[string]string{"User-Agent": engine.UserAgentDesktop}
	if lang != "" {
		h["Accept-Language"] = lang
	}
	return h
}

// FetchTranscript resolves the video id, fetches the watch page, selects a
// caption track and returns its parsed segments. Every failure is an *Error.
func (c *Client) FetchTranscript(ctx context.Context, videoIDOrURL string, cfg Config) ([]Segment, error) {
	engine.IncrTranscriptRequests()

	id := ResolveVideoID(videoIDOrURL)
	if id == "" {
		return nil, fail(&Error{Kind: KindInvalidIdentifier})
	}
	log := slog.With(slog.String("video_id", id))

	fetcher := c.transport(cfg.Proxy)
	headers := requestHeaders(cfg.Lang)

	log.Debug("youtube: fetching watch page")
	engine.IncrPageFetches()
	page, err := fetcher.Fetch(ctx, WatchURL(id), headers)
	if err != nil {
		kind := KindPageFetch
		var se *engine.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests {
			kind = KindBlocked
		}
		return nil, fail(&Error{Kind: kind, VideoID: id, Err: err})
	}

	track, err := LocateTrack(page, cfg.Lang)
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			te.VideoID = id
		}
		return nil, fail(err)
	}
	log.Debug("youtube: caption track selected",
		slog.String("lang", track.LanguageCode), slog.String("kind", track.Kind))
	if needsPoToken(track.BaseURL) {
		log.Warn("youtube: caption track requires PoToken, document may be empty",
			slog.String("lang", track.LanguageCode))
	}

	engine.IncrTrackFetches()
	doc, err := fetcher.Fetch(ctx, track.BaseURL, headers)
	if err != nil {
		return nil, fail(&Error{Kind: KindTranscriptFetch, VideoID: id, Err: err})
	}

	segs := ParseTimedText(doc)
	for i := range segs {
		segs[i].Lang = track.LanguageCode
	}
	log.Debug("youtube: transcript parsed", slog.Int("segments", len(segs)))
	return segs, nil
}

// transport returns the fetcher for one call, routed through proxy when it
// parses and the fetcher supports proxies. An empty proxy falls back to the
// engine-wide default.
func (c *Client) transport(proxy string) engine.Fetcher {
	if proxy == "" {
		proxy = engine.Cfg.DefaultProxy
	}
	if proxy == "" {
		return c.fetcher
	}
	p, ok := engine.ParseProxy(proxy)
	if !ok {
		slog.Warn("youtube: malformed proxy ignored")
		return c.fetcher
	}
	pf, ok := c.fetcher.(engine.ProxyFetcher)
	if !ok {
		slog.Warn("youtube: transport does not support per-request proxy, ignored",
			slog.String("proxy", p.String()))
		return c.fetcher
	}
	return pf.WithProxy(p)
}

// fail records the failure kind and returns err unchanged.
func fail(err error) error {
	if kind, ok := KindOf(err); ok {
		engine.IncrFailure(kind.String())
	}
	return err
}
