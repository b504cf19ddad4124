package capture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	fetchTimeout = 30 * time.Second

	// Some image hosts refuse requests without a browser-like agent.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// HTTPImageFetcher downloads direct image URLs with a bounded timeout and a
// byte-size ceiling. Single attempt, no retries.
type HTTPImageFetcher struct {
	client  *resty.Client
	maxSize int64
}

// NewHTTPImageFetcher builds a fetcher enforcing the given size ceiling.
func NewHTTPImageFetcher(maxSize int64, logger zerolog.Logger) *HTTPImageFetcher {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", browserUserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)).
		SetLogger(restyLogger{logger})
	return &HTTPImageFetcher{client: client, maxSize: maxSize}
}

// Fetch downloads imageURL. It fails on transport errors, non-2xx statuses,
// non-image content types and oversized bodies.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("Erro ao acessar URL: %v", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("Erro ao acessar URL: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL não retorna uma imagem válida")
	}

	data := resp.Body()
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("Imagem muito grande. Máximo permitido: %dMB", f.maxSize/(1024*1024))
	}
	return data, nil
}

// restyLogger adapts zerolog to resty's logging interface.
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }
