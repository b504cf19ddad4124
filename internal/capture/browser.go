package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720

	navigationTimeout = 30 * time.Second

	// Grace period after load for dynamic content to settle.
	settleDelay = 2 * time.Second
)

// BrowserCapturer renders pages in a headless Chromium session and captures
// viewport-only PNG screenshots. Each Capture call owns an isolated browser
// session that is torn down on every exit path.
type BrowserCapturer struct {
	maxSize int64
	logger  zerolog.Logger
}

// NewBrowserCapturer builds a capturer enforcing the given size ceiling on
// screenshot bytes.
func NewBrowserCapturer(maxSize int64, logger zerolog.Logger) *BrowserCapturer {
	return &BrowserCapturer{maxSize: maxSize, logger: logger}
}

// Capture navigates to pageURL at a fixed desktop viewport, waits for the
// page to load plus a settle delay, and returns the viewport screenshot.
func (b *BrowserCapturer) Capture(ctx context.Context, pageURL string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, navigationTimeout+settleDelay)
	defer cancelTimeout()

	start := time.Now()
	var screenshot []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(settleDelay),
		chromedp.CaptureScreenshot(&screenshot),
	)
	if err != nil {
		return nil, fmt.Errorf("Erro ao capturar screenshot: %v", err)
	}

	if int64(len(screenshot)) > b.maxSize {
		return nil, fmt.Errorf("Screenshot muito grande. Máximo permitido: %dMB", b.maxSize/(1024*1024))
	}

	b.logger.Debug().
		Str("url", pageURL).
		Int("bytes", len(screenshot)).
		Dur("duration", time.Since(start)).
		Msg("capture: screenshot complete")

	return screenshot, nil
}
