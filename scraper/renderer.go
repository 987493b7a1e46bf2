package scraper

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"qmatch/extractor"
	"qmatch/logger"
)

// Renderer owns the process-wide browser instance. The browser is
// launched lazily on first use and torn down at shutdown.
type Renderer struct {
	mu          sync.Mutex
	browser     *rod.Browser
	userAgent   string
	waitTimeout time.Duration
	settleWait  time.Duration
	log         *logger.Logger
}

// RenderResult holds the rendered content plus the live page, so the
// caller can capture a diagnostic screenshot before releasing it.
type RenderResult struct {
	Content *extractor.PageContent
	page    *rod.Page
}

// NewRenderer creates a renderer. No browser is launched yet.
func NewRenderer(userAgent string, waitTimeout, settleWait time.Duration) *Renderer {
	return &Renderer{
		userAgent:   userAgent,
		waitTimeout: waitTimeout,
		settleWait:  settleWait,
		log:         logger.ForComponent("renderer"),
	}
}

func (r *Renderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	var browser *rod.Browser
	err := rod.Try(func() {
		l := launcher.New().
			Headless(true).
			NoSandbox(true).
			Leakless(false)

		// Prefer the system Chromium when running in a container.
		if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
			l = l.Bin("/usr/bin/chromium-browser")
		}

		url := l.MustLaunch()
		browser = rod.New().ControlURL(url).MustConnect()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: browser launch failed: %v", extractor.ErrRenderUnavailable, err)
	}

	r.log.Info().Msg("browser launched")
	r.browser = browser
	return browser, nil
}

// Render navigates to the URL, waits for the page to become ready
// and returns its visible text and HTML. On failure the result may
// still carry the live page for a best-effort error screenshot; the
// caller must Close the result either way.
func (r *Renderer) Render(url string) (*RenderResult, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	var page *rod.Page
	var text, html string
	err = rod.Try(func() {
		page = browser.MustPage()
		page.MustSetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent})
		page.MustSetViewport(1920, 1080, 1.0, false)

		page.Timeout(r.waitTimeout).MustNavigate(url).MustWaitLoad()

		// Dynamic seller list renders after load.
		time.Sleep(r.settleWait)
		page.Timeout(r.waitTimeout).MustWaitStable()

		text = page.MustEval("() => document.body.innerText").Str()
		html = page.MustHTML()
	})

	result := &RenderResult{page: page}
	if err != nil {
		return result, fmt.Errorf("%w: %v", extractor.ErrRenderUnavailable, err)
	}

	result.Content = extractor.NewPageContent(text, html)
	return result, nil
}

// Screenshot captures the full page to path, best effort.
func (res *RenderResult) Screenshot(path string) error {
	if res == nil || res.page == nil {
		return fmt.Errorf("no page to capture")
	}
	return rod.Try(func() {
		res.page.MustScreenshotFullPage(path)
	})
}

// Close releases the page.
func (res *RenderResult) Close() {
	if res == nil || res.page == nil {
		return
	}
	_ = rod.Try(func() {
		res.page.MustClose()
	})
}

// Close tears down the browser.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		_ = rod.Try(func() {
			r.browser.MustClose()
		})
		r.browser = nil
	}
}
