// Package pdf prints HTML documents to A4 PDF with headless Chrome.
package pdf

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultLoadTimeout bounds navigation plus the wait for network idle
const DefaultLoadTimeout = 30 * time.Second

// A4 at 96 CSS px per inch
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// A4 paper and margins in inches
const (
	paperWidth     = 8.27
	paperHeight    = 11.69
	marginVertical = 0.5
	marginSide     = 0.4
)

// Options configures a Renderer
type Options struct {
	// ChromePath overrides the browser binary; CHROME_PATH is used when empty
	ChromePath  string
	LoadTimeout time.Duration
	Verbose     bool
}

// Renderer launches a fresh browser for every document. It holds no browser
// state between calls and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer, applying defaults to unset options
func NewRenderer(opts Options) *Renderer {
	if opts.ChromePath == "" {
		opts.ChromePath = os.Getenv("CHROME_PATH")
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	return &Renderer{opts: opts}
}

// RenderPDF loads html from a private temp file and prints it to an A4 PDF
// with backgrounds. The browser process and temp directory are released
// before returning.
func (r *Renderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "resume-pdf-")
	if err != nil {
		return nil, &RenderFailedError{Stage: StageLoad, Message: "failed to create temp directory", Cause: err}
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Printf("[PDF] Warning: failed to remove %s: %v", tmpDir, err)
		}
	}()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderFailedError{Stage: StageLoad, Message: "failed to write HTML", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if r.opts.Verbose {
		log.Printf("[PDF] Launching headless browser")
	}
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, &RenderFailedError{Stage: StageLaunch, Message: "failed to start browser", Cause: err}
	}

	if err := r.load(browserCtx, "file://"+htmlPath); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidth).
			WithPaperHeight(paperHeight).
			WithMarginTop(marginVertical).
			WithMarginBottom(marginVertical).
			WithMarginLeft(marginSide).
			WithMarginRight(marginSide).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, &RenderFailedError{Stage: StagePrint, Message: "failed to print page", Cause: err}
	}

	if r.opts.Verbose {
		log.Printf("[PDF] Rendered %d bytes in %v", len(pdfBuf), time.Since(start))
	}
	return pdfBuf, nil
}

// load navigates to url and blocks until the page reports network idle
func (r *Renderer) load(browserCtx context.Context, url string) error {
	loadCtx, cancel := context.WithTimeout(browserCtx, r.opts.LoadTimeout)
	defer cancel()

	idle := make(chan struct{})
	var once sync.Once
	chromedp.ListenTarget(loadCtx, func(ev any) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			once.Do(func() { close(idle) })
		}
	})

	err := chromedp.Run(loadCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
	)
	if err != nil {
		return &RenderFailedError{Stage: StageLoad, Message: "failed to load document", Cause: err}
	}

	select {
	case <-idle:
		return nil
	case <-loadCtx.Done():
		return &RenderFailedError{Stage: StageLoad, Message: "page did not reach network idle", Cause: loadCtx.Err()}
	}
}

// ChromeAvailable reports whether a browser binary can be found
func ChromeAvailable() bool {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		_, err := os.Stat(p)
		return err == nil
	}
	for _, name := range []string{"headless_shell", "headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
