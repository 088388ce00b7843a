package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/sentireality/portal/tests/common"
)

// TestMain builds and starts the portal container (mock backend mode) once
// for the whole suite. Set SENTI_TEST_URL to test against a running server
// instead.
func TestMain(m *testing.M) {
	ctr, err := common.StartPortalForTestMain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test environment: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if ctr != nil {
		if code != 0 {
			ctr.CollectLogs(common.GetScreenshotDir("logs"))
		}
		ctr.Cleanup()
	}
	os.Exit(code)
}

// serverURL returns the portal URL, preferring the started container.
func serverURL() string {
	if url := os.Getenv("SENTI_TEST_URL"); url != "" {
		return url
	}
	if ctr, _ := common.StartPortalForTestMain(); ctr != nil {
		return ctr.URL()
	}
	return common.ServerURL()
}

// newBrowser creates a headless Chrome context with a 30s timeout.
func newBrowser(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	ctx, timeoutCancel := context.WithTimeout(ctx, 30*time.Second)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return ctx, cancel
}

// jsErrorCollector listens for JS exceptions and console.error calls.
// Call before chromedp.Navigate.
type jsErrorCollector struct {
	mu     sync.Mutex
	errors []string
}

func newJSErrorCollector(ctx context.Context) *jsErrorCollector {
	c := &jsErrorCollector{}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		c.mu.Lock()
		defer c.mu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			c.errors = append(c.errors, fmt.Sprintf("EXCEPTION: %s", desc))

		case *runtime.EventConsoleAPICalled:
			if e.Type == runtime.APITypeError {
				var parts []string
				for _, arg := range e.Args {
					if arg.Value != nil {
						parts = append(parts, string(arg.Value))
					} else if arg.Description != "" {
						parts = append(parts, arg.Description)
					}
				}
				if len(parts) > 0 {
					msg := strings.Join(parts, " ")
					// Ignore noisy but harmless errors
					if !strings.Contains(msg, "favicon") {
						c.errors = append(c.errors, fmt.Sprintf("console.error: %s", msg))
					}
				}
			}
		}
	})

	return c
}

func (c *jsErrorCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

// navigateAndWait navigates to a page, waits for body, and gives Alpine time
// to init and fetch the first dashboard payload.
func navigateAndWait(ctx context.Context, url string) error {
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(1200*time.Millisecond),
	)
}

// isHidden checks if an element is display:none or not in the DOM.
func isHidden(ctx context.Context, selector string) (bool, error) {
	return common.IsHidden(ctx, selector)
}

// isVisible checks if an element exists and is not display:none.
func isVisible(ctx context.Context, selector string) (bool, error) {
	return common.IsVisible(ctx, selector)
}

// elementCount returns how many elements match the selector.
func elementCount(ctx context.Context, selector string) (int, error) {
	return common.ElementCount(ctx, selector)
}

// takeScreenshot saves a full-page screenshot under the suite's results dir.
// Failures are logged, never fatal.
func takeScreenshot(t *testing.T, ctx context.Context, suite, name string) {
	t.Helper()
	dir := common.GetScreenshotDir(suite)
	path := filepath.Join(dir, name)
	if err := common.Screenshot(ctx, path); err != nil {
		t.Logf("screenshot %s: %v", name, err)
	}
}

// assertTextContains fails with a descriptive error when the selector's text
// does not contain the expected substring.
func assertTextContains(ctx context.Context, selector, expected, what string) error {
	ok, actual, err := common.TextContains(ctx, selector, expected)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if !ok {
		return fmt.Errorf("%s: got %q, want contains %q", what, common.Truncate(actual, 80), expected)
	}
	return nil
}
