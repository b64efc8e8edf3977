package ui_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	yumlog "github.com/darbotlabs/yumlog-manager"
)

// TestServer holds a running manager for UI tests
type TestServer struct {
	Server    *yumlog.Server
	URL       string
	ScreenDir string
}

// SetupTestServer creates and starts a manager with the stock defaults
func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()

	server := &yumlog.Server{Silence: true}
	server.Start("localhost:0")

	serverURL := "http://" + server.Address

	screenshotDir := filepath.Join(os.TempDir(), "yumlog_screenshots")
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		t.Fatalf("failed to create screenshot dir: %v", err)
	}

	ts := &TestServer{
		Server:    server,
		URL:       serverURL,
		ScreenDir: screenshotDir,
	}

	t.Logf("Server running at: %s", serverURL)

	return ts
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close(os.Interrupt)
}

// SaveScreenshot saves a screenshot to the screenshots directory
func (ts *TestServer) SaveScreenshot(t *testing.T, name string, buf []byte) {
	t.Helper()
	filename := filepath.Join(ts.ScreenDir, name+".png")
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		t.Logf("failed to write screenshot: %v", err)
	}
	t.Logf("Screenshot saved: %s", filename)
}

// ChromeContext creates a chromedp context for browser testing
func ChromeContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1280, 800),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}

	return ctx, cancel
}

// Dialog is a JavaScript dialog raised by the page
type Dialog struct {
	Type    page.DialogType
	Message string
}

// DialogRecorder accepts every dialog the page raises and keeps it for inspection
type DialogRecorder struct {
	dialogs chan Dialog
}

// AcceptDialogs registers the recorder, call it before the action that raises the dialog
func AcceptDialogs(ctx context.Context) *DialogRecorder {
	rec := &DialogRecorder{dialogs: make(chan Dialog, 16)}
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		e, ok := ev.(*page.EventJavascriptDialogOpening)
		if !ok {
			return
		}
		select {
		case rec.dialogs <- Dialog{Type: e.Type, Message: e.Message}:
		default:
			// buffer full, drop it
		}
		// the dialog blocks the page until handled, answer outside the event loop
		go func() {
			_ = chromedp.Run(ctx, page.HandleJavaScriptDialog(true))
		}()
	})
	return rec
}

// Next waits for the next dialog
func (rec *DialogRecorder) Next(t *testing.T, timeout time.Duration) Dialog {
	t.Helper()
	select {
	case d := <-rec.dialogs:
		return d
	case <-time.After(timeout):
		t.Fatalf("no dialog raised after %s", timeout)
	}
	return Dialog{}
}

// OpenManager navigates to the control page and waits for the script to run
func OpenManager(t *testing.T, ctx context.Context, ts *TestServer) {
	t.Helper()
	err := chromedp.Run(ctx,
		chromedp.Navigate(ts.URL+"/"),
		chromedp.WaitVisible(`h1`, chromedp.ByQuery),
	)
	if err != nil {
		t.Fatalf("failed to open manager: %v", err)
	}
}

// EvalBool evaluates a boolean expression on the page
func EvalBool(t *testing.T, ctx context.Context, expression string) bool {
	t.Helper()
	var res bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(expression, &res)); err != nil {
		t.Fatalf("failed to evaluate %q: %v", expression, err)
	}
	return res
}

// EvalString evaluates a string expression on the page
func EvalString(t *testing.T, ctx context.Context, expression string) string {
	t.Helper()
	var res string
	if err := chromedp.Run(ctx, chromedp.Evaluate(expression, &res)); err != nil {
		t.Fatalf("failed to evaluate %q: %v", expression, err)
	}
	return res
}

// WaitUntil polls a boolean expression until it holds
func WaitUntil(t *testing.T, ctx context.Context, expression string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if EvalBool(t, ctx, expression) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met after %s: %s", timeout, expression)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// SectionText returns the rendered text of the section holding the heading
func SectionText(t *testing.T, ctx context.Context, heading string) string {
	t.Helper()
	return EvalString(t, ctx, `(function() {
		const h = Array.from(document.querySelectorAll('.section h2')).find(e => e.textContent.trim() === `+"`"+heading+"`"+`);
		return h ? h.closest('.section').innerText : '';
	})()`)
}

// LabelFor returns the id of the input labelled with text
func LabelFor(t *testing.T, ctx context.Context, text string) string {
	t.Helper()
	return EvalString(t, ctx, `(function() {
		const l = Array.from(document.querySelectorAll('label')).find(e => e.textContent.trim() === `+"`"+text+"`"+`);
		return l ? l.htmlFor : '';
	})()`)
}

// Visible reports whether the element with id is displayed
func Visible(t *testing.T, ctx context.Context, id string) bool {
	t.Helper()
	return EvalBool(t, ctx, `(function() {
		const el = document.getElementById('`+id+`');
		return !!el && getComputedStyle(el).display !== 'none' && el.getClientRects().length > 0;
	})()`)
}

func skipShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
}
