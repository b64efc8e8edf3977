// Package audit runs a generic set of UI checks against any page: title,
// error text, heading structure, load time, transport, security headers and
// responsive layout. Collection is done in a headless browser with chromedp,
// evaluation is a pure function over the collected snapshot.
package audit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Check names
const (
	CheckTitle            = "title"
	CheckNoErrorText      = "no-error-text"
	CheckSingleH1         = "single-h1"
	CheckLoadTime         = "load-time"
	CheckHTTPS            = "https"
	CheckSecurityHeaders  = "security-headers"
	CheckResponsivePrefix = "responsive-"
)

// ErrEmptyURL the page url is required
var ErrEmptyURL = errors.New("audit: empty url")

// Viewport size emulated for the responsive checks
type Viewport struct {
	Name   string
	Width  int64
	Height int64
}

// Options of an audit run.
//
// MaxLoadTime: navigation budget, defaults to 5s
//
// Viewports: sizes checked for horizontal overflow, defaults to mobile and tablet
//
// ForbiddenText: body text that flags a broken page, defaults to "404" and "Error"
//
// RequiredHeaders: document response headers, an empty value only requires presence
type Options struct {
	MaxLoadTime     time.Duration
	Viewports       []Viewport
	ForbiddenText   []string
	RequiredHeaders map[string]string
}

// DefaultViewports mobile and tablet sizes
func DefaultViewports() []Viewport {
	return []Viewport{
		{Name: "mobile", Width: 375, Height: 667},
		{Name: "tablet", Width: 768, Height: 1024},
	}
}

func (opt *Options) defaults() {
	if opt.MaxLoadTime == 0 {
		opt.MaxLoadTime = 5 * time.Second
	}
	if opt.Viewports == nil {
		opt.Viewports = DefaultViewports()
	}
	if opt.ForbiddenText == nil {
		opt.ForbiddenText = []string{"404", "Error"}
	}
	if opt.RequiredHeaders == nil {
		opt.RequiredHeaders = map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "",
		}
	}
}

// ViewportResult layout measured at a viewport
type ViewportResult struct {
	Viewport Viewport
	Overflow bool
}

// Snapshot of a page as collected by the browser
type Snapshot struct {
	URL       string
	Title     string
	BodyText  string
	H1Count   int
	LoadTime  time.Duration
	Headers   map[string]string
	Viewports []ViewportResult
}

// Check outcome
type Check struct {
	Name    string
	Passed  bool
	Skipped bool
	Detail  string
}

// Report of an audit
type Report struct {
	URL    string
	Checks []Check
}

// Passed reports whether no check failed
func (r Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the failing checks
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed && !c.Skipped {
			failed = append(failed, c)
		}
	}
	return failed
}

// Get returns the check with name
func (r Report) Get(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// String renders the report one check per line
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "audit %s\n", r.URL)
	for _, c := range r.Checks {
		status := "PASS"
		if c.Skipped {
			status = "SKIP"
		} else if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %s %-20s %s\n", status, c.Name, c.Detail)
	}
	return b.String()
}

func headerValue(headers map[string]string, name string) (string, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Evaluate runs the checks over a collected snapshot
func Evaluate(s Snapshot, opt Options) Report {
	opt.defaults()
	report := Report{URL: s.URL}
	add := func(c Check) {
		report.Checks = append(report.Checks, c)
	}

	title := strings.TrimSpace(s.Title)
	add(Check{Name: CheckTitle, Passed: title != "", Detail: fmt.Sprintf("%q", title)})

	var found []string
	for _, text := range opt.ForbiddenText {
		if strings.Contains(s.BodyText, text) {
			found = append(found, text)
		}
	}
	add(Check{Name: CheckNoErrorText, Passed: len(found) == 0, Detail: strings.Join(found, ", ")})

	add(Check{Name: CheckSingleH1, Passed: s.H1Count == 1, Detail: fmt.Sprintf("%d h1", s.H1Count)})

	add(Check{
		Name:   CheckLoadTime,
		Passed: s.LoadTime < opt.MaxLoadTime,
		Detail: fmt.Sprintf("%s of %s", s.LoadTime.Round(time.Millisecond), opt.MaxLoadTime),
	})

	u, err := url.Parse(s.URL)
	switch {
	case err != nil:
		add(Check{Name: CheckHTTPS, Detail: err.Error()})
	case u.Scheme == "file":
		add(Check{Name: CheckHTTPS, Skipped: true, Detail: "local file"})
	default:
		add(Check{Name: CheckHTTPS, Passed: u.Scheme == "https", Detail: u.Scheme})
	}

	if u != nil && u.Scheme == "file" {
		add(Check{Name: CheckSecurityHeaders, Skipped: true, Detail: "local file"})
	} else {
		var missing []string
		for name, want := range opt.RequiredHeaders {
			got, ok := headerValue(s.Headers, name)
			if !ok || (want != "" && !strings.EqualFold(got, want)) {
				missing = append(missing, name)
			}
		}
		add(Check{Name: CheckSecurityHeaders, Passed: len(missing) == 0, Detail: strings.Join(missing, ", ")})
	}

	for _, v := range s.Viewports {
		detail := fmt.Sprintf("%dx%d", v.Viewport.Width, v.Viewport.Height)
		if v.Overflow {
			detail += " horizontal overflow"
		}
		add(Check{Name: CheckResponsivePrefix + v.Viewport.Name, Passed: !v.Overflow, Detail: detail})
	}

	return report
}

// Collect loads the page in the browser bound to ctx and measures it.
// ctx must come from chromedp.NewContext.
func Collect(ctx context.Context, pageURL string, opt Options) (Snapshot, error) {
	if pageURL == "" {
		return Snapshot{}, ErrEmptyURL
	}
	opt.defaults()
	snapshot := Snapshot{URL: pageURL}

	// the listener outlives this call, headers are copied out under the lock
	var mutex sync.Mutex
	headers := map[string]string{}
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok || e.Type != network.ResourceTypeDocument {
			return
		}
		mutex.Lock()
		defer mutex.Unlock()
		for k, v := range e.Response.Headers {
			headers[k] = fmt.Sprint(v)
		}
	})

	start := time.Now()
	err := chromedp.Run(ctx,
		network.Enable(),
		chromedp.Navigate(pageURL),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("audit: navigate %s: %w", pageURL, err)
	}
	snapshot.LoadTime = time.Since(start)

	err = chromedp.Run(ctx,
		chromedp.Title(&snapshot.Title),
		chromedp.Evaluate(`document.body ? document.body.innerText : ''`, &snapshot.BodyText),
		chromedp.Evaluate(`document.querySelectorAll('h1').length`, &snapshot.H1Count),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("audit: inspect %s: %w", pageURL, err)
	}

	for _, v := range opt.Viewports {
		var overflow bool
		err = chromedp.Run(ctx,
			chromedp.EmulateViewport(v.Width, v.Height),
			chromedp.Reload(),
			chromedp.Evaluate(`document.documentElement.scrollWidth > window.innerWidth`, &overflow),
		)
		if err != nil {
			return Snapshot{}, fmt.Errorf("audit: viewport %s: %w", v.Name, err)
		}
		snapshot.Viewports = append(snapshot.Viewports, ViewportResult{Viewport: v, Overflow: overflow})
	}

	mutex.Lock()
	snapshot.Headers = make(map[string]string, len(headers))
	for k, v := range headers {
		snapshot.Headers[k] = v
	}
	mutex.Unlock()
	return snapshot, nil
}

// Run collects and evaluates pageURL in a new headless browser
func Run(ctx context.Context, pageURL string, opt Options) (Report, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1280, 800),
	)...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	snapshot, err := Collect(browserCtx, pageURL, opt)
	if err != nil {
		return Report{}, err
	}
	return Evaluate(snapshot, opt), nil
}
