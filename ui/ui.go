package ui

import (
	"embed"
	"net/http"
	"strings"
	"sync"

	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/darbotlabs/yumlog-manager/stats"
	"github.com/flosch/pongo2/v6"
)

//go:embed all:static
var staticFiles embed.FS

// DarkModeKey is the localStorage key holding the dark mode preference,
// its value is the literal "true" or "false"
const DarkModeKey = "darkMode"

// ReservedPaths are the static assets served next to the page
var ReservedPaths = []string{
	"styles.css",
	"manager.js",
	"favicon.svg",
}

// StatsView labels of the statistics cards
type StatsView struct {
	Count  string
	Size   string
	Latest string
}

// About describes the project in the about section
type About struct {
	Project     string
	Description string
	Features    []string
	License     string
	RepoURL     string
	RepoLabel   string
}

// Page contains everything rendered into the control page
type Page struct {
	Title              string
	Record             command.RecordParams
	RecordingsDir      string
	Stats              StatsView
	StatisticsCommands []string
	DefaultConfig      string
	Reference          []command.Example
	About              About
	DarkModeKey        string
}

// NewStatsView formats a snapshot for display
func NewStatsView(s stats.Snapshot) StatsView {
	return StatsView{
		Count:  s.CountLabel(),
		Size:   s.SizeLabel(),
		Latest: s.LatestLabel(),
	}
}

// DefaultAbout returns the about section content
func DefaultAbout() About {
	return About{
		Project:     "Darbot Yumlog",
		Description: "a lightweight PowerShell-based screen capture and recording toolkit that gives \"vision\" for AI agents and developers.",
		Features: []string{
			"High-performance screen recording using FFmpeg",
			"Periodic screenshot capture",
			"Simple PowerShell CLI interface",
			"No telemetry - 100% local execution",
			"Auto-installs FFmpeg",
			"Configurable FPS, duration, and output locations",
		},
		License:   "MIT",
		RepoURL:   "https://github.com/darbotlabs/Yumlog",
		RepoLabel: "github.com/darbotlabs/Yumlog",
	}
}

// Handler serves the control page and its assets
type Handler struct {
	GetPage   func() Page
	AuditFunc func(r *http.Request) bool
	once      sync.Once
	index     *pongo2.Template
	indexErr  error
}

// ServeHTTP handles requests to the control page
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.AuditFunc != nil && !h.AuditFunc(r) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("not authorized"))
		return
	}

	// use HasSuffix to handle sub-path mounting
	path := r.URL.Path
	for _, name := range ReservedPaths {
		if strings.HasSuffix(path, "/"+name) {
			h.serveStatic(w, r, name)
			return
		}
	}

	h.serveIndex(w, r)
}

func (h *Handler) template() (*pongo2.Template, error) {
	h.once.Do(func() {
		content, err := staticFiles.ReadFile("static/index.html")
		if err != nil {
			h.indexErr = err
			return
		}
		h.index, h.indexErr = pongo2.FromBytes(content)
	})
	return h.index, h.indexErr
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.template()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("failed to load manager"))
		return
	}

	page := h.GetPage()
	if page.DarkModeKey == "" {
		page.DarkModeKey = DarkModeKey
	}
	content, err := tpl.ExecuteBytes(pongo2.Context{"page": page})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("failed to render manager"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request, filename string) {
	content, err := staticFiles.ReadFile("static/" + filename)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("file not found"))
		return
	}

	contentType := "application/octet-stream"
	if strings.HasSuffix(filename, ".js") {
		contentType = "application/javascript"
	} else if strings.HasSuffix(filename, ".css") {
		contentType = "text/css"
	} else if strings.HasSuffix(filename, ".svg") {
		contentType = "image/svg+xml"
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(content)
}
