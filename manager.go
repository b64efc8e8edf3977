package yumlog

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/benitogf/coat"
	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/darbotlabs/yumlog-manager/recordings"
	"github.com/darbotlabs/yumlog-manager/stats"
	"github.com/darbotlabs/yumlog-manager/toolsconfig"
	"github.com/darbotlabs/yumlog-manager/ui"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const deadlineMsg = "yumlog: server deadline reached"

// audit requests function
// will define approval or denial by the return value
// r: the request to be audited
// returns
// true: approve the request
// false: rejects the request
type audit func(r *http.Request) bool

// Defaults are the values prefilled on the control page
type Defaults struct {
	Record        command.RecordParams
	RecordingsDir string
}

// Server serves the Yumlog Manager control page and its API.
//
// Name: title of the control page
//
// Router: can be predefined with routes and passed to be extended
//
// Audit: function to audit requests, returns true to approve, false to deny
//
// Defaults: values prefilled on the quick start and recordings forms
//
// Stats: statistics shown on the page, empty unless provided
//
// OnClose: function that triggers before closing the application
//
// Deadline: time duration of a request before timing out
//
// AllowedOrigins: list of allowed origins for cross domain access, defaults to ["*"]
//
// AllowedMethods: list of allowed methods for cross domain access, defaults to ["GET", "POST"]
//
// AllowedHeaders: list of allowed headers for cross domain access, defaults to ["Authorization", "Content-Type"]
//
// Address: the address the server is listening on (populated after Start)
//
// Silence: output silence flag, suppresses console output when true
//
// Console: logging console for the server
//
// Signal: os signal channel for graceful shutdown
//
// ReadTimeout, WriteTimeout, ReadHeaderTimeout, IdleTimeout: http.Server timeouts
type Server struct {
	wg                sync.WaitGroup
	listenWg          sync.WaitGroup
	server            *http.Server
	Name              string
	Router            *mux.Router
	Audit             audit
	Defaults          Defaults
	Stats             stats.Snapshot
	OnClose           func()
	Deadline          time.Duration
	AllowedOrigins    []string
	AllowedMethods    []string
	AllowedHeaders    []string
	Address           string
	closing           int64
	active            int64
	Silence           bool
	Console           *coat.Console
	Signal            chan os.Signal
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	startErr          chan error
}

// Validate checks the server configuration for common issues.
// Call this before Start() to catch configuration errors early.
func (server *Server) Validate() error {
	if server.Deadline < 0 {
		return ErrNegativeDeadline
	}
	if server.Stats.Count < 0 || server.Stats.TotalSizeMB < 0 {
		return ErrInvalidStats
	}
	return nil
}

// page builds the data rendered into the control page
func (server *Server) page() ui.Page {
	return ui.Page{
		Title:              server.Name,
		Record:             server.Defaults.Record,
		RecordingsDir:      server.Defaults.RecordingsDir,
		Stats:              ui.NewStatsView(server.Stats),
		StatisticsCommands: command.StatisticsCommands(),
		DefaultConfig:      toolsconfig.Default(),
		Reference:          command.Reference(),
		About:              ui.DefaultAbout(),
		DarkModeKey:        ui.DarkModeKey,
	}
}

// tcpKeepAliveListener sets TCP keep-alive timeouts on accepted
// connections so dead TCP connections eventually go away.
type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (server *Server) waitListen() {
	defer server.listenWg.Done()
	server.server = &http.Server{
		WriteTimeout:      server.WriteTimeout,
		ReadTimeout:       server.ReadTimeout,
		ReadHeaderTimeout: server.ReadHeaderTimeout,
		IdleTimeout:       server.IdleTimeout,
		Addr:              server.Address,
		Handler: cors.New(cors.Options{
			AllowedMethods: server.AllowedMethods,
			AllowedOrigins: server.AllowedOrigins,
			AllowedHeaders: server.AllowedHeaders,
		}).Handler(handlers.CompressHandler(server.Router))}
	ln, err := net.Listen("tcp4", server.Address)
	if err != nil {
		server.startErr <- fmt.Errorf("yumlog: failed to start tcp: %w", err)
		server.wg.Done()
		return
	}
	server.Address = ln.Addr().String()
	atomic.StoreInt64(&server.active, 1)
	server.wg.Done()
	err = server.server.Serve(tcpKeepAliveListener{ln.(*net.TCPListener)})
	if atomic.LoadInt64(&server.closing) != 1 && err != nil {
		server.Console.Err("server error", err)
	}
}

// Active check if the server is active
func (server *Server) Active() bool {
	return atomic.LoadInt64(&server.active) == 1 && atomic.LoadInt64(&server.closing) == 0
}

func (server *Server) waitStart() error {
	select {
	case err := <-server.startErr:
		return err
	default:
	}

	if atomic.LoadInt64(&server.active) == 0 {
		return ErrServerStartFailed
	}

	server.Console.Log("glad to serve[" + server.Address + "]")
	return nil
}

// defaultCORS sets default CORS configuration.
func (server *Server) defaultCORS() {
	if len(server.AllowedOrigins) == 0 {
		server.AllowedOrigins = []string{"*"}
	}
	if len(server.AllowedMethods) == 0 {
		server.AllowedMethods = []string{
			http.MethodGet,
			http.MethodPost,
		}
	}
	if len(server.AllowedHeaders) == 0 {
		server.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
}

// defaultTimeouts sets default timeout values.
func (server *Server) defaultTimeouts() {
	if server.Deadline.Nanoseconds() == 0 {
		server.Deadline = time.Second * 10
	}
	if server.ReadTimeout == 0 {
		server.ReadTimeout = 1 * time.Minute
	}
	if server.WriteTimeout == 0 {
		server.WriteTimeout = 1 * time.Minute
	}
	if server.ReadHeaderTimeout == 0 {
		server.ReadHeaderTimeout = 10 * time.Second
	}
	if server.IdleTimeout == 0 {
		server.IdleTimeout = 10 * time.Second
	}
}

// defaultPage sets the stock form values.
func (server *Server) defaultPage() {
	if server.Defaults.Record.FPS == "" {
		server.Defaults.Record.FPS = command.DefaultFPS
	}
	if server.Defaults.Record.DurationSec == "" {
		server.Defaults.Record.DurationSec = command.DefaultDurationSec
	}
	if server.Defaults.Record.OutFile == "" {
		server.Defaults.Record.OutFile = command.DefaultOutFile
	}
	if server.Defaults.RecordingsDir == "" {
		server.Defaults.RecordingsDir = recordings.DefaultDir
	}
}

// defaults will populate the server fields with their zero values.
func (server *Server) defaults() {
	if server.Name == "" {
		server.Name = "Yumlog Manager"
	}
	if server.Router == nil {
		server.Router = mux.NewRouter()
	}
	if server.Console == nil {
		server.Console = coat.NewConsole(server.Address, server.Silence)
	}
	if server.OnClose == nil {
		server.OnClose = func() {}
	}
	if server.Audit == nil {
		server.Audit = func(r *http.Request) bool { return true }
	}

	server.defaultTimeouts()
	server.defaultCORS()
	server.defaultPage()
}

// setupRoutes configures the HTTP routes for the server.
func (server *Server) setupRoutes() {
	server.Router.Use(securityHeaders)
	api := server.Router.PathPrefix("/api").Subrouter()
	api.Handle("/commands/record", server.deadline(server.recordCommand)).Methods("POST")
	api.Handle("/commands/capture", server.deadline(server.captureCommand)).Methods("POST")
	api.Handle("/statistics", server.deadline(server.statistics)).Methods("GET")
	api.Handle("/statistics/refresh", server.deadline(server.refreshStatistics)).Methods("GET")
	api.Handle("/recordings/browse", server.deadline(server.browseRecordings)).Methods("POST")
	api.Handle("/recordings/open", server.deadline(server.openFolder)).Methods("POST")
	api.Handle("/config", server.deadline(server.loadConfig)).Methods("GET")
	api.Handle("/config/save", server.deadline(server.saveConfig)).Methods("POST")

	pageHandler := &ui.Handler{
		GetPage:   server.page,
		AuditFunc: server.Audit,
	}
	for _, name := range ui.ReservedPaths {
		server.Router.Handle("/"+name, pageHandler).Methods("GET")
	}
	server.Router.Handle("/", pageHandler).Methods("GET")
}

// deadline wraps an api handler with the request deadline
func (server *Server) deadline(fn http.HandlerFunc) http.Handler {
	return http.TimeoutHandler(fn, server.Deadline, deadlineMsg)
}

// securityHeaders sets the headers checked by the UI audit
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// StartWithError initializes and starts the http server.
// Returns an error if startup fails instead of calling log.Fatal.
func (server *Server) StartWithError(address string) error {
	server.Address = address
	if atomic.LoadInt64(&server.active) == 1 {
		return ErrServerAlreadyActive
	}
	err := server.Validate()
	if err != nil {
		return err
	}
	atomic.StoreInt64(&server.active, 0)
	atomic.StoreInt64(&server.closing, 0)
	server.startErr = make(chan error, 1)
	server.defaults()
	server.setupRoutes()
	server.wg.Add(1)
	server.listenWg.Add(1)
	go server.waitListen()
	server.wg.Wait()
	err = server.waitStart()
	if err != nil {
		return err
	}
	server.Console = coat.NewConsole(server.Address, server.Silence)
	return nil
}

// Start initializes and starts the http server.
// Panics if startup fails. Use StartWithError for error handling.
// If the server is already active, this is a no-op (does not panic).
func (server *Server) Start(address string) {
	err := server.StartWithError(address)
	if err != nil && err != ErrServerAlreadyActive {
		log.Fatal(err)
	}
}

// Close : shutdown the http server
func (server *Server) Close(sig os.Signal) {
	if atomic.LoadInt64(&server.closing) != 1 {
		atomic.StoreInt64(&server.closing, 1)
		atomic.StoreInt64(&server.active, 0)
		if server.server != nil {
			server.server.Shutdown(context.Background())
		}
		server.listenWg.Wait()
		server.OnClose()
		server.Console.Err("shutdown", sig)
		// Clear server state to allow restarting
		server.server = nil
		server.Router = nil
		server.Console = nil
		server.startErr = nil
	}
}

// WaitClose : Blocks waiting for SIGINT, SIGTERM, SIGHUP
func (server *Server) WaitClose() {
	server.Signal = make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(server.Signal, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-server.Signal
		server.Close(sig)
		done <- true
	}()
	<-done
}
