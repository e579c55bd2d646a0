package http

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
	"github.com/leadwithvicky/visiontech-blogs/auth"
)

const (
	shutdownTimeout = 1 * time.Second
)

// Dispatcher submits a dispatch job for a freshly created newsletter.
type Dispatcher interface {
	Enqueue(ctx context.Context, newsletterID int) error
}

// Server represents the HTTP server
type Server struct {
	ln     net.Listener
	server *http.Server
	router *mux.Router

	Addr   string
	Domain string

	// UploadsDir, when set, is served under /uploads/ (local image store).
	UploadsDir string

	AdminEmail    string
	AdminPassword string

	SubscriptionService visiontech.SubscriptionService
	NewsletterService   visiontech.NewsletterService
	Mailer              visiontech.Mailer
	ImageStore          visiontech.ImageStore
	Dispatcher          Dispatcher
	TokenService        *auth.TokenService
}

// NewServer creates a new HTTP server
func NewServer() (*Server, error) {
	s := &Server{
		server: &http.Server{},
		router: mux.NewRouter().StrictSlash(true),
	}

	zlog := zerolog.New(os.Stdout).With().
		Timestamp().
		Logger()
	s.router.Use(hlog.NewHandler(zlog))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	}))
	s.router.Use(hlog.UserAgentHandler("user_agent"))
	s.router.Use(hlog.RefererHandler("referer"))
	s.router.Use(hlog.RequestIDHandler("req_id", "Request-Id"))

	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	s.router.Use(sentryHandler.Handle)

	s.server.Handler = http.HandlerFunc(s.serveHTTP)

	s.router.HandleFunc("/health", s.healthCheckHandler)

	s.router.HandleFunc("/subscribers", s.Error(s.subscribeHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/subscribers", s.Error(s.listSubscribersHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/subscribers/subscribe", s.Error(s.subscribeHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/subscribers/stats", s.Error(s.statsHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/subscribers/unsubscribe/{token}", s.unsubscribePageHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/subscribers/unsubscribe/{token}", s.Error(s.unsubscribeHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/subscribers/unsubscribe/{token}", s.Error(s.deleteSubscriberHandler)).Methods(http.MethodDelete)

	s.router.HandleFunc("/newsletters", s.Error(s.listNewslettersHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/newsletters", s.Error(s.requireAuth(s.createNewsletterHandler))).Methods(http.MethodPost)
	s.router.HandleFunc("/newsletters/{id}", s.Error(s.getNewsletterHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/newsletters/{id}", s.Error(s.requireAuth(s.updateNewsletterHandler))).Methods(http.MethodPut)
	s.router.HandleFunc("/newsletters/{id}", s.Error(s.requireAuth(s.deleteNewsletterHandler))).Methods(http.MethodDelete)

	s.router.HandleFunc("/admin/login", s.Error(s.loginHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/uploads", s.Error(s.requireAuth(s.uploadHandler))).Methods(http.MethodPost)

	return s, nil
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Scheme returns the scheme
func (s *Server) Scheme() string {
	if s.UseTLS() {
		return "https"
	}
	return "http"
}

// UseTLS checks if the server uses TLS or not
func (s *Server) UseTLS() bool {
	return s.Domain != ""
}

// Port returns the server port
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the server URL
func (s *Server) URL() string {
	scheme, port := s.Scheme(), s.Port()

	domain := "localhost"
	if s.Domain != "" {
		domain = s.Domain
	}

	if port == 80 || port == 443 || flag.Lookup("test.v") != nil {
		return fmt.Sprintf("%s://%s", scheme, domain)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, domain, s.Port())
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open opens a connection to the HTTP server
func (s *Server) Open() (err error) {
	if s.UploadsDir != "" {
		s.router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.UploadsDir))))
	}

	s.ln, err = net.Listen("tcp", s.Addr)
	if err != nil {
		return errors.Errorf("failed to listen to port %s: %v", s.Addr, err)
	}

	go func() {
		_ = s.server.Serve(s.ln)
	}()

	return nil
}

// Close shuts down the HTTP server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
