// Package rest exposes the contact manager over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 60 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 120 * time.Second

	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadSize   = 10 << 20
)

// TokenDecoder verifies session tokens presented by clients.
type TokenDecoder interface {
	Decode(token string) (*auth.Claims, error)
}

// Options holds the transport settings of the server.
type Options struct {
	Address         string
	MaxUploadSize   int64
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts     Options
	logger   logging.Logger
	users    *services.UserService
	contacts *services.ContactService
	files    *services.FileService
	tokens   TokenDecoder
}

func NewServer(opts Options, l logging.Logger, us *services.UserService, cs *services.ContactService, fs *services.FileService, tokens TokenDecoder) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	return &Server{
		opts:     opts,
		logger:   l.With("module", "http_server"),
		users:    us,
		contacts: cs,
		files:    fs,
		tokens:   tokens,
	}
}

// Handler returns the complete HTTP handler: routes, CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/uploads/{date}/{name}", s.serveUpload).Methods(http.MethodGet, http.MethodHead)

	contacts := r.PathPrefix("/contact").Subrouter()
	contacts.Use(s.authenticated)
	contacts.HandleFunc("", s.listContacts).Methods(http.MethodGet)
	contacts.HandleFunc("/create", s.createContact).Methods(http.MethodPost)
	contacts.HandleFunc("/{id}", s.getContact).Methods(http.MethodGet)
	contacts.HandleFunc("/{id}", s.updateContact).Methods(http.MethodPatch)
	contacts.HandleFunc("/{id}", s.deleteContact).Methods(http.MethodDelete)

	files := r.PathPrefix("/file").Subrouter()
	files.Use(s.authenticated)
	files.HandleFunc("/upload", s.uploadFile).Methods(http.MethodPost)
	files.HandleFunc("/{contactId}", s.getFile).Methods(http.MethodGet)
	files.HandleFunc("/{contactId}", s.deleteFile).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return s.logRequests(c.Handler(r))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
