package live

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elishacook/microfun/pkg/render"
	"github.com/elishacook/microfun/pkg/vdom"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Addr is the listen address (":8080").
	Addr string

	// Title is the page title.
	Title string

	// Styles are inline CSS blocks added to the page.
	Styles []string

	// ReadHeaderTimeout bounds reading request headers. WebSocket
	// deadlines are set on the Hub.
	ReadHeaderTimeout time.Duration

	// Gatherer, if set, is served at MetricsPath.
	Gatherer    prometheus.Gatherer
	MetricsPath string

	Logger *slog.Logger
}

// Server serves the page, the WebSocket endpoint and health and metrics
// routes for one Hub.
type Server struct {
	hub      *Hub
	config   ServerConfig
	renderer *render.Renderer
	router   chi.Router
	http     *http.Server
	logger   *slog.Logger
}

// NewServer builds the router for hub.
func NewServer(hub *Hub, config ServerConfig) *Server {
	if config.Title == "" {
		config.Title = "microfun"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	s := &Server{
		hub:      hub,
		config:   config,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger.With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/ws", hub.ServeHTTP)
	r.Get("/healthz", s.handleHealth)
	if config.Gatherer != nil {
		r.Handle(config.MetricsPath, promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r

	s.http = &http.Server{
		Addr:              config.Addr,
		Handler:           r,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body := vdom.Div(vdom.ID("microfun-root"))
	if tree := s.hub.Tree(); tree != nil {
		body.Children = []*vdom.Node{tree}
	}

	var buf bytes.Buffer
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:   body,
		Title:  s.config.Title,
		Styles: s.config.Styles,
		Inline: clientScript,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
