package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lumen-ui/lumen/internal/config"
	lerrors "github.com/lumen-ui/lumen/internal/errors"
	"github.com/lumen-ui/lumen/pkg/engine"
	"github.com/lumen-ui/lumen/pkg/memhost"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

var (
	errInvalidEvent     = lerrors.New("L060")
	errSessionUnmounted = lerrors.New("L062")
)

// Server hosts a root component over HTTP and WebSocket.
type Server struct {
	cfg     *config.Config
	rootDef *vdom.Definition
	app     *engine.AppContext

	log      *zap.Logger
	upgrader websocket.Upgrader
	tracer   trace.Tracer

	mu       sync.Mutex
	sessions map[string]*Session

	writeTimeout time.Duration

	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	activeSessions prometheus.Gauge
	engineMetrics  *engine.Metrics
	promRegistry   *prometheus.Registry

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger. Defaults to zap.NewNop.
func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

// WithAppContext sets the app-level registry, provides, and route
// params shared by every session. The scheduler field is ignored;
// sessions each run their own job queue.
func WithAppContext(app *engine.AppContext) ServerOption {
	return func(s *Server) { s.app = app }
}

// WithRegistry sets the Prometheus registry metrics register into.
// Defaults to a private registry served at the configured metrics path.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) { s.promRegistry = reg }
}

// NewServer creates a live server for the given root component.
func NewServer(cfg *config.Config, root *vdom.Definition, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Server{
		cfg:     cfg,
		rootDef: root,
		app:     &engine.AppContext{},
		log:     zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	if d, err := time.ParseDuration(cfg.Session.WriteTimeout); err == nil {
		s.writeTimeout = d
	}

	if cfg.Trace.Enabled {
		s.tracer = otel.Tracer(cfg.Trace.ServiceName)
	}

	if cfg.Metrics.Enabled {
		if s.promRegistry == nil {
			s.promRegistry = prometheus.NewRegistry()
		}
		factory := promauto.With(s.promRegistry)
		s.eventsTotal = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total events received, by type",
		}, []string{"type"})
		s.eventDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lumen",
			Subsystem: "live",
			Name:      "event_duration_seconds",
			Help:      "Event handling duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"})
		s.activeSessions = factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lumen",
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Currently connected sessions",
		})
		s.engineMetrics = engine.NewMetrics(engine.MetricsConfig{
			Registry: s.promRegistry,
		})
	}

	return s
}

// Handler returns the server's HTTP routes: the rendered page at /,
// the websocket at /live, and the Prometheus endpoint when enabled.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	}
	return r
}

// handleIndex renders the root component and serves the HTML.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	host := memhost.New()
	p := engine.New(host,
		engine.WithLogger(s.log),
		engine.WithAppContext(s.app),
	)
	root := vdom.NewComponent(s.rootDef, nil)
	p.Mount(root, host.Body())
	html := host.HTML()
	p.Unmount(root)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><head><title>" + s.pageTitle() + "</title></head>" + html + "</html>"))
}

func (s *Server) pageTitle() string {
	if s.cfg.Name != "" {
		return s.cfg.Name
	}
	return "lumen"
}

// handleLive upgrades to WebSocket and runs the session's event loop.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := s.newSession(conn)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	if s.activeSessions != nil {
		s.activeSessions.Inc()
	}
	s.log.Info("session opened", zap.String("session", sess.ID))

	sess.readLoop(r.Context())
}

func (s *Server) dropSession(sess *Session) {
	s.mu.Lock()
	_, present := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	if present && s.activeSessions != nil {
		s.activeSessions.Dec()
	}
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) countEvent(typ string) {
	if s.eventsTotal != nil {
		s.eventsTotal.WithLabelValues(typ).Inc()
	}
}

func (s *Server) observeEvent(typ string, d time.Duration) {
	if s.eventDuration != nil {
		s.eventDuration.WithLabelValues(typ).Observe(d.Seconds())
	}
}

// Start begins serving on the configured address and blocks until the
// listener fails or Shutdown runs.
func (s *Server) Start() error {
	readHeaderTimeout, _ := time.ParseDuration(s.cfg.Server.ReadHeaderTimeout)
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.log.Info("live server starting", zap.String("addr", s.cfg.Address()))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()
	for _, sess := range open {
		sess.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		sess.conn.Close()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
