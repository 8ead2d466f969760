package live

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lumen-ui/lumen/pkg/engine"
	"github.com/lumen-ui/lumen/pkg/memhost"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

// Event is one client frame: a method call or a state write against
// the session's root component.
type Event struct {
	// Type is "call" or "set".
	Type string `json:"type"`

	// Name is the method/action name for calls, the state key for sets.
	Name string `json:"name"`

	// Args are the call arguments.
	Args []any `json:"args,omitempty"`

	// Value is the written value for sets.
	Value any `json:"value,omitempty"`
}

// Update is the server's reply to one event: the patches produced by
// the render it triggered.
type Update struct {
	Seq     int     `json:"seq"`
	Patches []Patch `json:"patches"`
}

// Session drives one connected client: a server-side host tree, a
// patcher with a job queue, and the websocket the patches stream over.
// All session state is owned by the read loop goroutine.
type Session struct {
	ID string

	conn     *websocket.Conn
	host     *memhost.Host
	recorder *Recorder
	patcher  *engine.Patcher
	queue    *engine.JobQueue
	root     *vdom.VNode

	seq     int
	started time.Time

	server *Server
	log    *zap.Logger
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "sess-" + time.Now().Format("150405.000000000")
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// newSession mounts the root component into a fresh host tree.
func (s *Server) newSession(conn *websocket.Conn) *Session {
	host := memhost.New()
	recorder := NewRecorder(host, host.Body())
	queue := &engine.JobQueue{}

	sess := &Session{
		ID:       newSessionID(),
		conn:     conn,
		host:     host,
		recorder: recorder,
		queue:    queue,
		started:  time.Now(),
		server:   s,
	}
	sess.log = s.log.With(zap.String("session", sess.ID))

	opts := []engine.Option{
		engine.WithLogger(sess.log),
		engine.WithAppContext(&engine.AppContext{
			Components:  s.app.Components,
			Provides:    s.app.Provides,
			RouteParams: s.app.RouteParams,
			Scheduler:   queue.Enqueue,
		}),
	}
	if s.engineMetrics != nil {
		opts = append(opts, engine.WithMetrics(s.engineMetrics))
	}
	sess.patcher = engine.New(recorder, opts...)

	sess.root = vdom.NewComponent(s.rootDef, nil)
	sess.patcher.Mount(sess.root, host.Body())
	queue.Flush()
	recorder.Drain() // initial tree travels as HTML, not patches

	return sess
}

// rootInstance returns the mounted root component instance.
func (sess *Session) rootInstance() *engine.Instance {
	inst, _ := sess.root.Instance.(*engine.Instance)
	return inst
}

// HandleEvent applies one event and returns the resulting patches.
func (sess *Session) HandleEvent(ctx context.Context, ev Event) (Update, error) {
	var span trace.Span
	if sess.server.tracer != nil {
		ctx, span = sess.server.tracer.Start(ctx, "lumen.event."+ev.Type,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("lumen.session_id", sess.ID),
				attribute.String("lumen.event_name", ev.Name),
			))
		defer span.End()
	}

	inst := sess.rootInstance()
	if inst == nil {
		err := errSessionUnmounted
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return Update{}, err
	}

	switch ev.Type {
	case "call":
		inst.Ctx().Call(ev.Name, ev.Args...)
	case "set":
		inst.Ctx().Set(ev.Name, ev.Value)
	default:
		err := errInvalidEvent
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return Update{}, err
	}

	sess.queue.Flush()

	sess.seq++
	update := Update{Seq: sess.seq, Patches: sess.recorder.Drain()}
	if span != nil {
		span.SetAttributes(attribute.Int("lumen.patch_count", len(update.Patches)))
		span.SetStatus(codes.Ok, "")
	}
	return update, nil
}

// readLoop reads event frames until the connection closes. It is the
// only goroutine touching the session's engine.
func (sess *Session) readLoop(ctx context.Context) {
	defer sess.close()

	limits := sess.server.cfg.Session
	if limits.MaxEventSize > 0 {
		sess.conn.SetReadLimit(limits.MaxEventSize)
	}

	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.log.Error("read error", zap.Error(err))
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sess.log.Error("event decode error", zap.Error(err))
			sess.server.countEvent("invalid")
			continue
		}

		start := time.Now()
		update, err := sess.HandleEvent(ctx, ev)
		if err != nil {
			sess.log.Warn("event rejected", zap.String("type", ev.Type), zap.Error(err))
			sess.server.countEvent("rejected")
			continue
		}
		sess.server.countEvent(ev.Type)
		sess.server.observeEvent(ev.Type, time.Since(start))

		if err := sess.writeUpdate(update); err != nil {
			sess.log.Error("write error", zap.Error(err))
			return
		}
	}
}

func (sess *Session) writeUpdate(u Update) error {
	if timeout := sess.server.writeTimeout; timeout > 0 {
		sess.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return sess.conn.WriteJSON(u)
}

func (sess *Session) close() {
	if inst := sess.rootInstance(); inst != nil {
		sess.patcher.Unmount(sess.root)
	}
	sess.conn.Close()
	sess.server.dropSession(sess)
	sess.log.Info("session closed",
		zap.Duration("lifetime", time.Since(sess.started)),
		zap.Int("events", sess.seq))
}
