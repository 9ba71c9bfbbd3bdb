// Package ws serves the live city search over websockets.
package ws

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"weather-forecasting/internal/models"
	"weather-forecasting/internal/search"
	"weather-forecasting/internal/session"
	"weather-forecasting/internal/views"
	"weather-forecasting/pkg/logger"
)

const (
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
	writeWait   = 10 * time.Second
	outboxSize  = 16
	maxInbound  = 4096
	selectLimit = 45 * time.Second
)

// Inbound is a client message: input carries Query, select carries Value/Label.
type Inbound struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

type Outbound struct {
	Type    string          `json:"type"`
	Query   string          `json:"query,omitempty"`
	Options []models.Option `json:"options,omitempty"`
	HasMore bool            `json:"has_more,omitempty"`
	View    *session.View   `json:"view,omitempty"`
	HTML    string          `json:"html,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Server struct {
	searcher search.Searcher
	sessions *session.Manager
	renderer *views.Renderer
	debounce time.Duration
	upgrader websocket.Upgrader
	l        *logger.Logger
}

func NewServer(
	searcher search.Searcher,
	sessions *session.Manager,
	renderer *views.Renderer,
	debounce time.Duration,
	l *logger.Logger,
) *Server {
	return &Server{
		searcher: searcher,
		sessions: sessions,
		renderer: renderer,
		debounce: debounce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page is served from the main listener on another port.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		l: l,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/ws/search", s.handleSearch)

	return r
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if _, err := uuid.Parse(clientID); err != nil {
		http.Error(w, "client_id must be a UUID", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.l.Warning("websocket upgrade failed", map[string]any{"err": err.Error()})
		return
	}

	c := newConn(s, conn, clientID)
	go c.writeLoop()
	c.readLoop()
}

type conn struct {
	srv      *Server
	ws       *websocket.Conn
	clientID string
	out      chan Outbound
	ctx      context.Context
	cancel   context.CancelFunc
	comp     *search.Component

	viewMu   sync.Mutex
	lastView session.View
	sentView bool
}

func newConn(srv *Server, ws *websocket.Conn, clientID string) *conn {
	ctx, cancel := context.WithCancel(context.Background())
	c := &conn{
		srv:      srv,
		ws:       ws,
		clientID: clientID,
		out:      make(chan Outbound, outboxSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	c.comp = search.NewComponent(srv.searcher, srv.debounce, c.onOptions, c.onSelect)
	return c
}

func (c *conn) send(m Outbound) {
	select {
	case c.out <- m:
	case <-c.ctx.Done():
	}
}

func (c *conn) onOptions(o search.Options) {
	c.send(Outbound{Type: "options", Query: o.Query, Options: o.Options, HasMore: o.HasMore})
}

// onSelect runs under the component lock, so the fetch happens elsewhere.
func (c *conn) onSelect(loc models.Location) {
	sess := c.srv.sessions.Get(c.ctx, c.clientID)

	go func() {
		ctx, cancel := context.WithTimeout(c.ctx, selectLimit)
		defer cancel()

		c.sendView(sess.SelectWithProgress(ctx, loc, c.sendView))
	}()
}

// sendView queues v unless the client has already been sent a newer view.
// Views are ordered by sequence number, and a settled view outranks the
// loading view of the same selection.
func (c *conn) sendView(v session.View) {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()

	if c.sentView && !newerView(v, c.lastView) {
		return
	}
	c.lastView, c.sentView = v, true

	var buf bytes.Buffer
	if err := c.srv.renderer.Content(&buf, v); err != nil {
		c.srv.l.Error(err, map[string]any{"client": c.clientID})
	}
	c.send(Outbound{Type: "view", View: &v, HTML: buf.String()})
}

func newerView(v, last session.View) bool {
	if v.Seq != last.Seq {
		return v.Seq > last.Seq
	}
	return settled(v.State) || !settled(last.State)
}

func settled(s session.State) bool {
	return s == session.StateReady || s == session.StateError
}

func (c *conn) readLoop() {
	defer func() {
		c.comp.Close()
		c.cancel()
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxInbound)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Inbound
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.srv.l.Warning("websocket read failed", map[string]any{"client": c.clientID, "err": err.Error()})
			}
			return
		}

		switch msg.Type {
		case "input":
			c.comp.Input(msg.Query)
		case "more":
			go c.comp.LoadMore()
		case "select":
			if err := c.comp.Select(models.Option{Value: msg.Value, Label: msg.Label}); err != nil {
				c.send(Outbound{Type: "error", Error: err.Error()})
			}
		default:
			c.send(Outbound{Type: "error", Error: "unknown message type " + msg.Type})
		}
	}
}

func (c *conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case m := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(m); err != nil {
				c.cancel()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		}
	}
}
