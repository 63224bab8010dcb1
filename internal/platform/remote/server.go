package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 64 << 10
	sendQueue  = 64
)

// PostFunc hands work to the frame goroutine, which owns the aggregator.
type PostFunc func(func(*input.Aggregator))

// Server bridges WebSocket pads to one session.
type Server struct {
	post     PostFunc
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
	http    *http.Server

	pads pads
}

// NewServer creates a pad server. post must be safe to call from any
// goroutine.
func NewServer(post PostFunc, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		post:   post,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Pads are phones on the local network.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
		pads:    pads{touches: make(map[string][]input.TouchPoint)},
	}
}

// Handler returns the HTTP handler serving the /pad endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pad", s.handlePad)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts pads on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	s.logger.Info("remote pad listening", "address", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeClients()
	return err
}

// Broadcast queues e for every connected pad without blocking; slow pads
// drop events.
func (s *Server) Broadcast(e events.Event) {
	data, err := Encode(e)
	if err != nil {
		s.logger.Warn("cannot encode event", "kind", e.Kind(), "err", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.enqueue(data)
	}
}

// Clients returns the number of connected pads.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handlePad(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{id: uuid.NewString(), ws: ws, send: make(chan []byte, sendQueue)}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	s.logger.Info("pad connected", "pad", c.id, "remote", r.RemoteAddr)

	go c.writePump()
	s.readPump(c)
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.send)
	}
	s.mu.Unlock()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
}

// readPump decodes pad messages and posts them to the frame goroutine.
// A pad that goes away releases its own touches, and the gamepad if it sent
// the last snapshot.
func (s *Server) readPump(c *client) {
	defer func() {
		s.drop(c)
		s.post(func(a *input.Aggregator) {
			remaining, ownedGamepad := s.pads.release(c.id)
			a.TouchEnd(remaining)
			if ownedGamepad {
				a.SetGamepad(input.GamepadState{})
			}
		})
		s.logger.Info("pad disconnected", "pad", c.id)
	}()

	c.ws.SetReadLimit(readLimit)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var m Message
		if err := json.Unmarshal(payload, &m); err != nil {
			s.logger.Debug("discarding malformed message", "pad", c.id, "err", err)
			continue
		}
		s.post(func(a *input.Aggregator) {
			if err := s.apply(c.id, m, a); err != nil {
				s.logger.Debug("discarding message", "pad", c.id, "err", err)
			}
		})
	}
}

// apply is Apply with per-pad bookkeeping.
func (s *Server) apply(pad string, m Message, a *input.Aggregator) error {
	switch m.Type {
	case TypeTouch:
		if !knownPhase(m.Phase) {
			return fmt.Errorf("remote: unknown touch phase %q", m.Phase)
		}
		return applyTouches(m.Phase, s.pads.setTouches(pad, touchPoints(m.Touches)), a)
	case TypeGamepad:
		s.pads.claimGamepad(pad)
	}
	return Apply(m, a)
}

// pads tracks what each connected pad holds. The aggregator keeps a single
// touch list, so it is fed the union of all pads, in the order the pads
// first touched; the first pad's first finger drives the joystick.
type pads struct {
	mu      sync.Mutex
	order   []string
	touches map[string][]input.TouchPoint
	gamepad string
}

func (p *pads) setTouches(pad string, points []input.TouchPoint) []input.TouchPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch _, held := p.touches[pad]; {
	case len(points) == 0:
		p.drop(pad)
	case !held:
		p.order = append(p.order, pad)
		fallthrough
	default:
		p.touches[pad] = points
	}
	return p.merged()
}

func (p *pads) claimGamepad(pad string) {
	p.mu.Lock()
	p.gamepad = pad
	p.mu.Unlock()
}

// release forgets pad and returns the touches still held by other pads.
func (p *pads) release(pad string) (remaining []input.TouchPoint, ownedGamepad bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop(pad)
	if p.gamepad == pad {
		p.gamepad = ""
		ownedGamepad = true
	}
	return p.merged(), ownedGamepad
}

// drop forgets pad's touches. Callers hold mu.
func (p *pads) drop(pad string) {
	delete(p.touches, pad)
	p.order = slices.DeleteFunc(p.order, func(id string) bool { return id == pad })
}

func (p *pads) merged() []input.TouchPoint {
	var all []input.TouchPoint
	for _, id := range p.order {
		all = append(all, p.touches[id]...)
	}
	return all
}

type client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// enqueue must be called with the server lock held.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
