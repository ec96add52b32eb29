// Package server streams simulation frames to websocket clients and
// accepts remote dye/force injection, so headless hosts can drive and
// watch a simulation from a browser.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ekg/itsliquid/internal/analysis"
	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/render"
)

// Simulation is the solver surface the server needs: stepping plus raw
// field access for rendering and metrics.
type Simulation interface {
	core.Sim
	core.Field
}

// FrameMessage is the JSON payload broadcast to every client each tick.
// RGBA is the tone-mapped dye image, base64-encoded by encoding/json.
type FrameMessage struct {
	Type    string           `json:"type"`
	Frame   int              `json:"frame"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	RGBA    []byte           `json:"rgba"`
	Metrics analysis.Metrics `json:"metrics"`
}

// ControlMessage is the JSON payload clients send to drive the solver.
type ControlMessage struct {
	Type   string  `json:"type"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	R      float32 `json:"r"`
	G      float32 `json:"g"`
	B      float32 `json:"b"`
	FX     float32 `json:"fx"`
	FY     float32 `json:"fy"`
	Radius float32 `json:"radius"`
	Seed   int64   `json:"seed"`
	Value  int     `json:"value"`
	Paused bool    `json:"paused"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server owns a simulation and fans frames out to websocket clients.
// The simulation is only touched under mu.
type Server struct {
	mu     sync.Mutex
	sim    Simulation
	paused bool
	frame  int

	fixed *core.FixedStep

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	done      chan struct{}
	closeOnce sync.Once

	rgba []byte
}

// New constructs a Server around the provided simulation at the given
// tick rate.
func New(sim Simulation, tps int) *Server {
	size := sim.Size()
	return &Server{
		sim:     sim,
		fixed:   core.NewFixedStep(tps),
		clients: make(map[*websocket.Conn]*sync.Mutex),
		done:    make(chan struct{}),
		rgba:    make([]byte, 4*size.W*size.H),
	}
}

// Handler returns the HTTP mux exposing the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Run serves websocket clients on addr and steps the simulation at the
// configured rate until the listener fails.
func (s *Server) Run(addr string) error {
	go s.loop()
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close stops the stepping loop. Open client connections drain on their
// own as reads fail.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Server) loop() {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}
		s.mu.Lock()
		if !s.fixed.ShouldStep() {
			s.mu.Unlock()
			continue
		}
		if !s.paused {
			s.sim.Step()
			s.frame++
		}
		msg := s.buildFrame()
		s.mu.Unlock()
		s.broadcast(msg)
	}
}

// buildFrame renders the current state; callers must hold mu.
func (s *Server) buildFrame() FrameMessage {
	size := s.sim.Size()
	render.FillDyeRGBA(s.rgba, s.sim.DyeR(), s.sim.DyeG(), s.sim.DyeB())
	rgba := append([]byte(nil), s.rgba...)
	return FrameMessage{
		Type:    "frame",
		Frame:   s.frame,
		Width:   size.W,
		Height:  size.H,
		RGBA:    rgba,
		Metrics: analysis.Analyze(s.sim, s.frame),
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	// Send the current state immediately so clients do not wait a tick.
	s.mu.Lock()
	first := s.buildFrame()
	s.mu.Unlock()
	connMu.Lock()
	err = conn.WriteJSON(first)
	connMu.Unlock()
	if err != nil {
		return
	}

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("websocket read error:", err)
			}
			return
		}
		s.apply(msg)
	}
}

func (s *Server) apply(msg ControlMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.Type {
	case "addDye":
		s.sim.AddDye(msg.X, msg.Y, core.DyeColor{R: msg.R, G: msg.G, B: msg.B})
	case "addForce":
		s.sim.AddForce(msg.X, msg.Y, core.Vec2{X: msg.FX, Y: msg.FY}, msg.Radius)
	case "pause":
		s.paused = msg.Paused
	case "reset":
		s.sim.Reset(msg.Seed)
		s.frame = 0
	case "tps":
		s.fixed.SetTPS(msg.Value)
	default:
		log.Printf("ignoring unknown control %q", msg.Type)
	}
}

func (s *Server) broadcast(msg FrameMessage) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, connMu := range s.clients {
		connMu.Lock()
		err := conn.WriteJSON(msg)
		connMu.Unlock()
		if err != nil {
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}
}
