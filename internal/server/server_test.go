package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ekg/itsliquid/internal/sims/fluid"
)

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandshakeSendsInitialFrame(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	s := New(f, 30)
	conn := dialTestServer(t, s)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame FrameMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading initial frame: %v", err)
	}
	if frame.Type != "frame" {
		t.Errorf("message type %q", frame.Type)
	}
	if frame.Width != 16 || frame.Height != 16 {
		t.Errorf("frame size %dx%d", frame.Width, frame.Height)
	}
	if len(frame.RGBA) != 4*16*16 {
		t.Errorf("rgba payload length %d", len(frame.RGBA))
	}
}

func TestControlMessagesDriveSim(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	s := New(f, 30)
	conn := dialTestServer(t, s)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame FrameMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}

	msg := ControlMessage{Type: "addDye", X: 8, Y: 8, R: 1, G: 0.5, B: 0.25}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatal(err)
	}

	// The control is applied by the read loop; poll under the sim lock.
	idx := 8*16 + 8
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.Lock()
		r := f.DyeR()[idx]
		s.mu.Unlock()
		if r == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("dye never injected, cell value %v", r)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := conn.WriteJSON(ControlMessage{Type: "pause", Paused: true}); err != nil {
		t.Fatal(err)
	}
}

func TestCloseStopsSteppingLoop(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	s := New(f, 1000)

	stopped := make(chan struct{})
	go func() {
		s.loop()
		close(stopped)
	}()

	// Let the loop run a few ticks before stopping it.
	time.Sleep(10 * time.Millisecond)
	s.Close()
	s.Close() // idempotent

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stepping loop still running after Close")
	}
}

func TestApplyControls(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	s := New(f, 30)

	s.apply(ControlMessage{Type: "addForce", X: 8, Y: 8, FX: 3, FY: -1, Radius: 2})
	if f.VelocityX()[8*16+8] != 3 {
		t.Error("force control not applied")
	}

	s.apply(ControlMessage{Type: "pause", Paused: true})
	if !s.paused {
		t.Error("pause control not applied")
	}

	s.apply(ControlMessage{Type: "reset", Seed: 42})
	if s.frame != 0 {
		t.Error("reset control should rewind the frame counter")
	}

	// Unknown controls are ignored without panicking.
	s.apply(ControlMessage{Type: "warp"})
}
