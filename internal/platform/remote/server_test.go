package remote

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
)

func startServer(t *testing.T) (*Server, chan func(*input.Aggregator), *websocket.Conn) {
	t.Helper()
	srv, posted, conns := startServerPads(t, 1)
	return srv, posted, conns[0]
}

func startServerPads(t *testing.T, n int) (*Server, chan func(*input.Aggregator), []*websocket.Conn) {
	t.Helper()
	posted := make(chan func(*input.Aggregator), 16)
	srv := NewServer(func(f func(*input.Aggregator)) { posted <- f }, log.New(io.Discard))

	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/pad"
	conns := make([]*websocket.Conn, n)
	for i := range conns {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		conns[i] = conn
	}
	return srv, posted, conns
}

func receive(t *testing.T, posted chan func(*input.Aggregator)) func(*input.Aggregator) {
	t.Helper()
	select {
	case f := <-posted:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("nothing posted")
		return nil
	}
}

func TestServerPostsInput(t *testing.T) {
	_, posted, conn := startServer(t)

	if err := conn.WriteJSON(Message{Type: TypeKey, Key: "w", Down: true}); err != nil {
		t.Fatal(err)
	}
	a := input.NewAggregator(nil)
	receive(t, posted)(a)
	if !a.Pressed(input.KeyW) {
		t.Error("w not pressed after remote key message")
	}
}

func TestServerSkipsMalformedMessages(t *testing.T) {
	_, posted, conn := startServer(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: TypeKey, Key: "e", Down: true}); err != nil {
		t.Fatal(err)
	}
	a := input.NewAggregator(nil)
	receive(t, posted)(a)
	if !a.Pressed(input.KeyE) {
		t.Error("message after a malformed one was lost")
	}
}

func TestServerBroadcastsEvents(t *testing.T) {
	srv, posted, conn := startServer(t)

	// The first posted message proves the pad is registered.
	if err := conn.WriteJSON(Message{Type: TypeVisibility, Visible: true}); err != nil {
		t.Fatal(err)
	}
	receive(t, posted)
	if n := srv.Clients(); n != 1 {
		t.Fatalf("clients = %d, want 1", n)
	}

	srv.Broadcast(events.ScoreUpdate{Score: 75})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Type string `json:"type"`
		Data struct {
			Score int `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Type != "scoreUpdate" || out.Data.Score != 75 {
		t.Errorf("got %s", data)
	}
}

func TestServerReleasesInputOnDisconnect(t *testing.T) {
	_, posted, conn := startServer(t)

	conn.WriteJSON(Message{Type: TypeJoystick, CX: 0, CY: 0, Radius: 10})
	conn.WriteJSON(Message{Type: TypeTouch, Phase: PhaseStart, Touches: []Touch{{X: 10}}})
	a := input.NewAggregator(nil)
	receive(t, posted)(a)
	receive(t, posted)(a)
	if !a.Poll().Action {
		t.Fatal("touch not applied")
	}

	conn.Close()
	receive(t, posted)(a)
	if in := a.Poll(); in.Action || in.MoveX != 0 {
		t.Errorf("intent after disconnect = %+v, want idle", in)
	}
}

func TestServerDisconnectKeepsOtherPadsInput(t *testing.T) {
	_, posted, conns := startServerPads(t, 2)
	first, second := conns[0], conns[1]
	a := input.NewAggregator(nil)

	first.WriteJSON(Message{Type: TypeJoystick, CX: 0, CY: 0, Radius: 10})
	first.WriteJSON(Message{Type: TypeTouch, Phase: PhaseStart, Touches: []Touch{{ID: 1, X: 10}}})
	receive(t, posted)(a)
	receive(t, posted)(a)

	pause := make([]bool, 10)
	pause[input.PadButtonStart] = true
	second.WriteJSON(Message{Type: TypeTouch, Phase: PhaseStart, Touches: []Touch{{ID: 1, X: -10}}})
	second.WriteJSON(Message{Type: TypeGamepad, Connected: true, Buttons: pause})
	receive(t, posted)(a)
	receive(t, posted)(a)

	if got := a.Poll().MoveX; got != 1 {
		t.Fatalf("MoveX = %v, the first pad's finger should drive the joystick", got)
	}

	first.Close()
	receive(t, posted)(a)
	in := a.Poll()
	if !in.Action || in.MoveX != -1 {
		t.Errorf("after first pad left: intent = %+v, want the second pad's touch", in)
	}
	if !in.Pause {
		t.Error("the second pad's gamepad was released")
	}

	second.Close()
	receive(t, posted)(a)
	if in := a.Poll(); in.Action || in.MoveX != 0 || in.Pause {
		t.Errorf("intent after both pads left = %+v, want idle", in)
	}
}

func TestPadsMergeInFirstTouchOrder(t *testing.T) {
	p := pads{touches: make(map[string][]input.TouchPoint)}

	p.setTouches("b", []input.TouchPoint{{ID: 1, X: 2}})
	p.setTouches("a", []input.TouchPoint{{ID: 1, X: 1}})
	got := p.setTouches("b", []input.TouchPoint{{ID: 1, X: 3}, {ID: 2, X: 4}})
	if len(got) != 3 || got[0].X != 3 || got[2].X != 1 {
		t.Fatalf("merged = %+v", got)
	}

	got = p.setTouches("b", nil)
	if len(got) != 1 || got[0].X != 1 {
		t.Errorf("after b lifted: %+v", got)
	}
	got = p.setTouches("b", []input.TouchPoint{{ID: 1, X: 5}})
	if got[0].X != 1 || got[1].X != 5 {
		t.Errorf("b should rejoin after a: %+v", got)
	}

	p.claimGamepad("a")
	if rest, owned := p.release("b"); owned || len(rest) != 1 {
		t.Errorf("release(b) = %+v, %v", rest, owned)
	}
	if rest, owned := p.release("a"); !owned || len(rest) != 0 {
		t.Errorf("release(a) = %+v, %v", rest, owned)
	}
}
