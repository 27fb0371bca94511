package server

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"sketch-party/internal/config"
	"sketch-party/internal/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return serveForTest(t, New(nil, config.Default()))
}

func serveForTest(t *testing.T, srv *Server) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: srv.Router()},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body %#v", body)
	}
}

func TestTeamsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/teams")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	teams, ok := body["teams"].([]any)
	if !ok || len(teams) != 6 {
		t.Fatalf("expected 6 teams, got %#v", body["teams"])
	}
	first := teams[0].(map[string]any)
	for _, key := range []string{"id", "name", "image", "color"} {
		if _, ok := first[key].(string); !ok {
			t.Fatalf("team entry missing %s: %#v", key, first)
		}
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/leaderboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, ok := body["players"].([]any); !ok {
		t.Fatalf("players missing from leaderboard body %#v", body)
	}
	if _, ok := body["teams"].([]any); !ok {
		t.Fatalf("teams missing from leaderboard body %#v", body)
	}
}

func TestWebsocketJoinReceivesRoomState(t *testing.T) {
	ts := newTestServer(t)

	conn := dialWS(t, ts)
	sendWS(t, conn, msgJoinRoom, map[string]string{"nickname": "Ada", "teamId": "lime-tea"})

	var state struct {
		Players []map[string]any `json:"players"`
		Round   int              `json:"round"`
	}
	unmarshalEvent(t, waitForEvent(t, conn, game.EventRoomState), &state)
	if state.Round != 1 || len(state.Players) != 1 {
		t.Fatalf("unexpected room state %#v", state)
	}
	if state.Players[0]["nickname"] != "Ada" || state.Players[0]["role"] != "painter" {
		t.Fatalf("unexpected roster entry %#v", state.Players[0])
	}

	var turn struct {
		Word string `json:"word"`
	}
	unmarshalEvent(t, waitForEvent(t, conn, game.EventYourTurnToDraw), &turn)
	if turn.Word == "" {
		t.Fatal("painter did not receive the round word")
	}
}

func TestWebsocketStrokeFanOut(t *testing.T) {
	ts := newTestServer(t)

	painter := dialWS(t, ts)
	sendWS(t, painter, msgJoinRoom, map[string]string{"nickname": "Ada"})
	waitForEvent(t, painter, game.EventYourTurnToDraw)

	guesser := dialWS(t, ts)
	sendWS(t, guesser, msgJoinRoom, map[string]string{"nickname": "Ben"})
	waitForEvent(t, guesser, game.EventRoomState)

	sent := game.Stroke{
		From:  game.Point{X: 1, Y: 2},
		To:    game.Point{X: 3, Y: 4},
		Color: "#112233",
		Width: 2.5,
	}
	sendWS(t, painter, msgDrawStroke, sent)

	var received game.Stroke
	unmarshalEvent(t, waitForEvent(t, guesser, game.EventStrokeReceived), &received)
	if received != sent {
		t.Fatalf("stroke = %#v, want %#v", received, sent)
	}
	expectNoEvent(t, painter, game.EventStrokeReceived)
}

func TestWebsocketGuessFlow(t *testing.T) {
	ts := newTestServer(t)

	painter := dialWS(t, ts)
	sendWS(t, painter, msgJoinRoom, map[string]string{"nickname": "Ada"})
	var turn struct {
		Word string `json:"word"`
	}
	unmarshalEvent(t, waitForEvent(t, painter, game.EventYourTurnToDraw), &turn)

	guesser := dialWS(t, ts)
	sendWS(t, guesser, msgJoinRoom, map[string]string{"nickname": "Ben"})
	waitForEvent(t, guesser, game.EventRoomState)

	sendWS(t, guesser, msgSubmitGuess, map[string]string{"guess": "definitely wrong"})
	var miss struct {
		Correct bool   `json:"correct"`
		Message string `json:"message"`
	}
	unmarshalEvent(t, waitForEvent(t, guesser, game.EventGuessResult), &miss)
	if miss.Correct || miss.Message == "" {
		t.Fatalf("unexpected miss result %#v", miss)
	}

	sendWS(t, guesser, msgSubmitGuess, map[string]string{"guess": turn.Word})
	var hit struct {
		Correct bool   `json:"correct"`
		Word    string `json:"word"`
		Points  int    `json:"points"`
	}
	unmarshalEvent(t, waitForEvent(t, guesser, game.EventGuessResult), &hit)
	if !hit.Correct || hit.Word != turn.Word || hit.Points <= 0 {
		t.Fatalf("unexpected hit result %#v", hit)
	}

	// The only guesser was correct, so the round reveals immediately.
	var reveal struct {
		Answer string `json:"answer"`
	}
	unmarshalEvent(t, waitForEvent(t, guesser, game.EventAnswerReveal), &reveal)
	if reveal.Answer != turn.Word {
		t.Fatalf("revealed %q, want %q", reveal.Answer, turn.Word)
	}
}

func TestWebsocketPainterGuessRejected(t *testing.T) {
	ts := newTestServer(t)

	painter := dialWS(t, ts)
	sendWS(t, painter, msgJoinRoom, map[string]string{"nickname": "Ada"})
	waitForEvent(t, painter, game.EventYourTurnToDraw)

	sendWS(t, painter, msgSubmitGuess, map[string]string{"guess": "anything"})
	var result struct {
		Correct bool   `json:"correct"`
		Message string `json:"message"`
	}
	unmarshalEvent(t, waitForEvent(t, painter, game.EventGuessResult), &result)
	if result.Correct || !strings.Contains(result.Message, "drawing") {
		t.Fatalf("unexpected painter rejection %#v", result)
	}
}

func TestWebsocketRestart(t *testing.T) {
	ts := newTestServer(t)

	painter := dialWS(t, ts)
	sendWS(t, painter, msgJoinRoom, map[string]string{"nickname": "Ada"})
	waitForEvent(t, painter, game.EventYourTurnToDraw)

	guesser := dialWS(t, ts)
	sendWS(t, guesser, msgJoinRoom, map[string]string{"nickname": "Ben"})
	waitForEvent(t, guesser, game.EventRoomState)

	sendWS(t, guesser, msgRestartGame, nil)
	var restart struct {
		Round     int    `json:"round"`
		PainterID string `json:"painterId"`
	}
	unmarshalEvent(t, waitForEvent(t, guesser, game.EventGameRestart), &restart)
	if restart.Round != 1 || restart.PainterID == "" {
		t.Fatalf("unexpected restart payload %#v", restart)
	}
}

func TestWebsocketSurvivesBadMessages(t *testing.T) {
	ts := newTestServer(t)

	conn := dialWS(t, ts)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write raw message: %v", err)
	}
	sendWS(t, conn, "no-such-type", map[string]string{})
	sendWS(t, conn, msgJoinRoom, map[string]string{"nickname": "Ada"})
	waitForEvent(t, conn, game.EventRoomState)
}

func TestWebsocketOriginPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	ts := serveForTest(t, New(nil, cfg))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	if conn, _, err := websocket.DefaultDialer.Dial(wsURL, header); err == nil {
		_ = conn.Close()
		t.Fatal("handshake from a disallowed origin succeeded")
	}

	header = http.Header{"Origin": []string{"https://app.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("handshake from an allowed origin failed: %v", err)
	}
	_ = conn.Close()
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("expected websocket connection, got error: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": msgType, "data": data}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

type wsEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// waitForEvent reads until the wanted event type arrives, skipping the
// timer updates and state broadcasts that interleave with it.
func waitForEvent(t *testing.T, conn *websocket.Conn, eventType string) json.RawMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	defer conn.SetReadDeadline(time.Time{})
	for {
		var evt wsEvent
		if err := conn.ReadJSON(&evt); err != nil {
			t.Fatalf("waiting for %s: %v", eventType, err)
		}
		if evt.Type == eventType {
			return evt.Data
		}
	}
}

// expectNoEvent drains the connection briefly and fails if the given
// event type shows up.
func expectNoEvent(t *testing.T, conn *websocket.Conn, eventType string) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	defer conn.SetReadDeadline(time.Time{})
	for {
		var evt wsEvent
		if err := conn.ReadJSON(&evt); err != nil {
			return
		}
		if evt.Type == eventType {
			t.Fatalf("unexpected %s event", eventType)
		}
	}
}

func unmarshalEvent(t *testing.T, data json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal event payload: %v", err)
	}
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
