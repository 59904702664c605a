package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	cerr "github.com/saeidalz13/battlesea/internal/error"
	mb "github.com/saeidalz13/battlesea/models/battleship"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestSessionLifecycle(t *testing.T) {
	bsm := NewBattleshipSessionManager(zerolog.Nop())

	first := bsm.GenerateNewSession(nil)
	second := bsm.GenerateNewSession(nil)
	if first.Id() == second.Id() {
		t.Fatal("session ids must be unique")
	}
	if bsm.CountSessions() != 2 {
		t.Fatalf("expected 2 sessions, got: %d", bsm.CountSessions())
	}

	found, err := bsm.FindSession(first.Id())
	if err != nil {
		t.Fatal(err)
	}
	if found != first {
		t.Fatal("found a different session")
	}

	bsm.TerminateSession(first.Id())
	if _, err := bsm.FindSession(first.Id()); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrSessionNotFound, err)
	}
	if bsm.CountSessions() != 1 {
		t.Fatalf("expected 1 session, got: %d", bsm.CountSessions())
	}
}

func TestCleanupStale(t *testing.T) {
	bsm := NewBattleshipSessionManager(zerolog.Nop()).WithCleanupInterval(time.Minute)

	stale := bsm.GenerateNewSession(nil)
	stale.createdAt = time.Now().Add(-2 * time.Minute)
	fresh := bsm.GenerateNewSession(nil)

	bsm.cleanupStale()

	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("stale session must be removed")
	}
	if _, err := bsm.FindSession(fresh.Id()); err != nil {
		t.Fatal(err)
	}
}

func TestCleanupPeriodicallyStopsWithContext(t *testing.T) {
	bsm := NewBattleshipSessionManager(zerolog.Nop()).WithCleanupInterval(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		bsm.CleanupPeriodically(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestOnConnErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected zerolog.Level
	}{
		{name: "normal closure", err: &websocket.CloseError{Code: websocket.CloseNormalClosure}, expected: zerolog.InfoLevel},
		{name: "going away", err: &websocket.CloseError{Code: websocket.CloseGoingAway}, expected: zerolog.InfoLevel},
		{name: "timeout", err: timeoutErr{}, expected: zerolog.WarnLevel},
		{name: "message too big", err: &websocket.CloseError{Code: websocket.CloseMessageTooBig}, expected: zerolog.WarnLevel},
		{name: "unknown", err: errors.New("boom"), expected: zerolog.ErrorLevel},
	}

	s := NewSession("test", nil, zerolog.Nop())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := s.onConnErr(test.err); got != test.expected {
				t.Fatalf("expected: %s\tgot: %s", test.expected, got)
			}
		})
	}
}

// A read error is returned right away; the connection is never read again.
func TestReadStopsOnFirstError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Upgrade(w, r, nil, 1024, 1024)
		if err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		conn.Close()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	bsm := NewBattleshipSessionManager(zerolog.Nop())
	session := bsm.GenerateNewSession(conn)

	start := time.Now()
	_, _, err = bsm.ReadFromSessionConn(session)
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal closure, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("read kept going after the error for %s", elapsed)
	}
}

func TestWriteRejectsInvalidMessageType(t *testing.T) {
	s := NewSession("test", nil, zerolog.Nop())

	err := s.writeToConn("not bytes", MessageTypeBytes)
	var connErr ConnErr
	if !errors.As(err, &connErr) || connErr.Code() != ConnInvalidMsgType {
		t.Fatalf("expected invalid message type error, got: %v", err)
	}

	err = s.writeToConn([]byte("{}"), 42)
	if !errors.As(err, &connErr) || connErr.Code() != ConnInvalidMsgType {
		t.Fatalf("expected invalid message type error, got: %v", err)
	}
}

func TestFetchCodeFromMsg(t *testing.T) {
	code, err := FetchCodeFromMsg([]byte(`{"code":4,"payload":{"x":1,"y":2}}`))
	if err != nil {
		t.Fatal(err)
	}
	if code != CodeAttack {
		t.Fatalf("expected code: %d\tgot: %d", CodeAttack, code)
	}

	if _, err := FetchCodeFromMsg([]byte("nope")); err == nil {
		t.Fatal("expected an error for a payload that is not json")
	}
}

func TestMatchStatus(t *testing.T) {
	tests := []struct {
		state    mb.GameState
		expected int
	}{
		{mb.GameStateWon, PlayerMatchStatusWon},
		{mb.GameStateLost, PlayerMatchStatusLost},
		{mb.GameStateAwaitingUserTurn, PlayerMatchStatusUndefined},
		{mb.GameStateAwaitingAITurn, PlayerMatchStatusUndefined},
	}

	for _, test := range tests {
		if got := MatchStatus(test.state); got != test.expected {
			t.Fatalf("%s: expected: %d\tgot: %d", test.state, test.expected, got)
		}
	}
}

func TestNewRespBoardsConcealsAI(t *testing.T) {
	user := mb.NewBoard(3, false)
	ai := mb.NewBoard(3, true)
	for _, b := range []*mb.Board{user, ai} {
		if err := b.PlaceShip(mb.NewShip(mb.NewCoordinates(1, 1), 1, mb.OrientationVertical)); err != nil {
			t.Fatal(err)
		}
		b.ResetForPlay()
	}

	resp := NewRespBoards(user, ai)
	if resp.UserGrid[1][1] != int(mb.PositionStateShip) {
		t.Fatalf("user ship must be visible, got: %v", resp.UserGrid)
	}
	if resp.AIGrid[1][1] != int(mb.PositionStateEmpty) {
		t.Fatalf("ai ship must be hidden, got: %v", resp.AIGrid)
	}
}
