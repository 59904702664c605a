package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/saeidalz13/battlesea/api"
	"github.com/saeidalz13/battlesea/db/sqlc"
	"github.com/saeidalz13/battlesea/internal/rng"
	mb "github.com/saeidalz13/battlesea/models/battleship"
	mc "github.com/saeidalz13/battlesea/models/connection"
)

type testServer struct {
	srv            *httptest.Server
	gameManager    *mb.BattleshipGameManager
	sessionManager *mc.BattleshipSessionManager
}

// A single 1-deck ship per side makes a game winnable with one shot.
func newTestServer(t *testing.T) testServer {
	t.Helper()
	return newTestServerWithAnalytics(t, sqlc.NewDbManager(nil).Analytics)
}

func newTestServerWithAnalytics(t *testing.T, analytics *sqlc.AnalyticsManager) testServer {
	t.Helper()
	rules := mb.Rules{GridSize: 4, Fleet: []int{1}, PlacementAttempts: 100, MaxBoardRestarts: 10}

	bsm := mc.NewBattleshipSessionManager(zerolog.Nop())
	bgm := mb.NewBattleshipGameManager(rules, rng.New(1))
	rp := api.NewRequestProcessor(bsm, bgm, analytics, zerolog.Nop())

	srv := httptest.NewServer(api.NewRouter(rp))
	t.Cleanup(srv.Close)
	return testServer{srv: srv, gameManager: bgm, sessionManager: bsm}
}

func (ts testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(ts.srv.URL, "http")+"/battlesea", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func readMsg[T any](t *testing.T, conn *websocket.Conn, expectedCode uint8) mc.Message[T] {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}

	var msg mc.Message[T]
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Code != expectedCode {
		t.Fatalf("expected code: %d\tgot: %d (error: %+v)", expectedCode, msg.Code, msg.Error)
	}
	return msg
}

func sendAttack(t *testing.T, conn *websocket.Conn, x, y int) {
	t.Helper()
	req := mc.NewMessage[mc.ReqAttack](mc.CodeAttack)
	req.AddPayload(mc.ReqAttack{X: x, Y: y})
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
}

func TestSessionSignals(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)

	sessionMsg := readMsg[mc.RespSessionId](t, conn, mc.CodeSessionID)
	if sessionMsg.Payload.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if _, err := ts.sessionManager.FindSession(sessionMsg.Payload.SessionID); err != nil {
		t.Fatal(err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	readMsg[mc.NoPayload](t, conn, mc.CodeSignalAbsent)

	if err := conn.WriteJSON(mc.NewSignal(200)); err != nil {
		t.Fatal(err)
	}
	readMsg[mc.NoPayload](t, conn, mc.CodeInvalidSignal)

	sendAttack(t, conn, 0, 0)
	attackMsg := readMsg[mc.NoPayload](t, conn, mc.CodeAttack)
	if attackMsg.Error == nil {
		t.Fatal("attack without a game must be rejected")
	}
}

func TestPlayGameOverWebsocket(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)
	readMsg[mc.RespSessionId](t, conn, mc.CodeSessionID)

	if err := conn.WriteJSON(mc.NewSignal(mc.CodeCreateGame)); err != nil {
		t.Fatal(err)
	}

	created := readMsg[mc.RespCreateGame](t, conn, mc.CodeCreateGame)
	if created.Error != nil {
		t.Fatalf("failed to create game: %+v", created.Error)
	}
	if created.Payload.GridSize != 4 || len(created.Payload.Fleet) != 1 {
		t.Fatalf("unexpected game: %+v", created.Payload)
	}

	game, err := ts.gameManager.FetchGame(created.Payload.GameUuid)
	if err != nil {
		t.Fatal(err)
	}

	boards := readMsg[mc.RespBoards](t, conn, mc.CodeBoards)
	if len(boards.Payload.AIGrid) != 4 {
		t.Fatalf("expected a 4x4 ai grid, got: %v", boards.Payload.AIGrid)
	}
	for _, row := range boards.Payload.AIGrid {
		for _, cell := range row {
			if cell == int(mb.PositionStateShip) {
				t.Fatal("ai ships must not be sent to the user")
			}
		}
	}

	turn := readMsg[mc.RespTurn](t, conn, mc.CodeTurn)
	if !turn.Payload.IsTurn {
		t.Fatal("user must move first")
	}

	sendAttack(t, conn, 4, 0)
	attackErr := readMsg[mc.NoPayload](t, conn, mc.CodeAttackError)
	if attackErr.Error == nil {
		t.Fatal("expected an error for a shot outside the board")
	}

	if err := conn.WriteJSON(mc.NewSignal(mc.CodeCreateGame)); err != nil {
		t.Fatal(err)
	}
	dup := readMsg[mc.NoPayload](t, conn, mc.CodeCreateGame)
	if dup.Error == nil {
		t.Fatal("a second game in the same session must be rejected")
	}

	target := game.AIBoard().Ships()[0].Origin()
	sendAttack(t, conn, target.X, target.Y)

	result := readMsg[mc.RespAttack](t, conn, mc.CodeAttackResult)
	if result.Payload.Outcome != mb.ShotSunk.String() || result.Payload.Side != mb.SideUser.String() {
		t.Fatalf("expected the user to sink the ship, got: %+v", result.Payload)
	}
	if result.Payload.X != target.X || result.Payload.Y != target.Y {
		t.Fatalf("expected target: %+v\tgot: %+v", target, result.Payload)
	}

	end := readMsg[mc.RespEndGame](t, conn, mc.CodeEndGame)
	if end.Payload.PlayerMatchStatus != mc.PlayerMatchStatusWon {
		t.Fatalf("expected status: %d\tgot: %d", mc.PlayerMatchStatusWon, end.Payload.PlayerMatchStatus)
	}
	if game.State() != mb.GameStateWon || game.Shots() != 1 {
		t.Fatalf("expected a won game after 1 shot, got: %s after %d", game.State(), game.Shots())
	}
}

func TestHealthAndAnalytics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status: %d\tgot: %d", http.StatusOK, resp.StatusCode)
	}

	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "ok" || health["games"] != float64(0) || health["games_created"] != float64(0) {
		t.Fatalf("unexpected health: %v", health)
	}

	resp2, err := http.Get(ts.srv.URL + "/analytics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()

	var analytics map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&analytics); err != nil {
		t.Fatal(err)
	}
	if analytics["games_created"] != float64(0) {
		t.Fatalf("analytics without a database must be empty, got: %v", analytics)
	}

	resp3, err := http.Post(ts.srv.URL+"/health", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected status: %d\tgot: %d", http.StatusMethodNotAllowed, resp3.StatusCode)
	}
}

func TestHealthReportsGamesCreated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT games_created FROM game_server_analytics")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(7))

	ts := newTestServerWithAnalytics(t, sqlc.NewDbManager(sqlc.New(db)).Analytics)

	resp, err := http.Get(ts.srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["games_created"] != float64(7) {
		t.Fatalf("expected 7 games created, got: %v", health)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
