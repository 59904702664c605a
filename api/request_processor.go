package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battlesea/db/sqlc"
	mb "github.com/saeidalz13/battlesea/models/battleship"
	mc "github.com/saeidalz13/battlesea/models/connection"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
	logger         zerolog.Logger
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
	logger zerolog.Logger,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		ipnet:          serverIpNet(),
		logger:         logger,
	}
}

// serverIpNet picks the first IPv4 address of an interface that is up
// and not loopback, falling back to 127.0.0.1.
func serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rp.logger.Error().Err(err).Msg("could not upgrade connection")
		return
	}

	rp.logger.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("a new connection established")
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		if gameUuid := session.GameUuid(); gameUuid != "" {
			rp.gameManager.TerminateGame(gameUuid)
		}
		_ = session.Conn().Close()
		rp.sessionManager.TerminateSession(session.Id())
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			if err := rp.replySignalAbsent(session); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		// Generates both boards and plays the game to the end inside
		// this session. Attack messages are consumed by the game.
		case mc.CodeCreateGame:
			if err := rp.playGame(ctx, session); err != nil {
				rp.logger.Info().Err(err).Str("session", session.Id()).Msg("game ended early")
				break sessionLoop
			}

		case mc.CodeAttack:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeAttack)
			msg.AddError("no game is running in this session", "send create game first")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			if err := rp.replyInvalidSignal(session); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) replySignalAbsent(session *mc.Session) error {
	msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
	msg.AddError("incoming req payload must contain 'code' field", "")
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

func (rp RequestProcessor) replyInvalidSignal(session *mc.Session) error {
	msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
	msg.AddError("", "invalid code in the incoming payload")
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

func (rp RequestProcessor) playGame(ctx context.Context, session *mc.Session) error {
	wsGame := newWsGame(rp, session)

	game, err := rp.gameManager.CreateGame(ctx, wsGame, wsGame)
	if err != nil {
		msg := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
		msg.AddError(err.Error(), "failed to create game")
		return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
	}
	wsGame.game = game
	session.SetGameUuid(game.Uuid())
	defer func() {
		rp.gameManager.TerminateGame(game.Uuid())
		session.SetGameUuid("")
	}()

	dbCtx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	if err := rp.analytics.IncrementGamesCreatedCount(dbCtx, rp.serverInet()); err != nil {
		// analytics never stop a game
		rp.logger.Warn().Err(err).Msg("failed to count created game")
	}
	cancel()

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		GridSize: game.UserBoard().Size(),
		Fleet:    fleetOf(game.UserBoard()),
	})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return err
	}

	rp.logger.Info().Str("game", game.Uuid()).Str("session", session.Id()).Msg("game started")
	state, err := game.Run(ctx)
	if err != nil {
		return err
	}
	if wsGame.err != nil {
		return wsGame.err
	}

	dbCtx, cancel = context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	if err := rp.analytics.RecordGameResult(dbCtx, rp.serverInet(), state == mb.GameStateWon); err != nil {
		rp.logger.Warn().Err(err).Msg("failed to record game result")
	}
	cancel()

	rp.logger.Info().Str("game", game.Uuid()).Stringer("state", state).Int("shots", game.Shots()).Msg("game finished")
	return nil
}

func fleetOf(board *mb.Board) []int {
	ships := board.Ships()
	fleet := make([]int, len(ships))
	for i, sh := range ships {
		fleet[i] = sh.Length()
	}
	return fleet
}
