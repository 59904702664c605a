package api

import (
	"context"
	"encoding/json"
	"fmt"

	cerr "github.com/saeidalz13/battlesea/internal/error"
	mb "github.com/saeidalz13/battlesea/models/battleship"
	mc "github.com/saeidalz13/battlesea/models/connection"
)

// wsGame is the user's side of a game played over a session: it reads
// attack messages as targets and reports the game back as messages.
type wsGame struct {
	rp      RequestProcessor
	session *mc.Session
	game    *mb.Game

	// first failed write; the game stops reading once it is set
	err error
}

var (
	_ mb.TargetReader = (*wsGame)(nil)
	_ mb.Presenter    = (*wsGame)(nil)
)

func newWsGame(rp RequestProcessor, session *mc.Session) *wsGame {
	return &wsGame{rp: rp, session: session}
}

func (wg *wsGame) write(msg interface{}) {
	if wg.err != nil {
		return
	}
	if err := wg.rp.sessionManager.WriteToSessionConn(wg.session, msg, mc.MessageTypeJSON); err != nil {
		wg.err = err
	}
}

// ReadTarget waits for the next attack. Other codes are answered and
// skipped; they never count as a move.
func (wg *wsGame) ReadTarget(ctx context.Context) (mb.Coordinates, error) {
	for {
		if wg.err != nil {
			return mb.Coordinates{}, wg.err
		}
		if err := ctx.Err(); err != nil {
			return mb.Coordinates{}, err
		}

		_, payload, err := wg.rp.sessionManager.ReadFromSessionConn(wg.session)
		if err != nil {
			return mb.Coordinates{}, err
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			if err := wg.rp.replySignalAbsent(wg.session); err != nil {
				return mb.Coordinates{}, err
			}
			continue
		}

		switch code {
		case mc.CodeAttack:
			var req mc.Message[mc.ReqAttack]
			if err := json.Unmarshal(payload, &req); err != nil {
				return mb.Coordinates{}, fmt.Errorf("%w: %v", cerr.ErrInvalidInput, err)
			}
			return mb.NewCoordinates(req.Payload.X, req.Payload.Y), nil

		case mc.CodeCreateGame:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeCreateGame)
			msg.AddError("a game is already running in this session", "")
			wg.write(msg)

		default:
			if err := wg.rp.replyInvalidSignal(wg.session); err != nil {
				return mb.Coordinates{}, err
			}
		}
	}
}

func (wg *wsGame) ShowBoards(user, ai *mb.Board) {
	msg := mc.NewMessage[mc.RespBoards](mc.CodeBoards)
	msg.AddPayload(mc.NewRespBoards(user, ai))
	wg.write(msg)
}

func (wg *wsGame) ShowTurn(side mb.Side) {
	msg := mc.NewMessage[mc.RespTurn](mc.CodeTurn)
	msg.AddPayload(mc.RespTurn{IsTurn: side == mb.SideUser})
	wg.write(msg)
}

// AI targets go out with the outcome of the shot.
func (wg *wsGame) ShowTarget(side mb.Side, target mb.Coordinates) {}

func (wg *wsGame) ShowInputError(err error) {
	msg := mc.NewMessage[mc.NoPayload](mc.CodeAttackError)
	msg.AddError(err.Error(), "invalid attack payload")
	wg.write(msg)
}

func (wg *wsGame) ShowShotError(side mb.Side, err error) {
	if side != mb.SideUser {
		return
	}
	msg := mc.NewMessage[mc.NoPayload](mc.CodeAttackError)
	msg.AddError(err.Error(), "choose another position")
	wg.write(msg)
}

func (wg *wsGame) ShowOutcome(side mb.Side, target mb.Coordinates, outcome mb.ShotOutcome) {
	positionState := mb.PositionStateHit
	if outcome == mb.ShotMissed {
		positionState = mb.PositionStateMiss
	}

	// the shooter keeps the turn only after damaging a ship; nobody moves
	// after the last shot
	userMovesNext := side == mb.SideUser
	if !outcome.Repeat() {
		userMovesNext = !userMovesNext
	}
	if wg.game != nil && wg.game.State().IsOver() {
		userMovesNext = false
	}

	msg := mc.NewMessage[mc.RespAttack](mc.CodeAttackResult)
	msg.AddPayload(mc.RespAttack{
		Side:          side.String(),
		X:             target.X,
		Y:             target.Y,
		Outcome:       outcome.String(),
		PositionState: positionState,
		IsTurn:        userMovesNext,
	})
	wg.write(msg)
}

func (wg *wsGame) ShowResult(state mb.GameState) {
	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{PlayerMatchStatus: mc.MatchStatus(state)})
	wg.write(msg)
}
