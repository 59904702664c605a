package connection

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// gorilla connections are unusable after a failed read or write, so every
// error ends the session.
const writeWait = time.Second * 10

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	writeToConn(msg interface{}, msgType uint8) error
	onConnErr(err error) zerolog.Level
}

// Session is one websocket connection. At most one game runs in it at a
// time.
type Session struct {
	id        string
	conn      *websocket.Conn
	writeMu   sync.Mutex
	gameUuid  string
	createdAt time.Time
	logger    zerolog.Logger
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn, logger zerolog.Logger) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		logger:    logger.With().Str("session", id).Logger(),
	}
}
func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) GameUuid() string {
	return s.gameUuid
}

func (s *Session) SetGameUuid(gameUuid string) {
	s.gameUuid = gameUuid
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// onConnErr logs a failed read or write at a level matching how expected
// the failure is and returns that level.
func (s *Session) onConnErr(err error) zerolog.Level {
	level := zerolog.ErrorLevel
	msg := "unexpected error"

	switch {
	case websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
		level, msg = zerolog.InfoLevel, "connection closed"

	case isTimeout(err):
		level, msg = zerolog.WarnLevel, "timeout error"

	/*
		Invalid payloads (binary data, broken UTF-8, oversized frames)
		most likely mean the client is not ours.
	*/
	case websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseTryAgainLater, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived):
		level, msg = zerolog.WarnLevel, "non-critical close error"
	}

	s.logger.WithLevel(level).Err(err).Msg(msg)
	return level
}

func isTimeout(err error) bool {
	netErr, ok := err.(net.Error)
	return ok && netErr.Timeout()
}

// writeToConn writes one message. A failed write leaves the connection
// broken, so the error is returned for the caller to end the session.
func (s *Session) writeToConn(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var err error
	switch msgType {
	case MessageTypeJSON:
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = s.conn.WriteJSON(msg)

	case MessageTypeBytes:
		respBytes, ok := msg.([]byte)
		if !ok {
			return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

	default:
		return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write")
	}

	if err != nil {
		s.onConnErr(err)
		return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
	}
	return nil
}
