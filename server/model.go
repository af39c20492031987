package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/fogmaze/clock"
	"github.com/zucenko/fogmaze/model"
)

type GameServer struct {
	GameSessions map[string]*GameSession
	GameRequests chan GameRequest
	Lookups      chan Lookup
	Ended        chan string
	Upgrader     *websocket.Upgrader
	Options      Options

	created int64
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession runs one maze game for one websocket player. Only the
// session's Loop goroutine touches Game.
type GameSession struct {
	Id                    string
	State                 GameSessionState
	Game                  *model.Game
	Player                *PlayerSession
	Errors                chan struct{}
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	Inspections           chan Inspection
	Frames                *clock.FrameClock

	options   Options
	ended     chan<- string
	ticks     int
	startedAt time.Time
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage
	// closed is closed by the session when it ends
	closed chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
