package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/zucenko/fogmaze/model"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_NOT_FOUND
	GAME_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return HTTP_SUCCESS
	case GAME_NOT_FOUND:
		return HTTP_NOT_FOUND
	case GAME_INVALIDE:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_ERR:
		return "GS_ERR"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	GameContextAwaiting chan GameContextAwaiting
}

// Lookup asks the server loop for one session by Id, or for all of them when
// Id is empty.
type Lookup struct {
	Id    string
	Reply chan []*GameSession
}

type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

type PlayerEvent struct {
	Message model.ClientMessage
}

// Inspection asks a session loop for a view of its game.
type Inspection struct {
	Reply chan SessionView
}

type SessionView struct {
	Id       string
	State    GameSessionState
	Snapshot model.Snapshot
}

type SessionInfo struct {
	Id      string  `json:"id"`
	State   string  `json:"state"`
	Status  string  `json:"status"`
	Elapsed float64 `json:"elapsed"`
	Moves   int     `json:"moves"`
}

func (v SessionView) Info() SessionInfo {
	return SessionInfo{
		Id:      v.Id,
		State:   v.State.Name(),
		Status:  v.Snapshot.Status.Name(),
		Elapsed: v.Snapshot.Stats.Elapsed,
		Moves:   v.Snapshot.Stats.Moves,
	}
}
