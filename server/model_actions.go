package server

import (
	"encoding/gob"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/clock"
	"github.com/zucenko/fogmaze/model"
)

// connectWait bounds how long a fresh session waits for its websocket.
const connectWait = 5 * time.Second

func NewGameServer(options Options) *GameServer {
	if options.Timeout <= 0 {
		options.Timeout = 200 * time.Millisecond
	}
	if options.Interval <= 0 {
		options.Interval = clock.DefaultInterval
	}
	return &GameServer{
		GameSessions: make(map[string]*GameSession),
		GameRequests: make(chan GameRequest),
		Lookups:      make(chan Lookup),
		Ended:        make(chan string),
		Upgrader:     &websocket.Upgrader{},
		Options:      options,
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := s.Options.Timeout
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("HandleHttpCall - connection received from %s", r.RemoteAddr)
		if !websocket.IsWebSocketUpgrade(r) {
			log.Debugf("HandleHttpCall - %s is not a websocket upgrade", r.RemoteAddr)
			w.WriteHeader(GAME_INVALIDE.ToHttp())
			return
		}

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_NOT_FOUND, GAME_INVALIDE:
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			case GAME_READY:
				log.Debugf("HandleHttpCall ok, have GameSession %s", gca.GameSession.Id)
			default:
				log.Errorf("gca.ResponseCode not expected:%v", gca.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall session %s did not take the player", gca.GameSession.Id)
			return
		}

		<-gameOver
		log.Debugf("HandleHttpCall session %s over", gca.GameSession.Id)
	}
}

func (s *GameServer) Loop() {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			gs := s.newSession()
			go gs.Loop()
			s.GameSessions[gs.Id] = gs
			log.Infof("GameServer.Loop created session %s", gs.Id)
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case l := <-s.Lookups:
			var found []*GameSession
			if l.Id == "" {
				for _, gs := range s.GameSessions {
					found = append(found, gs)
				}
			} else if gs, ok := s.GameSessions[l.Id]; ok {
				found = append(found, gs)
			}
			l.Reply <- found
		case id := <-s.Ended:
			delete(s.GameSessions, id)
			log.Infof("GameServer.Loop session %s removed, %d left", id, len(s.GameSessions))
		}
	}
}

func (s *GameServer) newSession() *GameSession {
	n := s.created
	s.created++
	return &GameSession{
		Id:                    uuid.NewString(),
		State:                 GS_NEW,
		Game:                  model.NewGame(s.Options.Game, nil, s.Options.rng(n)),
		Errors:                make(chan struct{}),
		Events:                make(chan PlayerEvent, 16),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		Inspections:           make(chan Inspection),
		Frames:                clock.NewFrameClock(s.Options.Interval),
		options:               s.Options,
		ended:                 s.Ended,
	}
}

// Lookup asks the server loop for sessions; an empty id returns all of them.
func (s *GameServer) Lookup(id string) ([]*GameSession, error) {
	reply := make(chan []*GameSession, 1)
	select {
	case s.Lookups <- Lookup{Id: id, Reply: reply}:
	case <-time.After(s.Options.Timeout):
		return nil, errTimeout
	}
	return <-reply, nil
}

var errTimeout = errors.New("server: timeout")

// Inspect asks the session loop for a view of its game. It fails once the
// session has ended.
func (gs *GameSession) Inspect(timeout time.Duration) (SessionView, error) {
	reply := make(chan SessionView, 1)
	select {
	case gs.Inspections <- Inspection{Reply: reply}:
	case <-time.After(timeout):
		return SessionView{}, errTimeout
	}
	return <-reply, nil
}

func (gs *GameSession) Loop() {
	gs.logger().Debug("GameSession.Loop start")
	gs.startedAt = time.Now()
	defer gs.end()

	connect := time.After(connectWait)
	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			if gs.Player != nil {
				gs.logger().Warn("GameSession.Loop already has a player")
				close(pcr.GameOver)
				continue
			}
			connect = nil
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.Player.State = PS_PLAY
			gs.send(model.ServerMessage{Frames: []model.Frame{gs.frame()}})
		case <-connect:
			gs.logger().Warn("GameSession.Loop no player connected")
			gs.State = GS_OVER
			return
		case <-gs.Errors:
			gs.logger().Warn("GameSession.Loop killing session")
			gs.State = GS_ERR
			return
		case pe := <-gs.Events:
			gs.send(gs.Turn(pe))
			gs.Frames.Sync(gs.Game.Active())
		case <-gs.Frames.C():
			gs.tick()
		case in := <-gs.Inspections:
			in.Reply <- SessionView{Id: gs.Id, State: gs.State, Snapshot: gs.Game.Snapshot()}
		}
	}
}

// Turn applies one client command to the game and builds the reply.
func (gs *GameSession) Turn(pe PlayerEvent) model.ServerMessage {
	cm := pe.Message
	msg := model.ServerMessage{}
	switch cm.Command {
	case model.START, model.RESTART:
		var err error
		if cm.Command == model.START {
			err = gs.Game.Start()
		} else {
			err = gs.Game.Restart()
		}
		if err != nil {
			gs.logger().WithField("command", cm.Command.Name()).Debugf("GameSession.Turn rejected: %v", err)
			msg.Errors = append(msg.Errors, err.Error())
			return msg
		}
		gs.ticks = 0
		msg.Setup = []model.Setup{{Session: gs.Id, Grid: *gs.Game.Grid}}
		msg.Frames = []model.Frame{gs.frame()}
	case model.MOVE:
		if !cm.Direction.Valid() {
			msg.Errors = append(msg.Errors, "invalid direction "+cm.Direction.Name())
			return msg
		}
		moved := gs.Game.Move(cm.Direction)
		msg.Moves = []model.MoveResult{{
			Direction: cm.Direction,
			Player:    gs.Game.Player,
			Success:   moved,
		}}
		if moved && gs.Game.Status == model.WON {
			msg.Frames = []model.Frame{gs.frame()}
		}
	default:
		msg.Errors = append(msg.Errors, "unknown command "+cm.Command.Name())
	}
	return msg
}

func (gs *GameSession) tick() {
	gs.Game.Step()
	gs.ticks++
	if gs.ticks%gs.options.frameEvery() == 0 {
		gs.send(model.ServerMessage{Frames: []model.Frame{gs.frame()}})
	}
	gs.Frames.Sync(gs.Game.Active())
}

func (gs *GameSession) logger() *log.Entry {
	return log.WithField("session", gs.Id)
}

func (gs *GameSession) frame() model.Frame {
	return model.Frame{
		Status: gs.Game.Status,
		Player: gs.Game.Player,
		Stats:  gs.Game.Stats,
	}
}

// send never blocks the session loop; a player that cannot keep up loses
// messages.
func (gs *GameSession) send(msg model.ServerMessage) {
	if gs.Player == nil {
		return
	}
	select {
	case gs.Player.MessagesToSend <- msg:
	default:
		gs.logger().Warn("GameSession.send MessagesToSend FULL, dropping")
	}
}

func (gs *GameSession) end() {
	gs.Frames.Disarm()
	if gs.Player != nil {
		if gs.Player.State != PS_ERR {
			gs.Player.State = PS_OVER
		}
		close(gs.Player.closed)
		close(gs.Player.GameOver)
	}
	gs.ended <- gs.Id
	gs.logger().Debugf("GameSession.Loop ended after %v", time.Since(gs.startedAt))
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) {
	ps := &PlayerSession{
		State:          PS_NEW,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 32),
		closed:         make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.Player = ps
}

// fail reports a broken connection to the session unless it is already over.
func (ps *PlayerSession) fail() {
	select {
	case ps.GameSession.Errors <- struct{}{}:
	case <-ps.closed:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Debug("LoopChannelRead STARTED")
loop:
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.Debugf("LoopChannelRead err reading message from Conn %v", err)
			ps.fail()
			break loop
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			ps.fail()
			break loop
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{Message: cm}:
		case <-ps.closed:
			break loop
		default:
			log.Warn("Dropping message read from socket, GameSession.Events FULL")
		}
	}
	log.Debug("LoopChannelRead ENDED")
}

// this function only consumes. no worries about full buffer stuck
func (ps *PlayerSession) LoopChannelWrite() {
	log.Debug("PlayerSession.LoopChannelWrite STARTED")
loop:
	for {
		select {
		case <-ps.closed:
			break loop
		case mes := <-ps.MessagesToSend:
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant get writer %v", err)
				ps.fail()
				break loop
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant encode %v", err)
				ps.fail()
				break loop
			}
			if err := w.Close(); err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant flush %v", err)
				ps.fail()
				break loop
			}
			ps.DebugOutMessages++
		}
	}
	log.Debug("LoopChannelWrite ENDED")
}
