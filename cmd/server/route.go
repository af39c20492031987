package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_SESSIONS = "/sessions"
const URI_FRAME = "/sessions/:id/frame.png"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_SESSIONS, s.GameServer.HandleSessions())
	s.router.HandleFunc("GET", URI_FRAME, s.GameServer.HandleFrame())
}
