package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	configPath := flag.String("config", os.Getenv("MAZE_CONFIG"), "path to a YAML settings file")
	flag.Parse()

	config.LoadEnv()
	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	settings.ApplyLogLevel()

	s := Server{
		GameServer: server.NewGameServer(server.OptionsFrom(settings)),
	}
	go s.GameServer.Loop()
	s.routes()
	log.Infof("listening on port %s, mazes %dx%d", settings.Server.Port, settings.Cols, settings.Rows)
	log.Fatalln(http.ListenAndServe(":"+settings.Server.Port, s.router))
}
