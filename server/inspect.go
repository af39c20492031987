package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/render"
)

// HandleSessions lists the live sessions as JSON.
func (s *GameServer) HandleSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := s.Lookup("")
		if err != nil {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		infos := make([]SessionInfo, 0, len(sessions))
		for _, gs := range sessions {
			view, err := gs.Inspect(s.Options.Timeout)
			if err != nil {
				// ended between the lookup and the inspection
				continue
			}
			infos = append(infos, view.Info())
		}
		sort.Slice(infos, func(i, j int) bool { return infos[i].Id < infos[j].Id })

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			log.Warnf("HandleSessions encode %v", err)
		}
	}
}

// HandleFrame renders the current frame of one session as a PNG.
func (s *GameServer) HandleFrame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		sessions, err := s.Lookup(id)
		if err != nil {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		if len(sessions) == 0 {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}
		view, err := sessions[0].Inspect(s.Options.Timeout)
		if err != nil {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}

		cols, rows := s.Options.Game.Cols, s.Options.Game.Rows
		if g := view.Snapshot.Grid; g != nil {
			cols, rows = g.Cols, g.Rows
		}
		layout, err := render.NewLayout(s.Options.ContainerWidth, s.Options.MaxWidth, cols, rows)
		if err != nil {
			log.Errorf("HandleFrame %s: %v", id, err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		raster := render.NewRaster(layout.Width, layout.Height)
		render.NewRenderer(layout, s.Options.Radius).Draw(raster, &view.Snapshot, 0)

		w.Header().Set("Content-Type", "image/png")
		if err := raster.EncodePNG(w); err != nil {
			log.Warnf("HandleFrame encode %v", err)
		}
	}
}
