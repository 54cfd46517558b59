package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/amonks/setstats/index"
	"github.com/amonks/setstats/playlist"
	"github.com/amonks/setstats/resolver"
)

// Handler returns the API routes. It is exported so tests can drive the
// mux without a listening socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/songs", s.handleSearch)
	mux.HandleFunc("GET /api/songs/{slug}", s.handleSong)
	mux.HandleFunc("POST /api/index/build", s.handleBuild)
	mux.HandleFunc("GET /api/index/stats", s.handleStats)
	mux.HandleFunc("GET /api/shows/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/shows/{identifier}/tracks", s.handleTracks)
	mux.HandleFunc("GET /api/shows/{identifier}/playlist", s.handlePlaylist)

	return mux
}

func (s *Server) handleSearch(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")

	limit := index.DefaultSearchLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("bad limit '%s'", raw))
			return
		}
		limit = parsed
	}

	writeJSON(w, map[string]any{"songs": s.Index.Search(query, limit)})
}

func (s *Server) handleSong(w http.ResponseWriter, req *http.Request) {
	slug := req.PathValue("slug")
	song := s.Index.SongDetails(slug)
	if song == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no song '%s'", slug))
		return
	}
	writeJSON(w, song)
}

func (s *Server) handleBuild(w http.ResponseWriter, req *http.Request) {
	idx, err := s.Index.BuildIndex(req.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]any{
		"buildId":    idx.BuildID,
		"totalSongs": len(idx.Songs),
		"totalShows": idx.TotalShows,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, req *http.Request) {
	stats := s.Index.Stats()
	if stats == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no index built yet"))
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleResolve(w http.ResponseWriter, req *http.Request) {
	q := resolver.ShowQuery{
		Date:       req.URL.Query().Get("date"),
		Venue:      req.URL.Query().Get("venue"),
		City:       req.URL.Query().Get("city"),
		State:      req.URL.Query().Get("state"),
		Identifier: req.URL.Query().Get("identifier"),
	}
	if q.Date == "" && q.Identifier == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("need a date or an identifier"))
		return
	}

	result, err := s.Resolver.Resolve(req.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleTracks(w http.ResponseWriter, req *http.Request) {
	identifier := req.PathValue("identifier")
	song := req.URL.Query().Get("song")

	tracks, found := s.Resolver.FindSongTracks(req.Context(), identifier, song)
	writeJSON(w, map[string]any{"tracks": tracks, "found": found})
}

func (s *Server) handlePlaylist(w http.ResponseWriter, req *http.Request) {
	identifier := req.PathValue("identifier")
	song := req.URL.Query().Get("song")

	tracks, _ := s.Resolver.FindSongTracks(req.Context(), identifier, song)
	if len(tracks) == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("no tracks for '%s'", identifier))
		return
	}

	rendered, err := playlist.Render(identifier, tracks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
	if _, err := w.Write([]byte(rendered)); err != nil {
		log.Printf("error writing playlist response: %s", err)
	}
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("error writing response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
