package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const defaultRecentLimit = 20

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) statsHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "statsHandler")

	stats, err := that.archive.GetStats(req.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, stats)
}

func (that *Server) recentGamesHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "recentGamesHandler")

	limit := int64(defaultRecentLimit)
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	games, err := that.archive.GetRecent(req.Context(), limit)
	if err != nil {
		log.Error("failed to get recent games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, games)
}

func (that *Server) writeJSON(w http.ResponseWriter, payload any) {
	log := that.logger.With("method", "writeJSON")

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
