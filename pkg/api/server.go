// Package api exposes a small read-only HTTP API over the live match and
// the persistent score table.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/log"
	"github.com/cbodonnell/wordduel/pkg/scores"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	Port   int
	State  *game.StateManager
	Scores *scores.Keeper
}

// statusResponse is the public view of the match: the secret word is
// never exposed.
type statusResponse struct {
	Phase       string                    `json:"phase"`
	GameNumber  int                       `json:"gameNumber"`
	Display     string                    `json:"display"`
	CurrentTurn int                       `json:"currentTurn"`
	Pass        int                       `json:"pass"`
	Position    int                       `json:"position"`
	ScoreA      int                       `json:"scoreA"`
	ScoreB      int                       `json:"scoreB"`
	Connected   [types.NumPlayers]bool    `json:"connected"`
	PlayerNames [types.NumPlayers]string  `json:"playerNames"`
}

type scoreEntryResponse struct {
	ID   int    `json:"id"`
	Wins int    `json:"wins"`
	Name string `json:"name"`
}

// NewAPIServer creates a new http.Server for handling API requests.
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := mux.NewRouter()

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		s := opts.State.Snapshot()
		resp := statusResponse{
			Phase:       s.Phase.String(),
			GameNumber:  s.GameNumber,
			Display:     s.Display,
			CurrentTurn: s.CurrentTurn,
			Pass:        s.PassNumber,
			Position:    s.PositionIndex,
			ScoreA:      s.Scores[types.SlotGuesser1],
			ScoreB:      s.Scores[types.SlotGuesser2],
			Connected:   s.Connected,
			PlayerNames: s.PlayerNames,
		}
		writeJSON(w, resp)
	}).Methods(http.MethodGet)

	router.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		table := opts.Scores.Snapshot()
		resp := []scoreEntryResponse{}
		for _, slot := range []int{types.SlotGuesser1, types.SlotGuesser2} {
			resp = append(resp, scoreEntryResponse{
				ID:   table[slot].ID,
				Wins: table[slot].Wins,
				Name: table[slot].Name,
			})
		}
		writeJSON(w, resp)
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{
		server: server,
	}
}

// Start starts the APIServer.
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer.
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode API response: %v", err)
	}
}
