package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the match server configuration.
type Config struct {
	Addr         string        // Address to listen on
	DBPath       string        // SQLite archive path
	MaxDepth     int           // Upper bound on client-requested search depth
	MaxBoardSize int           // Upper bound on client-requested board size
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:8080",
		DBPath:       "games.db",
		MaxDepth:     8,
		MaxBoardSize: 10,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server serves interactive games against the minimax agent over WebSocket
// and archives finished games.
type Server struct {
	config Config
	store  *Store
	server *http.Server
}

// New creates a match server and opens its archive.
func New(config Config) (*Server, error) {
	store, err := NewStore(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	s := &Server{
		config: config,
		store:  store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}/moves", s.handleGameMoves)
	mux.HandleFunc("/ws/play", s.handlePlay)

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s, nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.config.Addr).Msg("match server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.store.Close()
		return err
	case <-stop:
	}

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.store.Close()
	return err
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, games)
}

func (s *Server) handleGameMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := s.store.GetMoves(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, moves)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
