package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"minimax/engine"
	"minimax/game"
	"minimax/searcher"
	"minimax/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a client-to-server message.
type WSMessage struct {
	Type    string          `json:"type"`    // "move"
	Payload json.RawMessage `json:"payload"` // Game-specific move payload
}

// WSResponse is a server-to-client message.
type WSResponse struct {
	Type    string `json:"type"` // "state", "result", "error"
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type statePayload struct {
	Board      string   `json:"board"`
	Turn       string   `json:"turn"`
	YourTurn   bool     `json:"yourTurn"`
	LegalMoves []string `json:"legalMoves"`
}

type resultPayload struct {
	Board   string `json:"board"`
	Outcome string `json:"outcome"`
	GameID  string `json:"gameId,omitempty"`
}

type tictactoeMovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type chessMovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// session is one interactive game over a single connection.
type session struct {
	conn     *websocket.Conn
	server   *Server
	gameType string
	depth    int
	human    game.Player
	search   *searcher.Minimax
	state    game.State
	records  []engine.MoveRecord
}

// handlePlay upgrades the connection and plays one game against the agent.
// Query parameters: game (tictactoe|chess), depth, size, first (human|agent).
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	sess, err := s.newSession(conn, r)
	if err != nil {
		conn.WriteJSON(WSResponse{Type: "error", Error: err.Error()})
		return
	}
	sess.play()
}

func (s *Server) newSession(conn *websocket.Conn, r *http.Request) (*session, error) {
	q := r.URL.Query()

	gameType := q.Get("game")
	var state game.State
	switch gameType {
	case "", "tictactoe":
		gameType = "tictactoe"
		size := game.DefaultBoardSize
		if v := q.Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid size %q", v)
			}
			size = n
		}
		if size > s.config.MaxBoardSize {
			size = s.config.MaxBoardSize
		}
		state = game.NewTicTacToe(size)
	case "chess":
		state = game.NewChess()
	default:
		return nil, fmt.Errorf("unknown game %q", gameType)
	}

	depth := searcher.DefaultDepth
	if v := q.Get("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid depth %q", v)
		}
		depth = n
	}
	if depth > s.config.MaxDepth {
		depth = s.config.MaxDepth
	}

	human := game.Player1
	if q.Get("first") == "agent" {
		human = game.Player2
	}

	return &session{
		conn:     conn,
		server:   s,
		gameType: gameType,
		depth:    depth,
		human:    human,
		search:   searcher.NewMinimax(searcher.WithDepth(depth), searcher.WithMetrics()),
		state:    state,
	}, nil
}

func (sess *session) play() {
	if err := sess.agentTurn(); err != nil {
		sess.fail(err)
		return
	}
	sess.sendState()

	for !game.IsTerminal(sess.state) {
		var msg WSMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			log.Debug().Err(err).Msg("client disconnected")
			return
		}
		if msg.Type != "move" {
			sess.send(WSResponse{Type: "error", Error: "unknown message type"})
			continue
		}

		move, err := sess.parseMove(msg.Payload)
		if err != nil {
			sess.send(WSResponse{Type: "error", Error: err.Error()})
			continue
		}
		if !utils.Contains(sess.state.LegalMoves(), move) {
			sess.send(WSResponse{Type: "error", Error: "illegal move"})
			continue
		}

		sess.record(move, 0)
		sess.state = sess.state.Play(move)

		if err := sess.agentTurn(); err != nil {
			sess.fail(err)
			return
		}
		sess.sendState()
	}

	sess.finish()
}

// agentTurn plays the agent's move if the game is ongoing and it is the
// agent's turn.
func (sess *session) agentTurn() error {
	if game.IsTerminal(sess.state) || sess.state.Player() == sess.human {
		return nil
	}
	move, err := sess.search.FindBestMove(sess.state, sess.state.Player())
	if err != nil {
		return err
	}
	sess.record(move, sess.search.Nodes())
	sess.state = sess.state.Play(move)
	return nil
}

func (sess *session) record(move game.Move, nodes int64) {
	sess.records = append(sess.records, engine.MoveRecord{
		Step:   len(sess.records) + 1,
		Player: sess.state.Player(),
		Move:   move.String(),
		Nodes:  nodes,
	})
}

func (sess *session) parseMove(payload json.RawMessage) (game.Move, error) {
	switch sess.state.(type) {
	case *game.TicTacToe:
		var p tictactoeMovePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid move payload: %w", err)
		}
		return game.TicTacToeMove{Row: p.Row, Col: p.Col}, nil
	case *game.Chess:
		var p chessMovePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid move payload: %w", err)
		}
		from, err := game.ParseSquare(p.From)
		if err != nil {
			return nil, err
		}
		to, err := game.ParseSquare(p.To)
		if err != nil {
			return nil, err
		}
		return game.ChessMove{From: from, To: to}, nil
	}
	return nil, fmt.Errorf("unsupported game state")
}

func (sess *session) sendState() {
	if game.IsTerminal(sess.state) {
		return
	}
	legal := sess.state.LegalMoves()
	names := make([]string, len(legal))
	for i, m := range legal {
		names[i] = m.String()
	}
	sess.send(WSResponse{Type: "state", Payload: statePayload{
		Board:      sess.state.Render(),
		Turn:       sess.state.Player().String(),
		YourTurn:   sess.state.Player() == sess.human,
		LegalMoves: names,
	}})
}

func (sess *session) finish() {
	outcome := sess.state.Winner()
	id, err := sess.server.store.SaveGame(sess.gameType, sess.depth, outcome.String(), sess.records)
	if err != nil {
		log.Error().Err(err).Msg("archive game")
	}
	sess.send(WSResponse{Type: "result", Payload: resultPayload{
		Board:   sess.state.Render(),
		Outcome: outcome.String(),
		GameID:  id,
	}})
}

func (sess *session) fail(err error) {
	log.Error().Err(err).Msg("session failed")
	sess.send(WSResponse{Type: "error", Error: err.Error()})
}

func (sess *session) send(resp WSResponse) {
	if err := sess.conn.WriteJSON(resp); err != nil {
		log.Debug().Err(err).Msg("websocket write")
	}
}
