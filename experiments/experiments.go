package experiments

import (
	"fmt"
	"time"

	"minimax/engine"
	"minimax/experiments/metrics"
	"minimax/game"
	"minimax/searcher"

	"github.com/rs/zerolog/log"
)

// RunDepthExperiment pits agents of increasing search depth against a
// shallow baseline on tic-tac-toe, with sides alternating.
func RunDepthExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Game: "tictactoe", Depth: 2, Pruning: true}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Game: "tictactoe", Depth: 3, Pruning: true},
		{ID: 2, Game: "tictactoe", Depth: 4, Pruning: true},
		{ID: 3, Game: "tictactoe", Depth: 5, Pruning: true},
		{ID: 4, Game: "tictactoe", Depth: 6, Pruning: true},
		{ID: 5, Game: "tictactoe", Depth: 9, Pruning: true},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		// Both seats, so first-mover advantage cancels out
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	return runExperiment("depth_to_strength", append(depthConfigs, baseline), matchUps)
}

// RunPruningExperiment plays pruned against unpruned search at the same
// depth. The games should be identical move for move; only the node counts
// in the move records differ.
func RunPruningExperiment() error {
	configs := []metrics.AgentConfig{
		{ID: 0, Game: "tictactoe", Depth: 6, Pruning: true},
		{ID: 1, Game: "tictactoe", Depth: 6, Pruning: false},
	}
	matchUps := [][]metrics.AgentConfig{
		{configs[0], configs[1]},
		{configs[1], configs[0]},
	}

	return runExperiment("pruning_to_nodes", configs, matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	log.Info().Str("experiment", name).Int("matchups", len(matchUps)).Msg("experiment starting")

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord

	for i, matchUp := range matchUps {
		gameID := i + 1
		record, moves, err := runGame(gameID, matchUp[0], matchUp[1])
		if err != nil {
			return fmt.Errorf("game %d: %w", gameID, err)
		}
		log.Info().Int("game", gameID).Str("winner", record.Winner).Msg("game over")
		gameRecords = append(gameRecords, record)
		moveRecords = append(moveRecords, moves...)
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}

	log.Info().Str("experiment", name).Msg("experiment finished")
	return nil
}

func runGame(id int, first, second metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord, error) {
	start := time.Now()
	e := engine.NewLocal(newState(first.Game), newAgent(first), newAgent(second))

	outcome, err := e.Run()
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	moves := make([]metrics.MoveRecord, len(e.Records))
	record := metrics.GameRecord{
		ID:        id,
		Agent1:    first.ID,
		Agent2:    second.ID,
		Winner:    outcome.String(),
		Moves:     len(e.Records),
		StartTime: start,
		Duration:  time.Since(start),
	}
	for i, r := range e.Records {
		moves[i] = metrics.MoveRecord{
			Game:     id,
			Step:     r.Step,
			Player:   r.Player.String(),
			Move:     r.Move,
			Nodes:    r.Nodes,
			Duration: r.Duration,
		}
	}

	return record, moves, nil
}

func newState(name string) game.State {
	switch name {
	case "chess":
		return game.NewChess()
	default:
		return game.NewTicTacToe(game.DefaultBoardSize)
	}
}

func newAgent(config metrics.AgentConfig) engine.Agent {
	options := []searcher.Option{searcher.WithDepth(config.Depth), searcher.WithMetrics()}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	return engine.SearchAgent{Search: searcher.NewMinimax(options...)}
}
