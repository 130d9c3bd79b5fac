package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"minimax/experiments"
	"minimax/game"
	"minimax/searcher"
	"minimax/server"
	"minimax/utils"
)

func main() {
	mode := flag.String("mode", "play", "What to run: play, serve or experiment")
	gameName := flag.String("game", "tictactoe", "Game to play: tictactoe or chess")
	depth := flag.Int("depth", searcher.DefaultDepth, "Maximum search depth for the AI")
	size := flag.Int("size", game.DefaultBoardSize, "Tic-tac-toe board size")
	second := flag.Bool("second", false, "Let the AI play first, you play second")
	addr := flag.String("addr", "localhost:8080", "Match server address")
	dbPath := flag.String("db", "games.db", "Match server archive path")
	experiment := flag.String("experiment", "depth", "Experiment to run: depth or pruning")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	var err error
	switch *mode {
	case "play":
		err = play(*gameName, *depth, *size, *second)
	case "serve":
		config := server.DefaultConfig()
		config.Addr = *addr
		config.DBPath = *dbPath
		var s *server.Server
		if s, err = server.New(config); err == nil {
			err = s.Run()
		}
	case "experiment":
		switch *experiment {
		case "depth":
			err = experiments.RunDepthExperiment()
		case "pruning":
			err = experiments.RunPruningExperiment()
		default:
			err = fmt.Errorf("unknown experiment %q", *experiment)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

// play runs an interactive game between the human on stdin and the agent.
func play(gameName string, depth, size int, second bool) error {
	var state game.State
	switch gameName {
	case "tictactoe":
		state = game.NewTicTacToe(size)
	case "chess":
		state = game.NewChess()
	default:
		return fmt.Errorf("unknown game %q", gameName)
	}

	human := game.Player1
	if second {
		human = game.Player2
	}

	search := searcher.NewMinimax(searcher.WithDepth(depth), searcher.WithMetrics())
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("\n===================================")
	fmt.Printf("  Game started! You are %s\n", symbolFor(gameName, human))
	fmt.Println("===================================")

	for !game.IsTerminal(state) {
		fmt.Println()
		fmt.Print(state.Render())

		var move game.Move
		if state.Player() == human {
			fmt.Println("\nYour turn!")
			move = promptMove(reader, state)
		} else {
			fmt.Println("\nAI is thinking...")
			var err error
			move, err = search.FindBestMove(state, state.Player())
			if err != nil {
				return err
			}
			m := search.Metrics()
			fmt.Printf("AI chose %s (%.3fs, %d nodes, value %.1f)\n",
				move, m.Duration.Seconds(), m.Nodes, m.BestValue)
		}

		state = state.Play(move)
	}

	fmt.Println()
	fmt.Print(state.Render())

	outcome := state.Winner()
	if winner, ok := outcome.Winner(); ok {
		if winner == human {
			fmt.Println("\nCongratulations! You won!")
		} else {
			fmt.Println("\nThe AI won this time. Better luck next time!")
		}
	} else {
		fmt.Println("\nIt's a draw!")
	}
	return nil
}

// promptMove reads moves from the human until a legal one is entered.
func promptMove(reader *bufio.Reader, state game.State) game.Move {
	legal := state.LegalMoves()
	for {
		move, err := readMove(reader, state)
		if err != nil {
			fmt.Printf("Invalid input: %v. Please try again.\n", err)
			continue
		}
		if !utils.Contains(legal, move) {
			fmt.Println("Illegal move! Please try again.")
			continue
		}
		return move
	}
}

func readMove(reader *bufio.Reader, state game.State) (game.Move, error) {
	switch state.(type) {
	case *game.TicTacToe:
		fmt.Print("Enter your move as 'row,col' (e.g. '1,2'): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		parts := strings.Split(strings.TrimSpace(line), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected 'row,col'")
		}
		row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("bad row %q", parts[0])
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("bad column %q", parts[1])
		}
		return game.TicTacToeMove{Row: row, Col: col}, nil
	case *game.Chess:
		fmt.Print("Enter your move as from-to squares (e.g. 'e2e4'): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(line)
		if len(text) != 4 {
			return nil, fmt.Errorf("expected four characters like 'e2e4'")
		}
		from, err := game.ParseSquare(text[:2])
		if err != nil {
			return nil, err
		}
		to, err := game.ParseSquare(text[2:])
		if err != nil {
			return nil, err
		}
		return game.ChessMove{From: from, To: to}, nil
	}
	return nil, fmt.Errorf("unsupported game")
}

func symbolFor(gameName string, p game.Player) string {
	if gameName == "chess" {
		if p == game.Player1 {
			return "White"
		}
		return "Black"
	}
	if p == game.Player1 {
		return "X"
	}
	return "O"
}
