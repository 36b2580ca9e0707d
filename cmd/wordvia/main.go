package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/internal/randutil"
	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/dictionary"
	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Games       int    `short:"n" default:"10" help:"Number of games to simulate"`
	Size        int    `default:"7" help:"Grid size (5-10)"`
	DifficultyA string `default:"hard" enum:"easy,medium,hard,expert" help:"Difficulty of bot A"`
	DifficultyB string `default:"medium" enum:"easy,medium,hard,expert" help:"Difficulty of bot B"`
	Seed        int64  `default:"1" help:"Random seed; fixing it makes runs reproducible"`
	Verbose     bool   `short:"v" help:"Print every move"`
}

// maxConsecutivePasses ends a simulated game when neither bot can find a
// word anymore, well before the grid fills up.
const maxConsecutivePasses = 6

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	fmt.Print(titleStyle.Render(" Wordvia bot arena "))
	fmt.Println()

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	start := time.Now()
	oracle := dictionary.DefaultLexicon()
	rng := randutil.New(cli.Seed)

	var winsA, winsB int
	for i := 0; i < cli.Games; i++ {
		scoreA, scoreB, err := simulateGame(cli, oracle, rng, logger)
		if err != nil {
			logger.Fatal("simulation failed", "game", i, "error", err)
		}
		logger.Debug("game finished", "game", i, "scoreA", scoreA, "scoreB", scoreB)
		if scoreA > scoreB {
			winsA++
		}
		if scoreB > scoreA {
			winsB++
		}
	}

	fmt.Printf("%d games were played\nBot A (%s) won %d, Bot B (%s) won %d; %d draws.\n",
		cli.Games, cli.DifficultyA, winsA, cli.DifficultyB, winsB, cli.Games-winsA-winsB)
	fmt.Println("Took", time.Since(start))
	kctx.Exit(0)
}

func simulateGame(cli CLI, oracle wordvia.Oracle, rng *rand.Rand, logger *log.Logger) (scoreA, scoreB int, err error) {
	ctx := context.Background()

	game, err := wordvia.NewGame(wordvia.Config{
		PlayerNames: []string{"Bot A", "Bot B"},
		GridSize:    cli.Size,
		Mode:        wordvia.ModePvP,
	})
	if err != nil {
		return 0, 0, err
	}
	// Both seats are driven by bots in the arena.
	for _, p := range game.Players {
		p.IsBot = true
	}

	bots := []*wordvia.Bot{
		wordvia.NewBot(wordvia.Difficulty(cli.DifficultyA), randutil.New(rng.Int64()), logger),
		wordvia.NewBot(wordvia.Difficulty(cli.DifficultyB), randutil.New(rng.Int64()), logger),
	}

	passes := 0
	for game.Phase == wordvia.PhasePlaying {
		bot := bots[game.CurrentPlayerIndex]
		move, err := bot.ChooseMove(ctx, game.Grid.Clone(), game.Used, oracle)
		if err != nil {
			return 0, 0, err
		}
		if move == nil {
			if err := game.Pass(); err != nil {
				return 0, 0, err
			}
			passes++
			if passes >= maxConsecutivePasses {
				game.EndGame()
			}
			continue
		}
		passes = 0
		player := game.CurrentPlayer().Name
		outcome, err := bot.Apply(ctx, game, move, oracle)
		if err != nil {
			return 0, 0, err
		}
		logger.Debug("move",
			"player", player,
			"row", move.Pos.Row, "col", move.Pos.Col,
			"letter", string(move.Letter),
			"results", len(outcome.Results))
		if game.AwaitingAdvance() {
			game.AdvanceTurn()
		}
		if game.Grid.IsFull() {
			game.EndGame()
		}
	}

	return game.Players[0].Score, game.Players[1].Score, nil
}
