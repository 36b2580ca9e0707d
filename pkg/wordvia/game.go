package wordvia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseSplash     Phase = "splash"
	PhaseTour       Phase = "tour"
	PhaseModeSelect Phase = "mode-select"
	PhaseSetup      Phase = "setup"
	PhasePlaying    Phase = "playing"
	PhaseEnded      Phase = "ended"
)

type Mode string

const (
	ModePvP Mode = "pvp"
	ModePvB Mode = "pvb"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

type ActionKind string

const (
	ActionPlace ActionKind = "place"
	ActionPass  ActionKind = "pass"
)

// TurnAction is an immutable entry in the game's append-only history.
type TurnAction struct {
	PlayerID  uuid.UUID    `json:"playerId"`
	Kind      ActionKind   `json:"kind"`
	Words     []WordResult `json:"words,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// TurnToken identifies one turn of one game. The state machine issues a
// fresh token on every advance; asynchronous results captured under an older
// token are discarded instead of mutating state.
type TurnToken uint64

var (
	ErrWrongPhase      = errors.New("operation not allowed in this game phase")
	ErrNoCellSelected  = errors.New("no cell is selected")
	ErrChoicePending   = errors.New("a word choice is pending")
	ErrNoChoicePending = errors.New("no word choice is pending")
	ErrAwaitingAdvance = errors.New("results are on display; advance the turn first")
	ErrPlayerCount     = errors.New("invalid number of players")
	ErrUnknownOption   = errors.New("word is not one of the offered options")
)

// Config is the setup contract consumed by the state machine.
type Config struct {
	PlayerNames   []string
	GridSize      int
	ChallengeMode bool
	Mode          Mode
	Difficulty    Difficulty
}

// ChoicePrompt is an outstanding disambiguation request. It stays attached
// to the turn it was issued in; resolving it under a newer token fails.
type ChoicePrompt struct {
	Dir     Direction
	Pos     Position
	Options []WordOption
	token   TurnToken
}

// Game is the single owned mutable aggregate. Extraction, validation and
// bot search are pure over a grid snapshot; only Game methods mutate state.
type Game struct {
	Players            []*Player    `json:"players"`
	Grid               *Grid        `json:"grid"`
	Phase              Phase        `json:"gamePhase"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	SelectedCell       *Position    `json:"selectedCell"`
	LastWordResults    []WordResult `json:"lastWordResults"`
	Winner             *Player      `json:"winner"`
	Draw               bool         `json:"draw"`
	History            []TurnAction `json:"turnHistory"`
	ChallengeMode      bool         `json:"challengeMode"`
	Used               *Registry    `json:"-"`
	Mode               Mode         `json:"gameMode"`
	Difficulty         Difficulty   `json:"botDifficulty"`

	token          TurnToken
	pendingChoice  *ChoicePrompt
	queuedChoice   *ChoicePrompt
	awaitingExtend bool

	// now stamps history entries; overridable in tests.
	now func() time.Time
}

// NewGame validates the setup inputs and starts a game in the playing
// phase. In bot mode a single human name is expected and the bot player is
// appended automatically.
func NewGame(cfg Config) (*Game, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModePvP
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = DifficultyMedium
	}
	var players []*Player
	switch cfg.Mode {
	case ModePvP:
		if len(cfg.PlayerNames) < 2 || len(cfg.PlayerNames) > 4 {
			return nil, fmt.Errorf("%w: pvp needs 2-4 players, got %d", ErrPlayerCount, len(cfg.PlayerNames))
		}
		for i, name := range cfg.PlayerNames {
			players = append(players, NewPlayer(name, PlayerColors[i%len(PlayerColors)]))
		}
	case ModePvB:
		if len(cfg.PlayerNames) != 1 {
			return nil, fmt.Errorf("%w: pvb needs exactly 1 human player, got %d", ErrPlayerCount, len(cfg.PlayerNames))
		}
		players = append(players, NewPlayer(cfg.PlayerNames[0], PlayerColors[0]))
		players = append(players, NewBotPlayer())
	default:
		return nil, fmt.Errorf("unknown game mode %q", cfg.Mode)
	}
	grid, err := NewGrid(cfg.GridSize)
	if err != nil {
		return nil, err
	}
	return &Game{
		Players:       players,
		Grid:          grid,
		Phase:         PhasePlaying,
		ChallengeMode: cfg.ChallengeMode,
		Used:          NewRegistry(),
		Mode:          cfg.Mode,
		Difficulty:    cfg.Difficulty,
		token:         1,
		now:           time.Now,
	}, nil
}

func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.CurrentPlayerIndex]
}

// Token returns the identifier of the current turn.
func (g *Game) Token() TurnToken {
	return g.token
}

// PendingChoice returns the outstanding disambiguation prompt, if any.
func (g *Game) PendingChoice() *ChoicePrompt {
	return g.pendingChoice
}

// AwaitingAdvance reports whether a scored placement is being displayed and
// the turn has not advanced yet. This is the window in which a challenge
// may be raised.
func (g *Game) AwaitingAdvance() bool {
	return g.awaitingExtend
}

// SelectCell marks an empty cell as the pending placement target. Selecting
// a second cell while one is pending silently replaces the first.
func (g *Game) SelectCell(p Position) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if g.awaitingExtend {
		return ErrAwaitingAdvance
	}
	if !g.Grid.InBounds(p) {
		return ErrInvalidPosition
	}
	if !g.Grid.Cell(p).IsEmpty() {
		return ErrOccupiedCell
	}
	g.SelectedCell = &p
	return nil
}

func (g *Game) ClearSelection() {
	g.SelectedCell = nil
}

// SubmitOutcome describes what a placement produced.
type SubmitOutcome struct {
	// Results are the word results applied by this submission, including
	// invalid zero-point runs.
	Results []WordResult
	// Choice is non-nil when one direction needs disambiguation.
	Choice *ChoicePrompt
	// AlreadyUsed names the word that caused the placement to be rejected
	// back to the player; the letter stays on the grid but nothing is
	// scored and the turn does not advance.
	AlreadyUsed string
	// Restricted is set when a chosen disambiguation option carries a
	// restriction; the prompt stays open.
	Restricted *RestrictionNotice
	// Advanced is true when the turn advanced automatically because no
	// candidate word was formed.
	Advanced bool
}

// RestrictionNotice reports why a chosen word was refused.
type RestrictionNotice struct {
	Word        string
	Restriction Restriction
}

// Submit places the given letter into the selected cell, then runs the
// extraction, validation and disambiguation pipeline. Both human and bot
// moves go through this exact path.
//
// Per direction the outcome is either applied immediately (unambiguous, or
// an invalid zero-point run) or turned into a ChoicePrompt. An unambiguous
// direction scores even when the other direction blocks on a choice; when
// both directions block, the prompts resolve one after the other. If
// neither direction forms any candidate, the turn advances with zero points.
func (g *Game) Submit(ctx context.Context, letter rune, oracle Oracle) (SubmitOutcome, error) {
	if g.Phase != PhasePlaying {
		return SubmitOutcome{}, ErrWrongPhase
	}
	if g.pendingChoice != nil {
		return SubmitOutcome{}, ErrChoicePending
	}
	if g.awaitingExtend {
		// One scored placement per turn: nothing else lands until the
		// results on display are acknowledged and the turn advances.
		return SubmitOutcome{}, ErrAwaitingAdvance
	}
	if g.SelectedCell == nil {
		return SubmitOutcome{}, ErrNoCellSelected
	}
	pos := *g.SelectedCell
	if err := g.Grid.Place(pos, letter, g.CurrentPlayer().ID); err != nil {
		return SubmitOutcome{}, err
	}
	g.SelectedCell = nil

	cache := make(map[string]Validation)
	resolutions := []DirectionResolution{
		ResolveDirection(ctx, g.Grid, pos, Horizontal, oracle, g.Used, cache),
		ResolveDirection(ctx, g.Grid, pos, Vertical, oracle, g.Used, cache),
	}

	// A valid word that was already scored this game rejects the whole
	// placement back to the player. The letter itself stays on the grid.
	for _, res := range resolutions {
		if res.Kind == ResolutionWord && res.Result.Valid && g.Used.Contains(res.Result.Word) {
			return SubmitOutcome{AlreadyUsed: res.Result.Word}, nil
		}
	}

	var outcome SubmitOutcome
	var applied []WordResult
	for _, res := range resolutions {
		switch res.Kind {
		case ResolutionWord:
			applied = append(applied, res.Result)
		case ResolutionChoice:
			prompt := &ChoicePrompt{
				Dir:     res.Dir,
				Pos:     pos,
				Options: res.Options,
				token:   g.token,
			}
			if outcome.Choice == nil {
				outcome.Choice = prompt
			} else {
				// Both directions ambiguous: the second prompt is queued
				// and surfaces once the first one resolves, so neither
				// direction's candidates are lost.
				g.queuedChoice = prompt
			}
		}
	}

	if len(applied) > 0 {
		g.applyResults(applied)
		outcome.Results = applied
	}
	g.pendingChoice = outcome.Choice

	if len(applied) == 0 && outcome.Choice == nil {
		// No candidate words in either direction: zero points, no popup,
		// straight to the next player.
		g.recordPlace(nil)
		g.AdvanceTurn()
		outcome.Advanced = true
	}
	return outcome, nil
}

// ResolveChoice applies the chosen disambiguation option as if it had been
// the unambiguous result. Already-used and restricted options are refused
// and leave the prompt open so another option can be picked. When a prompt
// for the other direction is queued, it becomes pending and is returned as
// the outcome's Choice.
func (g *Game) ResolveChoice(ctx context.Context, word string, oracle Oracle) (SubmitOutcome, error) {
	if g.pendingChoice == nil {
		return SubmitOutcome{}, ErrNoChoicePending
	}
	if g.pendingChoice.token != g.token {
		g.pendingChoice = nil
		g.queuedChoice = nil
		return SubmitOutcome{}, ErrNoChoicePending
	}
	var opt *WordOption
	for i := range g.pendingChoice.Options {
		if g.pendingChoice.Options[i].Word == word {
			opt = &g.pendingChoice.Options[i]
			break
		}
	}
	if opt == nil {
		return SubmitOutcome{}, ErrUnknownOption
	}
	if g.Used.Contains(word) {
		return SubmitOutcome{AlreadyUsed: word}, nil
	}
	v, err := oracle.Validate(ctx, word)
	if err != nil {
		v = Validation{}
	}
	if v.Restriction != RestrictionNone {
		return SubmitOutcome{Restricted: &RestrictionNotice{Word: word, Restriction: v.Restriction}}, nil
	}
	result := WordResult{
		Word:       word,
		Valid:      v.Valid,
		Definition: v.Definition,
		Cells:      opt.Cells,
	}
	if v.Valid {
		result.Points = len(word)
	}
	g.applyResults([]WordResult{result})
	g.pendingChoice = g.queuedChoice
	g.queuedChoice = nil
	return SubmitOutcome{Results: []WordResult{result}, Choice: g.pendingChoice}, nil
}

// CancelChoice abandons a pending disambiguation. The placed letter stays
// on the grid; only the prompt's scoring is skipped. A queued prompt for
// the other direction takes its place; otherwise, when the other direction
// already scored, those results stay on display, and when nothing scored
// at all the turn advances with zero points.
func (g *Game) CancelChoice() error {
	if g.pendingChoice == nil {
		return ErrNoChoicePending
	}
	g.pendingChoice = g.queuedChoice
	g.queuedChoice = nil
	if g.pendingChoice != nil || g.awaitingExtend {
		return nil
	}
	g.recordPlace(nil)
	g.AdvanceTurn()
	return nil
}

// applyResults paints the word cells, updates the scorer's total, appends
// history and registers valid words as used.
func (g *Game) applyResults(results []WordResult) {
	// Later results of the same placement (a resolved choice after an
	// unambiguous direction) add to the existing painting instead of
	// wiping it.
	if !g.awaitingExtend {
		for i := range g.Grid.Cells {
			for j := range g.Grid.Cells[i] {
				g.Grid.Cells[i][j].IsPartOfWord = false
				g.Grid.Cells[i][j].IsValid = nil
			}
		}
	}
	points := 0
	for _, res := range results {
		points += res.Points
		valid := res.Valid
		for _, p := range res.Cells {
			cell := g.Grid.Cell(p)
			cell.IsPartOfWord = true
			cell.IsValid = &valid
		}
		if res.Valid {
			g.Used.Add(res.Word)
		}
	}
	g.CurrentPlayer().Score += points
	g.recordPlace(results)
	g.LastWordResults = append(g.LastWordResults, results...)
	g.awaitingExtend = true
}

func (g *Game) recordPlace(results []WordResult) {
	g.History = append(g.History, TurnAction{
		PlayerID:  g.CurrentPlayer().ID,
		Kind:      ActionPlace,
		Words:     results,
		Timestamp: g.now(),
	})
}

// AdvanceTurn rotates to the next player, clears the transient per-cell
// flags and the last results, and issues a fresh turn token. Exactly one
// advance happens per human or bot turn.
func (g *Game) AdvanceTurn() {
	g.Grid.ClearTransient()
	g.LastWordResults = nil
	g.SelectedCell = nil
	g.pendingChoice = nil
	g.queuedChoice = nil
	g.awaitingExtend = false
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
	g.token++
}

// Pass records a pass action and advances the turn, scoring nothing.
func (g *Game) Pass() error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	g.History = append(g.History, TurnAction{
		PlayerID:  g.CurrentPlayer().ID,
		Kind:      ActionPass,
		Timestamp: g.now(),
	})
	g.AdvanceTurn()
	return nil
}

// RevokePoints removes points from a player, clamping the score at zero.
func (g *Game) RevokePoints(playerIndex, points int) {
	p := g.Players[playerIndex]
	p.Score -= points
	if p.Score < 0 {
		p.Score = 0
	}
}

// EndGame moves the game to the ended phase. The winner is the player with
// the strictly highest score; a tie between the top two scores is a draw.
func (g *Game) EndGame() {
	if g.Phase != PhasePlaying {
		return
	}
	g.Phase = PhaseEnded
	if len(g.Players) == 0 {
		return
	}
	best := g.Players[0]
	tied := false
	for _, p := range g.Players[1:] {
		if p.Score > best.Score {
			best = p
			tied = false
		} else if p.Score == best.Score {
			tied = true
		}
	}
	if tied {
		g.Draw = true
		return
	}
	g.Winner = best
}

// Reset discards all per-game state and returns to the splash phase.
func (g *Game) Reset() {
	*g = Game{
		Phase: PhaseSplash,
		Used:  NewRegistry(),
		token: 1,
		now:   time.Now,
	}
}
