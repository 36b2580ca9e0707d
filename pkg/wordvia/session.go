package wordvia

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const (
	// BotThinkingDelay is the brief pause before a bot move is searched,
	// so the move does not land instantly.
	BotThinkingDelay = 800 * time.Millisecond
	// EndGameGrace is how long the final move's result stays on display
	// before a full grid ends the game automatically.
	EndGameGrace = 1500 * time.Millisecond
)

// Store is the injected persistence capability. The core never touches
// storage directly; only the session does.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Clear() error
}

// Session owns one game's lifecycle: it drives bot turns, arbitrates
// challenges, persists snapshots after every mutation and ends the game
// when the grid fills up. All external calls (oracle, judge) are awaited
// before any state transition commits.
type Session struct {
	Game *Game

	oracle Oracle
	judge  Judge
	bot    *Bot
	store  Store
	clock  quartz.Clock
	logger *log.Logger

	// busyToken suppresses re-entry of the bot-turn routine while an
	// invocation for the same turn is still in flight.
	busyToken TurnToken
}

type SessionOption func(*Session)

func WithStore(store Store) SessionOption {
	return func(s *Session) { s.store = store }
}

func WithJudge(judge Judge) SessionOption {
	return func(s *Session) { s.judge = judge }
}

func WithClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

func NewSession(game *Game, oracle Oracle, bot *Bot, opts ...SessionOption) *Session {
	s := &Session{
		Game:   game,
		oracle: oracle,
		bot:    bot,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RestoreSession loads the persisted snapshot and resumes it. Corrupted or
// non-restorable snapshots are cleared and (nil, false) is returned so the
// caller starts a fresh session instead of crashing.
func RestoreSession(store Store, oracle Oracle, bot *Bot, opts ...SessionOption) (*Session, bool) {
	snap, err := store.Load()
	if err != nil || snap == nil {
		if err != nil {
			_ = store.Clear()
		}
		return nil, false
	}
	game, err := RestoreGame(snap)
	if err != nil {
		_ = store.Clear()
		return nil, false
	}
	opts = append(opts, WithStore(store))
	return NewSession(game, oracle, bot, opts...), true
}

// SubmitLetter selects the cell and submits the letter for the human
// player, persisting the result.
func (s *Session) SubmitLetter(ctx context.Context, p Position, letter rune) (SubmitOutcome, error) {
	if err := s.Game.SelectCell(p); err != nil {
		return SubmitOutcome{}, err
	}
	outcome, err := s.Game.Submit(ctx, letter, s.oracle)
	if err != nil {
		return outcome, err
	}
	s.save()
	return outcome, nil
}

// ResolveChoice applies the player's disambiguation pick.
func (s *Session) ResolveChoice(ctx context.Context, word string) (SubmitOutcome, error) {
	outcome, err := s.Game.ResolveChoice(ctx, word, s.oracle)
	if err != nil {
		return outcome, err
	}
	s.save()
	return outcome, nil
}

// CancelChoice abandons a pending disambiguation prompt.
func (s *Session) CancelChoice() error {
	if err := s.Game.CancelChoice(); err != nil {
		return err
	}
	s.save()
	return nil
}

// Continue acknowledges the displayed results and advances the turn. It is
// a no-op while a disambiguation prompt is still open.
func (s *Session) Continue(ctx context.Context) {
	if s.Game.PendingChoice() != nil || !s.Game.AwaitingAdvance() {
		return
	}
	s.Game.AdvanceTurn()
	s.save()
	s.maybeAutoEnd(ctx)
}

// Pass skips the current player's turn.
func (s *Session) Pass() error {
	if err := s.Game.Pass(); err != nil {
		return err
	}
	s.save()
	return nil
}

// Challenge disputes a scored word. The defender's meaning is the supplied
// text for a human defender; a bot defender's meaning is fetched
// automatically. Returns whether the defense was upheld.
func (s *Session) Challenge(ctx context.Context, word, meaning string) (bool, error) {
	ch, err := s.Game.StartChallenge(word)
	if err != nil {
		return false, err
	}
	if s.Game.Players[ch.DefenderIndex].IsBot {
		meaning = BotMeaning(ctx, word, s.oracle)
	}
	judge := s.judge
	if judge == nil {
		return true, ErrChallengeUnavailable
	}
	upheld, err := s.Game.Arbitrate(ctx, ch, meaning, judge)
	if err != nil {
		return upheld, err
	}
	s.logger.Info("challenge resolved", "word", word, "upheld", upheld)
	s.save()
	s.maybeAutoEnd(ctx)
	return upheld, nil
}

// EndGame ends the game explicitly.
func (s *Session) EndGame() {
	s.Game.EndGame()
	s.save()
}

// Reset discards the game and its persisted snapshot.
func (s *Session) Reset() {
	s.Game.Reset()
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.logger.Warn("failed to clear saved game", "error", err)
		}
	}
}

// PlayBotTurn runs one complete bot turn: thinking pause, candidate search,
// and application of the chosen move through the same pipeline as a human
// move. Ambiguity is resolved by picking the longest valid, unused option.
// The routine is guarded so it cannot start twice for the same turn, and a
// search result arriving after the turn has moved on is discarded.
func (s *Session) PlayBotTurn(ctx context.Context) error {
	g := s.Game
	if g.Phase != PhasePlaying || !g.CurrentPlayer().IsBot || g.PendingChoice() != nil || g.AwaitingAdvance() {
		return nil
	}
	token := g.Token()
	if s.busyToken == token {
		// Already processing this turn.
		return nil
	}
	s.busyToken = token

	if err := s.sleep(ctx, BotThinkingDelay); err != nil {
		return err
	}

	move, err := s.bot.ChooseMove(ctx, g.Grid.Clone(), g.Used, s.oracle)
	if err != nil {
		return err
	}
	if g.Token() != token {
		// The turn changed while the search was in flight; the result
		// is stale and must not mutate state.
		s.logger.Debug("discarding stale bot move")
		return nil
	}
	if move == nil {
		s.logger.Info("bot passes", "player", g.CurrentPlayer().Name)
		return s.Pass()
	}

	if _, err := s.bot.Apply(ctx, g, move, s.oracle); err != nil {
		return err
	}
	s.save()
	s.logger.Info("bot move applied",
		"player", g.CurrentPlayer().Name,
		"row", move.Pos.Row, "col", move.Pos.Col,
		"letter", string(move.Letter))
	return nil
}

// maybeAutoEnd ends the game once every cell is filled, after a short grace
// delay so the final move's result stays visible.
func (s *Session) maybeAutoEnd(ctx context.Context) {
	g := s.Game
	if g.Phase != PhasePlaying || !g.Grid.IsFull() {
		return
	}
	token := g.Token()
	if err := s.sleep(ctx, EndGameGrace); err != nil {
		return
	}
	if g.Phase != PhasePlaying || g.Token() != token {
		return
	}
	g.EndGame()
	s.save()
	s.logger.Info("grid full, game ended")
}

func (s *Session) sleep(ctx context.Context, d time.Duration) error {
	fired := make(chan struct{})
	timer := s.clock.AfterFunc(d, func() {
		close(fired)
	})
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-fired:
		return nil
	}
}

func (s *Session) save() {
	if s.store == nil || s.Game.Phase == PhaseSplash {
		return
	}
	if err := s.store.Save(s.Game.Snapshot()); err != nil {
		s.logger.Warn("failed to save game state", "error", err)
	}
}
