package wordvia

import (
	"fmt"
	"time"
)

// Snapshot is the serializable form of a Game. The used-word registry is
// stored as an ordered list and rebuilt as a set on restore. Pending
// selections, prompts and tokens are deliberately not persisted: a restored
// game resumes at the top of the current player's turn.
type Snapshot struct {
	Players            []*Player    `json:"players"`
	Grid               *Grid        `json:"grid"`
	Phase              Phase        `json:"gamePhase"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	LastWordResults    []WordResult `json:"lastWordResults"`
	Winner             *Player      `json:"winner"`
	Draw               bool         `json:"draw"`
	History            []TurnAction `json:"turnHistory"`
	ChallengeMode      bool         `json:"challengeMode"`
	UsedWords          []string     `json:"usedWords"`
	Mode               Mode         `json:"gameMode"`
	Difficulty         Difficulty   `json:"botDifficulty"`
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() *Snapshot {
	return &Snapshot{
		Players:            g.Players,
		Grid:               g.Grid,
		Phase:              g.Phase,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		LastWordResults:    g.LastWordResults,
		Winner:             g.Winner,
		Draw:               g.Draw,
		History:            g.History,
		ChallengeMode:      g.ChallengeMode,
		UsedWords:          g.Used.Words(),
		Mode:               g.Mode,
		Difficulty:         g.Difficulty,
	}
}

// RestoreGame rebuilds a Game from a snapshot. Only games persisted in the
// playing or ended phase are restorable.
func RestoreGame(s *Snapshot) (*Game, error) {
	if s.Phase != PhasePlaying && s.Phase != PhaseEnded {
		return nil, fmt.Errorf("snapshot phase %q is not restorable", s.Phase)
	}
	if s.Grid == nil || len(s.Players) == 0 {
		return nil, fmt.Errorf("snapshot is missing grid or players")
	}
	if s.Grid.Size < MinGridSize || s.Grid.Size > MaxGridSize || len(s.Grid.Cells) != s.Grid.Size {
		return nil, fmt.Errorf("snapshot grid is malformed")
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil, fmt.Errorf("snapshot current player index %d out of range", s.CurrentPlayerIndex)
	}
	return &Game{
		Players:            s.Players,
		Grid:               s.Grid,
		Phase:              s.Phase,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		LastWordResults:    s.LastWordResults,
		Winner:             s.Winner,
		Draw:               s.Draw,
		History:            s.History,
		ChallengeMode:      s.ChallengeMode,
		Used:               RestoreRegistry(s.UsedWords),
		Mode:               s.Mode,
		Difficulty:         s.Difficulty,
		token:              1,
		now:                time.Now,
	}, nil
}
