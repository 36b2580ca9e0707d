package wordvia

import (
	"github.com/google/uuid"
)

// PlayerColors is the display palette assigned to human players in setup
// order.
var PlayerColors = []string{
	"hsl(45, 96%, 55%)",  // gold
	"hsl(280, 70%, 60%)", // purple
	"hsl(160, 70%, 45%)", // teal
	"hsl(20, 90%, 55%)",  // orange
}

// BotColor is the fixed display color of the bot player.
const BotColor = "hsl(210, 70%, 50%)"

// BotName is the display name of the bot player.
const BotName = "Wordvia Bot"

// Player is created once at setup and never added or removed mid-game.
// Score is monotonic except for explicit revocation, which clamps at zero.
type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Color string    `json:"color"`
	IsBot bool      `json:"isBot"`
}

func NewPlayer(name, color string) *Player {
	return &Player{
		ID:    uuid.New(),
		Name:  name,
		Color: color,
	}
}

func NewBotPlayer() *Player {
	return &Player{
		ID:    uuid.New(),
		Name:  BotName,
		Color: BotColor,
		IsBot: true,
	}
}
