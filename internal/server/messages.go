package server

import (
	"encoding/json"

	"sketch-party/internal/game"
)

// Client-to-server message types.
const (
	msgJoinRoom    = "join-room"
	msgDrawStroke  = "draw-stroke"
	msgClearCanvas = "clear-canvas"
	msgSubmitGuess = "submit-guess"
	msgRestartGame = "restart-game"
)

// inboundEnvelope is the wire format for client-to-server messages.
type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinPayload struct {
	Nickname string `json:"nickname" validate:"max=32"`
	TeamID   string `json:"teamId" validate:"omitempty,max=32"`
}

type strokePayload struct {
	From  game.Point `json:"from"`
	To    game.Point `json:"to"`
	Color string     `json:"color" validate:"omitempty,max=16"`
	Width float64    `json:"width" validate:"gte=0,lte=100"`
}

func (p strokePayload) stroke() game.Stroke {
	return game.Stroke{
		From:  p.From,
		To:    p.To,
		Color: p.Color,
		Width: p.Width,
	}
}

type guessPayload struct {
	Guess string `json:"guess" validate:"required,max=64"`
}
