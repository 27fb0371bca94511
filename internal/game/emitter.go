package game

// Event names on the server-to-client channel.
const (
	EventRoomState      = "room-state"
	EventYourTurnToDraw = "your-turn-to-draw"
	EventStrokeReceived = "stroke-received"
	EventCanvasCleared  = "canvas-cleared"
	EventGuessBubble    = "guess-bubble"
	EventGuessResult    = "guess-result"
	EventTimerUpdate    = "timer-update"
	EventRoundStart     = "round-start"
	EventAnswerReveal   = "answer-reveal"
	EventGameOver       = "game-over"
	EventGameRestart    = "game-restart"
)

// Emitter is the room's outbound channel. Broadcast fans an event out to
// every room member, BroadcastExcept skips one member (the stroke origin),
// and Send delivers to a single member (the word reveal to the painter).
// Implementations must preserve per-room delivery order.
type Emitter interface {
	Broadcast(event string, payload any)
	BroadcastExcept(playerID string, event string, payload any)
	Send(playerID string, event string, payload any)
}
