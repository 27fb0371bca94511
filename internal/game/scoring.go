package game

const (
	// guessBasePoints is awarded for any correct guess regardless of speed.
	guessBasePoints = 50
	// guessPointsPerSecond scales the reward by how much round time was left.
	guessPointsPerSecond = 2
	// PainterBonus is the flat award to the painter per correct guesser.
	PainterBonus = 30
)

// GuessPoints maps the seconds remaining in the round at the moment of a
// correct guess to the points the guesser earns. Remaining time below
// zero counts as zero, so a guess that lands after expiry still pays the
// base amount.
func GuessPoints(secondsRemaining int) int {
	if secondsRemaining < 0 {
		secondsRemaining = 0
	}
	return guessBasePoints + guessPointsPerSecond*secondsRemaining
}
