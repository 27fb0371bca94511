package game

// nextPainter picks the roster member after the current painter in join
// order, wrapping around. A current painter that is no longer in the
// roster starts rotation from the front.
func nextPainter(players []*Player, currentID string) string {
	if len(players) == 0 {
		return ""
	}
	current := -1
	for i, p := range players {
		if p.ID == currentID {
			current = i
			break
		}
	}
	return players[(current+1)%len(players)].ID
}
