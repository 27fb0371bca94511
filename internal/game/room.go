package game

import (
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultRoomID is the single shared room every connection lands in.
const DefaultRoomID = "default-room"

// Room is one game session: roster, scores, the live round, and the
// round clock. Every entry point takes the room mutex for its whole
// handler, so handlers for one room never interleave; timer callbacks
// re-enter through the same mutex and re-check their preconditions, so
// a stale tick or expiry against a round that already moved on is a
// no-op.
type Room struct {
	ID string

	mu       sync.Mutex
	settings Settings
	emitter  Emitter
	board    *Leaderboard
	rng      *rand.Rand
	now      func() time.Time

	phase       string
	players     []*Player
	scores      map[string]int
	round       int
	current     *roundState
	clock       *roundClock
	revealTimer *time.Timer
}

func NewRoom(id string, settings Settings, emitter Emitter, board *Leaderboard) *Room {
	return &Room{
		ID:       id,
		settings: settings,
		emitter:  emitter,
		board:    board,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		phase:    phaseIdle,
		scores:   make(map[string]int),
	}
}

// Join adds a player to the roster. The first player into an idle room
// becomes the painter of round 1; a join into a drawing round with no
// running clock resumes the clock without resetting round state.
func (r *Room) Join(playerID, nickname, teamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team := TeamByID(teamID)
	if nickname == "" {
		nickname = "Player-" + shortID(playerID)
	}
	player := &Player{ID: playerID, Nickname: nickname, Team: team, JoinedAt: r.now()}
	r.players = append(r.players, player)
	if _, ok := r.scores[playerID]; !ok {
		r.scores[playerID] = 0
	}

	switch {
	case r.phase == phaseIdle:
		r.round = 1
		r.beginRoundLocked(playerID)
	case r.phase == phaseDrawing && r.clock == nil:
		r.startClockLocked()
	}

	r.broadcastRoomStateLocked()
	if r.current != nil && r.current.Painter == playerID {
		r.emitter.Send(playerID, EventYourTurnToDraw, map[string]any{"word": r.current.Word})
	}
	log.Printf("player joined room_id=%s player_id=%s nickname=%s players=%d", r.ID, playerID, nickname, len(r.players))
}

// Leave removes a player. A painter leaving mid-round abandons the round
// without a reveal and the room advances immediately.
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i, p := range r.players {
		if p.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return
	}
	delete(r.scores, playerID)
	log.Printf("player left room_id=%s player_id=%s players=%d", r.ID, playerID, len(r.players))

	if r.phase == phaseDrawing && r.current != nil && r.current.Painter == playerID {
		r.stopClockLocked()
		r.nextRoundLocked()
		return
	}
	if len(r.players) == 0 {
		r.resetLocked()
		return
	}
	r.broadcastRoomStateLocked()
}

// SubmitStroke appends a painter's stroke to the round log and fans it
// out to everyone else; the painter already rendered it locally.
// Non-painter submissions are silently ignored.
func (r *Room) SubmitStroke(playerID string, stroke Stroke) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseDrawing || r.current == nil || r.current.Painter != playerID {
		return
	}
	r.current.Strokes = append(r.current.Strokes, StrokeRecord{Stroke: stroke, Timestamp: r.now().UnixMilli()})
	r.emitter.BroadcastExcept(playerID, EventStrokeReceived, stroke)
}

// ClearCanvas empties the stroke log. Painter only; clearing an already
// empty canvas still announces the clear.
func (r *Room) ClearCanvas(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseDrawing || r.current == nil || r.current.Painter != playerID {
		return
	}
	r.current.Strokes = nil
	r.emitter.Broadcast(EventCanvasCleared, map[string]any{})
}

// SubmitGuess checks a guess against the round word. Every submission
// surfaces as a room-wide bubble; correct guesses are masked there so
// the answer is not spoiled. Only a player's first correct guess per
// round scores.
func (r *Room) SubmitGuess(playerID, guess string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.Painter == playerID {
		r.emitter.Send(playerID, EventGuessResult, map[string]any{
			"correct": false,
			"message": "You are drawing this round, no guessing!",
		})
		return
	}
	if r.phase != phaseDrawing || r.current == nil || r.current.Word == "" {
		return
	}
	guesser := r.findPlayerLocked(playerID)
	if guesser == nil {
		return
	}

	correct := normalizeGuess(guess) == normalizeGuess(r.current.Word)
	displayText := guess
	if correct {
		displayText = maskedGuess
	}
	r.emitter.Broadcast(EventGuessBubble, map[string]any{
		"userId":   playerID,
		"nickname": guesser.Nickname,
		"text":     displayText,
		"correct":  correct,
	})
	if !correct {
		r.emitter.Send(playerID, EventGuessResult, map[string]any{
			"correct": false,
			"message": "Not quite, try again!",
		})
		return
	}
	if r.hasCorrectGuessLocked(playerID) {
		return
	}

	remaining := r.remainingSecondsLocked()
	points := GuessPoints(remaining)
	r.current.CorrectGuesses = append(r.current.CorrectGuesses, CorrectGuess{
		ID:        playerID,
		Nickname:  guesser.Nickname,
		TeamID:    guesser.Team.ID,
		TeamName:  guesser.Team.Name,
		TeamImage: guesser.Team.Image,
		TeamColor: guesser.Team.Color,
		Time:      r.settings.RoundSeconds - remaining,
		Points:    points,
		Order:     len(r.current.CorrectGuesses) + 1,
	})
	r.scores[playerID] += points
	r.scores[r.current.Painter] += PainterBonus

	r.emitter.Broadcast(EventGuessResult, map[string]any{
		"correct":         true,
		"guesserId":       playerID,
		"guesserNickname": guesser.Nickname,
		"word":            r.current.Word,
		"points":          points,
	})
	r.broadcastRoomStateLocked()
	log.Printf("correct guess room_id=%s round=%d player_id=%s points=%d order=%d",
		r.ID, r.round, playerID, points, len(r.current.CorrectGuesses))

	if guessers := r.guesserCountLocked(); guessers > 0 && len(r.current.CorrectGuesses) >= guessers {
		log.Printf("all guessers correct room_id=%s round=%d", r.ID, r.round)
		r.stopClockLocked()
		r.revealLocked()
	}
}

// Restart resets the round counter and, with a non-empty roster, starts
// a fresh game from the front of the roster. Scores carry over.
func (r *Room) Restart(requesterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Printf("game restart requested room_id=%s player_id=%s", r.ID, requesterID)
	r.resetLocked()
	if len(r.players) == 0 {
		return
	}
	first := r.players[0]
	r.round = 1
	r.beginRoundLocked(first.ID)
	r.emitter.Broadcast(EventGameRestart, map[string]any{
		"round":           r.round,
		"painterId":       first.ID,
		"painterNickname": first.Nickname,
	})
	r.emitter.Send(first.ID, EventYourTurnToDraw, map[string]any{"word": r.current.Word})
	r.broadcastRoomStateLocked()
}

// Close stops the room's timers. Used on teardown.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopClockLocked()
	r.stopRevealTimerLocked()
}

// Snapshot returns the current room-state payload.
func (r *Room) Snapshot() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roomStateLocked()
}

func (r *Room) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) RoundNumber() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// PainterID returns the current painter's id, or "" when no round is live.
func (r *Room) PainterID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return ""
	}
	return r.current.Painter
}

func (r *Room) Score(playerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[playerID]
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// beginRoundLocked enters the drawing phase with a fresh round for the
// given painter. The caller is responsible for the round counter.
func (r *Room) beginRoundLocked(painterID string) {
	r.phase = phaseDrawing
	r.current = &roundState{
		Painter: painterID,
		Word:    randomWord(r.rng),
	}
	r.startClockLocked()
}

func (r *Room) startClockLocked() {
	if r.clock != nil {
		r.clock.Stop()
	}
	if r.current != nil {
		r.current.StartedAt = r.now()
	}
	var clock *roundClock
	clock = newRoundClock(r.settings.RoundSeconds, time.Second,
		func(remaining int) { r.clockTick(clock, remaining) },
		func() { r.clockExpired(clock) },
	)
	r.clock = clock
	clock.start()
}

func (r *Room) stopClockLocked() {
	if r.clock != nil {
		r.clock.Stop()
		r.clock = nil
	}
}

func (r *Room) stopRevealTimerLocked() {
	if r.revealTimer != nil {
		r.revealTimer.Stop()
		r.revealTimer = nil
	}
}

func (r *Room) clockTick(clock *roundClock, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clock != clock || r.phase != phaseDrawing {
		return
	}
	r.emitter.Broadcast(EventTimerUpdate, map[string]any{"remaining": remaining})
}

func (r *Room) clockExpired(clock *roundClock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clock != clock || r.phase != phaseDrawing {
		return
	}
	r.clock = nil
	r.revealLocked()
}

// revealLocked enters the reveal phase: broadcast the answer and round
// results, then schedule the next transition.
func (r *Room) revealLocked() {
	round := r.current
	if round == nil {
		return
	}
	r.phase = phaseReveal
	r.stopClockLocked()

	var painter map[string]any
	if p := r.findPlayerLocked(round.Painter); p != nil {
		painter = map[string]any{
			"id":        p.ID,
			"nickname":  p.Nickname,
			"teamName":  p.Team.Name,
			"teamImage": p.Team.Image,
		}
	}
	r.emitter.Broadcast(EventAnswerReveal, map[string]any{
		"answer":          round.Word,
		"painter":         painter,
		"correctGuessers": append([]CorrectGuess(nil), round.CorrectGuesses...),
		"totalGuessers":   r.guesserCountLocked(),
	})
	log.Printf("answer revealed room_id=%s round=%d word=%s correct=%d", r.ID, r.round, round.Word, len(round.CorrectGuesses))

	r.stopRevealTimerLocked()
	r.revealTimer = time.AfterFunc(time.Duration(r.settings.RevealSeconds)*time.Second, r.revealTimeout)
}

func (r *Room) revealTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phaseReveal {
		return
	}
	r.nextRoundLocked()
}

// nextRoundLocked leaves the current round behind: an empty roster goes
// back to idle, a finished game concludes, otherwise the painter rotates
// and the next round begins.
func (r *Room) nextRoundLocked() {
	r.stopRevealTimerLocked()
	if len(r.players) == 0 {
		r.resetLocked()
		return
	}
	if r.round >= r.settings.MaxRounds {
		r.concludeLocked()
		return
	}

	previousPainter := ""
	if r.current != nil {
		previousPainter = r.current.Painter
	}
	painterID := nextPainter(r.players, previousPainter)
	painter := r.findPlayerLocked(painterID)
	if painter == nil {
		r.resetLocked()
		return
	}
	r.round++
	r.beginRoundLocked(painterID)

	r.emitter.Broadcast(EventRoundStart, map[string]any{
		"round":           r.round,
		"painterId":       painterID,
		"painterNickname": painter.Nickname,
	})
	r.emitter.Send(painterID, EventYourTurnToDraw, map[string]any{"word": r.current.Word})
	r.broadcastRoomStateLocked()
	log.Printf("round started room_id=%s round=%d painter_id=%s", r.ID, r.round, painterID)
}

// concludeLocked ends the game: final standings are folded into the
// cross-game leaderboard and the game-over payload goes out.
func (r *Room) concludeLocked() {
	r.stopClockLocked()
	r.stopRevealTimerLocked()
	r.phase = phaseConcluded
	r.current = nil

	final := r.finalStandingsLocked()
	currentTeamScores := teamScoreTotals(final)
	var top []LeaderboardEntry
	var rankings []TeamStat
	if r.board != nil {
		top, rankings = r.board.RecordGame(final)
	}
	r.emitter.Broadcast(EventGameOver, map[string]any{
		"finalPlayers":      final,
		"globalLeaderboard": top,
		"teamRankings":      rankings,
		"currentTeamScores": currentTeamScores,
	})
	log.Printf("game over room_id=%s rounds=%d players=%d", r.ID, r.round, len(final))
}

// resetLocked returns the room to idle. The score map is left alone so
// a reconnecting player picks their total back up.
func (r *Room) resetLocked() {
	r.stopClockLocked()
	r.stopRevealTimerLocked()
	r.phase = phaseIdle
	r.round = 0
	r.current = nil
}

func (r *Room) broadcastRoomStateLocked() {
	r.emitter.Broadcast(EventRoomState, r.roomStateLocked())
}

// roomStateLocked builds the full snapshot sent on joins, correct
// guesses, round transitions, and roster changes. The stroke list is
// replayed in full so late joiners see the drawing in progress.
func (r *Room) roomStateLocked() map[string]any {
	players := make([]map[string]any, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, map[string]any{
			"id":        p.ID,
			"nickname":  p.Nickname,
			"teamId":    p.Team.ID,
			"teamName":  p.Team.Name,
			"teamImage": p.Team.Image,
			"teamColor": p.Team.Color,
			"score":     r.scores[p.ID],
			"role":      r.roleLocked(p.ID),
		})
	}
	var painterID any
	strokes := make([]StrokeRecord, 0)
	wordLength := 0
	if r.current != nil {
		painterID = r.current.Painter
		strokes = append(strokes, r.current.Strokes...)
		wordLength = utf8.RuneCountInString(r.current.Word)
	}
	timeRemaining := r.settings.RoundSeconds
	if r.clock != nil {
		timeRemaining = r.remainingSecondsLocked()
	}
	return map[string]any{
		"players":        players,
		"currentPainter": painterID,
		"round":          r.round,
		"timeRemaining":  timeRemaining,
		"strokes":        strokes,
		"wordLength":     wordLength,
	}
}

func (r *Room) roleLocked(playerID string) string {
	if r.current != nil && r.current.Painter == playerID {
		return rolePainter
	}
	return roleGuesser
}

// remainingSecondsLocked is the scoring view of the clock: zero when no
// clock is running, never negative.
func (r *Room) remainingSecondsLocked() int {
	if r.clock == nil || r.current == nil {
		return 0
	}
	elapsed := int(r.now().Sub(r.current.StartedAt).Seconds())
	remaining := r.settings.RoundSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (r *Room) findPlayerLocked(playerID string) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) hasCorrectGuessLocked(playerID string) bool {
	if r.current == nil {
		return false
	}
	for _, g := range r.current.CorrectGuesses {
		if g.ID == playerID {
			return true
		}
	}
	return false
}

func (r *Room) guesserCountLocked() int {
	if r.current == nil {
		return len(r.players)
	}
	count := 0
	for _, p := range r.players {
		if p.ID != r.current.Painter {
			count++
		}
	}
	return count
}

func (r *Room) finalStandingsLocked() []FinalPlayer {
	final := make([]FinalPlayer, 0, len(r.players))
	for _, p := range r.players {
		final = append(final, FinalPlayer{
			ID:        p.ID,
			Nickname:  p.Nickname,
			TeamID:    p.Team.ID,
			TeamName:  p.Team.Name,
			TeamImage: p.Team.Image,
			TeamColor: p.Team.Color,
			Score:     r.scores[p.ID],
		})
	}
	sort.SliceStable(final, func(i, j int) bool {
		return final[i].Score > final[j].Score
	})
	return final
}

// teamScoreTotals folds final standings into per-team totals for this
// game, ordered by score descending with first-appearance order on ties.
func teamScoreTotals(final []FinalPlayer) []TeamScore {
	totals := make(map[string]*TeamScore)
	order := make([]string, 0)
	for _, p := range final {
		entry, ok := totals[p.TeamID]
		if !ok {
			entry = &TeamScore{TeamID: p.TeamID, TeamName: p.TeamName, TeamImage: p.TeamImage}
			totals[p.TeamID] = entry
			order = append(order, p.TeamID)
		}
		entry.Score += p.Score
	}
	result := make([]TeamScore, 0, len(order))
	for _, id := range order {
		result = append(result, *totals[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

func normalizeGuess(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[:6]
}
