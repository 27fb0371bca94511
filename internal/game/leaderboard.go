package game

import (
	"log"
	"sort"
	"sync"
)

// LeaderboardEntry is one player's cumulative record across concluded
// games. Nickname is the cross-game identity key; two real players with
// the same nickname share an entry, an accepted approximation.
type LeaderboardEntry struct {
	Nickname    string `json:"nickname"`
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamImage   string `json:"teamImage"`
	TotalScore  int    `json:"totalScore"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// TeamStat is a team's cumulative record across concluded games.
type TeamStat struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamImage   string `json:"teamImage"`
	TotalScore  int    `json:"totalScore"`
	PlayerCount int    `json:"playerCount"`
}

// LeaderboardStore persists cross-game standings. A nil store keeps the
// aggregator purely in memory.
type LeaderboardStore interface {
	Load() ([]LeaderboardEntry, []TeamStat, error)
	Save(players []LeaderboardEntry, teams []TeamStat) error
}

// topPlayerLimit caps the global player ranking in payloads.
const topPlayerLimit = 10

// Leaderboard aggregates final scores at game conclusion. Rankings are
// sorted descending by cumulative score with insertion order breaking
// ties.
type Leaderboard struct {
	mu        sync.Mutex
	store     LeaderboardStore
	players   map[string]*LeaderboardEntry
	order     []string
	teams     map[string]*TeamStat
	teamOrder []string
}

func NewLeaderboard(store LeaderboardStore) *Leaderboard {
	board := &Leaderboard{
		store:   store,
		players: make(map[string]*LeaderboardEntry),
		teams:   make(map[string]*TeamStat),
	}
	if store == nil {
		return board
	}
	players, teams, err := store.Load()
	if err != nil {
		log.Printf("leaderboard load failed error=%v", err)
		return board
	}
	for i := range players {
		entry := players[i]
		board.players[entry.Nickname] = &entry
		board.order = append(board.order, entry.Nickname)
	}
	for i := range teams {
		stat := teams[i]
		board.teams[stat.TeamID] = &stat
		board.teamOrder = append(board.teamOrder, stat.TeamID)
	}
	log.Printf("leaderboard loaded players=%d teams=%d", len(players), len(teams))
	return board
}

// RecordGame folds one concluded game's standings into the cumulative
// records and returns the refreshed global top players and full team
// ranking for the game-over payload.
func (b *Leaderboard) RecordGame(final []FinalPlayer) ([]LeaderboardEntry, []TeamStat) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range final {
		entry, ok := b.players[p.Nickname]
		if !ok {
			entry = &LeaderboardEntry{Nickname: p.Nickname}
			b.players[p.Nickname] = entry
			b.order = append(b.order, p.Nickname)
		}
		entry.TeamID = p.TeamID
		entry.TeamName = p.TeamName
		entry.TeamImage = p.TeamImage
		entry.TotalScore += p.Score
		entry.GamesPlayed++
	}
	for _, p := range final {
		stat, ok := b.teams[p.TeamID]
		if !ok {
			stat = &TeamStat{TeamID: p.TeamID, TeamName: p.TeamName, TeamImage: p.TeamImage}
			b.teams[p.TeamID] = stat
			b.teamOrder = append(b.teamOrder, p.TeamID)
		}
		stat.TotalScore += p.Score
		stat.PlayerCount++
	}

	if b.store != nil {
		if err := b.store.Save(b.allPlayersLocked(), b.allTeamsLocked()); err != nil {
			log.Printf("leaderboard save failed error=%v", err)
		}
	}
	return b.topPlayersLocked(topPlayerLimit), b.teamRankingsLocked()
}

// TopPlayers returns the global player ranking, at most n entries.
func (b *Leaderboard) TopPlayers(n int) []LeaderboardEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topPlayersLocked(n)
}

// TeamRankings returns the full team ranking.
func (b *Leaderboard) TeamRankings() []TeamStat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.teamRankingsLocked()
}

func (b *Leaderboard) topPlayersLocked(n int) []LeaderboardEntry {
	list := b.allPlayersLocked()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TotalScore > list[j].TotalScore
	})
	if n > 0 && len(list) > n {
		list = list[:n]
	}
	return list
}

func (b *Leaderboard) teamRankingsLocked() []TeamStat {
	list := b.allTeamsLocked()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TotalScore > list[j].TotalScore
	})
	return list
}

func (b *Leaderboard) allPlayersLocked() []LeaderboardEntry {
	list := make([]LeaderboardEntry, 0, len(b.order))
	for _, nickname := range b.order {
		list = append(list, *b.players[nickname])
	}
	return list
}

func (b *Leaderboard) allTeamsLocked() []TeamStat {
	list := make([]TeamStat, 0, len(b.teamOrder))
	for _, id := range b.teamOrder {
		list = append(list, *b.teams[id])
	}
	return list
}
