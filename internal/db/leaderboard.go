package db

import (
	"encoding/json"

	"sketch-party/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardStore backs the in-memory leaderboard aggregator with
// Postgres so cross-game standings survive a restart.
type LeaderboardStore struct {
	conn *gorm.DB
}

func NewLeaderboardStore(conn *gorm.DB) *LeaderboardStore {
	return &LeaderboardStore{conn: conn}
}

type teamSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (s *LeaderboardStore) Load() ([]game.LeaderboardEntry, []game.TeamStat, error) {
	var entryRows []LeaderboardEntry
	if err := s.conn.Order("created_at asc, id asc").Find(&entryRows).Error; err != nil {
		return nil, nil, err
	}
	players := make([]game.LeaderboardEntry, 0, len(entryRows))
	for _, row := range entryRows {
		var team teamSnapshot
		_ = json.Unmarshal(row.Team, &team)
		players = append(players, game.LeaderboardEntry{
			Nickname:    row.Nickname,
			TeamID:      team.ID,
			TeamName:    team.Name,
			TeamImage:   team.Image,
			TotalScore:  row.TotalScore,
			GamesPlayed: row.GamesPlayed,
		})
	}

	var statRows []TeamStat
	if err := s.conn.Order("created_at asc, id asc").Find(&statRows).Error; err != nil {
		return nil, nil, err
	}
	teams := make([]game.TeamStat, 0, len(statRows))
	for _, row := range statRows {
		var team teamSnapshot
		_ = json.Unmarshal(row.Team, &team)
		teams = append(teams, game.TeamStat{
			TeamID:      row.TeamID,
			TeamName:    team.Name,
			TeamImage:   team.Image,
			TotalScore:  row.TotalScore,
			PlayerCount: row.PlayerCount,
		})
	}
	return players, teams, nil
}

func (s *LeaderboardStore) Save(players []game.LeaderboardEntry, teams []game.TeamStat) error {
	for _, p := range players {
		snapshot, err := json.Marshal(teamSnapshot{ID: p.TeamID, Name: p.TeamName, Image: p.TeamImage})
		if err != nil {
			return err
		}
		record := LeaderboardEntry{
			Nickname:    p.Nickname,
			Team:        snapshot,
			TotalScore:  p.TotalScore,
			GamesPlayed: p.GamesPlayed,
		}
		err = s.conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nickname"}},
			DoUpdates: clause.AssignmentColumns([]string{"team", "total_score", "games_played", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			return err
		}
	}
	for _, t := range teams {
		snapshot, err := json.Marshal(teamSnapshot{ID: t.TeamID, Name: t.TeamName, Image: t.TeamImage})
		if err != nil {
			return err
		}
		record := TeamStat{
			TeamID:      t.TeamID,
			Team:        snapshot,
			TotalScore:  t.TotalScore,
			PlayerCount: t.PlayerCount,
		}
		err = s.conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"team", "total_score", "player_count", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			return err
		}
	}
	return nil
}
