package db

import (
	"time"

	"gorm.io/datatypes"
)

// LeaderboardEntry is a player's cumulative cross-game record, keyed by
// nickname. Team holds the catalog snapshot from the player's last game
// as JSON.
type LeaderboardEntry struct {
	ID          uint           `gorm:"primaryKey"`
	Nickname    string         `gorm:"size:64;uniqueIndex;not null"`
	Team        datatypes.JSON `gorm:"not null"`
	TotalScore  int            `gorm:"not null;default:0"`
	GamesPlayed int            `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TeamStat is a team's cumulative cross-game record.
type TeamStat struct {
	ID          uint           `gorm:"primaryKey"`
	TeamID      string         `gorm:"size:64;uniqueIndex;not null"`
	Team        datatypes.JSON `gorm:"not null"`
	TotalScore  int            `gorm:"not null;default:0"`
	PlayerCount int            `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}
