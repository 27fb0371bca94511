package server

import (
	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	cfg   config.Config
	hub   *wsHub
	rooms *game.Registry
	board *game.Leaderboard
}

// New builds a server. A nil DB connection is fine: the leaderboard then
// lives in memory only.
func New(conn *gorm.DB, cfg config.Config) *Server {
	var store game.LeaderboardStore
	if conn != nil {
		store = db.NewLeaderboardStore(conn)
	}
	board := game.NewLeaderboard(store)
	hub := newWSHub()
	settings := game.Settings{
		RoundSeconds:  cfg.RoundDurationSeconds,
		RevealSeconds: cfg.RevealDurationSeconds,
		MaxRounds:     cfg.MaxRounds,
	}
	s := &Server{
		cfg:   cfg,
		hub:   hub,
		board: board,
	}
	s.rooms = game.NewRegistry(func(id string) *game.Room {
		return game.NewRoom(id, settings, &roomEmitter{hub: hub, roomID: id}, board)
	})
	return s
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	api.GET("/teams", s.handleTeams)
	api.GET("/leaderboard", s.handleLeaderboard)
	router.GET("/ws", s.handleWebsocket)
	return router
}
