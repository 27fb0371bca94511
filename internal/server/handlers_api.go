package server

import (
	"net/http"

	"sketch-party/internal/game"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTeams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teams": game.Teams()})
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"players": s.board.TopPlayers(10),
		"teams":   s.board.TeamRankings(),
	})
}
