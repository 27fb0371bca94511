package server

import (
	"encoding/json"
	"log"
	"net/http"

	"sketch-party/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func (s *Server) handleWebsocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return s.cfg.AllowsOrigin(r.Header.Get("Origin"))
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	playerID := uuid.NewString()
	log.Printf("ws connected player_id=%s remote=%s", playerID, c.Request.RemoteAddr)
	go s.readWS(playerID, conn)
}

// readWS is the per-connection read pump. It dispatches client messages
// into the room engine and turns the connection's end into a leave.
func (s *Server) readWS(playerID string, conn *websocket.Conn) {
	roomID := ""
	defer func() {
		if roomID != "" {
			s.hub.Remove(roomID, playerID)
			if room, ok := s.rooms.Get(roomID); ok {
				room.Leave(playerID)
			}
		} else {
			_ = conn.Close()
		}
		log.Printf("ws disconnected player_id=%s", playerID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundEnvelope
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("ws bad message player_id=%s error=%v", playerID, err)
			continue
		}

		if msg.Type == msgJoinRoom {
			if roomID != "" {
				continue
			}
			var req joinPayload
			if err := decodePayload(msg.Data, &req); err != nil {
				log.Printf("ws invalid join player_id=%s error=%v", playerID, err)
				continue
			}
			roomID = game.DefaultRoomID
			s.hub.Add(roomID, playerID, conn)
			s.rooms.GetOrCreate(roomID).Join(playerID, sanitizeNickname(req.Nickname), req.TeamID)
			continue
		}
		if roomID == "" {
			continue
		}
		room, ok := s.rooms.Get(roomID)
		if !ok {
			continue
		}

		switch msg.Type {
		case msgDrawStroke:
			var req strokePayload
			if err := decodePayload(msg.Data, &req); err != nil {
				log.Printf("ws invalid stroke player_id=%s error=%v", playerID, err)
				continue
			}
			room.SubmitStroke(playerID, req.stroke())
		case msgClearCanvas:
			room.ClearCanvas(playerID)
		case msgSubmitGuess:
			var req guessPayload
			if err := decodePayload(msg.Data, &req); err != nil {
				log.Printf("ws invalid guess player_id=%s error=%v", playerID, err)
				continue
			}
			room.SubmitGuess(playerID, req.Guess)
		case msgRestartGame:
			room.Restart(playerID)
		default:
			log.Printf("ws unknown message player_id=%s type=%s", playerID, msg.Type)
		}
	}
}
