package controllers

import (
	"log"
	"net/http"

	"foodstop-server/repository"
	"foodstop-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	hub   *ws.Hub
	users repository.UserRepository
}

func NewWSController(hub *ws.Hub, users repository.UserRepository) *WSController {
	return &WSController{hub: hub, users: users}
}

// HandleWebSocket upgrades the connection and keeps it registered on the hub
// until the client goes away. The route runs behind the admin auth chain, so
// the uid claim identifies the account; its stored notification token makes
// the connection addressable. Accounts without one still receive broadcasts.
func (wc *WSController) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := wc.users.FindByID(c.Request.Context(), c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}
		token := ""
		if user.Notification_token != nil {
			token = *user.Notification_token
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		wc.hub.Register(conn, token)
		defer wc.hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
