package handlers

import (
	"net/http"

	"medagenda/middleware"
	"medagenda/models"
	"medagenda/services/realtime"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is handled by the CORS middleware upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeWSHandler upgrades the connection and subscribes it to a
// practitioner's event stream. Practitioners subscribe to their own stream;
// front desk and admin may pass ?practitionerId= to watch another.
func RealtimeWSHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFromContext(c)

		practitionerID := actor.ID
		if requested := c.Query("practitionerId"); requested != "" && requested != actor.ID {
			if actor.Role != models.RoleFrontDesk && actor.Role != models.RoleAdmin {
				utils.JSONAppError(c, utils.NewForbidden("cannot subscribe to another practitioner's stream"))
				return
			}
			practitionerID = requested
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		connID := hub.Register(practitionerID, conn)
		utils.GetLogger().Info("realtime subscriber connected",
			zap.String("practitionerID", practitionerID), zap.String("connID", connID))

		defer func() {
			hub.Unregister(practitionerID, connID)
			conn.Close()
		}()

		// Drain incoming frames; the stream is server-to-client only.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
