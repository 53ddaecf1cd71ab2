package api

import (
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/labstack/echo"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// realtimeAlertsHandler upgrades the connection to a websocket and forwards
// every alert published on the NATS alert subject until the client goes away.
func (h *Handler) realtimeAlertsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
		if err != nil {
			log.Error("api: failed to upgrade to websocket: ", err)
			return nil
		}

		closed := make(chan struct{})

		sub, err := h.nc.Subscribe(h.alertSubject, func(msg *nats.Msg) {
			if err := wsutil.WriteServerMessage(conn, ws.OpText, msg.Data); err != nil {
				log.Error("api: failed to send realtime alert: ", err)
				select {
				case closed <- struct{}{}:
				default:
				}
			}
		})
		if err != nil {
			log.Error("api: failed to subscribe for realtime alerts: ", err)
			conn.Close()
			return nil
		}

		go func() {
			defer conn.Close()
			defer sub.Unsubscribe()
			<-closed
		}()

		return nil
	}
}
