package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/response"
	ws "github.com/edunexus/schoolhub/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// RefreshHandler streams refresh events to open portals.
type RefreshHandler struct {
	bus      *refresh.Bus
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(bus *refresh.Bus, log zerolog.Logger, allowedOrigins []string) *RefreshHandler {
	return &RefreshHandler{
		bus:      bus,
		log:      log.With().Str("component", "refresh_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/refresh?token=&topics=students,fees
// Sends {"event":"refresh","data":{...}} whenever a matching record changes.
// Branch users only receive their branch; superadmins may pass branch_id.
func (h *RefreshHandler) Stream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	topics, ok := parseTopics(c.Query("topics"))
	if !ok {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"topics": "unknown topic"})
		return
	}

	filter := refresh.Filter{Topics: topics, BranchID: claims.BranchID}
	if claims.Role == model.RoleSuperadmin {
		filter.BranchID, _ = strconv.Atoi(c.Query("branch_id"))
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("user_id", claims.UserID).
		Int("branch_id", filter.BranchID).
		Logger()
	wsLog.Info().Msg("Portal connected")

	sub := h.bus.Subscribe(filter)
	defer func() { sub.Unsubscribe() }()

	// gorilla allows one reader and one writer; the reader only forwards
	// frames here and every write happens on this goroutine.
	inbox := make(chan ws.ClientMessage)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.readLoop(conn, wsLog, inbox, done, quit)

	ping := time.NewTicker(ws.PingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Connection closed")
			return

		case e, ok := <-sub.C():
			if !ok {
				// Bus closed on shutdown.
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(time.Second))
				return
			}
			if err := ws.WriteTyped(conn, ws.RefreshMessage{Event: ws.EventRefresh, Data: e}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}

		case msg := <-inbox:
			switch msg.Action {
			case ws.ActionPing:
				if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
					return
				}
			case ws.ActionSubscribe:
				if !validTopics(msg.Topics) {
					ws.WriteError(conn, "unknown topic")
					continue
				}
				sub.Unsubscribe()
				filter.Topics = msg.Topics
				sub = h.bus.Subscribe(filter)
				if msg.Topics == nil {
					msg.Topics = []refresh.Topic{}
				}
				ws.WriteTyped(conn, ws.SubscribedMessage{Event: ws.EventSubscribed, Topics: msg.Topics})
			default:
				wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}

		case <-ping.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *RefreshHandler) readLoop(conn *websocket.Conn, log zerolog.Logger, inbox chan<- ws.ClientMessage, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	ws.KeepAlive(conn)

	for {
		var msg ws.ClientMessage
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		select {
		case inbox <- msg:
		case <-quit:
			return
		}
	}
}

// parseTopics splits a comma list. An empty list subscribes to everything.
func parseTopics(raw string) ([]refresh.Topic, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	var topics []refresh.Topic
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			topics = append(topics, refresh.Topic(part))
		}
	}
	return topics, validTopics(topics)
}

func validTopics(topics []refresh.Topic) bool {
	for _, t := range topics {
		if !t.IsValid() {
			return false
		}
	}
	return true
}
