package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/service"
	ws "github.com/edunexus/schoolhub/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefreshServer(t *testing.T, claims *service.Claims) (*refresh.Bus, *httptest.Server) {
	t.Helper()
	bus := refresh.NewBus(8, zerolog.Nop())
	h := NewRefreshHandler(bus, zerolog.Nop(), nil)

	r := gin.New()
	r.GET("/ws/v1/refresh", func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, claims)
		c.Next()
	}, h.Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		bus.Close()
		srv.Close()
	})
	return bus, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/refresh" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitSubscribers(t *testing.T, bus *refresh.Bus, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return bus.Len() == n }, time.Second, 5*time.Millisecond)
}

func readRefresh(t *testing.T, conn *websocket.Conn) ws.RefreshMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.RefreshMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestRefreshStream_BranchAndTopicFilter(t *testing.T) {
	bus, srv := newRefreshServer(t, &service.Claims{UserID: 5, Role: model.RoleTeacher, BranchID: 1})
	conn := dial(t, srv, "?topics=students,fees")
	waitSubscribers(t, bus, 1)

	bus.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionCreated, 2, 10)) // other branch
	bus.Publish(refresh.Changed(refresh.TopicLibrary, refresh.ActionUpdated, 1, 11))  // other topic
	bus.Publish(refresh.Changed(refresh.TopicFees, refresh.ActionUpdated, 1, 12))

	msg := readRefresh(t, conn)
	assert.Equal(t, ws.EventRefresh, msg.Event)
	assert.Equal(t, refresh.TopicFees, msg.Data.Topic)
	assert.Equal(t, 1, msg.Data.BranchID)
	assert.Equal(t, "12", msg.Data.EntityID)
}

func TestRefreshStream_PingAndResubscribe(t *testing.T) {
	bus, srv := newRefreshServer(t, &service.Claims{UserID: 5, Role: model.RolePrincipal, BranchID: 3})
	conn := dial(t, srv, "")
	waitSubscribers(t, bus, 1)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Action: ws.ActionPing}))
	var pong ws.PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, ws.EventPong, pong.Event)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Action: ws.ActionSubscribe, Topics: []refresh.Topic{refresh.TopicLeaves}}))
	var sub ws.SubscribedMessage
	require.NoError(t, conn.ReadJSON(&sub))
	assert.Equal(t, ws.EventSubscribed, sub.Event)
	assert.Equal(t, []refresh.Topic{refresh.TopicLeaves}, sub.Topics)
	waitSubscribers(t, bus, 1)

	bus.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionCreated, 3, 1))
	bus.Publish(refresh.Changed(refresh.TopicLeaves, refresh.ActionUpdated, 3, 2))
	assert.Equal(t, refresh.TopicLeaves, readRefresh(t, conn).Data.Topic)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Action: ws.ActionSubscribe, Topics: []refresh.Topic{"grades"}}))
	var bad ws.ErrorResponse
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, ws.EventError, bad.Event)
}

func TestRefreshStream_SuperadminAllBranches(t *testing.T) {
	bus, srv := newRefreshServer(t, &service.Claims{UserID: 1, Role: model.RoleSuperadmin})
	conn := dial(t, srv, "?topics=branches")
	waitSubscribers(t, bus, 1)

	bus.Publish(refresh.Changed(refresh.TopicBranches, refresh.ActionCreated, 9, 9))
	assert.Equal(t, 9, readRefresh(t, conn).Data.BranchID)
}

func TestRefreshStream_ClosesOnShutdown(t *testing.T) {
	bus, srv := newRefreshServer(t, &service.Claims{UserID: 5, Role: model.RoleTeacher, BranchID: 1})
	conn := dial(t, srv, "")
	waitSubscribers(t, bus, 1)

	bus.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestRefreshStream_RejectsUnknownTopic(t *testing.T) {
	_, srv := newRefreshServer(t, &service.Claims{UserID: 5, Role: model.RoleTeacher, BranchID: 1})

	resp, err := http.Get(srv.URL + "/ws/v1/refresh?topics=students,grades")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseTopics(t *testing.T) {
	topics, ok := parseTopics(" students , fees,")
	assert.True(t, ok)
	assert.Equal(t, []refresh.Topic{refresh.TopicStudents, refresh.TopicFees}, topics)

	topics, ok = parseTopics("")
	assert.True(t, ok)
	assert.Nil(t, topics)

	_, ok = parseTopics("students,exams")
	assert.False(t, ok)
}
