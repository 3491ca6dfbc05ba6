package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/testutil"
)

func boardWithScores(t *testing.T) *model.Scoreboard {
	t.Helper()
	b := model.NewScoreboard("ABC123")
	require.NoError(t, b.SetThreshold(100))
	_, err := b.AddPlayer("Alice")
	require.NoError(t, err)
	require.NoError(t, b.AddScore("Alice", 40))
	return b
}

// parseEvent splits a single formatted SSE message into its fields
func parseEvent(t *testing.T, raw string) (id, event, data string) {
	t.Helper()
	var dataLines []string
	for _, line := range strings.Split(strings.TrimRight(raw, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "id: "):
			id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		}
	}
	return id, event, strings.Join(dataLines, "\n")
}

func TestBroadcaster_Render(t *testing.T) {
	b := NewBroadcaster(NewHubManager(testutil.NopLogger()), testutil.NopLogger())
	board := boardWithScores(t)
	event := model.Event{
		Type:    model.EventScoreAdded,
		Player:  "Alice",
		Payload: model.ScoreAddedPayload{Score: 40, Total: 40},
	}

	msg, err := b.Render(context.Background(), event, board)
	require.NoError(t, err)

	jsonID, jsonEvent, jsonData := parseEvent(t, string(msg.JSON))
	htmlID, htmlEvent, htmlData := parseEvent(t, string(msg.HTML))

	assert.NotEmpty(t, jsonID)
	assert.Equal(t, jsonID, htmlID)
	assert.Equal(t, EventBoardUpdate, jsonEvent)
	assert.Equal(t, EventScoreboardUpdate, htmlEvent)

	var update response.BoardUpdate
	require.NoError(t, json.Unmarshal([]byte(jsonData), &update))
	assert.Equal(t, "Alice scored 40", update.Message)
	assert.Equal(t, "score_added", update.Event)
	assert.Equal(t, "ABC123", update.Board.Code)
	require.Len(t, update.Board.Players, 1)
	assert.Equal(t, 40, update.Board.Players[0].Total)

	assert.Contains(t, htmlData, `id="scoreboard"`)
	assert.Contains(t, htmlData, "Alice")
}

func TestBroadcaster_NotifyWithoutHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, testutil.NopLogger())

	b.Notify(context.Background(), model.Event{Type: model.EventScoresReset}, model.NewScoreboard("NOHUB"))

	assert.Nil(t, manager.GetHub("NOHUB"))
}

func TestBroadcaster_NotifyDeliversToClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	b := NewBroadcaster(manager, testutil.NopLogger())

	board := boardWithScores(t)
	hub := manager.GetOrCreateHub(board.Code)
	jsonClient := NewClient(hub, FormatJSON)
	htmlClient := NewClient(hub, FormatHTML)
	hub.Register(jsonClient)
	hub.Register(htmlClient)
	time.Sleep(10 * time.Millisecond)

	b.Notify(context.Background(), model.Event{Type: model.EventPlayerAdded, Player: "Alice"}, board)

	_, event, data := parseEvent(t, receive(t, jsonClient))
	assert.Equal(t, EventBoardUpdate, event)
	assert.Contains(t, data, `"message":"Player Alice added"`)

	_, event, _ = parseEvent(t, receive(t, htmlClient))
	assert.Equal(t, EventScoreboardUpdate, event)
}

func TestBroadcaster_BoardDeletedClosesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, testutil.NopLogger())

	board := model.NewScoreboard("ABC123")
	hub := manager.GetOrCreateHub(board.Code)
	client := NewClient(hub, FormatJSON)
	require.True(t, hub.Register(client))

	b.Notify(context.Background(), model.Event{Type: model.EventBoardDeleted}, board)

	assert.Nil(t, manager.GetHub(board.Code))
	select {
	case <-hub.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("hub not closed after board deleted")
	}
}

func TestBroadcaster_BoardDeletedIsLastMessage(t *testing.T) {
	for run := 0; run < 50; run++ {
		manager := NewHubManager(testutil.NopLogger())
		b := NewBroadcaster(manager, testutil.NopLogger())

		board := model.NewScoreboard("ABC123")
		hub := manager.GetOrCreateHub(board.Code)
		client := NewClient(hub, FormatJSON)
		require.True(t, hub.Register(client))

		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("P%d", i)
			_, err := board.AddPlayer(name)
			require.NoError(t, err)
			b.Notify(context.Background(), model.Event{Type: model.EventPlayerAdded, Player: name}, board)
		}
		b.Notify(context.Background(), model.Event{Type: model.EventBoardDeleted}, board)

		var events []string
		timeout := time.After(time.Second)
	collect:
		for {
			select {
			case raw, ok := <-client.send:
				if !ok {
					break collect
				}
				_, event, _ := parseEvent(t, string(raw))
				events = append(events, event)
			case <-timeout:
				t.Fatal("client channel not closed after board deleted")
			}
		}

		require.Len(t, events, 6, "run %d", run)
		assert.Equal(t, EventBoardDeleted, events[5], "run %d", run)
	}
}

func TestBroadcaster_Snapshot(t *testing.T) {
	b := NewBroadcaster(NewHubManager(testutil.NopLogger()), testutil.NopLogger())
	board := boardWithScores(t)

	raw, err := b.Snapshot(context.Background(), board, FormatJSON)
	require.NoError(t, err)
	_, event, data := parseEvent(t, string(raw))
	assert.Equal(t, EventBoardUpdate, event)
	var update response.BoardUpdate
	require.NoError(t, json.Unmarshal([]byte(data), &update))
	assert.Equal(t, 100, update.Board.WinThreshold)

	raw, err = b.Snapshot(context.Background(), board, FormatHTML)
	require.NoError(t, err)
	_, event, _ = parseEvent(t, string(raw))
	assert.Equal(t, EventScoreboardUpdate, event)
}

func TestServeSSE(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	hub := manager.GetOrCreateHub("ABC123")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, FormatJSON, []byte("event: snapshot\ndata: {}\n\n"))
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var sb strings.Builder
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return sb.String()
			}
			sb.WriteString(line)
		}
	}

	assert.Equal(t, "event: connected\ndata: {\"status\":\"connected\"}\n", readEvent())
	assert.Equal(t, "event: snapshot\ndata: {}\n", readEvent())

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(Message{JSON: formatSSEMessageWithID("", "board-update", "hello")})
	assert.Equal(t, "event: board-update\ndata: hello\n", readEvent())
}
