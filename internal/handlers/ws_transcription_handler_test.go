package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Publishing from several goroutines at once must serialize the writes on a
// connection: every in-flight transcription job pushes its stage events from
// its own goroutine.
func TestHubPublishTranscription_ConcurrentPublishers(t *testing.T) {
	hub := NewHub()
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.add("user1", conn)
		close(registered)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()
	<-registered

	const publishers = 8
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub.PublishTranscription(services.TranscriptionEvent{
				JobID:    fmt.Sprintf("job-%d", i),
				UserID:   "user1",
				Status:   "processing",
				Progress: 50,
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < publishers; i++ {
		var event services.TranscriptionEvent
		require.NoError(t, client.ReadJSON(&event))
		assert.Equal(t, "user1", event.UserID)
		seen[event.JobID] = true
	}
	assert.Len(t, seen, publishers)
}

func TestHubPublishTranscription_NoConnections(t *testing.T) {
	hub := NewHub()

	// No panic, no blocking when the user has nothing open.
	hub.PublishTranscription(services.TranscriptionEvent{
		JobID:  "job-1",
		UserID: "user1",
		Status: "completed",
	})
}

func TestHubAddRemove(t *testing.T) {
	hub := NewHub()
	conn := &websocket.Conn{}

	hub.add("user1", conn)
	assert.Len(t, hub.clients["user1"], 1)

	hub.remove("user1", conn)
	_, ok := hub.clients["user1"]
	assert.False(t, ok)
}
