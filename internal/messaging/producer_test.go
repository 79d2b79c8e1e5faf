package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"gpa-service/internal/messaging"
	"gpa-service/internal/result"
	"gpa-service/testing/testnats"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerPublish(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	server := testnats.SetupSharedNATS(t)
	defer server.Cleanup(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	const subject = "gpa.results.saved"

	producer, err := messaging.NewProducer(server.URL, subject, logger)
	require.NoError(t, err)
	defer producer.Close()

	conn := server.Connect(t)
	defer conn.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := conn.ChanSubscribe(subject, received)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, conn.Flush())

	event := result.SavedEvent{
		MatricNumber: "230000001",
		GPA:          4.5,
		Status:       "Graduate with Distinction",
		SavedAt:      time.Now().UTC(),
	}
	require.NoError(t, producer.Publish(context.Background(), event))

	select {
	case msg := <-received:
		var got result.SavedEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event.MatricNumber, got.MatricNumber)
		assert.Equal(t, event.GPA, got.GPA)
		assert.Equal(t, event.Status, got.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
