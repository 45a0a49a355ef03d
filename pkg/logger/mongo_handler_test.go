package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkHandler builds a MongoHandler around a captured insert function so
// the queueing behaviour is testable without a live MongoDB.
func sinkHandler() (*MongoHandler, func() []LogDocument) {
	var mu sync.Mutex
	var got []LogDocument

	h := &MongoHandler{
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		insert: func(_ context.Context, batch []interface{}) {
			mu.Lock()
			defer mu.Unlock()
			for _, doc := range batch {
				got = append(got, doc.(LogDocument))
			}
		},
	}
	go h.drainLoop()

	return h, func() []LogDocument {
		mu.Lock()
		defer mu.Unlock()
		return append([]LogDocument(nil), got...)
	}
}

func record(msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestMongoHandlerCloseFlushesQueue(t *testing.T) {
	h, docs := sinkHandler()

	for i := 0; i < 120; i++ {
		require.NoError(t, h.Handle(context.Background(), record(fmt.Sprintf("line %d", i))))
	}

	// Close must not return before the drain loop's final flush.
	h.Close()
	assert.Len(t, docs(), 120)

	// Idempotent.
	h.Close()
	assert.Len(t, docs(), 120)
}

func TestMongoHandlerExtractsRequestID(t *testing.T) {
	h, docs := sinkHandler()

	require.NoError(t, h.Handle(context.Background(), record("request",
		slog.String("request_id", "a1b2c3d4"),
		slog.Int("status", 200),
	)))
	h.Close()

	flushed := docs()
	require.Len(t, flushed, 1)
	assert.Equal(t, "a1b2c3d4", flushed[0].RequestID)
	assert.Equal(t, int64(200), flushed[0].Attrs["status"])
	assert.NotContains(t, flushed[0].Attrs, "request_id")
}
