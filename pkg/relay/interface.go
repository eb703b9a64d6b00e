package relay

import (
	"context"
	"io"
)

type Event struct {
	Timestamp int64
	Offset    int64
	Type      int
	Data      []byte
}

// EventSink consumes an event and returns the ID assigned to it.
type EventSink func(ctx context.Context, event Event) (string, error)

// ClientConnectionStatusCallback is invoked when the connection to the hub
// server is established or lost. cancel tears down the current connection.
type ClientConnectionStatusCallback func(ctx context.Context, cancel context.CancelCauseFunc, client RelayClient, serverIdentity string, status bool)

type RelayClient interface {
	io.Closer

	// Publish sends an event to the hub server and waits for the acknowledgement.
	Publish(ctx context.Context, evtType int, data []byte) error

	// Subscribe asks the hub server to stream events with offsets greater than offset.
	Subscribe(ctx context.Context, offset int64) error
}

type EventSourcePullingRequest struct {
	Offset int64
	Length int
}
type EventSourcePullingResponse struct {
	Events    []Event
	MaxOffset int64
}
type EventSource func(ctx context.Context, request EventSourcePullingRequest) (EventSourcePullingResponse, error)

type RelayServer interface {
	io.Closer
	ListenAndServe() error
}
