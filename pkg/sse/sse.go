// Package sse replays canned Server-Sent Events streams.
//
// A stream spec is either a raw .sse file whose lines are sent verbatim, or
// a .json file describing the events:
//
//	{
//	  "retry": 3000,
//	  "events": [
//	    {"event": "ping", "id": 1, "data": {"x": 1}},
//	    {"data": "hello"}
//	  ]
//	}
//
// Lines turns either form into the literal lines of the stream and Sender
// writes them to the client one per tick.
package sse

import (
	"errors"
	"time"
)

// ContentTypeEventStream is the MIME type for SSE responses.
const ContentTypeEventStream = "text/event-stream"

// DefaultDelay is the pause between two consecutive lines.
const DefaultDelay = 100 * time.Millisecond

// ConnectedComment opens every stream so clients see a live connection
// before the first real line arrives.
const ConnectedComment = ": connected\n\n"

// SSE field prefixes written by the JSON spec producer.
const (
	fieldEvent = "event: "
	fieldData  = "data: "
	fieldID    = "id: "
	fieldRetry = "retry: "
)

// Errors
var (
	// ErrFlusherNotSupported indicates the response writer cannot flush.
	ErrFlusherNotSupported = errors.New("sse: flusher not supported")

	// ErrInvalidSpec indicates a .json stream spec that is not valid JSON.
	ErrInvalidSpec = errors.New("sse: invalid stream spec")
)
