package mailbox

import (
	"io"
	"time"
)

type Message struct {
	// The message unique identifier.
	Uid MessageID
	// The message flags, as returned with the body.
	Flags []string
	// The date the message was received by the server.
	InternalDate time.Time
	// The message size.
	Size uint32
	// The full message (headers and body).
	Body io.Reader
}
