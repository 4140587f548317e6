package mailbox

import (
	"bufio"
	"fmt"
	"io"

	"github.com/emersion/go-message/textproto"
)

// Summary holds the headers displayed for each message
type Summary struct {
	Subject string
	From    string
	Date    string
}

// ReadSummary parses the header of a RFC 5322 message.
// Missing fields are left empty.
func ReadSummary(message io.Reader) (Summary, error) {
	header, err := textproto.ReadHeader(bufio.NewReader(message))
	if err != nil {
		return Summary{}, fmt.Errorf("cannot read message header: %w", err)
	}
	return NewSummary(header), nil
}

func NewSummary(header textproto.Header) Summary {
	return Summary{
		Subject: DecodeHeader(header.Get("Subject")),
		From:    DecodeHeader(header.Get("From")),
		Date:    DecodeHeader(header.Get("Date")),
	}
}
