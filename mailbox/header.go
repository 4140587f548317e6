package mailbox

import (
	"mime"

	"github.com/emersion/go-message/charset"
)

var wordDecoder = &mime.WordDecoder{
	CharsetReader: charset.Reader,
}

// DecodeHeader returns the text of a header value which may contain RFC 2047 encoded-words.
// A value without encoded-word is returned unchanged. If the value cannot be decoded
// (unknown charset, malformed encoding) the raw value is returned instead.
func DecodeHeader(raw string) string {
	if raw == "" {
		return ""
	}
	decoded, err := wordDecoder.DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return decoded
}
