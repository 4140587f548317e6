// Package limitio throttles the bandwidth used to download from the mail server.
package limitio

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// DefaultBurst is the size of the read buffer of the IMAP client
const DefaultBurst = 4096

type Reader struct {
	source  io.Reader
	limiter *rate.Limiter
}

// NewReader returns a reader that implements io.Reader with rate limiting.
// A rate of zero or less disables the limit.
func NewReader(r io.Reader, bytesPerSec float64, burst int) *Reader {
	reader := &Reader{
		source: r,
	}
	if bytesPerSec > 0 {
		if burst < 1 {
			burst = DefaultBurst
		}
		reader.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), burst)
	}
	return reader
}

// Read bytes into p. The call returns once the data read fits in the rate limit.
func (s *Reader) Read(p []byte) (int, error) {
	n, err := s.source.Read(p)
	if s.limiter == nil || n == 0 {
		return n, err
	}
	if waitErr := wait(s.limiter, n); waitErr != nil {
		return n, waitErr
	}
	return n, err
}

// wait takes the tokens by chunks: a single WaitN cannot ask for more than the burst
func wait(limiter *rate.Limiter, n int) error {
	for n > 0 {
		chunk := n
		if chunk > limiter.Burst() {
			chunk = limiter.Burst()
		}
		if err := limiter.WaitN(context.Background(), chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
