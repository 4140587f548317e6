package limitio

import "net"

// Conn limits the download rate of a network connection. Writes are not limited.
type Conn struct {
	net.Conn
	reader *Reader
}

func NewConn(conn net.Conn, bytesPerSec float64) *Conn {
	return &Conn{
		Conn:   conn,
		reader: NewReader(conn, bytesPerSec, DefaultBurst),
	}
}

func (c *Conn) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}
