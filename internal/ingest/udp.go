package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/vmihailenco/msgpack/v5"
)

// maxDatagram is the read buffer size for one UDP datagram.
const maxDatagram = 64 * 1024

// Sink receives each decoded sample. Implementations must be safe for
// concurrent use; the UDP listener calls it from its read loop.
type Sink func(Sample)

// UDPListener reads msgpack-encoded samples from a UDP socket.
// One datagram may carry any number of back-to-back encoded samples.
type UDPListener struct {
	conn *net.UDPConn
	sink Sink
}

// NewUDP binds the listener on the given port.
func NewUDP(port int, sink Sink) (*UDPListener, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("ingest: listen udp :%d: %w", port, err)
	}
	return &UDPListener{conn: conn, sink: sink}, nil
}

// Run reads datagrams until ctx is cancelled. Malformed frames are logged
// and dropped; they never stop the loop.
func (l *UDPListener) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		l.conn.Close()
	}()

	slog.Info("ingest: udp listener started", "addr", l.conn.LocalAddr())

	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("ingest: udp read error", "err", err)
			continue
		}

		samples, err := Decode(buf[:n])
		if err != nil {
			slog.Warn("ingest: dropping malformed datagram",
				"from", addr, "bytes", n, "err", err)
		}
		for _, s := range samples {
			l.sink(s)
		}
	}
}

// Decode unpacks every complete msgpack-encoded Sample in data.
// Samples decoded before a malformed trailing frame are returned along with
// the error.
func Decode(data []byte) ([]Sample, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	var samples []Sample
	for {
		var s Sample
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return samples, nil
			}
			return samples, fmt.Errorf("ingest: decode sample: %w", err)
		}
		samples = append(samples, s)
	}
}

// Encode packs samples back-to-back into one frame, the inverse of Decode.
// Telemetry senders and tests share it.
func Encode(samples ...Sample) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("ingest: encode sample: %w", err)
		}
	}
	return buf.Bytes(), nil
}
