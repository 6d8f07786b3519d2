package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/services/resolver"
)

// TCPExchanger implements Exchanger for DNS over TCP (RFC 1035 §4.2.2).
// Messages travel with a 2-byte big-endian length prefix in both directions.
// One connection carries one exchange; the resolution engine only reaches
// for TCP after a truncated UDP response.
type TCPExchanger struct {
	dial   DialFunc
	logger log.Logger
}

// TCPOptions defines configuration parameters for the TCP exchanger.
type TCPOptions struct {
	// options to inject for testing purposes
	Dial   DialFunc
	Logger log.Logger
}

// NewTCPExchanger creates a TCP exchanger with the specified options.
// A default dialer and a noop logger are applied when not provided.
func NewTCPExchanger(opts TCPOptions) *TCPExchanger {
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &TCPExchanger{
		dial:   opts.Dial,
		logger: opts.Logger,
	}
}

// Exchange connects to the server, writes the length-prefixed query, and
// reads exactly one length-prefixed response. TCP delivers bytes from the
// connected peer only, so a rejected response is a hard failure rather than
// something to wait out.
func (t *TCPExchanger) Exchange(ctx context.Context, server string, query []byte, accept AcceptFunc) ([]byte, error) {
	if len(query) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: query of %d bytes exceeds frame limit", ErrExchange, len(query))
	}

	conn, err := t.dial(ctx, "tcp", server)
	if err != nil {
		return nil, wrapNetErr("connect", err)
	}
	defer conn.Close()

	// Set deadline from context
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// Use goroutine for write/read to enable context cancellation
	type result struct {
		data []byte
		err  error
	}

	resultChan := make(chan result, 1)

	go func() {
		// Frame and send the query in one write.
		frame := make([]byte, 2+len(query))
		binary.BigEndian.PutUint16(frame[:2], uint16(len(query)))
		copy(frame[2:], query)

		if _, err := conn.Write(frame); err != nil {
			resultChan <- result{err: wrapNetErr("write", err)}
			return
		}

		// Read the response length, then exactly that many bytes.
		header := make([]byte, 2)
		if _, err := io.ReadFull(conn, header); err != nil {
			resultChan <- result{err: wrapNetErr("read length", err)}
			return
		}

		data := make([]byte, binary.BigEndian.Uint16(header))
		if _, err := io.ReadFull(conn, data); err != nil {
			resultChan <- result{err: wrapNetErr("read message", err)}
			return
		}

		if accept != nil && !accept(data) {
			resultChan <- result{err: fmt.Errorf("%w: response failed validation", ErrExchange)}
			return
		}

		resultChan <- result{data: data}
	}()

	select {
	case res := <-resultChan:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctxErr(ctx)
	}
}

var _ resolver.Exchanger = (*TCPExchanger)(nil)
