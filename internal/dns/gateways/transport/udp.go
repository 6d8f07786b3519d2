package transport

import (
	"context"
	"net"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/services/resolver"
)

// minUDPBuffer is the classic RFC 1035 payload limit, the floor for the
// receive buffer even when EDNS0 is disabled.
const minUDPBuffer = 512

// UDPExchanger implements Exchanger for standard DNS over UDP (RFC 1035).
// It uses a connected socket on an ephemeral port, so the kernel discards
// datagrams arriving from any address other than the queried server.
type UDPExchanger struct {
	bufSize int
	dial    DialFunc
	logger  log.Logger
}

// UDPOptions defines configuration parameters for the UDP exchanger.
type UDPOptions struct {
	// BufferSize is the largest datagram accepted, normally the EDNS0
	// payload size advertised in queries. Values below 512 are raised to 512.
	BufferSize uint16

	// options to inject for testing purposes
	Dial   DialFunc
	Logger log.Logger
}

// NewUDPExchanger creates a UDP exchanger with the specified options.
// A default dialer and a noop logger are applied when not provided.
func NewUDPExchanger(opts UDPOptions) *UDPExchanger {
	bufSize := int(opts.BufferSize)
	if bufSize < minUDPBuffer {
		bufSize = minUDPBuffer
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &UDPExchanger{
		bufSize: bufSize,
		dial:    opts.Dial,
		logger:  opts.Logger,
	}
}

// Exchange sends the query once and waits for a datagram the accept
// predicate is willing to take. Rejected datagrams are discarded and the
// read continues until the context deadline; the caller decides what
// "acceptable" means (ID match, echoed question, decodability).
func (u *UDPExchanger) Exchange(ctx context.Context, server string, query []byte, accept AcceptFunc) ([]byte, error) {
	conn, err := u.dial(ctx, "udp", server)
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
		// Send query
		if _, err := conn.Write(query); err != nil {
			resultChan <- result{err: wrapNetErr("write", err)}
			return
		}

		buffer := make([]byte, u.bufSize)
		for {
			n, err := conn.Read(buffer)
			if err != nil {
				resultChan <- result{err: wrapNetErr("read", err)}
				return
			}

			data := make([]byte, n)
			copy(data, buffer[:n])

			if accept == nil || accept(data) {
				resultChan <- result{data: data}
				return
			}

			u.logger.Debug(map[string]any{
				"server": server,
				"size":   n,
			}, "Discarded unmatched datagram")
			// Keep reading until the deadline; the next datagram may be ours.
		}
	}()

	// Wait for result or context cancellation. The deferred Close unblocks
	// the reader goroutine if the context wins.
	select {
	case res := <-resultChan:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctxErr(ctx)
	}
}

var _ resolver.Exchanger = (*UDPExchanger)(nil)
