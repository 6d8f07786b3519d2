// Package transport provides client-side network transports for DNS queries.
// It carries already-encoded messages to one upstream server and returns the
// raw response bytes, leaving wire format concerns to the codec and response
// validation to the service layer.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Transport errors. Socket failures are classified into exactly these two
// sentinels so the retry loop can treat them uniformly.
var (
	// ErrTimeout indicates the deadline passed before an acceptable
	// response arrived.
	ErrTimeout = errors.New("query timeout")

	// ErrExchange indicates a connect, write, or read failure.
	ErrExchange = errors.New("exchange failed")
)

// AcceptFunc decides whether received bytes answer the in-flight query.
// The UDP exchanger drops rejected datagrams and keeps waiting; unrelated
// traffic must never terminate the exchange early. Declared as an alias so
// the service layer can name the same signature without importing this
// package.
type AcceptFunc = func(data []byte) bool

// DialFunc defines a function type for establishing a network connection.
// It takes a context for cancellation, the network type (e.g., "tcp", "udp"),
// and the address to connect to, returning a net.Conn and an error if any occurs.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// wrapNetErr classifies a socket error under the transport error taxonomy,
// keeping the operation name for context.
func wrapNetErr(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExchange, op, err)
}

// ctxErr maps context termination onto the taxonomy: a deadline is a
// timeout, a cancellation stays a cancellation so callers can abort cleanly.
func ctxErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
	return ctx.Err()
}
