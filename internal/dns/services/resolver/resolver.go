// Package resolver contains the core DNS resolution orchestration: the query
// lifecycle, server iteration and retry policy, response validation, and
// cache integration. Wire format and socket concerns stay behind the Codec
// and Exchanger interfaces so the engine is purely about policy.
package resolver

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/clock"
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

// Terminal resolution outcomes. Transport and decode failures are retried
// inside the engine; these are surfaced to the caller as-is.
var (
	// ErrNameNotFound maps NXDOMAIN: the name authoritatively does not exist.
	ErrNameNotFound = errors.New("name not found")
	// ErrServerFailure maps SERVFAIL.
	ErrServerFailure = errors.New("server failure")
	// ErrQueryFailed covers the remaining non-zero response codes.
	ErrQueryFailed = errors.New("query failed")
	// ErrNoResponse is returned once every server and attempt is exhausted.
	ErrNoResponse = errors.New("no response from any server")
)

// Error messages
const (
	errFailedToGenerateID  = "failed to generate query id"
	errFailedToEncodeQuery = "failed to encode query"
	errFailedToDecode      = "failed to decode response"
)

// Backoff policies for retries against the same server.
const (
	BackoffNone        = "none"
	BackoffFixed       = "fixed"
	BackoffExponential = "exponential"
)

// Resolver orchestrates DNS resolution: cache lookups, per-server retry with
// backoff, UDP-first exchanges with a TCP re-issue on truncation, and
// coalescing of identical in-flight questions.
type Resolver struct {
	servers      []string
	timeout      time.Duration
	attempts     int
	backoff      string
	backoffDelay time.Duration
	udpSize      uint16
	codec        Codec
	udp          Exchanger
	tcp          Exchanger
	cache        Cache
	clock        clock.Clock
	logger       log.Logger
	group        singleflight.Group
}

// Options configures a Resolver. Codec, UDP, TCP, and Servers have no
// defaults; Cache may be nil to disable caching entirely.
type Options struct {
	// Servers are tried in order, each getting the full attempt budget
	// before the next is consulted.
	Servers []string

	// Timeout bounds a single attempt, including a TCP fallback.
	Timeout time.Duration

	// Attempts is the per-server attempt budget.
	Attempts int

	// Backoff selects the delay policy between retries on one server.
	Backoff string

	// BackoffDelay is the base delay for the fixed and exponential policies.
	BackoffDelay time.Duration

	// UDPSize is the EDNS0 payload size advertised in queries; zero sends
	// plain queries without an OPT record.
	UDPSize uint16

	Codec Codec
	UDP   Exchanger
	TCP   Exchanger
	Cache Cache

	// options to inject for testing purposes
	Clock  clock.Clock
	Logger log.Logger
}

// New constructs a Resolver, applying defaults for the clock, logger,
// timeout, and attempt count.
func New(opts Options) *Resolver {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Resolver{
		servers:      opts.Servers,
		timeout:      opts.Timeout,
		attempts:     opts.Attempts,
		backoff:      opts.Backoff,
		backoffDelay: opts.BackoffDelay,
		udpSize:      opts.UDPSize,
		codec:        opts.Codec,
		udp:          opts.UDP,
		tcp:          opts.TCP,
		cache:        opts.Cache,
		clock:        opts.Clock,
		logger:       opts.Logger,
	}
}

// Resolve answers one question: cache first, then the configured servers in
// order. Identical questions in flight at the same time share a single
// exchange and all receive its result.
func (r *Resolver) Resolve(ctx context.Context, query domain.Question) (domain.Message, error) {
	if r.cache != nil {
		if records, ok := r.cache.Get(query.CacheKey()); ok {
			r.logger.Debug(map[string]any{
				"name": query.Name,
				"type": query.Type.String(),
			}, "Answer served from cache")
			return cachedMessage(query, records), nil
		}
	}

	key := coalesceKey(query)
	ch := r.group.DoChan(key, func() (any, error) {
		return r.exchange(ctx, query)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.Message{}, res.Err
		}
		return res.Val.(domain.Message), nil
	case <-ctx.Done():
		// Drop the flight so a later retry does not inherit a result
		// produced under this canceled context.
		r.group.Forget(key)
		return domain.Message{}, ctx.Err()
	}
}

// exchange walks the server list, giving each server its attempt budget.
func (r *Resolver) exchange(ctx context.Context, query domain.Question) (domain.Message, error) {
	id, err := randomID()
	if err != nil {
		return domain.Message{}, fmt.Errorf("%s: %w", errFailedToGenerateID, err)
	}
	payload, err := r.codec.EncodeQuery(id, query, r.udpSize)
	if err != nil {
		return domain.Message{}, fmt.Errorf("%s: %w", errFailedToEncodeQuery, err)
	}

	var lastErr error
	for _, server := range r.servers {
		for attempt := 1; attempt <= r.attempts; attempt++ {
			if attempt > 1 {
				if err := r.waitBackoff(ctx, attempt); err != nil {
					return domain.Message{}, err
				}
			}

			msg, err := r.exchangeOnce(ctx, server, id, query, payload)
			if err == nil {
				return msg, nil
			}
			if isTerminal(err) {
				return domain.Message{}, err
			}

			lastErr = err
			r.logger.Warn(map[string]any{
				"server":  server,
				"attempt": attempt,
				"error":   err.Error(),
			}, "Query attempt failed")

			if ctx.Err() != nil {
				return domain.Message{}, ctx.Err()
			}
		}
	}
	return domain.Message{}, fmt.Errorf("%w: last error: %v", ErrNoResponse, lastErr)
}

// exchangeOnce runs a single transport attempt: UDP, then one TCP re-issue
// of the identical payload when the response came back truncated. Both legs
// share the attempt deadline.
func (r *Resolver) exchangeOnce(ctx context.Context, server string, id uint16, query domain.Question, payload []byte) (domain.Message, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	accept := r.acceptFor(id, query)

	data, err := r.udp.Exchange(attemptCtx, server, payload, accept)
	if err != nil {
		return domain.Message{}, err
	}
	msg, err := r.codec.DecodeMessage(data, r.clock.Now())
	if err != nil {
		return domain.Message{}, fmt.Errorf("%s: %w", errFailedToDecode, err)
	}

	if msg.Truncated {
		r.logger.Debug(map[string]any{
			"server": server,
			"size":   len(data),
		}, "Truncated response, retrying over TCP")

		data, err = r.tcp.Exchange(attemptCtx, server, payload, accept)
		if err != nil {
			return domain.Message{}, err
		}
		msg, err = r.codec.DecodeMessage(data, r.clock.Now())
		if err != nil {
			return domain.Message{}, fmt.Errorf("%s: %w", errFailedToDecode, err)
		}
	}

	return r.finish(server, query, msg)
}

// finish maps the response code onto the error taxonomy and stores
// successful answers in the cache.
func (r *Resolver) finish(server string, query domain.Question, msg domain.Message) (domain.Message, error) {
	switch msg.RCode {
	case domain.RCodeNoError:
	case domain.RCodeNXDomain:
		return domain.Message{}, fmt.Errorf("%w: %s", ErrNameNotFound, query.Name)
	case domain.RCodeServFail:
		return domain.Message{}, fmt.Errorf("%w: %s from %s", ErrServerFailure, query.Name, server)
	default:
		return domain.Message{}, fmt.Errorf("%w: %s", ErrQueryFailed, msg.RCode)
	}

	if r.cache != nil && msg.HasAnswers() {
		r.cache.Set(query.CacheKey(), msg.Answers)
	}
	r.logger.Debug(map[string]any{
		"name":    query.Name,
		"type":    query.Type.String(),
		"server":  server,
		"answers": len(msg.Answers),
	}, "Query resolved")
	return msg, nil
}

// acceptFor builds the response validation predicate for one transaction.
// A payload is ours only if the ID matches, the QR bit is set, and the
// echoed question (when present) matches what was asked. Anything else,
// including payloads that fail to decode, is rejected so the UDP exchanger
// keeps waiting for the real answer until the attempt deadline.
func (r *Resolver) acceptFor(id uint16, query domain.Question) func(data []byte) bool {
	return func(data []byte) bool {
		if len(data) < 12 {
			return false
		}
		if binary.BigEndian.Uint16(data[0:2]) != id {
			return false
		}
		msg, err := r.codec.DecodeMessage(data, r.clock.Now())
		if err != nil {
			return false
		}
		if !msg.Response {
			return false
		}
		for _, q := range msg.Questions {
			if !q.Equals(query) {
				return false
			}
		}
		return true
	}
}

// waitBackoff sleeps out the retry delay, aborting early on cancellation.
func (r *Resolver) waitBackoff(ctx context.Context, attempt int) error {
	delay := r.retryDelay(attempt)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryDelay computes the wait before the given attempt on one server.
// attempt is 1-based; the first retry is attempt 2, which gets the base
// delay under both the fixed and exponential policies.
func (r *Resolver) retryDelay(attempt int) time.Duration {
	switch r.backoff {
	case BackoffFixed:
		return r.backoffDelay
	case BackoffExponential:
		return r.backoffDelay << (attempt - 2)
	default:
		return 0
	}
}

// isTerminal reports whether the error is a final answer rather than a
// transport or decode failure worth retrying.
func isTerminal(err error) bool {
	return errors.Is(err, ErrNameNotFound) ||
		errors.Is(err, ErrServerFailure) ||
		errors.Is(err, ErrQueryFailed)
}

// cachedMessage rebuilds a response shape from cached records. The zero ID
// marks it as synthesized rather than read off the wire.
func cachedMessage(query domain.Question, records []domain.ResourceRecord) domain.Message {
	return domain.Message{
		Response:           true,
		RecursionDesired:   true,
		RecursionAvailable: true,
		RCode:              domain.RCodeNoError,
		Questions:          []domain.Question{query},
		Answers:            records,
	}
}

// coalesceKey builds the singleflight key for a question: xxhash over the
// class, type, and lowercased name. Hashing keeps keys compact regardless
// of name length.
func coalesceKey(q domain.Question) string {
	h := xxhash.New()
	var b [4]byte
	binary.BigEndian.PutUint16(b[0:2], uint16(q.Class))
	binary.BigEndian.PutUint16(b[2:4], uint16(q.Type))
	_, _ = h.Write(b[:])
	_, _ = h.WriteString(utils.CanonicalDNSName(q.Name))
	return strconv.FormatUint(h.Sum64(), 16)
}

// randomID returns a cryptographically random transaction ID. Predictable
// IDs are what make off-path response spoofing practical.
func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
