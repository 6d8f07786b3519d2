package transport

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTCPStub runs a loopback TCP server that invokes handle once per
// accepted connection.
func startTCPStub(t *testing.T, handle func(conn net.Conn)) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				handle(conn)
			}()
		}
	}()

	return ln.Addr().String()
}

// readFrame reads one length-prefixed DNS message from the stream.
func readFrame(conn net.Conn) ([]byte, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(conn, header); err != nil {
		return nil, err
	}
	body := make([]byte, binary.BigEndian.Uint16(header))
	if _, err := io.ReadFull(conn, body); err != nil {
		return nil, err
	}
	return body, nil
}

// writeFrame writes one length-prefixed DNS message to the stream.
func writeFrame(conn net.Conn, msg []byte) error {
	frame := make([]byte, 2+len(msg))
	binary.BigEndian.PutUint16(frame[:2], uint16(len(msg)))
	copy(frame[2:], msg)
	_, err := conn.Write(frame)
	return err
}

func TestTCPExchanger_Exchange(t *testing.T) {
	query := []byte{0x12, 0x34, 0x01, 0x00}
	response := []byte{0x12, 0x34, 0x81, 0x80, 0xCA, 0xFE}

	received := make(chan []byte, 1)
	addr := startTCPStub(t, func(conn net.Conn) {
		got, err := readFrame(conn)
		if err != nil {
			return
		}
		received <- got
		_ = writeFrame(conn, response)
	})

	exchanger := NewTCPExchanger(TCPOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := exchanger.Exchange(ctx, addr, query, nil)
	require.NoError(t, err)
	assert.Equal(t, response, got)

	select {
	case sent := <-received:
		assert.Equal(t, query, sent)
	default:
		t.Fatal("server never received the query")
	}
}

func TestTCPExchanger_Timeout(t *testing.T) {
	addr := startTCPStub(t, func(conn net.Conn) {
		// Accept the query but keep the caller waiting past its deadline.
		_, _ = readFrame(conn)
		time.Sleep(500 * time.Millisecond)
	})

	exchanger := NewTCPExchanger(TCPOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err := exchanger.Exchange(ctx, addr, []byte{0x00, 0x01}, nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestTCPExchanger_OversizedQuery(t *testing.T) {
	dialed := false
	exchanger := NewTCPExchanger(TCPOptions{
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			dialed = true
			return nil, errors.New("should not be reached")
		},
	})

	_, err := exchanger.Exchange(context.Background(), "192.0.2.1:53", make([]byte, 70000), nil)
	assert.ErrorIs(t, err, ErrExchange)
	assert.Contains(t, err.Error(), "frame limit")
	assert.False(t, dialed)
}

func TestTCPExchanger_ShortResponse(t *testing.T) {
	addr := startTCPStub(t, func(conn net.Conn) {
		if _, err := readFrame(conn); err != nil {
			return
		}
		// Promise 100 bytes, deliver 3, hang up.
		_, _ = conn.Write([]byte{0x00, 0x64, 0xAA, 0xBB, 0xCC})
	})

	exchanger := NewTCPExchanger(TCPOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := exchanger.Exchange(ctx, addr, []byte{0x00, 0x01}, nil)
	assert.ErrorIs(t, err, ErrExchange)
	assert.Contains(t, err.Error(), "read message")
}

func TestTCPExchanger_RejectedResponse(t *testing.T) {
	addr := startTCPStub(t, func(conn net.Conn) {
		if _, err := readFrame(conn); err != nil {
			return
		}
		_ = writeFrame(conn, []byte{0xDE, 0xAD})
	})

	accept := func(data []byte) bool { return false }

	exchanger := NewTCPExchanger(TCPOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := exchanger.Exchange(ctx, addr, []byte{0x00, 0x01}, accept)
	assert.ErrorIs(t, err, ErrExchange)
	assert.Contains(t, err.Error(), "response failed validation")
}

func TestTCPExchanger_DialError(t *testing.T) {
	exchanger := NewTCPExchanger(TCPOptions{
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			return nil, errors.New("mocked dial error")
		},
	})

	_, err := exchanger.Exchange(context.Background(), "192.0.2.1:53", []byte{0x00}, nil)
	assert.ErrorIs(t, err, ErrExchange)
	assert.Contains(t, err.Error(), "connect")
}

func TestTCPExchanger_WriteError(t *testing.T) {
	exchanger := NewTCPExchanger(TCPOptions{
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			return &errConn{writeErr: errors.New("mocked write error")}, nil
		},
	})

	_, err := exchanger.Exchange(context.Background(), "192.0.2.1:53", []byte{0x00}, nil)
	assert.ErrorIs(t, err, ErrExchange)
	assert.Contains(t, err.Error(), "write")
}

func TestNewTCPExchanger(t *testing.T) {
	exchanger := NewTCPExchanger(TCPOptions{})
	assert.NotNil(t, exchanger.dial)
	assert.NotNil(t, exchanger.logger)
}
