// Package socketio is a bootstrap transport that forms a process group
// through a socket.io coordinator. The coordinator assigns ranks, allocates
// communication contexts for collective duplication and relays aborts.
//
// Events, all carrying one JSON object:
//
//	gmpi:init      -> {job, size}
//	gmpi:assigned  <- {rank, size, context}
//	gmpi:dup       -> {context, seq}
//	gmpi:dup:ok    <- {context, seq, id}
//	gmpi:abort     -> {code, reason}
//	gmpi:finalize  -> {rank}
package socketio

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	eventInit     = "gmpi:init"
	eventAssigned = "gmpi:assigned"
	eventDup      = "gmpi:dup"
	eventDupOK    = "gmpi:dup:ok"
	eventAbort    = "gmpi:abort"
	eventFinalize = "gmpi:finalize"
)

// Options configure the transport.
type Options struct {
	// Job names the process group; all members use the same value.
	Job string
	// Size is the expected group size; 0 lets the coordinator decide.
	Size      int
	Namespace string
	// Timeout bounds connection and rank assignment. Defaults to 15s.
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// conn is the subset of a socket.io client the transport drives.
type conn interface {
	on(event string, fn func(...any))
	once(event string, fn func(...any))
	emit(event string, payload any)
	connect()
	disconnect()
}

// Transport joins a group through a coordinator.
type Transport struct {
	opts Options
	dial func() (conn, error)

	mu      sync.Mutex
	c       conn
	rank    int
	pending map[string]chan string
}

var _ bootstrap.Transport = (*Transport)(nil)

// New returns a transport for the coordinator at rawURL. Nothing is dialled
// until Init.
func New(rawURL string, opts Options) (*Transport, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("coordinator URL %q must include scheme and host", rawURL)
	}
	if opts.Job == "" {
		return nil, errors.New("socketio transport: job name is required")
	}
	return newTransport(opts, func() (conn, error) { return dialSocket(parsed, opts), nil }), nil
}

func newTransport(opts Options, dial func() (conn, error)) *Transport {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Transport{opts: opts, dial: dial, pending: make(map[string]chan string)}
}

type assignment struct {
	rank, size int
	context    string
	err        error
}

// Init connects, announces the job and waits for a rank assignment.
func (t *Transport) Init(ctx context.Context) (bootstrap.Communicator, error) {
	logger := ctxlog.FromContext(ctx).With("transport", "socketio", "job", t.opts.Job)

	t.mu.Lock()
	if t.c != nil {
		t.mu.Unlock()
		return nil, errors.New("socketio transport: already joined")
	}
	c, err := t.dial()
	if err != nil {
		t.mu.Unlock()
		return nil, fmt.Errorf("socketio transport: %w", err)
	}
	t.c = c
	t.mu.Unlock()

	done := make(chan assignment, 1)
	c.once("connect", func(...any) {
		logger.Debug("Connected to coordinator; announcing job.")
		c.emit(eventInit, map[string]any{"job": t.opts.Job, "size": t.opts.Size})
	})
	c.once("connect_error", func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- assignment{err: err}:
		default:
		}
	})
	c.once(eventAssigned, func(data ...any) {
		a, err := decodeAssignment(data)
		a.err = err
		select {
		case done <- a:
		default:
		}
	})
	c.on(eventDupOK, t.onDuplicated)

	c.connect()

	opCtx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()
	select {
	case <-opCtx.Done():
		t.leave(c)
		return nil, fmt.Errorf("timed out after %v waiting for rank assignment", t.opts.Timeout)
	case a := <-done:
		if a.err != nil {
			t.leave(c)
			return nil, fmt.Errorf("socket.io connection failed: %w", a.err)
		}
		t.mu.Lock()
		t.rank = a.rank
		t.mu.Unlock()
		logger.Info("Rank assigned by coordinator.", "rank", a.rank, "size", a.size)
		return &comm{t: t, rank: a.rank, size: a.size, id: a.context}, nil
	}
}

// leave drops a connection that never got a rank so Init can be retried.
func (t *Transport) leave(c conn) {
	c.disconnect()
	t.mu.Lock()
	if t.c == c {
		t.c = nil
	}
	t.mu.Unlock()
}

func (t *Transport) onDuplicated(data ...any) {
	obj, err := object(data)
	if err != nil {
		return
	}
	parent, _ := obj["context"].(string)
	seq, _ := number(obj["seq"])
	id, _ := obj["id"].(string)

	key := dupKey(parent, seq)
	t.mu.Lock()
	ch, ok := t.pending[key]
	delete(t.pending, key)
	t.mu.Unlock()
	if ok {
		ch <- id
	}
}

func (t *Transport) duplicate(ctx context.Context, parent string, seq int) (string, error) {
	key := dupKey(parent, seq)
	ch := make(chan string, 1)

	t.mu.Lock()
	c := t.c
	if c == nil {
		t.mu.Unlock()
		return "", errors.New("socketio transport: not joined")
	}
	t.pending[key] = ch
	t.mu.Unlock()

	c.emit(eventDup, map[string]any{"context": parent, "seq": seq})
	select {
	case id := <-ch:
		if id == "" {
			return "", fmt.Errorf("coordinator returned empty context for %s", key)
		}
		return id, nil
	case <-ctx.Done():
		t.mu.Lock()
		delete(t.pending, key)
		t.mu.Unlock()
		return "", fmt.Errorf("waiting for all ranks on %s: %w", key, ctx.Err())
	}
}

// Abort asks the coordinator to terminate the group and disconnects.
func (t *Transport) Abort(ctx context.Context, code int, reason string) error {
	t.mu.Lock()
	c := t.c
	t.mu.Unlock()
	if c == nil {
		return errors.New("socketio transport: not joined")
	}
	ctxlog.FromContext(ctx).Error("Aborting process group.", "code", code, "reason", reason)
	c.emit(eventAbort, map[string]any{"code": code, "reason": reason})
	c.disconnect()
	return nil
}

// Finalize announces departure and disconnects.
func (t *Transport) Finalize(context.Context) error {
	t.mu.Lock()
	c, rank := t.c, t.rank
	t.mu.Unlock()
	if c == nil {
		return nil
	}
	c.emit(eventFinalize, map[string]any{"rank": rank})
	c.disconnect()
	return nil
}

type comm struct {
	t    *Transport
	rank int
	size int
	id   string
	seq  int
}

func (c *comm) Size() int         { return c.size }
func (c *comm) Rank() int         { return c.rank }
func (c *comm) ContextID() string { return c.id }

func (c *comm) Duplicate(ctx context.Context) (bootstrap.Communicator, error) {
	seq := c.seq
	c.seq++
	id, err := c.t.duplicate(ctx, c.id, seq)
	if err != nil {
		return nil, err
	}
	return &comm{t: c.t, rank: c.rank, size: c.size, id: id}, nil
}

func dupKey(ctxID string, seq int) string { return fmt.Sprintf("%s/%d", ctxID, seq) }

func decodeAssignment(data []any) (assignment, error) {
	obj, err := object(data)
	if err != nil {
		return assignment{}, err
	}
	rank, okRank := number(obj["rank"])
	size, okSize := number(obj["size"])
	id, _ := obj["context"].(string)
	if !okRank || !okSize || size < 1 || rank < 0 || rank >= size || id == "" {
		return assignment{}, fmt.Errorf("malformed rank assignment %v", obj)
	}
	return assignment{rank: rank, size: size, context: id}, nil
}

func object(data []any) (map[string]any, error) {
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}
	obj, ok := data[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload is %T, want object", data[0])
	}
	return obj, nil
}

// number accepts JSON numbers, which arrive as float64.
func number(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), n == float64(int(n))
	case int:
		return n, true
	default:
		return 0, false
	}
}

// socketConn adapts a socket.io client socket.
type socketConn struct {
	io *socket.Socket
}

func dialSocket(u *url.URL, opts Options) conn {
	sopts := socket.DefaultOptions()
	sopts.SetPath(u.Path)
	if opts.InsecureSkipVerify {
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	manager := socket.NewManager(baseURL, sopts)
	return &socketConn{io: manager.Socket(opts.Namespace, sopts)}
}

func (s *socketConn) on(event string, fn func(...any))   { s.io.On(types.EventName(event), fn) }
func (s *socketConn) once(event string, fn func(...any)) { s.io.Once(types.EventName(event), fn) }
func (s *socketConn) emit(event string, payload any)     { s.io.Emit(event, payload) }
func (s *socketConn) connect()                           { s.io.Connect() }
func (s *socketConn) disconnect()                        { s.io.Disconnect() }
