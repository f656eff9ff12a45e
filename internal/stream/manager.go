package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/phamduc/solwatch/internal/geyser"
)

const (
	defaultMaxAttempts  = 10
	defaultBaseInterval = 5 * time.Second

	// keepalivePingID is the fixed id carried on every ping reply.
	keepalivePingID = 1
)

// Stream is the bidirectional subscribe stream the manager consumes.
// *geyser.Stream satisfies it; tests substitute fakes.
type Stream interface {
	Send(*geyser.SubscribeRequest) error
	Recv() (*geyser.SubscribeUpdate, error)
	CloseSend() error
}

// Subscriber establishes a subscribe stream. It is the transport
// collaborator; channel setup and authentication live behind it.
type Subscriber interface {
	Subscribe(ctx context.Context, req *geyser.SubscribeRequest) (Stream, error)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, req *geyser.SubscribeRequest) (Stream, error)

func (f SubscriberFunc) Subscribe(ctx context.Context, req *geyser.SubscribeRequest) (Stream, error) {
	return f(ctx, req)
}

// Handler consumes transaction updates. It is called synchronously on the
// receive loop's goroutine, once per transaction, in receive order; handler
// latency directly delays stream consumption. A returned error is logged
// and counted but does not tear down the stream.
type Handler interface {
	HandleTransaction(ctx context.Context, tx *geyser.SubscribeUpdateTransaction, endpoint string) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, tx *geyser.SubscribeUpdateTransaction, endpoint string) error

func (f HandlerFunc) HandleTransaction(ctx context.Context, tx *geyser.SubscribeUpdateTransaction, endpoint string) error {
	return f(ctx, tx, endpoint)
}

// connState is the phase of the connect cycle.
type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateStreaming
	stateBackoff
	stateFailed
)

func (s connState) String() string {
	switch s {
	case stateDisconnected:
		return "disconnected"
	case stateConnecting:
		return "connecting"
	case stateStreaming:
		return "streaming"
	case stateBackoff:
		return "backoff"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds Manager settings. Zero values fall back to defaults
// (10 attempts, 5s base interval).
type Config struct {
	Endpoint     string
	MaxAttempts  uint32
	BaseInterval time.Duration
	Logger       *slog.Logger
}

// Manager owns one logical subscription: it establishes the stream, runs
// the receive loop, answers keepalive pings and reconnects with bounded
// backoff when the stream fails.
//
// A Manager supports exactly one active Connect cycle; its state is mutated
// only by the goroutine running Connect. Connected and Attempts use atomics
// solely so other goroutines (health endpoint) can observe them.
type Manager struct {
	endpoint string
	sub      Subscriber
	handler  Handler
	policy   Policy
	log      *slog.Logger

	connected atomic.Bool
	attempts  atomic.Uint32

	// sleep is the backoff suspension point, replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager builds a Manager around the given transport collaborator and
// transaction handler.
func NewManager(cfg Config, sub Subscriber, handler Handler) *Manager {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseInterval == 0 {
		cfg.BaseInterval = defaultBaseInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Manager{
		endpoint: cfg.Endpoint,
		sub:      sub,
		handler:  handler,
		policy: Policy{
			Base:        cfg.BaseInterval,
			MaxAttempts: cfg.MaxAttempts,
		},
		log:   cfg.Logger.With("endpoint", cfg.Endpoint),
		sleep: sleepCtx,
	}
}

// Connect runs the subscription cycle with the given filter request. The
// request is reused verbatim for every reconnect attempt; changing filter
// criteria requires tearing the manager down and building a new one.
//
// Connect blocks and only returns on a terminal condition: a SetupError
// when the subscribe call itself fails, ErrRetryExhausted when the attempt
// counter reaches its ceiling, or ctx.Err when the context is cancelled.
func (m *Manager) Connect(ctx context.Context, req *geyser.SubscribeRequest) error {
	// The reconnect cycle is a loop, not recursion: state carries the
	// transition and lastErr the most recent stream failure.
	state := stateConnecting
	var lastErr error

	for {
		switch state {
		case stateConnecting:
			s, err := m.sub.Subscribe(ctx, req)
			if err != nil {
				m.setConnected(false)
				return &SetupError{Err: err}
			}

			m.setConnected(true)
			m.attempts.Store(0)
			m.log.Info("subscription established")

			err = m.consume(ctx, s)
			_ = s.CloseSend()
			m.setConnected(false)

			if ctx.Err() != nil {
				return ctx.Err()
			}

			lastErr = &StreamError{Err: err}
			m.log.Error("stream error", "error", err)
			state = stateBackoff

		case stateBackoff:
			n := m.attempts.Load()
			if m.policy.Exhausted(n) {
				state = stateFailed
				continue
			}

			n++
			m.attempts.Store(n)
			reconnectsTotal.Inc()

			delay := m.policy.Delay(n)
			m.log.Warn("reconnecting",
				"attempt", n,
				"max_attempts", m.policy.MaxAttempts,
				"delay", delay,
			)

			if err := m.sleep(ctx, delay); err != nil {
				return err
			}
			state = stateConnecting

		case stateFailed:
			m.log.Error("giving up", "attempts", m.attempts.Load(), "last_error", lastErr)
			return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)

		default:
			// stateDisconnected and stateStreaming are folded into the
			// connecting arm; reaching here is a bug.
			return fmt.Errorf("invalid connect state %v", state)
		}
	}
}

// consume reads the stream until it fails, dispatching each update by
// variant. The returned error is the terminal stream failure; consume
// never returns nil.
func (m *Manager) consume(ctx context.Context, s Stream) error {
	for {
		update, err := s.Recv()
		if err != nil {
			return err
		}

		switch {
		case update.Transaction != nil:
			updatesTotal.WithLabelValues("transaction").Inc()
			if err := m.handler.HandleTransaction(ctx, update.Transaction, m.endpoint); err != nil {
				// Handler faults are isolated per update: log, count,
				// keep consuming.
				handlerErrors.Inc()
				m.log.Error("transaction handler error", "error", err)
			}

		case update.Ping != nil:
			updatesTotal.WithLabelValues("ping").Inc()
			if err := m.answerPing(s); err != nil {
				return fmt.Errorf("keepalive send: %w", err)
			}

		case update.Pong != nil:
			updatesTotal.WithLabelValues("pong").Inc()

		default:
			updatesTotal.WithLabelValues("other").Inc()
		}
	}
}

// answerPing sends exactly one keepalive acknowledgement, before the next
// inbound update is read.
func (m *Manager) answerPing(s Stream) error {
	err := s.Send(&geyser.SubscribeRequest{
		Ping: &geyser.SubscribeRequestPing{Id: keepalivePingID},
	})
	if err != nil {
		return err
	}
	pingsAnswered.Inc()
	return nil
}

// Connected reports whether the receive loop is currently consuming the
// stream. False before the first connect, during backoff and after failure.
func (m *Manager) Connected() bool {
	return m.connected.Load()
}

// Attempts returns the current reconnect attempt counter.
func (m *Manager) Attempts() uint32 {
	return m.attempts.Load()
}

// Endpoint returns the endpoint identity used to tag dispatched payloads.
func (m *Manager) Endpoint() string {
	return m.endpoint
}

func (m *Manager) setConnected(v bool) {
	m.connected.Store(v)
	if v {
		connectedGauge.Set(1)
	} else {
		connectedGauge.Set(0)
	}
}

// sleepCtx waits for the duration or the context, whichever ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
