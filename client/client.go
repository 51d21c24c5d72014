package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seymourav/go-seymour/internal/pool"
	"github.com/seymourav/go-seymour/internal/task"
	"github.com/seymourav/go-seymour/logger"
	"github.com/seymourav/go-seymour/protocol"
	"github.com/seymourav/go-seymour/transport"
)

// Client coordinates request/response operations against one masking
// controller over a half-duplex transport.
//
// A single Client may be shared by arbitrarily many goroutines. At most one
// send/receive pair is ever in flight on the transport; concurrent callers
// queue on an internal mutex and each observes a complete, non-interleaved
// exchange.
type Client struct {
	cfg       *ClientConfig
	transport transport.Transport
	logger    logger.Logger
	metrics   ConnectionMetrics

	ctx    context.Context
	cancel context.CancelFunc

	// mu serializes connect and whole send/receive pairs. It is the only
	// path through which the transport is touched.
	mu        sync.Mutex
	connected bool

	// lastSuccess is the unix-nano timestamp of the last successful
	// operation, zero when none has succeeded yet.
	lastSuccess atomic.Int64

	taskMgr      *task.Manager
	healthOn     atomic.Bool
	healthPanics int
}

// ConnectionStats is a point-in-time snapshot of the client's link state.
type ConnectionStats struct {
	// Connected reports whether the client currently considers the
	// transport usable.
	Connected bool
	// LastSuccess is the wall-clock time of the last successful operation,
	// zero when none has succeeded yet.
	LastSuccess time.Time
	// SinceLastSuccess is the elapsed time since LastSuccess, or -1 when no
	// operation has succeeded yet.
	SinceLastSuccess time.Duration
}

// NewClient creates a client driving the given transport.
//
// The ctx parameter is the client's lifetime context; canceling it aborts
// in-flight waits and stops background activity. The cfg parameter may be
// nil, in which case the default configuration is used.
//
// The client starts disconnected. The first operation connects
// transparently, or call Connect to establish the link eagerly.
func NewClient(ctx context.Context, tr transport.Transport, cfg *ClientConfig) (*Client, error) {
	if tr == nil {
		return nil, errors.New("client: transport is nil")
	}

	if cfg == nil {
		var err error
		cfg, err = NewClientConfig()
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)

	c := &Client{
		cfg:       cfg,
		transport: tr,
		logger:    cfg.Logger(),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.taskMgr = task.NewManager(ctx, c.logger)

	return c, nil
}

// Connect establishes the transport link. It is idempotent: when already
// connected it returns immediately without touching the transport.
//
// Failed attempts are retried with exponential backoff as long as the
// failure is transport-class. Exhausting the budget returns an error
// wrapping ErrConnection and the last underlying failure.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.connected {
		return nil
	}

	minDelay, maxDelay := c.cfg.ConnectBackoff()
	attempts := c.cfg.MaxRetries() + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.metrics.incConnectRetryCount()
			if err := c.sleep(ctx, backoffDelay(minDelay, maxDelay, attempt-1)); err != nil {
				return fmt.Errorf("%w: %w", ErrConnection, err)
			}
		}

		err := c.transport.Connect()
		if err == nil {
			c.connected = true
			c.metrics.incConnectCount()
			c.logger.Debug("transport connected", "transport", c.transport.String())

			return nil
		}

		lastErr = err
		c.logger.Warn("connect attempt failed",
			"transport", c.transport.String(),
			"attempt", attempt,
			"error", err,
		)

		if !isTransportError(err) {
			break
		}
	}

	return fmt.Errorf("%w: %w", ErrConnection, lastErr)
}

// Close shuts the client down. It stops health monitoring and waits until
// the monitor has fully terminated, then closes the transport if connected.
// Close is idempotent and safe to call concurrently.
func (c *Client) Close() error {
	c.healthOn.Store(false)
	c.taskMgr.Stop()
	c.taskMgr.Wait()

	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false

	return c.transport.Close()
}

// IsConnected reports whether the client currently considers the transport
// usable.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connected
}

// Stats returns a snapshot of the client's link state.
func (c *Client) Stats() ConnectionStats {
	stats := ConnectionStats{
		Connected:        c.IsConnected(),
		SinceLastSuccess: c.sinceLastSuccess(),
	}
	if nanos := c.lastSuccess.Load(); nanos != 0 {
		stats.LastSuccess = time.Unix(0, nanos)
	}

	return stats
}

// Metrics returns the client's metric counters. The returned pointer stays
// valid for the client's lifetime.
func (c *Client) Metrics() *ConnectionMetrics {
	return &c.metrics
}

// sinceLastSuccess returns the elapsed time since the last successful
// operation, or -1 when no operation has succeeded yet.
func (c *Client) sinceLastSuccess() time.Duration {
	nanos := c.lastSuccess.Load()
	if nanos == 0 {
		return -1
	}

	return time.Since(time.Unix(0, nanos))
}

// GetStatus queries the controller's operating state.
func (c *Client) GetStatus(ctx context.Context) (protocol.MaskStatus, error) {
	resp, err := c.execute(ctx, protocol.EncodeStatus(), true)
	if err != nil {
		return protocol.MaskStatus{}, err
	}

	status, err := protocol.DecodeStatus(resp)
	if err != nil {
		return protocol.MaskStatus{}, c.protocolFailure(err)
	}

	return status, nil
}

// GetPositions queries the absolute position of every installed motor.
func (c *Client) GetPositions(ctx context.Context) ([]protocol.MaskPosition, error) {
	resp, err := c.execute(ctx, protocol.EncodePositions(), true)
	if err != nil {
		return nil, err
	}

	positions, err := protocol.DecodePositions(resp)
	if err != nil {
		return nil, c.protocolFailure(err)
	}

	return positions, nil
}

// GetSystemInfo queries the controller's static device descriptor.
func (c *Client) GetSystemInfo(ctx context.Context) (protocol.SystemInfo, error) {
	resp, err := c.execute(ctx, protocol.EncodeReadSystemInfo(), true)
	if err != nil {
		return protocol.SystemInfo{}, err
	}

	info, err := protocol.DecodeSystemInfo(resp)
	if err != nil {
		return protocol.SystemInfo{}, c.protocolFailure(err)
	}

	return info, nil
}

// GetRatioSettings queries the stored aspect-ratio presets.
func (c *Client) GetRatioSettings(ctx context.Context) ([]protocol.RatioSetting, error) {
	resp, err := c.execute(ctx, protocol.EncodeReadSettings(), true)
	if err != nil {
		return nil, err
	}

	settings, err := protocol.DecodeSettings(resp)
	if err != nil {
		return nil, c.protocolFailure(err)
	}

	return settings, nil
}

// GetDiagnostics queries one diagnostic report from the controller's
// debug-log channel and returns its raw text.
func (c *Client) GetDiagnostics(ctx context.Context, option protocol.DiagnosticOption) (string, error) {
	if !option.IsValid() {
		return "", fmt.Errorf("client: invalid diagnostic option %q", string(option))
	}

	resp, err := c.execute(ctx, protocol.EncodeDiagnostics(option), true)
	if err != nil {
		return "", err
	}

	report, err := protocol.DecodeDiagnostics(resp)
	if err != nil {
		return "", c.protocolFailure(err)
	}

	return report, nil
}

// MoveOut starts an outward movement of the given motor. The command is
// fire-and-forget: the controller sends no response frame. Use GetStatus or
// WaitForStatus to observe completion.
func (c *Client) MoveOut(ctx context.Context, motor protocol.MotorID, movement protocol.Movement) error {
	if !motor.IsValid() {
		return fmt.Errorf("client: invalid motor selector %q", string(motor))
	}
	if !movement.IsValid() {
		return fmt.Errorf("client: invalid movement %q", string(movement))
	}

	_, err := c.execute(ctx, protocol.EncodeMoveOut(motor, movement), false)

	return err
}

// MoveIn starts an inward movement of the given motor. The command is
// fire-and-forget.
func (c *Client) MoveIn(ctx context.Context, motor protocol.MotorID, movement protocol.Movement) error {
	if !motor.IsValid() {
		return fmt.Errorf("client: invalid motor selector %q", string(motor))
	}
	if !movement.IsValid() {
		return fmt.Errorf("client: invalid movement %q", string(movement))
	}

	_, err := c.execute(ctx, protocol.EncodeMoveIn(motor, movement), false)

	return err
}

// MoveToRatio moves all motors to the stored preset identified by ratio.
// The command is fire-and-forget.
func (c *Client) MoveToRatio(ctx context.Context, ratio protocol.Ratio) error {
	_, err := c.execute(ctx, protocol.EncodeMoveToRatio(ratio), false)

	return err
}

// Home drives the given motor to its home position. The command is
// fire-and-forget.
func (c *Client) Home(ctx context.Context, motor protocol.MotorID) error {
	if !motor.IsValid() {
		return fmt.Errorf("client: invalid motor selector %q", string(motor))
	}

	_, err := c.execute(ctx, protocol.EncodeHome(motor), false)

	return err
}

// Halt stops any movement of the given motor. The command is
// fire-and-forget.
func (c *Client) Halt(ctx context.Context, motor protocol.MotorID) error {
	if !motor.IsValid() {
		return fmt.Errorf("client: invalid motor selector %q", string(motor))
	}

	_, err := c.execute(ctx, protocol.EncodeHalt(motor), false)

	return err
}

// Calibrate starts a calibration cycle of the given motor. The command is
// fire-and-forget.
func (c *Client) Calibrate(ctx context.Context, motor protocol.MotorID) error {
	if !motor.IsValid() {
		return fmt.Errorf("client: invalid motor selector %q", string(motor))
	}

	_, err := c.execute(ctx, protocol.EncodeCalibrate(motor), false)

	return err
}

// UpdateRatio stores the motors' current positions as the preset identified
// by ratio. The command is fire-and-forget.
func (c *Client) UpdateRatio(ctx context.Context, ratio protocol.Ratio) error {
	_, err := c.execute(ctx, protocol.EncodeUpdateRatio(ratio), false)

	return err
}

// ResetFactoryDefault clears one stored preset, or all of them when ratio
// is nil. The command is fire-and-forget and cannot be undone.
func (c *Client) ResetFactoryDefault(ctx context.Context, ratio *protocol.Ratio) error {
	_, err := c.execute(ctx, protocol.EncodeClearSettings(ratio), false)

	return err
}

// execute runs one logical operation through the serialized path:
// reconnect if needed, send the frame, and read the response when
// expectReply is set. The whole exchange happens under the client mutex so
// concurrent callers never interleave on the half-duplex wire.
//
// Any failure marks the client disconnected. Transport-class failures and
// attempt timeouts surface wrapped in ErrConnection, everything else in
// ErrProtocol.
func (c *Client) execute(ctx context.Context, frame []byte, expectReply bool) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.executeLocked(ctx, frame, expectReply)
	if err != nil {
		c.connected = false
		c.metrics.incOperationErrCount()

		switch {
		case errors.Is(err, ErrConnection):
			return nil, err
		case errors.Is(err, context.Canceled):
			return nil, err
		case isTransportError(err):
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
		}
	}

	c.lastSuccess.Store(time.Now().UnixNano())

	return resp, nil
}

func (c *Client) executeLocked(ctx context.Context, frame []byte, expectReply bool) ([]byte, error) {
	minDelay, maxDelay := c.cfg.OperationBackoff()
	attempts := c.cfg.MaxRetries() + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.metrics.incOperationRetryCount()
			if err := c.sleep(ctx, backoffDelay(minDelay, maxDelay, attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.connectLocked(ctx); err != nil {
			return nil, err
		}

		resp, err := c.attempt(ctx, frame, expectReply)
		if err == nil {
			return resp, nil
		}

		// A failed attempt leaves the wire state unknown, so the link is
		// torn down and the next attempt reconnects from scratch.
		c.connected = false
		_ = c.transport.Close()

		lastErr = err
		c.logger.Warn("operation attempt failed",
			"transport", c.transport.String(),
			"attempt", attempt,
			"error", err,
		)

		if !isTransportError(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("retries exhausted after %d attempts: %w", attempts, lastErr)
}

// attempt performs one send(+receive) exchange bounded by the request
// timeout. Expiry closes the transport to unblock the pending read, and the
// exchange goroutine is always joined before attempt returns so no stale
// read can race with the next attempt.
func (c *Client) attempt(ctx context.Context, frame []byte, expectReply bool) ([]byte, error) {
	type result struct {
		resp []byte
		err  error
	}

	done := make(chan result, 1)
	go func() {
		if err := c.transport.Send(frame); err != nil {
			done <- result{err: err}
			return
		}
		c.metrics.incFrameSendCount()

		if !expectReply {
			done <- result{}
			return
		}

		resp, err := c.transport.Receive()
		if err == nil {
			c.metrics.incFrameRecvCount()
		}
		done <- result{resp: resp, err: err}
	}()

	timeout := c.cfg.RequestTimeout()
	timer := pool.GetTimer(timeout)
	defer pool.PutTimer(timer)

	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		_ = c.transport.Close()
		<-done

		return nil, ctx.Err()
	case <-c.ctx.Done():
		_ = c.transport.Close()
		<-done

		return nil, c.ctx.Err()
	case <-timer.C:
		_ = c.transport.Close()
		<-done

		return nil, fmt.Errorf("%w after %s", ErrOperationTimeout, timeout)
	}
}

// protocolFailure marks the client disconnected after a decode failure and
// wraps the error in ErrProtocol.
func (c *Client) protocolFailure(err error) error {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.metrics.incOperationErrCount()

	return fmt.Errorf("%w: %w", ErrProtocol, err)
}

// sleep waits for the given duration, aborting early when either the call
// context or the client lifetime context is done.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := pool.GetTimer(d)
	defer pool.PutTimer(timer)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isTransportError reports whether err is a transport-class failure worth
// retrying: transport sentinels, attempt timeouts, network errors, and
// OS-level I/O errors.
func isTransportError(err error) bool {
	if errors.Is(err, transport.ErrNotConnected) ||
		errors.Is(err, transport.ErrClosed) ||
		errors.Is(err, ErrOperationTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		return true
	}

	return false
}
