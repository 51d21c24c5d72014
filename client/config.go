package client

import (
	"errors"
	"sync"
	"time"

	"github.com/seymourav/go-seymour/logger"
)

// ClientConfig represents the configuration parameters for a masking
// controller client.
type ClientConfig struct {
	mu sync.RWMutex

	// maxRetries is the number of additional attempts after the first one,
	// for both connect and operation execution.
	// Defaults to 3.
	maxRetries int

	// requestTimeout bounds one send/receive attempt on the wire.
	// Defaults to 10 seconds.
	requestTimeout time.Duration

	// connectBackoffMin and connectBackoffMax bound the exponential delay
	// between connect attempts.
	// Defaults to 1 second and 30 seconds.
	connectBackoffMin time.Duration
	connectBackoffMax time.Duration

	// operationBackoffMin and operationBackoffMax bound the exponential
	// delay between operation retry attempts.
	// Defaults to 500 milliseconds and 10 seconds.
	operationBackoffMin time.Duration
	operationBackoffMax time.Duration

	// healthCheckInterval is the period of the background status probe.
	// Defaults to 90 seconds.
	healthCheckInterval time.Duration

	// healthCheckTimeout bounds one health probe end to end, retries
	// included.
	// Defaults to 3 seconds.
	healthCheckTimeout time.Duration

	// logger provides a logger instance for client events and errors.
	logger logger.Logger
}

// NewClientConfig creates a client configuration with default values and
// then applies the provided options to customize it.
//
// See the documentation of the various WithXXX functions for the available
// options and their defaults.
//
// Returns a pointer to the initialized ClientConfig and an error if any
// option rejected its value.
func NewClientConfig(opts ...ClientOption) (*ClientConfig, error) {
	cfg := &ClientConfig{
		maxRetries:          3,
		requestTimeout:      10 * time.Second,
		connectBackoffMin:   1 * time.Second,
		connectBackoffMax:   30 * time.Second,
		operationBackoffMin: 500 * time.Millisecond,
		operationBackoffMax: 10 * time.Second,
		healthCheckInterval: 90 * time.Second,
		healthCheckTimeout:  3 * time.Second,
		logger:              logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func (cfg *ClientConfig) MaxRetries() int {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.maxRetries
}

func (cfg *ClientConfig) RequestTimeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.requestTimeout
}

func (cfg *ClientConfig) ConnectBackoff() (time.Duration, time.Duration) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.connectBackoffMin, cfg.connectBackoffMax
}

func (cfg *ClientConfig) OperationBackoff() (time.Duration, time.Duration) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.operationBackoffMin, cfg.operationBackoffMax
}

func (cfg *ClientConfig) HealthCheckInterval() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.healthCheckInterval
}

func (cfg *ClientConfig) HealthCheckTimeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.healthCheckTimeout
}

func (cfg *ClientConfig) Logger() logger.Logger {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.logger
}

// ClientOption represents a functional option for configuring a ClientConfig.
type ClientOption interface {
	apply(*ClientConfig) error
}

type clientOptFunc struct {
	name      string
	applyFunc func(*ClientConfig) error
}

func (c *clientOptFunc) apply(cfg *ClientConfig) error { return c.applyFunc(cfg) }

func newClientOptFunc(name string, f func(*ClientConfig) error) *clientOptFunc {
	return &clientOptFunc{name: name, applyFunc: f}
}

// WithMaxRetries sets the number of additional attempts after the first one
// for connect and operation execution. Zero disables retries entirely.
// An error is returned if the count is negative or above 10, or if the
// configuration is nil.
//
// The default value is 3.
func WithMaxRetries(count int) ClientOption {
	return newClientOptFunc("WithMaxRetries", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if count < 0 || count > 10 {
			return errors.New("max retries out of range [0, 10]")
		}
		cfg.maxRetries = count

		return nil
	})
}

// WithRequestTimeout sets the wall-clock budget of one send/receive attempt.
// An error is returned if the timeout is outside the range of 100
// milliseconds to 120 seconds, or if the configuration is nil.
//
// The default value is 10 seconds.
func WithRequestTimeout(val time.Duration) ClientOption {
	return newClientOptFunc("WithRequestTimeout", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if val < 100*time.Millisecond || val > 120*time.Second {
			return errors.New("request timeout out of range [0.1, 120]")
		}
		cfg.requestTimeout = val

		return nil
	})
}

// WithConnectBackoff sets the minimum and maximum delay between connect
// attempts. The delay starts at the minimum, doubles per attempt, and is
// capped at the maximum. An error is returned if the minimum is not
// positive, the maximum is below the minimum, or the configuration is nil.
//
// The default values are 1 second and 30 seconds.
func WithConnectBackoff(minDelay, maxDelay time.Duration) ClientOption {
	return newClientOptFunc("WithConnectBackoff", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if minDelay <= 0 {
			return errors.New("connect backoff minimum must be positive")
		}
		if maxDelay < minDelay {
			return errors.New("connect backoff maximum below minimum")
		}
		cfg.connectBackoffMin = minDelay
		cfg.connectBackoffMax = maxDelay

		return nil
	})
}

// WithOperationBackoff sets the minimum and maximum delay between operation
// retry attempts. The delay starts at the minimum, doubles per attempt, and
// is capped at the maximum. An error is returned if the minimum is not
// positive, the maximum is below the minimum, or the configuration is nil.
//
// The default values are 500 milliseconds and 10 seconds.
func WithOperationBackoff(minDelay, maxDelay time.Duration) ClientOption {
	return newClientOptFunc("WithOperationBackoff", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if minDelay <= 0 {
			return errors.New("operation backoff minimum must be positive")
		}
		if maxDelay < minDelay {
			return errors.New("operation backoff maximum below minimum")
		}
		cfg.operationBackoffMin = minDelay
		cfg.operationBackoffMax = maxDelay

		return nil
	})
}

// WithHealthCheckInterval sets the period of the background status probe
// started by StartHealthMonitoring. An error is returned if the interval is
// outside the range of 1 second to 1 hour, or if the configuration is nil.
//
// The default value is 90 seconds.
func WithHealthCheckInterval(interval time.Duration) ClientOption {
	return newClientOptFunc("WithHealthCheckInterval", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if interval < 1*time.Second || interval > 1*time.Hour {
			return errors.New("health check interval out of range [1s, 1h]")
		}
		cfg.healthCheckInterval = interval

		return nil
	})
}

// WithHealthCheckTimeout sets the wall-clock budget of one health probe.
// An error is returned if the timeout is outside the range of 100
// milliseconds to 60 seconds, or if the configuration is nil.
//
// The default value is 3 seconds.
func WithHealthCheckTimeout(val time.Duration) ClientOption {
	return newClientOptFunc("WithHealthCheckTimeout", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if val < 100*time.Millisecond || val > 60*time.Second {
			return errors.New("health check timeout out of range [0.1, 60]")
		}
		cfg.healthCheckTimeout = val

		return nil
	})
}

// WithLogger sets the logger for the client.
// An error is returned if the logger or the configuration is nil.
//
// The default logger is the global logger instance.
func WithLogger(l logger.Logger) ClientOption {
	return newClientOptFunc("WithLogger", func(cfg *ClientConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
