package client

import "errors"

var (
	// ErrConfigNil is returned by options applied to a nil configuration.
	ErrConfigNil = errors.New("client: config is nil")

	// ErrConnection indicates a connect or retry budget was exhausted by
	// transport-class failures. The client is disconnected when it is
	// returned; the next operation reconnects transparently.
	ErrConnection = errors.New("client: connection failed")

	// ErrProtocol indicates an operation failed for a non-transport reason,
	// typically a response that could not be decoded. The client is
	// disconnected when it is returned.
	ErrProtocol = errors.New("client: protocol failure")

	// ErrOperationTimeout indicates a single send/receive attempt exceeded
	// the configured request timeout. It is retried like a transport
	// failure and surfaces wrapped in ErrConnection once retries run out.
	ErrOperationTimeout = errors.New("client: operation timed out")

	errInvalidPollInterval = errors.New("client: poll interval must be positive")
)
