package client

import (
	"sync/atomic"
)

// ConnectionMetrics contains atomic metrics for a client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ConnectionMetrics struct {
	// FrameSendCount indicates the number of request frames sent.
	FrameSendCount atomic.Uint64
	// FrameRecvCount indicates the number of response frames received.
	FrameRecvCount atomic.Uint64

	// OperationErrCount indicates the number of operations that failed
	// after exhausting their retry budget.
	OperationErrCount atomic.Uint64
	// OperationRetryCount indicates the number of operation retry attempts.
	OperationRetryCount atomic.Uint64

	// ConnectCount indicates the number of successful transport connects.
	ConnectCount atomic.Uint64
	// ConnectRetryCount indicates the number of connect retry attempts.
	ConnectRetryCount atomic.Uint64

	// HealthPassCount indicates the number of health checks that passed.
	HealthPassCount atomic.Uint64
	// HealthFailCount indicates the number of health checks that failed.
	HealthFailCount atomic.Uint64
	// HealthSkipCount indicates the number of health checks skipped due to
	// recent operation traffic.
	HealthSkipCount atomic.Uint64
}

func (m *ConnectionMetrics) incFrameSendCount() {
	m.FrameSendCount.Add(1)
}

func (m *ConnectionMetrics) incFrameRecvCount() {
	m.FrameRecvCount.Add(1)
}

func (m *ConnectionMetrics) incOperationErrCount() {
	m.OperationErrCount.Add(1)
}

func (m *ConnectionMetrics) incOperationRetryCount() {
	m.OperationRetryCount.Add(1)
}

func (m *ConnectionMetrics) incConnectCount() {
	m.ConnectCount.Add(1)
}

func (m *ConnectionMetrics) incConnectRetryCount() {
	m.ConnectRetryCount.Add(1)
}

func (m *ConnectionMetrics) incHealthPassCount() {
	m.HealthPassCount.Add(1)
}

func (m *ConnectionMetrics) incHealthFailCount() {
	m.HealthFailCount.Add(1)
}

func (m *ConnectionMetrics) incHealthSkipCount() {
	m.HealthSkipCount.Add(1)
}
