package transport

import (
	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock implementation of Transport for use in
// tests of code that consumes the transport contract.
type MockTransport struct {
	mock.Mock
}

var _ Transport = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) Connect() error {
	args := m.Called()

	return args.Error(0)
}

func (m *MockTransport) Send(frame []byte) error {
	args := m.Called(frame)

	return args.Error(0)
}

func (m *MockTransport) Receive() ([]byte, error) {
	args := m.Called()

	if frame := args.Get(0); frame != nil {
		return frame.([]byte), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTransport) Close() error {
	args := m.Called()

	return args.Error(0)
}

func (m *MockTransport) String() string {
	return "mock"
}
