package client

import (
	"context"
	"slices"
	"time"

	"github.com/seymourav/go-seymour/protocol"
)

// MovementComplete lists the status codes in which no motor is moving.
// It is the usual target set for WaitForStatus after a movement command.
var MovementComplete = []protocol.StatusCode{
	protocol.StatusStoppedAtRatio,
	protocol.StatusHalted,
	protocol.StatusError,
}

// WaitForStatus polls the controller until it reports one of the wanted
// status codes, then returns that status. The deadline comes from ctx;
// pollInterval must be positive.
//
// Movement commands are fire-and-forget and the controller needs a moment
// to leave its idle state after accepting one, so the first poll is delayed
// a few intervals. Poll failures are returned immediately.
func (c *Client) WaitForStatus(ctx context.Context, pollInterval time.Duration, want ...protocol.StatusCode) (protocol.MaskStatus, error) {
	if pollInterval <= 0 {
		return protocol.MaskStatus{}, errInvalidPollInterval
	}
	if len(want) == 0 {
		want = MovementComplete
	}

	if err := c.sleep(ctx, 4*pollInterval); err != nil {
		return protocol.MaskStatus{}, err
	}

	for {
		status, err := c.GetStatus(ctx)
		if err != nil {
			return protocol.MaskStatus{}, err
		}

		if slices.Contains(want, status.Code) {
			return status, nil
		}

		if err := c.sleep(ctx, pollInterval); err != nil {
			return protocol.MaskStatus{}, err
		}
	}
}
