package client

import "context"

const healthTaskName = "health-monitor"

// maxConsecutivePanics is the number of back-to-back health probe panics
// tolerated before the monitor gives up. A single bad probe must not kill
// the loop, but a probe that panics every tick indicates a programming
// error that logging alone will not fix.
const maxConsecutivePanics = 5

// StartHealthMonitoring starts the background status probe. It is
// idempotent: calling it while the monitor is already running is a no-op.
//
// Every health-check interval the monitor issues a lightweight status
// query, unless a real operation succeeded within the last half interval,
// in which case the probe is skipped. A failed probe marks the client
// disconnected but keeps the monitor running.
func (c *Client) StartHealthMonitoring() error {
	if !c.healthOn.CompareAndSwap(false, true) {
		return nil
	}

	c.healthPanics = 0

	err := c.taskMgr.StartInterval(healthTaskName, c.healthCheckTick, c.cfg.HealthCheckInterval(), false)
	if err != nil {
		c.healthOn.Store(false)
		return err
	}

	c.logger.Debug("health monitoring started", "interval", c.cfg.HealthCheckInterval())

	return nil
}

// StopHealthMonitoring stops the background status probe and waits until it
// has fully terminated. It is a no-op when the monitor is not running.
func (c *Client) StopHealthMonitoring() {
	if !c.healthOn.CompareAndSwap(true, false) {
		return
	}

	c.taskMgr.Stop()
	c.taskMgr.Wait()

	c.logger.Debug("health monitoring stopped")
}

// healthCheckTick runs one probe iteration. It returns false only to
// terminate the monitor after repeated consecutive panics.
func (c *Client) healthCheckTick() (keep bool) {
	keep = true

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		c.healthPanics++
		c.logger.Error("health check panicked",
			"panic", r,
			"consecutive", c.healthPanics,
		)

		if c.healthPanics >= maxConsecutivePanics {
			c.logger.Error("health monitoring giving up after repeated panics")
			c.healthOn.Store(false)
			keep = false
		}
	}()

	if since := c.sinceLastSuccess(); since >= 0 && since < c.cfg.HealthCheckInterval()/2 {
		c.metrics.incHealthSkipCount()
		return keep
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.HealthCheckTimeout())
	defer cancel()

	if _, err := c.GetStatus(ctx); err != nil {
		// GetStatus already marked the client disconnected; the monitor
		// keeps running so a recovered controller is picked back up.
		c.metrics.incHealthFailCount()
		c.logger.Warn("health check failed", "error", err)

		return keep
	}

	c.healthPanics = 0
	c.metrics.incHealthPassCount()

	return keep
}
