package model

import (
	"sync"
	"time"
)

// Clock accumulates the time one side spends thinking across its turns.
type Clock struct {
	mu          sync.Mutex
	elapsed     time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	now         func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.elapsed += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed = 0
	c.isRunning = false
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.elapsed + c.now().Sub(c.lastStarted)
	}
	return c.elapsed
}
