// Package transport delivers armband events to the pipeline.
//
// Transports run in their own goroutines and never call the pipeline
// directly: every event is handed to a Sink as a message, and whoever owns
// the pipeline applies the messages one at a time.
package transport

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/logging"
)

// Sink receives transport messages. *tea.Program satisfies it.
type Sink interface {
	Send(msg tea.Msg)
}

// Transport produces armband events.
type Transport interface {
	Start(sink Sink) error
	Stop()
}

// ChanSink is a Sink backed by a channel, for running without a TUI.
// Once closed, Send drops messages instead of blocking, so transport
// goroutines never outlive the loop that was reading C.
type ChanSink struct {
	C chan tea.Msg

	done chan struct{}
	once sync.Once
}

// NewChanSink creates a sink buffering up to size messages.
func NewChanSink(size int) *ChanSink {
	return &ChanSink{
		C:    make(chan tea.Msg, size),
		done: make(chan struct{}),
	}
}

// Send delivers msg, blocking while the channel is full and the sink is open.
func (c *ChanSink) Send(msg tea.Msg) {
	select {
	case <-c.done:
	case c.C <- msg:
	}
}

// Close stops accepting messages and releases blocked senders.
func (c *ChanSink) Close() {
	c.once.Do(func() { close(c.done) })
}

// New returns the transport selected by cfg.
func New(cfg *config.Config, log *logging.Logger) (Transport, error) {
	switch cfg.Transport.Mode {
	case config.TransportDemo:
		return NewDemo(config.DemoDevices, log.With("component", "demo")), nil
	case config.TransportBLE:
		return NewBLE(cfg.ScanTimeout(), config.MaxDevices, log.With("component", "ble")), nil
	default:
		return nil, fmt.Errorf("transport: unknown mode %q", cfg.Transport.Mode)
	}
}
