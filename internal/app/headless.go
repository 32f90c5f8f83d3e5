package app

import (
	"context"
	"time"

	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/pipeline"
	"armkeys.klederson.com/internal/transport"
)

// sinkBuffer absorbs bursts of notifications between ticks.
const sinkBuffer = 256

// RunHeadless drives the pipeline without a TUI until ctx is done. Transport
// events and ticks are served from one select loop, so the pipeline stays on
// a single goroutine.
func RunHeadless(ctx context.Context, p *pipeline.Pipeline, t transport.Transport, tick time.Duration, log *logging.Logger) error {
	sink := transport.NewChanSink(sinkBuffer)
	if err := t.Start(sink); err != nil {
		return err
	}
	defer t.Stop()
	defer sink.Close()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	log.Info("running headless", "tick", tick)
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil

		case msg := <-sink.C:
			p.Dispatch(msg)

		case <-ticker.C:
			for _, r := range p.Tick() {
				if r.Pressed {
					log.Info("key", "device", r.ID, "key", string(r.Symbol))
				}
			}
		}
	}
}
