// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// ChannelReporter implements Reporter using a Go channel.
// It provides a thread-safe way to send progress events to listeners.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer
// size. A larger buffer size reduces the chance of dropping events under a
// slow consumer.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report. It sends the event to the channel in a
// non-blocking manner; if the channel is full or closed, the event is
// dropped rather than stalling the batch run.
func (cr *ChannelReporter) Report(event Event) {
	select {
	case <-cr.ctx.Done():
		return
	default:
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	default:
		// Channel is full, drop the event to avoid blocking.
	}
}

// Close implements Reporter.Close. It closes the channel and cancels the
// context; safe to call more than once.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.cancel()
		close(cr.ch)
		cr.wg.Wait()
	})
}

// Listen starts a goroutine forwarding events to the provided listener until
// the reporter is closed or the context is cancelled.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events returns a read-only channel of progress events, for consumers that
// want to handle events manually instead of using a listener.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
