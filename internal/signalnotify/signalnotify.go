// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalnotify provides a way to listen for OS signals and handle
// them gracefully. By default it listens for syscall.SIGINT, syscall.SIGTERM,
// syscall.SIGQUIT and os.Interrupt.
//
// It also contains a watch function that requests a graceful stop on the
// first signal of a given type and forces termination on the second.
package signalnotify

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fetchmux/fetchmux/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel that receives OS signals that should terminate the process.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalnotify", "detail", "registering signal handlers", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Watch monitors the signal channel. On the first signal of a given type it
// calls graceful, giving in-flight work a chance to wind down; on the second
// signal of the same type it closes the channel and calls force.
// It returns when the channel is closed.
func Watch(ctx context.Context, sigCh chan os.Signal, graceful func(), force context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Info(ctx, "signalnotify", "detail", "received second signal of type, forcing termination", "signal", sig.String())
			close(sigCh)
			force()

			return
		}

		seen[sig] = struct{}{}

		ctxlog.Info(ctx, "signalnotify", "detail", "received signal, requesting graceful stop", "signal", sig.String())

		if graceful != nil {
			graceful()
		}
	}
}
