// Package cli holds the wiring shared by the randomizer commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext is cancelled by SIGINT, SIGTERM or Cancel. The cancellation
// cause records which signal, if any, stopped it.
type SignalContext struct {
	context.Context
	cancel context.CancelCauseFunc
}

// signalCause is the cancellation cause of a signal-stopped context.
type signalCause struct {
	sig os.Signal
}

func (c signalCause) Error() string {
	return fmt.Sprintf("received %s", c.sig)
}

// NewSignalContext derives a SignalContext from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancelCause(parent)
	sc := &SignalContext{Context: ctx, cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			cancel(signalCause{sig: sig})
		case <-ctx.Done():
		}
	}()
	return sc
}

// Cancel stops the context without a signal.
func (sc *SignalContext) Cancel() {
	sc.cancel(nil)
}

// Signal returns the signal that stopped the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	var cause signalCause
	if errors.As(context.Cause(sc.Context), &cause) {
		return cause.sig
	}
	return nil
}
