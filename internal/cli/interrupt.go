package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT and SIGTERM into context cancellation and
// tells the user what happened.
type InterruptHandler struct {
	writer      io.Writer
	signals     chan os.Signal
	message     string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler. message describes
// the operation being interrupted, e.g. "Labeling".
func NewInterruptHandler(writer io.Writer, message string) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer:  writer,
		message: message,
		signals: make(chan os.Signal, 1),
	}
}

// HandleInterrupts returns a context that is canceled on the first interrupt.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(h.signals)
		select {
		case <-h.signals:
			h.mu.Lock()
			h.interrupted = true
			h.mu.Unlock()
			h.showInterruptMessage()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning(h.message+" interrupted!") + "\n"
	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
