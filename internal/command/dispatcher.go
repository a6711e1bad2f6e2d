package command

import (
	"context"
	"errors"
)

// Dispatcher routes decoded commands to the one Handler it was built
// with. The handler binding is fixed at construction, so a Dispatcher
// holds no mutable state and needs no locking however many transports
// feed it.
type Dispatcher struct {
	handler Handler
}

func NewDispatcher(h Handler) *Dispatcher {
	if h == nil {
		panic("command: nil handler")
	}
	return &Dispatcher{handler: h}
}

// Dispatch invokes the handler method for the command's variant.
// Exactly one method runs per call; the selection is the variant's own
// apply, so there is no default branch to fall into.
func (d *Dispatcher) Dispatch(ctx context.Context, id string, cmd Command) error {
	dispatched.WithLabelValues(string(cmd.Kind())).Inc()
	return cmd.apply(ctx, id, d.handler)
}

// HandleMessage decodes a raw transport payload and dispatches it.
// Decode failures are counted and returned to the transport, which
// decides whether to drop, log, or answer its peer.
func (d *Dispatcher) HandleMessage(ctx context.Context, id string, payload []byte) error {
	cmd, err := Decode(payload)
	if err != nil {
		decodeFailures.WithLabelValues(failureReason(err)).Inc()
		return err
	}
	return d.Dispatch(ctx, id, cmd)
}

func failureReason(err error) string {
	if errors.Is(err, ErrUnknownCommandKind) {
		return "unknown_kind"
	}
	return "malformed_arguments"
}
