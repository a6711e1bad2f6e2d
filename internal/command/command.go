package command

import (
	"context"
	"fmt"
)

// Kind is the tag that selects a command variant on the wire.
type Kind string

const (
	KindSetPower      Kind = "set_power"
	KindSetBrightness Kind = "set_brightness"
	KindSetColor      Kind = "set_color"
)

// Command is one decoded control message. The set of variants is closed:
// the unexported apply method keeps outside packages from adding their
// own, and adding a variant here without a matching Handler method does
// not compile.
type Command interface {
	Kind() Kind
	apply(ctx context.Context, id string, h Handler) error
}

// Handler is the hardware-control side of dispatch. One method per
// variant; errors are the handler's own and pass through untouched.
type Handler interface {
	SetPower(ctx context.Context, id string, cmd SetPower) error
	SetBrightness(ctx context.Context, id string, cmd SetBrightness) error
	SetColor(ctx context.Context, id string, cmd SetColor) error
}

// SetPower turns a device fully on or off.
type SetPower struct {
	On bool
}

func (SetPower) Kind() Kind { return KindSetPower }

func (c SetPower) apply(ctx context.Context, id string, h Handler) error {
	return h.SetPower(ctx, id, c)
}

func (c SetPower) String() string {
	return fmt.Sprintf("%s on:%t", c.Kind(), c.On)
}

// SetBrightness sets a device to a brightness percentage. Duration is
// the transition time in milliseconds; zero means the handler's default.
type SetBrightness struct {
	Level    uint8
	Duration uint32
}

func (SetBrightness) Kind() Kind { return KindSetBrightness }

func (c SetBrightness) apply(ctx context.Context, id string, h Handler) error {
	return h.SetBrightness(ctx, id, c)
}

func (c SetBrightness) String() string {
	return fmt.Sprintf("%s brightness:%d duration:%d", c.Kind(), c.Level, c.Duration)
}

// SetColor sets a device to an RGB color. Duration as in SetBrightness.
type SetColor struct {
	Red      uint8
	Green    uint8
	Blue     uint8
	Duration uint32
}

func (SetColor) Kind() Kind { return KindSetColor }

func (c SetColor) apply(ctx context.Context, id string, h Handler) error {
	return h.SetColor(ctx, id, c)
}

func (c SetColor) String() string {
	return fmt.Sprintf("%s rgb:(%d,%d,%d) duration:%d", c.Kind(), c.Red, c.Green, c.Blue, c.Duration)
}
