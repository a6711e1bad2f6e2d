package command

import (
	"context"
	"errors"
	"testing"
)

// recordingHandler implements Handler and records every invocation.
type recordingHandler struct {
	calls      []string
	id         string
	power      SetPower
	brightness SetBrightness
	color      SetColor
	err        error
}

func (h *recordingHandler) SetPower(ctx context.Context, id string, cmd SetPower) error {
	h.calls = append(h.calls, string(cmd.Kind()))
	h.id = id
	h.power = cmd
	return h.err
}

func (h *recordingHandler) SetBrightness(ctx context.Context, id string, cmd SetBrightness) error {
	h.calls = append(h.calls, string(cmd.Kind()))
	h.id = id
	h.brightness = cmd
	return h.err
}

func (h *recordingHandler) SetColor(ctx context.Context, id string, cmd SetColor) error {
	h.calls = append(h.calls, string(cmd.Kind()))
	h.id = id
	h.color = cmd
	return h.err
}

func TestDispatchInvokesExactlyOneHandler(t *testing.T) {
	h := &recordingHandler{}
	d := NewDispatcher(h)

	err := d.Dispatch(context.Background(), "bulb1", SetBrightness{Level: 70})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if len(h.calls) != 1 || h.calls[0] != "set_brightness" {
		t.Fatalf("Expected exactly one set_brightness call, got %v", h.calls)
	}
	if h.id != "bulb1" {
		t.Errorf("Expected id bulb1, got %s", h.id)
	}
	if h.brightness.Level != 70 {
		t.Errorf("Expected level 70, got %d", h.brightness.Level)
	}
}

func TestDispatchPassesColorFields(t *testing.T) {
	h := &recordingHandler{}
	d := NewDispatcher(h)

	err := d.Dispatch(context.Background(), "bulb2", SetColor{Red: 11, Green: 22, Blue: 33})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if h.color.Red != 11 || h.color.Green != 22 || h.color.Blue != 33 {
		t.Errorf("Expected (11,22,33), got (%d,%d,%d)", h.color.Red, h.color.Green, h.color.Blue)
	}
}

func TestDispatchPassesHandlerErrorThrough(t *testing.T) {
	want := errors.New("device offline")
	h := &recordingHandler{err: want}
	d := NewDispatcher(h)

	err := d.Dispatch(context.Background(), "bulb1", SetPower{On: true})
	if !errors.Is(err, want) {
		t.Fatalf("Expected handler error, got %v", err)
	}
}

func TestHandleMessageDecodesAndDispatches(t *testing.T) {
	h := &recordingHandler{}
	d := NewDispatcher(h)

	payload := []byte(`{"command_type":"set_color","command_arguments":{"red":11,"green":22,"blue":33}}`)
	err := d.HandleMessage(context.Background(), "bulb3", payload)
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(h.calls) != 1 || h.calls[0] != "set_color" {
		t.Fatalf("Expected exactly one set_color call, got %v", h.calls)
	}
	if h.color.Red != 11 || h.color.Green != 22 || h.color.Blue != 33 {
		t.Errorf("Expected (11,22,33), got (%d,%d,%d)", h.color.Red, h.color.Green, h.color.Blue)
	}
}

func TestHandleMessageUnknownKindNeverDispatches(t *testing.T) {
	h := &recordingHandler{}
	d := NewDispatcher(h)

	payload := []byte(`{"command_type":"set_temperature","command_arguments":{"temp":3500}}`)
	err := d.HandleMessage(context.Background(), "bulb1", payload)
	if !errors.Is(err, ErrUnknownCommandKind) {
		t.Fatalf("Expected ErrUnknownCommandKind, got %v", err)
	}

	if len(h.calls) != 0 {
		t.Errorf("Expected no handler calls, got %v", h.calls)
	}
}

func TestHandleMessageMalformedNeverDispatches(t *testing.T) {
	h := &recordingHandler{}
	d := NewDispatcher(h)

	payload := []byte(`{"command_type":"set_brightness","command_arguments":{"brightness":"bright"}}`)
	err := d.HandleMessage(context.Background(), "bulb1", payload)
	if !errors.Is(err, ErrMalformedArguments) {
		t.Fatalf("Expected ErrMalformedArguments, got %v", err)
	}

	if len(h.calls) != 0 {
		t.Errorf("Expected no handler calls, got %v", h.calls)
	}
}
