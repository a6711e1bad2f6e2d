package command

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// envelope is the wire shape of every command payload.
type envelope struct {
	Type      Kind                       `json:"command_type"`
	Arguments map[string]json.RawMessage `json:"command_arguments"`
}

// Decode parses a raw payload into a Command. On any failure the
// returned error wraps ErrUnknownCommandKind or ErrMalformedArguments
// and no Command is returned. Some publishers double-encode the JSON as
// a string; those payloads are unwrapped once and decoded again.
func Decode(payload []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		var wrapped string
		if err2 := json.Unmarshal(payload, &wrapped); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedArguments, err)
		}
		if err2 := json.Unmarshal([]byte(wrapped), &env); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedArguments, err2)
		}
	}

	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing command_type", ErrMalformedArguments)
	}

	switch env.Type {
	case KindSetPower:
		return decodeSetPower(env.Arguments)
	case KindSetBrightness:
		return decodeSetBrightness(env.Arguments)
	case KindSetColor:
		return decodeSetColor(env.Arguments)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommandKind, env.Type)
	}
}

func decodeSetPower(args map[string]json.RawMessage) (Command, error) {
	on, err := boolArg(args, KindSetPower, "on")
	if err != nil {
		return nil, err
	}
	return SetPower{On: on}, nil
}

func decodeSetBrightness(args map[string]json.RawMessage) (Command, error) {
	level, err := uintArg(args, KindSetBrightness, "brightness", 100)
	if err != nil {
		return nil, err
	}
	duration, err := optionalUintArg(args, KindSetBrightness, "duration", math.MaxUint32)
	if err != nil {
		return nil, err
	}
	return SetBrightness{Level: uint8(level), Duration: uint32(duration)}, nil
}

func decodeSetColor(args map[string]json.RawMessage) (Command, error) {
	var channels [3]uint8
	for i, name := range [...]string{"red", "green", "blue"} {
		v, err := uintArg(args, KindSetColor, name, math.MaxUint8)
		if err != nil {
			return nil, err
		}
		channels[i] = uint8(v)
	}
	duration, err := optionalUintArg(args, KindSetColor, "duration", math.MaxUint32)
	if err != nil {
		return nil, err
	}
	return SetColor{
		Red:      channels[0],
		Green:    channels[1],
		Blue:     channels[2],
		Duration: uint32(duration),
	}, nil
}

// uintArg extracts a required non-negative integer argument.
func uintArg(args map[string]json.RawMessage, kind Kind, name string, max uint64) (uint64, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s requires %q", ErrMalformedArguments, kind, name)
	}
	return parseUint(raw, kind, name, max)
}

// optionalUintArg is uintArg for arguments that may be absent; absent
// yields zero.
func optionalUintArg(args map[string]json.RawMessage, kind Kind, name string, max uint64) (uint64, error) {
	raw, ok := args[name]
	if !ok {
		return 0, nil
	}
	return parseUint(raw, kind, name, max)
}

func parseUint(raw json.RawMessage, kind Kind, name string, max uint64) (uint64, error) {
	// json.Number happily unmarshals a JSON string whose content looks
	// numeric, so quoted tokens have to be rejected up front.
	if len(raw) > 0 && raw[0] == '"' {
		return 0, fmt.Errorf("%w: %s argument %q must be a number", ErrMalformedArguments, kind, name)
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, fmt.Errorf("%w: %s argument %q must be a number", ErrMalformedArguments, kind, name)
	}
	v, err := strconv.ParseUint(num.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s argument %q must be a non-negative integer", ErrMalformedArguments, kind, name)
	}
	if v > max {
		return 0, fmt.Errorf("%w: %s argument %q above %d", ErrMalformedArguments, kind, name, max)
	}
	return v, nil
}

func boolArg(args map[string]json.RawMessage, kind Kind, name string) (bool, error) {
	raw, ok := args[name]
	if !ok {
		return false, fmt.Errorf("%w: %s requires %q", ErrMalformedArguments, kind, name)
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("%w: %s argument %q must be a boolean", ErrMalformedArguments, kind, name)
	}
	return v, nil
}
