package lights

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/denwilliams/go-lumen-mqtt/internal/logging"
	"go.yhsif.com/lifxlan"
	"go.yhsif.com/lifxlan/light"
	"go.yhsif.com/lifxlan/relay"
)

const relayCount = 4

func newDevice(id string, d lifxlan.Device) *device {
	return &device{id: id, device: d}
}

type device struct {
	id         string
	loaded     bool
	device     lifxlan.Device
	light      light.Device
	relay      relay.Device
	product    *lifxlan.Product
	class      deviceClass
	power      lifxlan.Power
	color      *lifxlan.Color
	relayPower [relayCount]lifxlan.Power
	mu         sync.Mutex
	timer      *time.Timer
}

// Load queries the hardware version and wraps the device into its
// typed view. Safe to call again after a failure.
func (d *device) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return nil
	}

	logging.Debug("Loading %s", d.id)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := d.device.Dial()
	if err != nil {
		return fmt.Errorf("dial %s: %w", d.id, err)
	}
	defer conn.Close()

	if err := d.device.GetHardwareVersion(ctx, conn); err != nil {
		logging.Warn("Failed to get hardware version %s", d.id)
		return err
	}

	class, product := getClass(d.device.HardwareVersion())
	d.class = class
	d.product = product

	switch class {
	case classLight:
		logging.Debug("Wrapping %s light", d.id)
		ld, err := light.Wrap(ctx, d.device, false)
		if err != nil {
			return fmt.Errorf("wrap light %s: %w", d.id, err)
		}
		d.light = ld
	case classSwitch:
		logging.Debug("Wrapping %s relay", d.id)
		rd, err := relay.Wrap(ctx, d.device, false)
		if err != nil {
			return fmt.Errorf("wrap relay %s: %w", d.id, err)
		}
		d.relay = rd
	default:
		logging.Warn("Ignoring wrapping device %s type=%d", d.id, class)
	}

	d.loaded = true
	return nil
}

// Refresh reads the device state and emits anything that changed since
// the last read.
func (d *device) Refresh(ctx context.Context, emitter StatusEmitter) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	logging.Debug("Refreshing %s", d.id)

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	conn, err := d.device.Dial()
	if err != nil {
		return fmt.Errorf("dial %s: %w", d.id, err)
	}
	defer conn.Close()

	power, err := d.device.GetPower(ctx, conn)
	if err != nil {
		logging.Warn("Failed to get power %s %s", d.id, err.Error())
		return err
	}
	if d.power != power {
		d.power = power
		logging.Debug("Refreshed %s power=%v", d.id, power)
		emitter.EmitStatus(ctx, d.id, "power", toPowerPayload(power))
	}

	if d.light != nil {
		color, err := d.light.GetColor(ctx, conn)
		if err != nil {
			logging.Warn("Failed to get color %s %s", d.id, err.Error())
			return err
		}
		if !isSameColor(d.color, color) {
			d.color = color
			logging.Debug("Refreshed %s color=%v", d.id, *color)
			emitter.EmitStatus(ctx, d.id, "color", toColorPayload(color))
		}
	}

	if d.relay != nil {
		for i := uint8(0); i < relayCount; i++ {
			power, err := d.relay.GetRPower(ctx, conn, i)
			if err != nil {
				logging.Warn("Failed to get relay %s %s", d.id, err.Error())
				continue
			}
			if d.relayPower[i] != power {
				d.relayPower[i] = power
				emitter.EmitStatus(ctx, d.id, "relay"+strconv.Itoa(int(i)), toPowerPayload(power))
			}
		}
		logging.Debug("Refreshed %s relayPower=%v", d.id, d.relayPower)
	}

	return nil
}

// QueueRefresh schedules a one-off refresh, collapsing rapid command
// bursts into a single state read.
func (d *device) QueueRefresh(emitter StatusEmitter, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if delay == 0 {
		delay = 1 * time.Second
	}
	d.timer = time.AfterFunc(delay, func() {
		d.Refresh(context.Background(), emitter)
	})
}

func (d *device) setPower(ctx context.Context, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	conn, err := d.device.Dial()
	if err != nil {
		return fmt.Errorf("dial %s: %w", d.id, err)
	}
	defer conn.Close()

	power := lifxlan.PowerOff
	if on {
		power = lifxlan.PowerOn
	}

	if d.relay != nil {
		for i := uint8(0); i < relayCount; i++ {
			if err := d.relay.SetRPower(ctx, conn, i, power, true); err != nil {
				return fmt.Errorf("set relay power %s: %w", d.id, err)
			}
			d.relayPower[i] = power
		}
		return nil
	}

	if err := d.device.SetPower(ctx, conn, power, true); err != nil {
		return fmt.Errorf("set power %s: %w", d.id, err)
	}
	d.power = power
	return nil
}

// setColor applies an HSBK color with a transition, powering the
// device on first if it is off.
func (d *device) setColor(ctx context.Context, color *lifxlan.Color, transition time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.light == nil {
		return fmt.Errorf("device %s is not a light", d.id)
	}

	conn, err := d.device.Dial()
	if err != nil {
		return fmt.Errorf("dial %s: %w", d.id, err)
	}
	defer conn.Close()

	if d.power == lifxlan.PowerOff {
		if err := d.device.SetPower(ctx, conn, lifxlan.PowerOn, false); err != nil {
			return fmt.Errorf("set power %s: %w", d.id, err)
		}
		d.power = lifxlan.PowerOn
	}

	if err := d.light.SetColor(ctx, conn, color, transition, true); err != nil {
		return fmt.Errorf("set color %s: %w", d.id, err)
	}
	d.color = color
	return nil
}

// setBrightness keeps the current hue/saturation/kelvin and moves only
// the brightness channel.
func (d *device) setBrightness(ctx context.Context, level uint8, transition time.Duration) error {
	d.mu.Lock()
	base := d.color
	d.mu.Unlock()

	color := &lifxlan.Color{Kelvin: defaultKelvin}
	if base != nil {
		c := *base
		color = &c
	}
	color.Brightness = percentToUint16(level)

	return d.setColor(ctx, color, transition)
}
