package lights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denwilliams/go-lumen-mqtt/internal/command"
	"github.com/denwilliams/go-lumen-mqtt/internal/logging"
	"go.yhsif.com/lifxlan"
)

const defaultTransition = 1500 * time.Millisecond

// Controller drives discovered LIFX devices. It is the handler side of
// command dispatch: one method per command variant.
type Controller struct {
	devices *deviceMap
	emitter StatusEmitter
}

func NewController(emitter StatusEmitter) *Controller {
	return &Controller{devices: newDeviceMap(), emitter: emitter}
}

// SetPower implements command.Handler.
func (c *Controller) SetPower(ctx context.Context, id string, cmd command.SetPower) error {
	d := c.devices.Get(id)
	if d == nil {
		return fmt.Errorf("device %s not found", id)
	}

	if err := d.setPower(ctx, cmd.On); err != nil {
		return err
	}
	devicesControlled.WithLabelValues(d.class.String(), string(cmd.Kind())).Inc()
	logging.Info("Turning %s %s", id, onOrOff(cmd.On))
	d.QueueRefresh(c.emitter, 0)
	return nil
}

// SetBrightness implements command.Handler. Level 0 turns the device
// off instead of dimming to black.
func (c *Controller) SetBrightness(ctx context.Context, id string, cmd command.SetBrightness) error {
	d := c.devices.Get(id)
	if d == nil {
		return fmt.Errorf("device %s not found", id)
	}

	if cmd.Level == 0 {
		if err := d.setPower(ctx, false); err != nil {
			return err
		}
		devicesControlled.WithLabelValues(d.class.String(), string(cmd.Kind())).Inc()
		logging.Info("Turning %s off", id)
		d.QueueRefresh(c.emitter, 0)
		return nil
	}

	if err := d.setBrightness(ctx, cmd.Level, transition(cmd.Duration)); err != nil {
		return err
	}
	devicesControlled.WithLabelValues(d.class.String(), string(cmd.Kind())).Inc()
	logging.Info("Set %s brightness %d%%", id, cmd.Level)
	d.QueueRefresh(c.emitter, 0)
	return nil
}

// SetColor implements command.Handler.
func (c *Controller) SetColor(ctx context.Context, id string, cmd command.SetColor) error {
	d := c.devices.Get(id)
	if d == nil {
		return fmt.Errorf("device %s not found", id)
	}

	color := rgbToHSBK(cmd.Red, cmd.Green, cmd.Blue)
	if err := d.setColor(ctx, color, transition(cmd.Duration)); err != nil {
		return err
	}
	devicesControlled.WithLabelValues(d.class.String(), string(cmd.Kind())).Inc()
	logging.Info("Set %s color (%d,%d,%d)", id, cmd.Red, cmd.Green, cmd.Blue)
	d.QueueRefresh(c.emitter, 0)
	return nil
}

// AddDevice registers a device at a known address, skipping discovery.
func (c *Controller) AddDevice(addr string, target string) error {
	t, err := lifxlan.ParseTarget(target)
	if err != nil {
		return fmt.Errorf("parse target %s: %w", target, err)
	}

	d := lifxlan.NewDevice(addr, lifxlan.ServiceUDP, t)
	id := deviceID(t)
	c.devices.Set(id, newDevice(id, d))
	logging.Info("Added device: %s %s", id, addr)
	return nil
}

// DiscoverWithTimeout scans the LAN for devices and returns how many
// new ones it found.
func (c *Controller) DiscoverWithTimeout(timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	deviceChan := make(chan lifxlan.Device)
	go func() {
		if err := lifxlan.Discover(ctx, deviceChan, ""); err != nil &&
			ctx.Err() == nil {
			logging.Error("Error discovering devices: %s", err)
		}
	}()

	found := 0
	for {
		select {
		case d, ok := <-deviceChan:
			// Discover closes the channel when it returns, including
			// on socket errors before the timeout.
			if !ok {
				return found
			}
			id := deviceID(d.Target())
			if c.devices.Has(id) {
				continue
			}
			c.devices.Set(id, newDevice(id, d))
			found++
			logging.Info("Found device: %s %v", id, d)
		case <-ctx.Done():
			return found
		}
	}
}

// LoadDevices loads hardware details for any device not yet loaded.
func (c *Controller) LoadDevices() {
	for _, d := range c.devices.All() {
		if d.loaded {
			continue
		}
		if err := d.Load(context.Background()); err != nil {
			logging.Warn("Failed to load %s: %s", d.id, err)
		}
	}
}

// RefreshDevices re-reads state from every loaded device, emitting
// status changes.
func (c *Controller) RefreshDevices() {
	for _, d := range c.devices.All() {
		if !d.loaded {
			continue
		}
		if err := d.Refresh(context.Background(), c.emitter); err != nil {
			logging.Warn("Failed to refresh %s: %s", d.id, err)
		}
	}
}

// DeviceCount reports how many devices are currently known.
func (c *Controller) DeviceCount() int {
	return c.devices.Len()
}

func deviceID(t lifxlan.Target) string {
	return strings.ReplaceAll(t.String(), ":", "")
}

func transition(ms uint32) time.Duration {
	if ms == 0 {
		return defaultTransition
	}
	return time.Duration(ms) * time.Millisecond
}

func onOrOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
