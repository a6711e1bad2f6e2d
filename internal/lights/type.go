package lights

import "go.yhsif.com/lifxlan"

type deviceClass uint16

const (
	classUnknown deviceClass = 0
	classLight   deviceClass = 100
	classSwitch  deviceClass = 200
)

func (c deviceClass) String() string {
	switch c {
	case classLight:
		return "light"
	case classSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

func getClass(hw *lifxlan.HardwareVersion) (deviceClass, *lifxlan.Product) {
	if hw == nil {
		return classUnknown, nil
	}

	if hw.VendorID != 1 {
		return classUnknown, nil
	}

	key := lifxlan.ProductMapKey(hw.VendorID, hw.ProductID)
	product, ok := lifxlan.ProductMap[key]
	if !ok {
		return classUnknown, nil
	}

	hasRelays := product.Features.Relays
	if hasRelays != nil && *hasRelays {
		return classSwitch, &product
	}

	// Anything else from the catalog is assumed to be a light. Tiles
	// and candles could get their own class at some point.
	return classLight, &product
}
