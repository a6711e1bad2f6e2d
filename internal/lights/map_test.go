package lights

import "testing"

func TestDeviceMap(t *testing.T) {
	dm := newDeviceMap()

	if dm.Has("a") {
		t.Error("Expected empty map")
	}
	if dm.Get("a") != nil {
		t.Error("Expected nil for missing device")
	}

	d := newDevice("a", nil)
	dm.Set("a", d)

	if !dm.Has("a") {
		t.Error("Expected device to be present")
	}
	if dm.Get("a") != d {
		t.Error("Expected stored device back")
	}
	if dm.Len() != 1 {
		t.Errorf("Expected length 1, got %d", dm.Len())
	}
	if len(dm.All()) != 1 {
		t.Errorf("Expected 1 device in snapshot, got %d", len(dm.All()))
	}

	dm.Delete("a")
	if dm.Has("a") {
		t.Error("Expected device to be deleted")
	}
}
