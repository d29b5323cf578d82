package regmap

import "testing"

func Test_SimBusReadWrite(t *testing.T) {
	bus := NewSimBus()

	if v, _ := bus.Read(0x0); v != 0 {
		t.Errorf("unwritten offset = %#x, want 0", v)
	}

	if err := bus.Write(0x10, 0xdead); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if v, _ := bus.Read(0x10); v != 0xdead {
		t.Errorf("Read = %#x, want 0xdead", v)
	}

	// Offsets are independent.
	if v, _ := bus.Read(0x14); v != 0 {
		t.Errorf("neighbor offset = %#x, want 0", v)
	}
}

func Test_SimBusClearOnNextRead(t *testing.T) {
	bus := NewSimBus()
	bus.Preload(0x0, 0xf)
	bus.ScheduleClear(0x0, 0x3, ClearOnNextRead, 0)

	if v, _ := bus.Read(0x0); v != 0xf {
		t.Errorf("first read = %#x, want 0xf", v)
	}
	if v, _ := bus.Read(0x0); v != 0xc {
		t.Errorf("after clear = %#x, want 0xc", v)
	}
}

func Test_SimBusClearOnNextReadOtherOffset(t *testing.T) {
	bus := NewSimBus()
	bus.Preload(0x0, 0x1)
	bus.ScheduleClear(0x0, 0x1, ClearOnNextRead, 0)

	// Reads of other offsets must not trigger the clear.
	if _, err := bus.Read(0x4); err != nil {
		t.Fatal(err)
	}
	if v, _ := bus.Read(0x0); v != 0x1 {
		t.Errorf("armed bit cleared by unrelated read: %#x", v)
	}
	if v, _ := bus.Read(0x0); v != 0 {
		t.Errorf("after observing read = %#x, want 0", v)
	}
}

func Test_SimBusClearAfterCycles(t *testing.T) {
	bus := NewSimBus()
	bus.Preload(0x0, 0x1)
	bus.ScheduleClear(0x0, 0x1, ClearAfterCycles, 3)

	// Each bus operation is one cycle; the value read still reflects the
	// pre-tick state, so exactly 3 reads observe the bit.
	for i := 0; i < 3; i++ {
		if v, _ := bus.Read(0x0); v != 0x1 {
			t.Fatalf("read %d = %#x, want 0x1", i+1, v)
		}
	}
	if v, _ := bus.Read(0x0); v != 0 {
		t.Errorf("after %d cycles = %#x, want 0", 3, v)
	}
}
