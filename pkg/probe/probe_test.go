package probe

import "testing"

func TestClassifyUSBDevice(t *testing.T) {
	info, ok := ClassifyUSBDevice(0x0451, 0xbef3)
	if !ok || info.Kind != InterfaceKindXDS110 {
		t.Fatalf("XDS110 not classified: %+v", info)
	}
	if info.Label() != "TI XDS110 (LaunchPad)" {
		t.Fatalf("Label = %q", info.Label())
	}
	if _, ok := ClassifyUSBDevice(0x1234, 0x5678); ok {
		t.Fatalf("unknown device classified")
	}
	anon := InterfaceInfo{Kind: InterfaceKindFTDI, VendorID: 0x0403, ProductID: 0x6010}
	if anon.Label() != "ftdi (0403:6010)" {
		t.Fatalf("Label = %q", anon.Label())
	}
}

func TestSortPorts(t *testing.T) {
	ports := []Port{
		{Name: "/dev/ttyUSB0"},
		{Name: "COM10", Usable: true},
		{Name: "COM3", Usable: true},
		{Name: "/dev/ttyACM0"},
	}
	SortPorts(ports)
	want := []string{"COM3", "COM10", "/dev/ttyACM0", "/dev/ttyUSB0"}
	for i, p := range ports {
		if p.Name != want[i] {
			t.Fatalf("order = %v, want %v", ports, want)
		}
	}
}

func TestPortLabel(t *testing.T) {
	xds, _ := ClassifyUSBDevice(0x0451, 0xbef3)
	tests := []struct {
		port Port
		want string
	}{
		{Port{Name: "COM7", Bridge: &xds}, "COM7 - TI XDS110 (LaunchPad)"},
		{Port{Name: "COM4", Product: "USB Serial Device"}, "COM4 - USB Serial Device"},
		{Port{Name: "COM5", IsUSB: true, VendorID: 0x1234, ProductID: 0xABCD}, "COM5 - USB 1234:ABCD"},
		{Port{Name: "COM1"}, "COM1"},
	}
	for _, tt := range tests {
		if got := tt.port.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
