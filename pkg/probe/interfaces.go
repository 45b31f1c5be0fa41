package probe

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// InterfaceKind categorizes USB bridges that can carry the target's SCI.
type InterfaceKind string

const (
	InterfaceKindXDS110  InterfaceKind = "xds110"
	InterfaceKindFTDI    InterfaceKind = "ftdi"
	InterfaceKindUSBUART InterfaceKind = "usb-uart"
)

// InterfaceInfo describes a detected USB bridge.
type InterfaceInfo struct {
	Kind        InterfaceKind
	Description string
	VendorID    uint16
	ProductID   uint16
	Bus         int
	Address     int
}

// Label returns a user-friendly description for the interface.
func (i InterfaceInfo) Label() string {
	if i.Description != "" {
		return i.Description
	}
	if i.Kind != "" {
		return fmt.Sprintf("%s (%04X:%04X)", string(i.Kind), i.VendorID, i.ProductID)
	}
	return fmt.Sprintf("Interface %04X:%04X", i.VendorID, i.ProductID)
}

// DiscoverInterfaces enumerates connected USB devices that match known
// VID/PID pairs of LaunchPad debug probes and USB-UART bridges. No device is
// opened.
func DiscoverInterfaces(ctx context.Context) ([]InterfaceInfo, error) {
	var results []InterfaceInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if info, ok := ClassifyUSBDevice(uint16(desc.Vendor), uint16(desc.Product)); ok {
			info.Bus, info.Address = desc.Bus, desc.Address
			results = append(results, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, err
	}
	return results, ctx.Err()
}

// ClassifyUSBDevice matches a VID/PID pair against the known bridges.
func ClassifyUSBDevice(vendor, product uint16) (InterfaceInfo, bool) {
	for _, known := range knownUSBDevices {
		if vendor == known.VendorID && product == known.ProductID {
			return InterfaceInfo{
				Kind:        known.Kind,
				Description: known.Description,
				VendorID:    known.VendorID,
				ProductID:   known.ProductID,
			}, true
		}
	}
	return InterfaceInfo{}, false
}

type knownUSBDevice struct {
	Kind        InterfaceKind
	VendorID    uint16
	ProductID   uint16
	Description string
}

var knownUSBDevices = []knownUSBDevice{
	{Kind: InterfaceKindXDS110, VendorID: 0x0451, ProductID: 0xbef3, Description: "TI XDS110 (LaunchPad)"},
	{Kind: InterfaceKindXDS110, VendorID: 0x0451, ProductID: 0xbef4, Description: "TI XDS110 with CMSIS-DAP"},
	{Kind: InterfaceKindFTDI, VendorID: 0x0403, ProductID: 0x6010, Description: "FTDI FT2232 (XDS100v2/controlCARD)"},
	{Kind: InterfaceKindFTDI, VendorID: 0x0403, ProductID: 0x6001, Description: "FTDI FT232R"},
	{Kind: InterfaceKindUSBUART, VendorID: 0x10c4, ProductID: 0xea60, Description: "Silicon Labs CP210x"},
	{Kind: InterfaceKindUSBUART, VendorID: 0x1a86, ProductID: 0x7523, Description: "WCH CH340"},
}
