package probe

import (
	"fmt"
	"sort"
	"strconv"

	"go.bug.st/serial/enumerator"

	"github.com/OpenTraceLab/c2000flash/pkg/f28004x"
)

// Port describes a serial port known to the host.
type Port struct {
	Name         string
	Product      string
	SerialNumber string
	VendorID     uint16
	ProductID    uint16
	IsUSB        bool

	// Usable reports whether the name is accepted as a bank COM port.
	Usable bool

	// Bridge is set when the USB VID/PID is a known bridge.
	Bridge *InterfaceInfo
}

// Label returns a user-friendly description for the port.
func (p Port) Label() string {
	switch {
	case p.Bridge != nil:
		return fmt.Sprintf("%s - %s", p.Name, p.Bridge.Label())
	case p.Product != "":
		return fmt.Sprintf("%s - %s", p.Name, p.Product)
	case p.IsUSB:
		return fmt.Sprintf("%s - USB %04X:%04X", p.Name, p.VendorID, p.ProductID)
	default:
		return p.Name
	}
}

// ListPorts enumerates the host's serial ports without opening them.
func ListPorts() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	ports := make([]Port, 0, len(details))
	for _, d := range details {
		p := Port{
			Name:         d.Name,
			Product:      d.Product,
			SerialNumber: d.SerialNumber,
			IsUSB:        d.IsUSB,
			Usable:       f28004x.IsCOMPort(d.Name),
		}
		if d.IsUSB {
			p.VendorID = parseID(d.VID)
			p.ProductID = parseID(d.PID)
			if info, ok := ClassifyUSBDevice(p.VendorID, p.ProductID); ok {
				p.Bridge = &info
			}
		}
		ports = append(ports, p)
	}
	SortPorts(ports)
	return ports, nil
}

// SortPorts orders usable ports first, then COM ports numerically.
func SortPorts(ports []Port) {
	sort.SliceStable(ports, func(i, j int) bool {
		a, b := ports[i], ports[j]
		if a.Usable != b.Usable {
			return a.Usable
		}
		if a.Usable {
			na, _ := strconv.Atoi(a.Name[3:])
			nb, _ := strconv.Atoi(b.Name[3:])
			if na != nb {
				return na < nb
			}
		}
		return a.Name < b.Name
	})
}

func parseID(s string) uint16 {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}
