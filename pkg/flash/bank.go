package flash

import "fmt"

// Unknown marks a sector erase or protection state that has not been
// determined.
const Unknown = -1

// Sector is a sub-range of a bank with its own erase and protection status.
type Sector struct {
	Offset      uint32
	Size        uint32
	IsErased    int // 1 erased, 0 not erased, Unknown
	IsProtected int // 1 protected, 0 unprotected, Unknown
}

// Bank is one addressable flash region and the driver state that serves it.
type Bank struct {
	ID         int
	Name       string
	DriverName string
	Base       uint32
	Size       uint32
	ChipWidth  int
	BusWidth   int
	Target     string

	// ErasedValue is the byte value of an erased flash cell.
	ErasedValue byte

	// Sectors is nil until the driver probes the bank.
	Sectors []Sector

	// Memory gives access to target memory for the default read and blank
	// check implementations. It is optional.
	Memory MemoryReader

	Driver Driver
}

// MemoryReader reads target memory. Addresses are absolute.
type MemoryReader interface {
	ReadMemory(addr uint32, buf []byte) error
}

// Label returns a user-friendly description of the bank.
func (b *Bank) Label() string {
	name := b.Name
	if name == "" {
		name = fmt.Sprintf("#%d", b.ID)
	}
	return fmt.Sprintf("%s (%s) at 0x%08x, size 0x%08x", name, b.DriverName, b.Base, b.Size)
}

// Probed reports whether the sector table has been populated.
func (b *Bank) Probed() bool {
	return len(b.Sectors) > 0
}
