package flash

import "io"

// Driver is the capability table a flash driver exposes to the framework.
// The framework passes the owning bank to every call.
type Driver interface {
	Probe(b *Bank) error
	AutoProbe(b *Bank) error
	Erase(b *Bank, first, last uint) error
	Write(b *Bank, buf []byte, offset uint32) error
	Read(b *Bank, buf []byte, offset uint32) error
	EraseCheck(b *Bank) error
	Info(b *Bank, w io.Writer) error
}

// Factory builds the driver state for a newly declared bank from the
// driver-specific declaration arguments, i.e. the ones following the generic
// base/size/chip width/bus width/target fields.
type Factory func(b *Bank, args []string) (Driver, error)
