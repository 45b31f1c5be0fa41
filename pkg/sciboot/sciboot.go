// Package sciboot converts Intel HEX images into the SCI8 boot table text
// that TI's serial flash programmer expects for both the flash kernel and the
// application.
//
// The boot table is a stream of 16-bit words, each sent LSB first:
//
//	0x08AA                      key
//	8 x 0x0000                  reserved
//	entry point                 MSW, LSW
//	block size (words)          repeated per block,
//	destination address         MSW, LSW
//	block data
//	0x0000                      end of table
//
// C28x memory is addressed in 16-bit words. The HEX image is expected to use
// byte addresses, so a word address is the byte address divided by two.
package sciboot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
)

// Key opens every boot table in 8-bit boot modes.
const Key = 0x08AA

// maxBlockWords is the largest block a single size word can describe.
const maxBlockWords = 0xFFFF

// DefaultLineBytes is the number of bytes printed per text line.
const DefaultLineBytes = 16

// Options control the conversion.
type Options struct {
	// Entry overrides the start address of the HEX image. It is a word
	// address.
	Entry *uint32

	// LineBytes is the number of bytes per output line; 0 selects
	// DefaultLineBytes.
	LineBytes int
}

// Convert reads an Intel HEX image from r and writes its SCI8 boot table to
// w.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return errors.Wrap(err, "parse Intel HEX")
	}
	var entry uint32
	switch {
	case opts.Entry != nil:
		entry = *opts.Entry
	default:
		start, ok := mem.GetStartAddress()
		if !ok {
			return errors.New("image has no start address, set an entry point")
		}
		entry = start / 2
	}
	table, err := BootTable(mem.GetDataSegments(), entry)
	if err != nil {
		return err
	}
	return WriteText(w, table, opts.LineBytes)
}

// BootTable assembles the boot table bytes for the given segments.
func BootTable(segments []gohex.DataSegment, entry uint32) ([]byte, error) {
	var t []byte
	word := func(v uint16) { t = binary.LittleEndian.AppendUint16(t, v) }
	long := func(v uint32) {
		word(uint16(v >> 16))
		word(uint16(v))
	}

	word(Key)
	for i := 0; i < 8; i++ {
		word(0)
	}
	long(entry)
	for _, s := range segments {
		if s.Address%2 != 0 || len(s.Data)%2 != 0 {
			return nil, fmt.Errorf("segment at 0x%08x (%d bytes) is not word aligned", s.Address, len(s.Data))
		}
		addr := s.Address / 2
		data := s.Data
		for len(data) > 0 {
			n := min(len(data)/2, maxBlockWords)
			word(uint16(n))
			long(addr)
			t = append(t, data[:2*n]...)
			data = data[2*n:]
			addr += uint32(n)
		}
	}
	word(0)
	return t, nil
}

// WriteText writes table in ASCII-hex: STX and the load address on the first
// line, space separated byte pairs, ETX on the last line.
func WriteText(w io.Writer, table []byte, lineBytes int) error {
	if lineBytes <= 0 {
		lineBytes = DefaultLineBytes
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("\x02 $A0000,\n")
	for i, b := range table {
		if i%lineBytes != 0 {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "%02X", b)
		if i%lineBytes == lineBytes-1 || i == len(table)-1 {
			bw.WriteByte('\n')
		}
	}
	bw.WriteString("\x03\n")
	return errors.Wrap(bw.Flush(), "write boot table")
}
