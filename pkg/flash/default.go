package flash

import "fmt"

// DefaultRead reads count=len(buf) bytes at offset from the bank through the
// bank's target memory.
func DefaultRead(b *Bank, buf []byte, offset uint32) error {
	if b.Memory == nil {
		return fmt.Errorf("%w: bank %s", ErrNoTarget, b.Label())
	}
	if uint64(offset)+uint64(len(buf)) > uint64(b.Size) {
		return fmt.Errorf("%w: read of %d bytes at 0x%x exceeds bank size 0x%x",
			ErrSyntax, len(buf), offset, b.Size)
	}
	if err := b.Memory.ReadMemory(b.Base+offset, buf); err != nil {
		return fmt.Errorf("%w: read 0x%08x: %v", ErrFail, b.Base+offset, err)
	}
	return nil
}

// blankCheckChunk bounds the size of a single target read during a blank
// check.
const blankCheckChunk = 4096

// DefaultBlankCheck reads every sector back and records whether it holds only
// the erased value. The bank must have been probed.
func DefaultBlankCheck(b *Bank) error {
	if !b.Probed() {
		return fmt.Errorf("%w: bank %s not probed", ErrFail, b.Label())
	}
	buf := make([]byte, blankCheckChunk)
	for i := range b.Sectors {
		s := &b.Sectors[i]
		erased := 1
		for done := uint32(0); done < s.Size; {
			n := min(s.Size-done, blankCheckChunk)
			chunk := buf[:n]
			if err := DefaultRead(b, chunk, s.Offset+done); err != nil {
				return err
			}
			for _, v := range chunk {
				if v != b.ErasedValue {
					erased = 0
					break
				}
			}
			if erased == 0 {
				break
			}
			done += n
		}
		s.IsErased = erased
	}
	return nil
}
