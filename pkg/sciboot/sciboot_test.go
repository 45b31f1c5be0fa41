package sciboot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marcinbor85/gohex"
)

func hexImage(t *testing.T, start uint32, segs map[uint32][]byte) *bytes.Buffer {
	t.Helper()
	mem := gohex.NewMemory()
	for addr, data := range segs {
		if err := mem.AddBinary(addr, data); err != nil {
			t.Fatalf("AddBinary failed: %v", err)
		}
	}
	mem.SetStartAddress(start)
	var buf bytes.Buffer
	if err := mem.DumpIntelHex(&buf, 16); err != nil {
		t.Fatalf("DumpIntelHex failed: %v", err)
	}
	return &buf
}

func TestBootTableLayout(t *testing.T) {
	segs := []gohex.DataSegment{{Address: 0x100000, Data: []byte{0x11, 0x22, 0x33, 0x44}}}
	table, err := BootTable(segs, 0x00080000)
	if err != nil {
		t.Fatalf("BootTable failed: %v", err)
	}
	want := []byte{
		0xAA, 0x08, // key
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // reserved
		0x08, 0x00, 0x00, 0x00, // entry 0x00080000, MSW first
		0x02, 0x00, // 2 words
		0x08, 0x00, 0x00, 0x00, // destination 0x80000
		0x11, 0x22, 0x33, 0x44,
		0x00, 0x00, // end
	}
	if !bytes.Equal(table, want) {
		t.Fatalf("table =\n% X\nwant\n% X", table, want)
	}
}

func TestBootTableSplitsLargeSegments(t *testing.T) {
	data := make([]byte, 2*(maxBlockWords+1))
	table, err := BootTable([]gohex.DataSegment{{Address: 0, Data: data}}, 0)
	if err != nil {
		t.Fatalf("BootTable failed: %v", err)
	}
	header := 2 + 16 + 4
	first := table[header : header+6]
	if !bytes.Equal(first, []byte{0xFF, 0xFF, 0, 0, 0, 0}) {
		t.Fatalf("first block header = % X", first)
	}
	second := table[header+6+2*maxBlockWords:][:6]
	if !bytes.Equal(second, []byte{0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF}) {
		t.Fatalf("second block header = % X", second)
	}
}

func TestBootTableRejectsOddSegments(t *testing.T) {
	for _, s := range []gohex.DataSegment{
		{Address: 1, Data: []byte{1, 2}},
		{Address: 2, Data: []byte{1, 2, 3}},
	} {
		if _, err := BootTable([]gohex.DataSegment{s}, 0); err == nil {
			t.Fatalf("expected error for segment %+v", s)
		}
	}
}

func TestConvert(t *testing.T) {
	img := hexImage(t, 0x100000, map[uint32][]byte{0x100000: {0xDE, 0xAD, 0xBE, 0xEF}})
	var out bytes.Buffer
	if err := Convert(img, &out, Options{LineBytes: 8}); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := "\x02 $A0000,\n" +
		"AA 08 00 00 00 00 00 00\n" +
		"00 00 00 00 00 00 00 00\n" +
		"00 00 08 00 00 00 02 00\n" +
		"08 00 00 00 DE AD BE EF\n" +
		"00 00\n" +
		"\x03\n"
	if out.String() != want {
		t.Fatalf("output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestConvertEntryOverride(t *testing.T) {
	img := hexImage(t, 0, map[uint32][]byte{0: {1, 2}})
	entry := uint32(0x3F8000)
	var out bytes.Buffer
	if err := Convert(img, &out, Options{Entry: &entry}); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out.String(), "00 00 3F 00 00 80") {
		t.Fatalf("entry point missing from output:\n%s", out.String())
	}
}

func TestConvertInvalidHex(t *testing.T) {
	if err := Convert(strings.NewReader(":zz\n"), &bytes.Buffer{}, Options{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
