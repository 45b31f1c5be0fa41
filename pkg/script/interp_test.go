package script

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

type recordDriver struct{ args []string }

func (d *recordDriver) Probe(*flash.Bank) error { return nil }
func (d *recordDriver) AutoProbe(*flash.Bank) error { return nil }
func (d *recordDriver) Erase(*flash.Bank, uint, uint) error { return nil }
func (d *recordDriver) Write(*flash.Bank, []byte, uint32) error { return nil }
func (d *recordDriver) Read(*flash.Bank, []byte, uint32) error { return nil }
func (d *recordDriver) EraseCheck(*flash.Bank) error { return nil }
func (d *recordDriver) Info(*flash.Bank, io.Writer) error { return nil }

func newTestInterp(out io.Writer) *Interp {
	reg := flash.NewRegistry()
	reg.RegisterDriver("rec", func(b *flash.Bank, args []string) (flash.Driver, error) {
		return &recordDriver{args: args}, nil
	})
	return NewInterp(reg, out)
}

func TestParseScript(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("parser init failed: %v", err)
	}
	s, err := p.ParseString("board.cfg", `
# TI F28004x LaunchPad
set _CHIPNAME f28004x ; set _FLASHNAME $_CHIPNAME.flash
flash bank $_FLASHNAME ti_f28004x_serial 0x80000 0x40000 0 0 cpu COM7 115200 "C:\Program Files\ti\sfp.exe"
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(s.Commands) != 3 {
		t.Fatalf("commands = %d, want 3", len(s.Commands))
	}
	last := s.Commands[2]
	if last.Name != "flash" || last.Pos.Line != 4 {
		t.Fatalf("last command = %s at %s", last.Name, last.Pos)
	}
	var words []string
	for _, a := range last.Args {
		words = append(words, a.Value())
	}
	want := []string{"bank", "$_FLASHNAME", "ti_f28004x_serial", "0x80000", "0x40000", "0", "0", "cpu",
		"COM7", "115200", `C:\Program Files\ti\sfp.exe`}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words = %q\nwant %q", words, want)
	}
}

func TestInterpFlashBank(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	err := in.RunString("board.cfg", `
set _CHIPNAME f28004x
set _FLASHNAME ${_CHIPNAME}.flash
flash bank $_FLASHNAME rec 0x80000 0x40000 0 0 $_CHIPNAME.cpu COM7 9600
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := in.Registry.Lookup("f28004x.flash")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if b.Base != 0x80000 || b.Size != 0x40000 || b.Target != "f28004x.cpu" {
		t.Fatalf("bank = %+v", b)
	}
	if got := b.Driver.(*recordDriver).args; !reflect.DeepEqual(got, []string{"COM7", "9600"}) {
		t.Fatalf("driver args = %q", got)
	}
	if !strings.Contains(out.String(), "flash bank #0") {
		t.Fatalf("output = %q", out.String())
	}
	if v, _ := in.Var("_FLASHNAME"); v != "f28004x.flash" {
		t.Fatalf("_FLASHNAME = %q", v)
	}
}

func TestInterpCommands(t *testing.T) {
	var got []string
	in := newTestInterp(io.Discard)
	in.Register("ti_f28004x_serial program", func(args []string, out io.Writer) error {
		got = args
		return nil
	})
	if err := in.RunString("", "set app fw.txt\nti_f28004x_serial program 0 $app COM3"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"0", "fw.txt", "COM3"}) {
		t.Fatalf("program args = %q", got)
	}
}

func TestInterpErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown command", "reset halt", flash.ErrSyntax},
		{"short flash bank", "flash bank a rec 0 0", flash.ErrSyntax},
		{"bad base", "flash bank a rec base 0 0 0 cpu", flash.ErrSyntax},
		{"unknown driver", "flash bank a nor 0 0 0 0 cpu", flash.ErrSyntax},
		{"unset variable", "set nothing", flash.ErrFail},
		{"undefined variable in argument", "echo $C2000FLASH_UNDEFINED_PORT", flash.ErrFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestInterp(io.Discard).RunString("t.cfg", tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "t.cfg:1:1") {
				t.Fatalf("error %q lacks position", err)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.cfg")
	if err := os.WriteFile(path, []byte("echo hello world\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	var out bytes.Buffer
	if err := newTestInterp(&out).RunFile(path); err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if out.String() != "hello world\n" {
		t.Fatalf("output = %q", out.String())
	}
	if err := newTestInterp(&out).RunFile(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
