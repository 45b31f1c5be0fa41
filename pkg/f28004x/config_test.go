package f28004x

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

func mustConfig(t *testing.T, args ...string) BankConfig {
	t.Helper()
	d, err := ParseDeclaration(args)
	if err != nil {
		t.Fatalf("ParseDeclaration(%q) failed: %v", args, err)
	}
	cfg, err := NewBankConfig(d)
	if err != nil {
		t.Fatalf("NewBankConfig(%q) failed: %v", args, err)
	}
	return cfg
}

func TestBankConfigDefaults(t *testing.T) {
	cfg := mustConfig(t, "COM7")
	want := BankConfig{
		Port:       "COM7",
		Baud:       9600,
		Device:     "f28004x",
		Programmer: "serial_flash_programmer.exe",
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestBankConfigCascade(t *testing.T) {
	cfg := mustConfig(t, "COM4", "115200", "f280049")
	if cfg.Baud != 115200 || cfg.Device != "f280049" {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.Programmer != DefaultProgrammer || cfg.Kernel != "" {
		t.Fatalf("omitted suffix must keep defaults, got %+v", cfg)
	}

	cfg = mustConfig(t, "com10", "0x9600", "f28004x", `C:\ti\sfp.exe`, "kernel.txt")
	if cfg.Baud != 0x9600 || cfg.Programmer != `C:\ti\sfp.exe` || cfg.Kernel != "kernel.txt" {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestBankConfigCannotSkip(t *testing.T) {
	_, err := NewBankConfig(Declaration{Port: "COM7", Baud: "9600", Device: "f28004x", Kernel: "kernel.txt"})
	if !IsKind(err, KindSyntax) {
		t.Fatalf("kernel without programmer err = %v, want syntax error", err)
	}
	_, err = NewBankConfig(Declaration{Port: "COM7", Device: "f28004x"})
	if !IsKind(err, KindSyntax) {
		t.Fatalf("device without baud err = %v, want syntax error", err)
	}
}

func TestBankConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind Kind
	}{
		{"no args", nil, KindSyntax},
		{"too many args", []string{"COM1", "9600", "d", "p", "k", "x"}, KindSyntax},
		{"bad port", []string{"USB0"}, KindValidation},
		{"bare COM", []string{"COM"}, KindValidation},
		{"bad baud", []string{"COM1", "fast"}, KindSyntax},
		{"negative baud", []string{"COM1", "-1"}, KindSyntax},
		{"baud overflow", []string{"COM1", "4294967296"}, KindSyntax},
		{"zero baud", []string{"COM1", "0"}, KindSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDeclaration(tt.args)
			if err == nil {
				_, err = NewBankConfig(d)
			}
			if !IsKind(err, tt.kind) {
				t.Fatalf("err = %v, want %s", err, tt.kind)
			}
			if !errors.Is(err, flash.ErrSyntax) {
				t.Fatalf("err = %v, want framework syntax class", err)
			}
		})
	}
}
