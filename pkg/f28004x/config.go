package f28004x

import "strconv"

// Defaults applied before the declaration arguments are consumed.
const (
	DefaultBaud       = 9600
	DefaultDevice     = "f28004x"
	DefaultProgrammer = "serial_flash_programmer.exe"
)

// BankConfig is the configuration of one bank. Once built by NewBankConfig it
// is never modified; program calls overlay their own values on a copy.
type BankConfig struct {
	Port       string // COM port, always passes IsCOMPort
	Baud       uint32
	Device     string // -d argument of the programmer
	Programmer string // path or bare name of the programmer executable
	Kernel     string // SCI boot-format flash kernel, empty when unset
}

// DefaultBankConfig returns a BankConfig with everything but the port set to
// its default.
func DefaultBankConfig() BankConfig {
	return BankConfig{
		Baud:       DefaultBaud,
		Device:     DefaultDevice,
		Programmer: DefaultProgrammer,
	}
}

// Declaration holds the raw driver arguments of a bank declaration. The
// optional fields are consumed in declaration order and an empty field ends
// the sequence: a field cannot be set while an earlier one is empty.
type Declaration struct {
	Port       string
	Baud       string
	Device     string
	Programmer string
	Kernel     string
}

// DeclarationUsage documents the positional driver arguments.
const DeclarationUsage = "<COMx> [baud] [device] [programmer_exe] [kernel_txt]"

// ParseDeclaration maps positional declaration arguments onto a Declaration.
func ParseDeclaration(args []string) (Declaration, error) {
	if len(args) < 1 {
		return Declaration{}, errorf(KindSyntax, "missing COM port, usage: %s", DeclarationUsage)
	}
	if len(args) > 5 {
		return Declaration{}, errorf(KindSyntax, "too many arguments, usage: %s", DeclarationUsage)
	}
	var d Declaration
	fields := []*string{&d.Port, &d.Baud, &d.Device, &d.Programmer, &d.Kernel}
	for i, arg := range args {
		*fields[i] = arg
	}
	return d, nil
}

// NewBankConfig validates d and applies it over the defaults.
func NewBankConfig(d Declaration) (BankConfig, error) {
	cfg := DefaultBankConfig()
	if d.Port == "" {
		return BankConfig{}, errorf(KindSyntax, "missing COM port, usage: %s", DeclarationUsage)
	}
	if !IsCOMPort(d.Port) {
		return BankConfig{}, errorf(KindValidation, "ComPort must look like COM7, got: '%s'", d.Port)
	}
	cfg.Port = d.Port

	steps := []struct {
		name  string
		value string
		apply func(string) error
	}{
		{"baud", d.Baud, func(v string) (err error) {
			cfg.Baud, err = parseBaud(v)
			return err
		}},
		{"device", d.Device, func(v string) error {
			cfg.Device = v
			return nil
		}},
		{"programmer_exe", d.Programmer, func(v string) error {
			cfg.Programmer = v
			return nil
		}},
		{"kernel_txt", d.Kernel, func(v string) error {
			cfg.Kernel = v
			return nil
		}},
	}
	missing := ""
	for _, s := range steps {
		if s.value == "" {
			if missing == "" {
				missing = s.name
			}
			continue
		}
		if missing != "" {
			return BankConfig{}, errorf(KindSyntax, "%s given without %s, usage: %s",
				s.name, missing, DeclarationUsage)
		}
		if err := s.apply(s.value); err != nil {
			return BankConfig{}, err
		}
	}
	return cfg, nil
}

func parseBaud(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, &Error{Kind: KindSyntax, Msg: "invalid baud rate '" + s + "'", Err: err}
	}
	if v == 0 {
		return 0, errorf(KindSyntax, "baud rate must be positive")
	}
	return uint32(v), nil
}
