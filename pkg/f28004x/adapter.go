package f28004x

import (
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

// DriverName is the name banks are declared with.
const DriverName = "ti_f28004x_serial"

// Usage of the bank declaration including the generic fields.
const Usage = "flash bank <name> " + DriverName +
	" <base> <size> <chip_width> <bus_width> <target> " + DeclarationUsage

// ProgramUsage documents the program command.
const ProgramUsage = "bank_id app_txt [COMx] [baud] [kernel_txt]"

// Adapter serves one bank. Its zero value is an uninitialized bank.
type Adapter struct {
	config  *BankConfig
	invoker *Invoker
}

var _ flash.Driver = (*Adapter)(nil)

// New is the flash.Factory of the driver. Programs run through ExecRunner.
func New(b *flash.Bank, args []string) (flash.Driver, error) {
	return NewFactory(&ExecRunner{})(b, args)
}

// NewFactory returns a flash.Factory whose banks run the programmer through r.
func NewFactory(r Runner) flash.Factory {
	return func(b *flash.Bank, args []string) (flash.Driver, error) {
		d, err := ParseDeclaration(args)
		if err != nil {
			return nil, err
		}
		cfg, err := NewBankConfig(d)
		if err != nil {
			glog.Errorf("%v", err)
			return nil, err
		}
		glog.V(1).Infof("%s: bank %s port=%s baud=%d device=%s programmer=%s",
			DriverName, b.Label(), cfg.Port, cfg.Baud, cfg.Device, cfg.Programmer)
		return &Adapter{config: &cfg, invoker: NewInvoker(r)}, nil
	}
}

// Config returns a copy of the bank configuration.
func (a *Adapter) Config() (BankConfig, bool) {
	if a.config == nil {
		return BankConfig{}, false
	}
	return *a.config, true
}

// Probe reports a single pseudo-sector covering the whole bank. The target is
// never accessed and an existing sector table is kept as is.
func (a *Adapter) Probe(b *flash.Bank) error {
	if b.Probed() {
		return nil
	}
	b.Sectors = []flash.Sector{{
		Offset:      0,
		Size:        b.Size,
		IsErased:    flash.Unknown,
		IsProtected: flash.Unknown,
	}}
	return nil
}

func (a *Adapter) AutoProbe(b *flash.Bank) error {
	return a.Probe(b)
}

func (a *Adapter) Erase(b *flash.Bank, first, last uint) error {
	err := errorf(KindUnsupported,
		"erase is not supported; use '%s program' which performs erase as required.", DriverName)
	glog.Error(err)
	return err
}

func (a *Adapter) Write(b *flash.Bank, buf []byte, offset uint32) error {
	err := errorf(KindUnsupported,
		"generic flash write is not supported (TI tool requires SCI boot .txt image). Use '%s program'.", DriverName)
	glog.Error(err)
	return err
}

func (a *Adapter) Read(b *flash.Bank, buf []byte, offset uint32) error {
	return flash.DefaultRead(b, buf, offset)
}

func (a *Adapter) EraseCheck(b *flash.Bank) error {
	return flash.DefaultBlankCheck(b)
}

// Info writes the configuration on a single line without a trailing newline.
func (a *Adapter) Info(b *flash.Bank, w io.Writer) error {
	port, baud, device := "(unset)", uint32(0), "(unset)"
	if a.config != nil {
		port, baud, device = a.config.Port, a.config.Baud, a.config.Device
	}
	_, err := fmt.Fprintf(w, "%s (external TI serial_flash_programmer) port=%s baud=%d device=%s",
		DriverName, port, baud, device)
	return err
}

// Program builds the programmer command line for ov, echoes it to out and
// runs it.
func (a *Adapter) Program(out io.Writer, ov Overrides) error {
	if a.config == nil {
		return fmt.Errorf("%s: bank not initialized: %w", DriverName, flash.ErrFail)
	}
	line, err := BuildCommandLine(*a.config, ov)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: running: %s\n", DriverName, line)
	glog.Infof("%s: running: %s", DriverName, line)
	return a.invoker.Invoke(line)
}

// BankLookup selects a bank by name or number.
type BankLookup interface {
	Lookup(ref string) (*flash.Bank, error)
}

// ProgramCommand implements "program bank_id app_txt [COMx] [baud] [kernel_txt]".
func ProgramCommand(banks BankLookup, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errorf(KindSyntax, "usage: program %s", ProgramUsage)
	}
	b, err := banks.Lookup(args[0])
	if err != nil {
		return err
	}
	a, ok := b.Driver.(*Adapter)
	if !ok {
		return errorf(KindSyntax, "bank is not a %s bank", DriverName)
	}
	if a.config == nil {
		return fmt.Errorf("%s: bank not initialized: %w", DriverName, flash.ErrFail)
	}
	if len(args) < 2 || len(args) > 5 {
		return errorf(KindSyntax, "usage: program %s", ProgramUsage)
	}

	ov := Overrides{App: args[1]}
	if len(args) >= 3 {
		ov.Port = &args[2]
	}
	if len(args) >= 4 {
		ov.Baud = &args[3]
	}
	if len(args) >= 5 {
		ov.Kernel = &args[4]
	}
	return a.Program(out, ov)
}
