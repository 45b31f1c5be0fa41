package f28004x

import (
	"fmt"
	"strings"
)

// MaxCommandLine bounds the length of the programmer command line, counting
// a terminating NUL.
const MaxCommandLine = 4096

// Overrides are the per-call arguments of the program command. Nil fields
// fall back to the bank configuration; a supplied value, even an empty one,
// replaces it and is validated like a declared one. The device id and the
// programmer path cannot be overridden.
type Overrides struct {
	App    string
	Port   *string
	Baud   *string
	Kernel *string
}

// Invocation holds the resolved parameters of a single programmer run.
type Invocation struct {
	Programmer string
	Device     string
	Kernel     string
	App        string
	Baud       uint32
	Port       string
}

// Resolve overlays ov on c and validates the result. All file checks happen
// here, before anything is run.
func (c BankConfig) Resolve(ov Overrides) (Invocation, error) {
	inv := Invocation{
		Programmer: c.Programmer,
		Device:     c.Device,
		Kernel:     c.Kernel,
		App:        ov.App,
		Baud:       c.Baud,
		Port:       c.Port,
	}
	if ov.Port != nil {
		inv.Port = *ov.Port
	}
	if ov.Baud != nil {
		baud, err := parseBaud(*ov.Baud)
		if err != nil {
			return Invocation{}, err
		}
		inv.Baud = baud
	}
	if ov.Kernel != nil {
		inv.Kernel = *ov.Kernel
	}

	if !IsCOMPort(inv.Port) {
		return Invocation{}, errorf(KindValidation, "ComPort must look like COM7, got: %s", inv.Port)
	}
	if inv.App == "" {
		return Invocation{}, errorf(KindSyntax, "app file not given")
	}
	if err := CheckReadable(inv.App); err != nil {
		return Invocation{}, &Error{Kind: KindIO, Msg: "cannot read app file: " + inv.App, Err: err}
	}
	// A supplied empty kernel fails the readable check below instead.
	if inv.Kernel == "" && ov.Kernel == nil {
		return Invocation{}, errorf(KindSyntax,
			"kernel file not set. Provide it as 5th arg or in flash bank args.")
	}
	if err := CheckReadable(inv.Kernel); err != nil {
		return Invocation{}, &Error{Kind: KindIO, Msg: "cannot read kernel file: " + inv.Kernel, Err: err}
	}
	// A bare name is left to the executable search path.
	if strings.ContainsAny(inv.Programmer, `/\`) {
		if err := CheckReadable(inv.Programmer); err != nil {
			return Invocation{}, &Error{Kind: KindIO, Msg: "cannot access programmer exe: " + inv.Programmer, Err: err}
		}
	}
	return inv, nil
}

// CommandLine renders the programmer command line. Paths are quoted so they
// may contain spaces.
func (inv Invocation) CommandLine() (string, error) {
	line := fmt.Sprintf(`"%s" -d %s -k "%s" -a "%s" -b %d -p %s`,
		inv.Programmer, inv.Device, inv.Kernel, inv.App, inv.Baud, inv.Port)
	if len(line)+1 > MaxCommandLine {
		return "", errorf(KindBuild, "command line too long (%d bytes, limit %d)", len(line), MaxCommandLine-1)
	}
	return line, nil
}

// BuildCommandLine resolves ov against c and renders the command line.
func BuildCommandLine(c BankConfig, ov Overrides) (string, error) {
	inv, err := c.Resolve(ov)
	if err != nil {
		return "", err
	}
	return inv.CommandLine()
}
