package script

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

// CommandFunc implements a script command. args excludes the command name.
type CommandFunc func(args []string, out io.Writer) error

// Interp runs scripts against a flash bank registry.
type Interp struct {
	Registry *flash.Registry
	Out      io.Writer

	vars     map[string]string
	commands map[string]CommandFunc
}

// NewInterp creates an interpreter with the built-in set, echo and flash bank
// commands.
func NewInterp(reg *flash.Registry, out io.Writer) *Interp {
	in := &Interp{
		Registry: reg,
		Out:      out,
		vars:     make(map[string]string),
		commands: make(map[string]CommandFunc),
	}
	in.Register("set", in.set)
	in.Register("echo", in.echo)
	in.Register("flash bank", in.flashBank)
	return in
}

// Register adds a command. A name may consist of a group and a subcommand
// separated by a single space, e.g. "ti_f28004x_serial program".
func (in *Interp) Register(name string, fn CommandFunc) {
	in.commands[name] = fn
}

// Var returns the value of a script variable.
func (in *Interp) Var(name string) (string, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// Run executes every command of s in order and stops at the first error.
func (in *Interp) Run(s *Script) error {
	for _, cmd := range s.Commands {
		if err := in.exec(cmd); err != nil {
			return errors.Wrapf(err, "%s", cmd.Pos)
		}
	}
	return nil
}

// RunFile parses and runs the script stored at filename.
func (in *Interp) RunFile(filename string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	s, err := p.ParseFile(filename)
	if err != nil {
		return err
	}
	return in.Run(s)
}

// RunString parses and runs a script held in a string.
func (in *Interp) RunString(name, input string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	s, err := p.ParseString(name, input)
	if err != nil {
		return err
	}
	return in.Run(s)
}

func (in *Interp) exec(cmd *Command) error {
	words := make([]string, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		w, err := in.expand(a.Value())
		if err != nil {
			return err
		}
		words = append(words, w)
	}
	if len(words) > 0 {
		if fn, ok := in.commands[cmd.Name+" "+words[0]]; ok {
			return fn(words[1:], in.Out)
		}
	}
	if fn, ok := in.commands[cmd.Name]; ok {
		return fn(words, in.Out)
	}
	return fmt.Errorf("%w: invalid command name \"%s\"", flash.ErrSyntax, cmd.Name)
}

// expand substitutes $NAME and ${NAME}. Unknown variables fall back to the
// environment; a name set in neither is an error.
func (in *Interp) expand(s string) (string, error) {
	var missing string
	out := os.Expand(s, func(name string) string {
		if v, ok := in.vars[name]; ok {
			return v
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return ""
	})
	if missing != "" {
		return "", fmt.Errorf("%w: can't read \"%s\": no such variable", flash.ErrFail, missing)
	}
	return out, nil
}

func (in *Interp) set(args []string, out io.Writer) error {
	switch len(args) {
	case 1:
		v, ok := in.vars[args[0]]
		if !ok {
			return fmt.Errorf("%w: can't read \"%s\": no such variable", flash.ErrFail, args[0])
		}
		fmt.Fprintln(out, v)
		return nil
	case 2:
		in.vars[args[0]] = args[1]
		return nil
	default:
		return fmt.Errorf("%w: usage: set name ?value?", flash.ErrSyntax)
	}
}

func (in *Interp) echo(args []string, out io.Writer) error {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprint(out, a)
	}
	fmt.Fprintln(out)
	return nil
}

// FlashBankUsage documents the generic part of a bank declaration.
const FlashBankUsage = "flash bank <name> <driver> <base> <size> <chip_width> <bus_width> <target> [driver_options ...]"

func (in *Interp) flashBank(args []string, out io.Writer) error {
	d, err := ParseFlashBank(args)
	if err != nil {
		return err
	}
	b, err := in.Registry.Declare(d)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "flash bank #%d: %s\n", b.ID, b.Label())
	return nil
}

// ParseFlashBank parses the arguments of a flash bank command.
func ParseFlashBank(args []string) (flash.Declaration, error) {
	if len(args) < 7 {
		return flash.Declaration{}, fmt.Errorf("%w: usage: %s", flash.ErrSyntax, FlashBankUsage)
	}
	base, err := parseU32(args[2])
	if err != nil {
		return flash.Declaration{}, errors.Wrap(err, "base")
	}
	size, err := parseU32(args[3])
	if err != nil {
		return flash.Declaration{}, errors.Wrap(err, "size")
	}
	chipWidth, err := parseU32(args[4])
	if err != nil {
		return flash.Declaration{}, errors.Wrap(err, "chip_width")
	}
	busWidth, err := parseU32(args[5])
	if err != nil {
		return flash.Declaration{}, errors.Wrap(err, "bus_width")
	}
	return flash.Declaration{
		Name:       args[0],
		Driver:     args[1],
		Base:       base,
		Size:       size,
		ChipWidth:  int(chipWidth),
		BusWidth:   int(busWidth),
		Target:     args[6],
		DriverArgs: args[7:],
	}, nil
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number '%s'", flash.ErrSyntax, s)
	}
	return uint32(v), nil
}
