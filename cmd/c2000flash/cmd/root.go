package cmd

import (
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/c2000flash/pkg/f28004x"
	"github.com/OpenTraceLab/c2000flash/pkg/flash"
	"github.com/OpenTraceLab/c2000flash/pkg/script"
)

var (
	// Global flags
	verbose     bool
	configFiles []string
	bankDecls   []string

	// runner executes the TI programmer; tests replace it.
	runner f28004x.Runner = &f28004x.ExecRunner{}
)

var rootCmd = &cobra.Command{
	Use:   "c2000flash",
	Short: "TI C2000 F28004x serial flash programming",
	Long: `Program TI F28004x devices over SCI through TI's serial_flash_programmer.

Flash banks are declared in OpenOCD style, either in a board script or inline:

  ` + f28004x.Usage + `

Examples:
  c2000flash -f board.cfg program 0 app.txt                     # Program with the bank defaults
  c2000flash --bank "f28004x.flash ti_f28004x_serial 0x80000 0x40000 0 0 cpu COM7" \
      program 0 app.txt COM7 115200 kernel.txt                  # Override port, baud and kernel
  c2000flash sci8 app.hex -o app.txt                            # Convert Intel HEX to SCI8 boot text
  c2000flash ports                                              # List COM ports`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog only reads its flags once the Go flag set is parsed.
		if err := goflag.CommandLine.Parse(nil); err != nil {
			return err
		}
		if verbose {
			return goflag.Set("v", "1")
		}
		return nil
	},
}

// Execute runs the root command and exits with the framework status of the
// error, if any.
func Execute() {
	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(flash.ExitStatus(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "f", nil,
		"board script with flash bank declarations (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&bankDecls, "bank", nil,
		"inline declaration: \"<name> <driver> <base> <size> <chip_width> <bus_width> <target> [driver args]\"")

	// glog flags; its -v is driven by --verbose instead.
	flags := rootCmd.PersistentFlags()
	goflag.CommandLine.VisitAll(func(f *goflag.Flag) {
		if f.Name != "v" {
			flags.AddFlag(pflag.PFlagFromGoFlag(f))
		}
	})
}

// session is the host side of a single invocation: the bank registry and the
// script interpreter that declares banks into it.
type session struct {
	registry *flash.Registry
	interp   *script.Interp
}

func newSession(out io.Writer) (*session, error) {
	reg := flash.NewRegistry()
	reg.RegisterDriver(f28004x.DriverName, f28004x.NewFactory(runner))

	in := script.NewInterp(reg, out)
	in.Register(f28004x.DriverName+" program", func(args []string, out io.Writer) error {
		return f28004x.ProgramCommand(reg, args, out)
	})

	for _, path := range configFiles {
		if err := in.RunFile(path); err != nil {
			return nil, err
		}
	}
	for _, decl := range bankDecls {
		if err := in.RunString("--bank", "flash bank "+decl); err != nil {
			return nil, err
		}
	}
	return &session{registry: reg, interp: in}, nil
}
