package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/c2000flash/pkg/f28004x"
)

var programCmd = &cobra.Command{
	Use:   "program " + f28004x.ProgramUsage,
	Short: "Program a TI C2000 device via TI serial_flash_programmer",
	Long: `Run serial_flash_programmer.exe against a ti_f28004x_serial bank.

app_txt and kernel_txt must be TI SCI boot-format text files (see "sci8").
COMx, baud and kernel_txt default to the values the bank was declared with.
The programmer erases as required; its output and prompts go to this console.

Examples:
  c2000flash -f board.cfg program 0 app.txt
  c2000flash -f board.cfg program f28004x.flash app.txt COM4 115200 flash_kernel.txt`,
	// Argument count is checked by the driver so that it reports a syntax error.
	Args: cobra.ArbitraryArgs,
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(programCmd)
}

func runProgram(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := newSession(out)
	if err != nil {
		return err
	}
	return f28004x.ProgramCommand(s.registry, args, out)
}
