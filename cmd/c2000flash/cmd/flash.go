package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/c2000flash/pkg/f28004x"
	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List declared flash banks",
	Args:  cobra.NoArgs,
	RunE:  runBanks,
}

var probeCmd = &cobra.Command{
	Use:   "probe <bank>",
	Short: "Probe a flash bank",
	Long: `Populate the sector table of a bank. ti_f28004x_serial banks never touch the
target here; they report a single sector covering the whole bank.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

var infoCmd = &cobra.Command{
	Use:   "info <bank>",
	Short: "Show bank layout and driver configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var eraseCmd = &cobra.Command{
	Use:   "erase <bank> <first> <last>",
	Short: "Erase a range of sectors",
	Args:  cobra.ExactArgs(3),
	RunE:  runErase,
}

var writeCmd = &cobra.Command{
	Use:   "write <bank> <file> [offset]",
	Short: "Write a binary file into a bank",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runWrite,
}

func init() {
	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(writeCmd)
}

func runBanks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := newSession(out)
	if err != nil {
		return err
	}
	banks := s.registry.Banks()
	if len(banks) == 0 {
		fmt.Fprintln(out, "No flash banks declared.")
	}
	for _, b := range banks {
		fmt.Fprintf(out, "#%d : %s (%s) at 0x%08x, size 0x%08x, buswidth %d, chipwidth %d\n",
			b.ID, b.Name, b.DriverName, b.Base, b.Size, b.BusWidth, b.ChipWidth)
	}
	fmt.Fprintf(out, "Drivers: %s\n", strings.Join(s.registry.Drivers(), ", "))
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := newSession(out)
	if err != nil {
		return err
	}
	b, err := s.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	if err := b.Driver.Probe(b); err != nil {
		return fmt.Errorf("probing flash bank %s: %w", args[0], err)
	}
	fmt.Fprintf(out, "flash '%s' found at 0x%08x\n", b.DriverName, b.Base)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := newSession(out)
	if err != nil {
		return err
	}
	b, err := s.registry.LookupProbed(args[0])
	if err != nil {
		return err
	}
	printBank(out, b)
	if err := b.Driver.Info(b, out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if a, ok := b.Driver.(*f28004x.Adapter); ok {
		if cfg, ok := a.Config(); ok {
			kernel := cfg.Kernel
			if kernel == "" {
				kernel = "(unset)"
			}
			fmt.Fprintf(out, "programmer: %s\nkernel: %s\n", cfg.Programmer, kernel)
		}
	}
	return nil
}

func printBank(w io.Writer, b *flash.Bank) {
	fmt.Fprintf(w, "#%d : %s at 0x%08x, size 0x%08x, buswidth %d, chipwidth %d\n",
		b.ID, b.DriverName, b.Base, b.Size, b.BusWidth, b.ChipWidth)
	for i, sec := range b.Sectors {
		fmt.Fprintf(w, "\t#%3d: 0x%08x (0x%05x %dkB) %s%s\n",
			i, sec.Offset, sec.Size, sec.Size>>10, stateLabel(sec.IsErased, "erased", "not erased", "erase state unknown"),
			stateLabel(sec.IsProtected, ", protected", "", ", protection state unknown"))
	}
}

func stateLabel(state int, yes, no, unknown string) string {
	switch state {
	case 1:
		return yes
	case 0:
		return no
	default:
		return unknown
	}
}

func runErase(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	b, err := s.registry.LookupProbed(args[0])
	if err != nil {
		return err
	}
	first, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid first sector '%s'", flash.ErrSyntax, args[1])
	}
	last, err := strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid last sector '%s'", flash.ErrSyntax, args[2])
	}
	if err := b.Driver.Erase(b, uint(first), uint(last)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "erased sectors %d through %d on flash bank %d\n", first, last, b.ID)
	return nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	b, err := s.registry.LookupProbed(args[0])
	if err != nil {
		return err
	}
	var offset uint64
	if len(args) == 3 {
		offset, err = strconv.ParseUint(args[2], 0, 32)
		if err != nil {
			return fmt.Errorf("%w: invalid offset '%s'", flash.ErrSyntax, args[2])
		}
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", flash.ErrFail, err)
	}
	if err := b.Driver.Write(b, data, uint32(offset)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes from file %s to flash bank %d at offset 0x%08x\n",
		len(data), args[1], b.ID, offset)
	return nil
}
