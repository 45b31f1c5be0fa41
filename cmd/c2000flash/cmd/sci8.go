package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
	"github.com/OpenTraceLab/c2000flash/pkg/sciboot"
)

var (
	sci8Output    string
	sci8Entry     string
	sci8LineBytes int
)

var sci8Cmd = &cobra.Command{
	Use:   "sci8 <image.hex>",
	Short: "Convert an Intel HEX image to SCI8 boot text",
	Long: `Convert a C2000 Intel HEX image (hex2000 --intel output) into the SCI8 boot
table text that serial_flash_programmer.exe expects for its -a and -k files.

The entry point is taken from the image's start address record unless --entry
is given. Addresses are 16-bit word addresses.`,
	Args: cobra.ExactArgs(1),
	RunE: runSci8,
}

func init() {
	sci8Cmd.Flags().StringVarP(&sci8Output, "output", "o", "", "output file (default: input with .txt extension)")
	sci8Cmd.Flags().StringVar(&sci8Entry, "entry", "", "entry point word address, e.g. 0x80000")
	sci8Cmd.Flags().IntVar(&sci8LineBytes, "line-bytes", sciboot.DefaultLineBytes, "bytes per output line")
	rootCmd.AddCommand(sci8Cmd)
}

func runSci8(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := sci8Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".txt"
	}
	if output == input {
		return fmt.Errorf("%w: output would overwrite input %s", flash.ErrSyntax, input)
	}

	opts := sciboot.Options{LineBytes: sci8LineBytes}
	if sci8Entry != "" {
		v, err := strconv.ParseUint(sci8Entry, 0, 32)
		if err != nil {
			return fmt.Errorf("%w: invalid entry point '%s'", flash.ErrSyntax, sci8Entry)
		}
		entry := uint32(v)
		opts.Entry = &entry
	}

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := sciboot.Convert(in, out, opts); err != nil {
		out.Close()
		os.Remove(output)
		return fmt.Errorf("convert %s: %w", input, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}
