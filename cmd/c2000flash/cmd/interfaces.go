package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/c2000flash/pkg/probe"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List connected LaunchPad probes and USB-UART bridges",
	Long: `Scan the USB bus for XDS110 probes and USB-UART bridges that can carry the
target's SCI boot port. Devices are only enumerated, never opened.`,
	Args: cobra.NoArgs,
	RunE: runInterfaces,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Long: `List the host's serial ports. Ports marked with '*' have a name a
ti_f28004x_serial bank accepts (COM followed by digits).`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(portsCmd)
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	infos, err := probe.DiscoverInterfaces(ctx)
	if err != nil {
		return fmt.Errorf("discover interfaces: %w", err)
	}

	if len(infos) == 0 {
		fmt.Fprintln(out, "No interfaces found.")
		return nil
	}

	fmt.Fprintln(out, "Detected interfaces:")
	for _, iface := range infos {
		fmt.Fprintf(out, "  - %s [%s] (VID:PID %04X:%04X, bus %d addr %d)\n",
			iface.Label(), iface.Kind, iface.VendorID, iface.ProductID, iface.Bus, iface.Address)
	}

	return nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ports, err := probe.ListPorts()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Fprintln(out, "No serial ports found.")
		return nil
	}

	for _, p := range ports {
		mark := " "
		if p.Usable {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s\n", mark, p.Label())
	}
	return nil
}
