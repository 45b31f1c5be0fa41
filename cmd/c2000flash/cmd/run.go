package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>...",
	Short: "Run command scripts",
	Long: `Run scripts after the configuration scripts. Besides "set", "echo" and
"flash bank", scripts may call "ti_f28004x_serial program".

Example script:
  set APP build/app.txt
  ti_f28004x_serial program 0 $APP`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, path := range args {
		if err := s.interp.RunFile(path); err != nil {
			return err
		}
	}
	return nil
}
