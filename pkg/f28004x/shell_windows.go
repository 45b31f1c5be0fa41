//go:build windows

package f28004x

import (
	"os"
	"os/exec"
	"syscall"
)

// shellCommand hands the line to cmd.exe unmodified. /S strips only the outer
// quotes, which keeps the quoted paths inside intact.
func shellCommand(line string) *exec.Cmd {
	comspec := os.Getenv("COMSPEC")
	if comspec == "" {
		comspec = "cmd.exe"
	}
	cmd := exec.Command(comspec)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: syscall.EscapeArg(comspec) + ` /S /C "` + line + `"`,
	}
	return cmd
}
