//go:build !windows

package f28004x

import "os/exec"

func shellCommand(line string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", line)
}
