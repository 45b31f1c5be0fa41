package f28004x

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

// Runner runs a complete command line and waits for it to exit.
type Runner interface {
	Run(commandLine string) (status int, err error)
}

// ExecRunner runs command lines through the host shell. Nil streams default
// to the process's own, so the operator sees the programmer's output and can
// answer its prompts.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner. A non-nil error means the shell could not be started
// at all.
func (r *ExecRunner) Run(commandLine string) (int, error) {
	cmd := shellCommand(commandLine)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.Stdin, r.Stdout, r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	// The programmer reads its operation menu choice from stdin.
	if f, ok := cmd.Stdin.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		const msg = "stdin is not a terminal; the programmer may block waiting for menu input"
		fmt.Fprintf(cmd.Stderr, "%s: warning: %s\n", DriverName, msg)
		glog.Warning(msg)
	}

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// Invoker runs a programmer command line and classifies the outcome. The
// external tool is atomic: there are no retries and no partial results.
type Invoker struct {
	Runner Runner

	// MarkDirty is called after a successful run.
	MarkDirty func()
}

// NewInvoker returns an Invoker that reports success through the framework's
// dirty flag.
func NewInvoker(r Runner) *Invoker {
	return &Invoker{Runner: r, MarkDirty: flash.SetDirty}
}

// Invoke blocks until the programmer exits.
func (inv *Invoker) Invoke(commandLine string) error {
	status, err := inv.Runner.Run(commandLine)
	if err != nil {
		glog.Errorf("%s: cannot start programmer: %v", DriverName, err)
		return &Error{Kind: KindExternalTool, Msg: "cannot start TI programmer", Status: -1, Err: err}
	}
	if status != 0 {
		glog.Errorf("%s: programmer exited with status %d", DriverName, status)
		return &Error{Kind: KindExternalTool, Msg: fmt.Sprintf("TI programmer failed (rc=%d)", status), Status: status}
	}
	if inv.MarkDirty != nil {
		inv.MarkDirty()
	}
	return nil
}
