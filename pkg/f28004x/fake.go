package f28004x

// FakeRunner is a Runner that never spawns a process. It records every
// command line and answers with Status and Err, or with OnRun when set.
type FakeRunner struct {
	Status int
	Err    error
	OnRun  func(commandLine string) (int, error)

	calls []string
}

// Run implements Runner.
func (f *FakeRunner) Run(commandLine string) (int, error) {
	f.calls = append(f.calls, commandLine)
	if f.OnRun != nil {
		return f.OnRun(commandLine)
	}
	return f.Status, f.Err
}

// Calls returns the command lines run so far.
func (f *FakeRunner) Calls() []string {
	return append([]string(nil), f.calls...)
}
