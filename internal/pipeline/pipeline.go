// Package pipeline runs an ordered list of maintenance steps. A step is either
// a single streamed command, a two-command conditional chain, or a batch
// expansion of one "list installed" command into many update commands. Steps
// run strictly one after another; a failing step is recorded and the run moves
// on, so one broken tool costs as little of the overall update as possible.
package pipeline

import (
	"fmt"

	"updates/internal/logger"
	"updates/internal/parser"
	"updates/internal/runner"
)

// Status classifies how one command inside a step ended.
type Status int

const (
	// StatusOK means the command ran and exited zero.
	StatusOK Status = iota
	// StatusFailed means the command ran and exited non-zero.
	StatusFailed
	// StatusSkipped means a parse found nothing to act on, so the dependent
	// command was never issued. Not a failure and not a no-op success: the
	// summary reports it as "nothing to do".
	StatusSkipped
	// StatusSpawnError means the command could not be started at all.
	StatusSpawnError
)

// String returns the status name used in summaries and reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusSpawnError:
		return "spawn-error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the per-command record handed back to the driver.
type Outcome struct {
	Command  runner.Command
	Status   Status
	ExitCode int
	Err      error
}

// Step is one unit of pipeline work. Run blocks until every command the step
// issues has terminated and reports one Outcome per command attempted, or a
// single Outcome when the step stopped before its dependent commands.
type Step interface {
	Run(r runner.Runner) []Outcome
}

// Run executes steps in order and collects every outcome. A failing step
// never stops the run; the driver decides what a failure means after the
// whole pipeline has been attempted.
func Run(r runner.Runner, steps []Step) []Outcome {
	var all []Outcome
	for _, step := range steps {
		all = append(all, step.Run(r)...)
	}
	return all
}

// Direct streams a single command to the terminal.
type Direct struct {
	Command runner.Command
}

func (d Direct) Run(r runner.Runner) []Outcome {
	return []Outcome{stream(r, d.Command)}
}

// Conditional is a two-command chain: Check runs captured, its output is
// parsed, and Action runs only when the parse found anything — with the
// parsed items appended to Action's argument list in parse order.
type Conditional struct {
	Check  runner.Command
	Parse  func(string) []string
	Action runner.Command
}

func (c Conditional) Run(r runner.Runner) []Outcome {
	res, err := r.Capture(c.Check)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return []Outcome{{Command: c.Check, Status: StatusSpawnError, Err: err}}
	}
	// A failed check leaves the system state unknown; never run the
	// dependent action on top of that.
	if res.ExitCode != 0 {
		logger.Warn("[WARN] %s exited with status %d, skipping %s\n",
			c.Check, res.ExitCode, c.Action)
		return []Outcome{{Command: c.Check, Status: StatusFailed, ExitCode: res.ExitCode}}
	}
	items := c.Parse(res.Output)
	if len(items) == 0 {
		logger.Info("[INFO] %s reported nothing, skipping %s\n", c.Check, c.Action)
		return []Outcome{{Command: c.Check, Status: StatusSkipped}}
	}
	return []Outcome{stream(r, c.Action.WithArgs(items...))}
}

// Batch expands one "list installed" command into an update command per
// surviving entry. Entries named in Exclude and entries installed from a
// local path are never updated. Every survivor is attempted even when an
// earlier one fails: one package must not block the rest.
type Batch struct {
	List    runner.Command
	Parse   func(string) []parser.Entry
	Exclude map[string]bool
	Update  func(name string) runner.Command
}

func (b Batch) Run(r runner.Runner) []Outcome {
	res, err := r.Capture(b.List)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return []Outcome{{Command: b.List, Status: StatusSpawnError, Err: err}}
	}
	if res.ExitCode != 0 {
		logger.Warn("[WARN] %s exited with status %d, skipping updates\n", b.List, res.ExitCode)
		return []Outcome{{Command: b.List, Status: StatusFailed, ExitCode: res.ExitCode}}
	}

	var outcomes []Outcome
	for _, entry := range b.Parse(res.Output) {
		if b.Exclude[entry.Name] {
			logger.Debug("[DEBUG] %s is protected, not updating\n", entry.Name)
			continue
		}
		if entry.Origin == parser.OriginLocal {
			logger.Debug("[DEBUG] %s is installed from a local path, not updating\n", entry.Name)
			continue
		}
		outcomes = append(outcomes, stream(r, b.Update(entry.Name)))
	}
	if len(outcomes) == 0 {
		logger.Info("[INFO] %s reported nothing to update\n", b.List)
		return []Outcome{{Command: b.List, Status: StatusSkipped}}
	}
	return outcomes
}

// stream prints the banner, runs cmd with inherited output, and folds the
// result into an Outcome.
func stream(r runner.Runner, cmd runner.Command) Outcome {
	banner(cmd)
	res, err := r.Stream(cmd)
	switch {
	case err != nil:
		logger.Error("[ERROR] %v\n", err)
		return Outcome{Command: cmd, Status: StatusSpawnError, Err: err}
	case res.ExitCode != 0:
		logger.Warn("[WARN] %s exited with status %d\n", cmd.Name, res.ExitCode)
		return Outcome{Command: cmd, Status: StatusFailed, ExitCode: res.ExitCode}
	}
	return Outcome{Command: cmd, Status: StatusOK}
}

// banner prints the separator block shown before every streamed command so
// the operator can tell the tools' outputs apart.
func banner(cmd runner.Command) {
	fmt.Println()
	fmt.Println("========================")
	logger.Cmd("$ %s\n", cmd)
	fmt.Println("========================")
}
