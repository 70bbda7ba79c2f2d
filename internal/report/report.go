// Package report turns pipeline outcomes into the end-of-run summary shown to
// the operator and, optionally, a YAML file for scripting around the tool.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"updates/internal/logger"
	"updates/internal/pipeline"
)

// StepReport is one command's result in the run report.
type StepReport struct {
	Command  string `yaml:"command"`
	Status   string `yaml:"status"`
	ExitCode int    `yaml:"exit_code,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// Run is the whole invocation's report.
type Run struct {
	Steps   []StepReport `yaml:"steps"`
	Failed  int          `yaml:"failed"`
	Skipped int          `yaml:"skipped"`
}

// New folds pipeline outcomes into a Run.
func New(outcomes []pipeline.Outcome) Run {
	run := Run{Steps: make([]StepReport, 0, len(outcomes))}
	for _, outcome := range outcomes {
		step := StepReport{
			Command:  outcome.Command.String(),
			Status:   outcome.Status.String(),
			ExitCode: outcome.ExitCode,
		}
		if outcome.Err != nil {
			step.Error = outcome.Err.Error()
		}
		switch outcome.Status {
		case pipeline.StatusFailed, pipeline.StatusSpawnError:
			run.Failed++
		case pipeline.StatusSkipped:
			run.Skipped++
		}
		run.Steps = append(run.Steps, step)
	}
	return run
}

// OK reports whether every command that was issued ran and exited cleanly.
// Skipped steps ("nothing to do") do not count against the run.
func (r Run) OK() bool {
	return r.Failed == 0
}

// Print writes the human-readable summary, one line per command.
func (r Run) Print() {
	fmt.Println()
	for _, step := range r.Steps {
		switch step.Status {
		case "ok":
			logger.Info("[INFO] ok       %s\n", step.Command)
		case "skipped":
			logger.Info("[INFO] skipped  %s (nothing to do)\n", step.Command)
		case "failed":
			logger.Error("[ERROR] failed   %s (exit status %d)\n", step.Command, step.ExitCode)
		default:
			logger.Error("[ERROR] no spawn %s: %s\n", step.Command, step.Error)
		}
	}
	if r.Failed > 0 {
		logger.Error("[ERROR] %d of %d commands failed\n", r.Failed, len(r.Steps))
	}
}

// WriteYAML serializes the report to the given path.
func (r Run) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
