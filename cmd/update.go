package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"updates/internal/logger"
	"updates/internal/pipeline"
	"updates/internal/platform"
	"updates/internal/report"
	"updates/internal/runner"
)

// reportPath, when set via --report, receives a YAML summary of the run.
var reportPath string

// updateCmd is the top-level command: it runs the whole pipeline in order —
// OS packages, Rust toolchain, Neovim plugins, cargo binaries.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run every update: OS packages, Rust toolchain, Neovim plugins, cargo binaries",
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := platform.Steps()
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
		runSteps(steps)
	},
}

// updateSystemCmd updates only the OS packages.
var updateSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Update only the OS packages (apt, pacman/yay, or brew)",
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := platform.SystemSteps()
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
		runSteps(steps)
	},
}

// updateRustCmd updates only the Rust toolchain.
var updateRustCmd = &cobra.Command{
	Use:   "rust",
	Short: "Update only the Rust toolchain",
	Run: func(cmd *cobra.Command, args []string) {
		runSteps(platform.RustSteps())
	},
}

// updateEditorCmd syncs only the Neovim plugins.
var updateEditorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Sync only the Neovim plugins",
	Run: func(cmd *cobra.Command, args []string) {
		runSteps(platform.EditorSteps())
	},
}

// updateCargoCmd refreshes only the cargo-installed binaries.
var updateCargoCmd = &cobra.Command{
	Use:   "cargo",
	Short: "Refresh only the cargo-installed binaries",
	Run: func(cmd *cobra.Command, args []string) {
		runSteps(platform.CargoSteps())
	},
}

// runSteps executes the steps, prints the summary, optionally writes the
// YAML report, and exits non-zero when anything failed or could not spawn.
func runSteps(steps []pipeline.Step) {
	outcomes := pipeline.Run(runner.NewRunner(), steps)
	run := report.New(outcomes)
	run.Print()
	if reportPath != "" {
		if err := run.WriteYAML(reportPath); err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
	}
	if !run.OK() {
		os.Exit(1)
	}
}

// init sets up CLI flags and adds subcommands to the root command.
func init() {
	// The report flag applies to `update` and all of its subcommands.
	updateCmd.PersistentFlags().StringVar(&reportPath, "report", "", "Write a YAML run summary to this file")

	// Add subcommands for more granular control
	updateCmd.AddCommand(updateSystemCmd)
	updateCmd.AddCommand(updateRustCmd)
	updateCmd.AddCommand(updateEditorCmd)
	updateCmd.AddCommand(updateCargoCmd)
	// Register the `update` command with the root command
	rootCmd.AddCommand(updateCmd)
}
