package main

import (
	"updates/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// The updates project brings a developer machine up to date in one invocation:
//   - Runs the OS package manager appropriate for this platform (apt on Ubuntu/Pop!_OS,
//     pacman and yay on Arch/EndeavourOS, brew on macOS)
//   - Removes orphaned packages on Arch-family systems, but only when the package
//     manager actually reports any
//   - Updates the Rust toolchain via rustup and syncs Neovim plugins headlessly
//   - Refreshes every cargo-installed binary from the registry, leaving protected
//     and locally-developed crates untouched
//
// Error handling strategy:
//   - One failing tool never aborts the run; the remaining steps are still attempted
//     and the end-of-run summary enumerates what failed for the operator to resolve
//   - The process exits non-zero if any step failed or could not be spawned
//
// Everything runs strictly sequentially: two package-manager invocations must never
// race against the same lockfile or database.
func main() {
	cmd.Execute()
}
