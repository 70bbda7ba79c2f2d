// Package platform assembles the update pipeline for the machine the tool is
// running on. The step lists are static data selected once per invocation;
// nothing here spawns a process.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"updates/internal/parser"
	"updates/internal/pipeline"
	"updates/internal/runner"
)

// osReleasePath is where Linux distributions identify themselves.
const osReleasePath = "/etc/os-release"

// protectedCrates are cargo installs that must never be refreshed from the
// registry. They are developed on this machine, and `cargo install <name>`
// would replace the working binary with a published release.
var protectedCrates = map[string]bool{
	"tm":      true,
	"project": true,
}

// Steps builds the full update pipeline for this machine: the OS package
// manager first, then the toolchain work shared by every platform.
func Steps() ([]pipeline.Step, error) {
	steps, err := SystemSteps()
	if err != nil {
		return nil, err
	}
	steps = append(steps, RustSteps()...)
	steps = append(steps, EditorSteps()...)
	steps = append(steps, CargoSteps()...)
	return steps, nil
}

// SystemSteps picks the OS package manager commands for this platform.
// On an unrecognized Linux distribution this is an error the operator has to
// see; on a platform with no supported package manager it is simply empty.
func SystemSteps() ([]pipeline.Step, error) {
	switch runtime.GOOS {
	case "linux":
		data, err := os.ReadFile(osReleasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", osReleasePath, err)
		}
		return linuxSteps(DistroID(string(data)))
	case "darwin":
		return brewSteps(), nil
	}
	return nil, nil
}

// DistroID extracts the ID= field from os-release file content. Surrounding
// quotes are stripped; a missing field yields "".
func DistroID(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if value, ok := strings.CutPrefix(line, "ID="); ok {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

func linuxSteps(distro string) ([]pipeline.Step, error) {
	switch distro {
	case "ubuntu", "pop":
		return aptSteps(), nil
	case "arch", "endeavouros":
		return archSteps(), nil
	}
	return nil, fmt.Errorf("not sure what OS this is: %q", distro)
}

func aptSteps() []pipeline.Step {
	return []pipeline.Step{
		pipeline.Direct{Command: runner.New("sudo", "apt-get", "update")},
		pipeline.Direct{Command: runner.New("sudo", "apt-get", "upgrade", "-y", "--allow-downgrades", "--with-new-pkgs")},
		pipeline.Direct{Command: runner.New("sudo", "apt-get", "autoremove", "-y")},
	}
}

func archSteps() []pipeline.Step {
	return []pipeline.Step{
		// The keyring has to be current before a full upgrade, or signature
		// checks fail mid-transaction.
		pipeline.Direct{Command: runner.New("sudo", "pacman", "--noconfirm", "-S", "archlinux-keyring")},
		pipeline.Direct{Command: runner.New("sudo", "pacman", "--noconfirm", "-Syu")},
		pipeline.Direct{Command: runner.New("yay", "--noconfirm", "-Syu")},
		// Orphaned dependencies are removed only when the query reports any.
		pipeline.Conditional{
			Check:  runner.New("pacman", "-Qtdq"),
			Parse:  parser.Lines,
			Action: runner.New("sudo", "pacman", "--noconfirm", "-Rns"),
		},
		pipeline.Conditional{
			Check:  runner.New("yay", "-Qtdq"),
			Parse:  parser.Lines,
			Action: runner.New("yay", "--noconfirm", "-Rns"),
		},
	}
}

func brewSteps() []pipeline.Step {
	return []pipeline.Step{
		pipeline.Direct{Command: runner.New("brew", "update")},
		pipeline.Direct{Command: runner.New("brew", "upgrade")},
		pipeline.Direct{Command: runner.New("brew", "cleanup")},
	}
}

// RustSteps updates the Rust toolchain. Same on every platform.
func RustSteps() []pipeline.Step {
	return []pipeline.Step{
		pipeline.Direct{Command: runner.New("rustup", "update")},
	}
}

// EditorSteps syncs Neovim plugins headlessly.
func EditorSteps() []pipeline.Step {
	return []pipeline.Step{
		pipeline.Direct{Command: runner.New("nvim", "--headless", "+Lazy! sync", "+qa")},
	}
}

// CargoSteps refreshes every cargo-installed binary from the registry,
// leaving protected and path-installed crates alone.
func CargoSteps() []pipeline.Step {
	return []pipeline.Step{
		pipeline.Batch{
			List:    runner.New("cargo", "install", "--list"),
			Parse:   parser.Installed,
			Exclude: protectedCrates,
			Update: func(name string) runner.Command {
				return runner.New("cargo", "install", name)
			},
		},
	}
}
