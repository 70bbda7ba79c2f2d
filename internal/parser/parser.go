// Package parser extracts structured data from captured tool output.
// Everything here is a pure function: same text in, same entries out, no I/O
// and no hidden state. The parsers are deliberately tolerant — upstream tool
// output is not a format this project controls, so a line that doesn't match
// the expected shape is dropped, never an error.
package parser

import "strings"

// Origin classifies where an installed package came from. Only registry
// installs are eligible for an automated refresh; a local path install is a
// developer's working copy and a registry fetch would clobber it.
type Origin int

const (
	OriginUnknown Origin = iota
	OriginRegistry
	OriginLocal
)

// Entry is one installed package from a "list installed" report.
type Entry struct {
	Name    string
	Version string
	Origin  Origin
}

// Lines parses an orphan-package report: one package identifier per line.
// Blank lines are skipped; source order and any duplicates are preserved.
func Lines(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Installed parses `cargo install --list` style output. Each top-level line
// is whitespace-tokenized: the first token is the package name, the second
// (if present) its version, and a parenthesized third token names the install
// source, which classifies the Origin. Indented lines are the binaries listed
// under a crate, not crates themselves, and are skipped along with anything
// too short to carry a name.
func Installed(raw string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(raw, "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		entry := Entry{Name: strings.TrimSuffix(fields[0], ":")}
		if len(fields) > 1 {
			entry.Version = strings.TrimSuffix(fields[1], ":")
		}
		if len(fields) > 2 {
			source := strings.Trim(strings.TrimSuffix(fields[2], ":"), "()")
			entry.Origin = classify(source)
		}
		entries = append(entries, entry)
	}
	return entries
}

// classify maps a cargo source marker to an Origin. Cargo writes
// "registry+<url>" for crates.io installs and "path+file://<dir>" (or a bare
// directory) for `cargo install --path` builds.
func classify(source string) Origin {
	switch {
	case source == "":
		return OriginUnknown
	case strings.HasPrefix(source, "path+"),
		strings.HasPrefix(source, "file:"),
		strings.HasPrefix(source, "/"):
		return OriginLocal
	case strings.HasPrefix(source, "registry+"),
		strings.HasPrefix(source, "http"):
		return OriginRegistry
	}
	return OriginUnknown
}
