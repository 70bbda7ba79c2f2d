package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"updates/internal/pipeline"
)

func TestDistroID(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain value",
			content:  "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n",
			expected: "ubuntu",
		},
		{
			name:     "quoted value",
			content:  "ID=\"pop\"\n",
			expected: "pop",
		},
		{
			name:     "ID_LIKE before ID is not mistaken for ID",
			content:  "ID_LIKE=arch\nID=endeavouros\n",
			expected: "endeavouros",
		},
		{
			name:     "missing field",
			content:  "NAME=Mystery\n",
			expected: "",
		},
		{
			name:     "empty content",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DistroID(tt.content))
		})
	}
}

// commandLines renders each step's primary command for easy comparison.
func commandLines(t *testing.T, steps []pipeline.Step) []string {
	t.Helper()
	var lines []string
	for _, step := range steps {
		switch s := step.(type) {
		case pipeline.Direct:
			lines = append(lines, s.Command.String())
		case pipeline.Conditional:
			lines = append(lines, s.Check.String()+" -> "+s.Action.String())
		case pipeline.Batch:
			lines = append(lines, s.List.String())
		default:
			t.Fatalf("unexpected step type %T", step)
		}
	}
	return lines
}

func TestLinuxSteps(t *testing.T) {
	tests := []struct {
		name     string
		distro   string
		expected []string
		wantErr  bool
	}{
		{
			name:   "ubuntu",
			distro: "ubuntu",
			expected: []string{
				"sudo apt-get update",
				"sudo apt-get upgrade -y --allow-downgrades --with-new-pkgs",
				"sudo apt-get autoremove -y",
			},
		},
		{
			name:   "pop uses apt too",
			distro: "pop",
			expected: []string{
				"sudo apt-get update",
				"sudo apt-get upgrade -y --allow-downgrades --with-new-pkgs",
				"sudo apt-get autoremove -y",
			},
		},
		{
			name:   "arch",
			distro: "arch",
			expected: []string{
				"sudo pacman --noconfirm -S archlinux-keyring",
				"sudo pacman --noconfirm -Syu",
				"yay --noconfirm -Syu",
				"pacman -Qtdq -> sudo pacman --noconfirm -Rns",
				"yay -Qtdq -> yay --noconfirm -Rns",
			},
		},
		{
			name:    "unknown distro is an error",
			distro:  "gentoo",
			wantErr: true,
		},
		{
			name:    "empty distro is an error",
			distro:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := linuxSteps(tt.distro)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, commandLines(t, steps))
		})
	}
}

func TestBrewSteps(t *testing.T) {
	assert.Equal(t, []string{
		"brew update",
		"brew upgrade",
		"brew cleanup",
	}, commandLines(t, brewSteps()))
}

func TestCommonSteps(t *testing.T) {
	assert.Equal(t, []string{"rustup update"}, commandLines(t, RustSteps()))
	assert.Equal(t, []string{"nvim --headless +Lazy! sync +qa"}, commandLines(t, EditorSteps()))
}

func TestCargoStepsProtectLocalCrates(t *testing.T) {
	steps := CargoSteps()
	require.Len(t, steps, 1)

	batch, ok := steps[0].(pipeline.Batch)
	require.True(t, ok)
	assert.Equal(t, "cargo install --list", batch.List.String())
	assert.True(t, batch.Exclude["tm"])
	assert.True(t, batch.Exclude["project"])
	assert.Equal(t, "cargo install ripgrep", batch.Update("ripgrep").String())
}
