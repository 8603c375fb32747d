package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// isolate points HOME at an empty directory so ~/.birdhouse never leaks into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	isolate(t)

	tables, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if src.Levels != EmbeddedSource || src.Birdhouses != EmbeddedSource || src.Multipliers != EmbeddedSource {
		t.Errorf("expected embedded sources, got %+v", src)
	}

	if len(tables.Levels) != 99 {
		t.Errorf("expected 99 levels, got %d", len(tables.Levels))
	}
	if len(tables.Tiers) != 9 {
		t.Errorf("expected 9 birdhouse tiers, got %d", len(tables.Tiers))
	}
	if len(tables.Multipliers) != 7 {
		t.Errorf("expected 7 multiplier tiers, got %d", len(tables.Multipliers))
	}
}

func TestEmbeddedLevelThresholds(t *testing.T) {
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	tests := []struct {
		level int
		xp    int
	}{
		{1, 0},
		{2, 83},
		{5, 388},
		{10, 1154},
		{14, 2107},
		{50, 101333},
		{92, 6517253},
		{99, 13034431},
	}

	for _, tt := range tests {
		got, ok := tables.Levels.Experience(tt.level)
		if !ok {
			t.Errorf("level %d missing", tt.level)
			continue
		}
		if got != tt.xp {
			t.Errorf("level %d = %d xp, want %d", tt.level, got, tt.xp)
		}
	}
}

func TestEmbeddedTiersInUnlockOrder(t *testing.T) {
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	first, ok := tables.Tiers.First()
	if !ok || first.Name != "Regular birdhouse" || first.UnlockLevel != 5 || first.Experience != 280 {
		t.Errorf("unexpected first tier: %+v", first)
	}

	last := tables.Tiers[len(tables.Tiers)-1]
	if last.Name != "Redwood birdhouse" || last.UnlockLevel != 89 {
		t.Errorf("unexpected last tier: %+v", last)
	}

	if err := tables.Validate(); err != nil {
		t.Errorf("embedded tables invalid: %v", err)
	}
}

func TestLoadCustomDirOverridesSingleFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, dir, MultipliersFile, "multipliers:\n  1: 2\n  2: 3.5\n")

	tables, src, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if src.Multipliers != filepath.Join(dir, MultipliersFile) {
		t.Errorf("multipliers source = %q, want custom file", src.Multipliers)
	}
	if src.Levels != EmbeddedSource {
		t.Errorf("levels should fall back to embedded, got %q", src.Levels)
	}

	if len(tables.Multipliers) != 2 || tables.Multipliers[2] != 3.5 {
		t.Errorf("unexpected multipliers: %v", tables.Multipliers)
	}
}

func TestLoadUserDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".birdhouse", "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	writeFile(t, dir, BirdhousesFile, `birdhouses:
  - name: Regular birdhouse
    hunter_level: 5
    hunter_xp: 300
`)

	tables, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src.Birdhouses != filepath.Join(dir, BirdhousesFile) {
		t.Errorf("birdhouses source = %q", src.Birdhouses)
	}
	if len(tables.Tiers) != 1 || tables.Tiers[0].Experience != 300 {
		t.Errorf("unexpected tiers: %+v", tables.Tiers)
	}
}

func TestLoadCustomDirParseError(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, dir, LevelsFile, "levels: [not, a, map")

	if _, _, err := Load(dir); err == nil {
		t.Error("expected parse error for malformed custom file")
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "decreasing thresholds",
			file:    LevelsFile,
			content: "levels:\n  1: 0\n  2: 100\n  3: 50\n  5: 388\n  14: 2107\n",
		},
		{
			name: "unlock levels out of order",
			file: BirdhousesFile,
			content: `birdhouses:
  - name: Oak birdhouse
    hunter_level: 14
    hunter_xp: 420
  - name: Regular birdhouse
    hunter_level: 5
    hunter_xp: 280
`,
		},
		{
			name: "zero yield",
			file: BirdhousesFile,
			content: `birdhouses:
  - name: Regular birdhouse
    hunter_level: 5
    hunter_xp: 0
`,
			wantErr: planner.ErrNonPositiveYield,
		},
		{
			name:    "multiplier not above one",
			file:    MultipliersFile,
			content: "multipliers:\n  1: 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, _, err := Load(dir)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDefaultYAML(t *testing.T) {
	for _, name := range []string{LevelsFile, BirdhousesFile, MultipliersFile} {
		if len(GetDefaultYAML(name)) == 0 {
			t.Errorf("no embedded YAML for %s", name)
		}
	}
	if GetDefaultYAML("unknown.yaml") != nil {
		t.Error("expected nil for unknown file")
	}
}
