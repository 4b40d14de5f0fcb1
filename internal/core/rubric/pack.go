// Package rubric owns the openness scoring rubric: the embedded band pack,
// prompt construction, response parsing and the deterministic fallback.
// The scorer in services/fusion drives it; nothing here performs IO
package rubric

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rubric.yaml
var embedded []byte

// Band is one numeric range with its qualitative description
type Band struct {
	Min         int    `yaml:"min"`
	Max         int    `yaml:"max"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type rawPack struct {
	Version int            `yaml:"version"`
	Meta    map[string]any `yaml:"meta"`
	Bands   []Band         `yaml:"bands"`
	Instr   string         `yaml:"instruction"`
}

// Pack is the loaded, validated rubric
type Pack struct {
	Version     int
	Bands       []Band
	Instruction string
}

// Load parses and validates the embedded rubric pack.
// Bands must be sorted, non-overlapping and cover 0..100 without gaps
func Load() (*Pack, error) {
	var raw rawPack
	if err := yaml.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("rubric: parse embedded pack: %w", err)
	}
	if raw.Version == 0 {
		return nil, fmt.Errorf("rubric: missing version")
	}
	if len(raw.Bands) == 0 {
		return nil, fmt.Errorf("rubric: no bands")
	}
	bands := append([]Band(nil), raw.Bands...)
	sort.Slice(bands, func(i, j int) bool { return bands[i].Min < bands[j].Min })

	if bands[0].Min != 0 || bands[len(bands)-1].Max != 100 {
		return nil, fmt.Errorf("rubric: bands must span 0..100")
	}
	for i, b := range bands {
		if b.Min > b.Max {
			return nil, fmt.Errorf("rubric: band %q inverted", b.Label)
		}
		if b.Description == "" {
			return nil, fmt.Errorf("rubric: band %q has no description", b.Label)
		}
		if i > 0 && b.Min != bands[i-1].Max+1 {
			return nil, fmt.Errorf("rubric: gap or overlap before band %q", b.Label)
		}
	}
	if raw.Instr == "" {
		return nil, fmt.Errorf("rubric: missing response instruction")
	}
	return &Pack{Version: raw.Version, Bands: bands, Instruction: raw.Instr}, nil
}

// MustLoad panics on a broken embedded pack (programmer error, caught in tests)
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}
