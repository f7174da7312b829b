package memory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mergingtonactivities/internal/domain"
)

//go:embed seed/activities.yaml
var builtinCatalog []byte

// BuiltinCatalog returns a fresh copy of the built-in activity catalog.
func BuiltinCatalog() map[string]*domain.Activity {
	activities, err := ParseCatalog(bytes.NewReader(builtinCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in activity catalog is invalid: %v", err))
	}
	return activities
}

// LoadCatalogFile parses a YAML catalog from path.
func LoadCatalogFile(path string) (map[string]*domain.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open activity catalog: %w", err)
	}
	defer f.Close()
	activities, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("parse activity catalog %s: %w", path, err)
	}
	return activities, nil
}

// ParseCatalog decodes a YAML mapping of activity name to activity and checks
// every roster invariant: positive capacity, no duplicates, roster within capacity.
func ParseCatalog(r io.Reader) (map[string]*domain.Activity, error) {
	var raw map[string]*domain.Activity
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: catalog has no activities", domain.ErrInvalidInput)
	}

	activities := make(map[string]*domain.Activity, len(raw))
	for name, a := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: activity name is empty", domain.ErrInvalidInput)
		}
		if a == nil {
			return nil, fmt.Errorf("%w: activity %q has no fields", domain.ErrInvalidInput, name)
		}
		if a.MaxParticipants < 1 {
			return nil, fmt.Errorf("%w: activity %q must have max_participants >= 1", domain.ErrInvalidInput, name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return nil, fmt.Errorf("%w: activity %q has %d participants but capacity %d",
				domain.ErrInvalidInput, name, len(a.Participants), a.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("%w: activity %q lists %s twice", domain.ErrInvalidInput, name, p)
			}
			seen[p] = struct{}{}
		}
		activities[name] = a.Clone()
	}
	return activities, nil
}
