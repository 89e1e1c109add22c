package admin

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk shape of the bootstrap admin list:
//
//	admins:
//	  - uid-of-first-admin
//	  - uid-of-second-admin
type SeedFile struct {
	Admins []string `yaml:"admins"`
}

type Seeder interface {
	Seed(ctx context.Context, uids []string) error
}

// LoadSeedFile reads and parses a seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse admin seed file %s: %w", path, err)
	}
	f.Admins = dedupeAndTrim(f.Admins)
	return &f, nil
}

// dedupeAndTrim drops blank and repeated uids, keeping first-seen order.
func dedupeAndTrim(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SeedFromFile loads path into registry and returns how many uids it listed.
// An empty path is a no-op.
func SeedFromFile(ctx context.Context, registry Seeder, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	f, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	if err := registry.Seed(ctx, f.Admins); err != nil {
		return 0, err
	}
	return len(f.Admins), nil
}
