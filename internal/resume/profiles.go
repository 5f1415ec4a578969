// Package resume scores free resume text against pre-trained job-role
// profiles. The profiles artifact is produced offline by cmd/trainer and
// loaded read-only by the server; it does not share state with the
// recommender core.
package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"prep-pilot/internal/textvec"
)

// Profiles is the trained artifact: a fitted vector space over the role
// description corpus plus one profile vector per role name.
type Profiles struct {
	Model *textvec.Model            `json:"model"`
	Roles map[string]textvec.Vector `json:"roles"`
}

// RoleNames lists the known roles.
func (p *Profiles) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for name := range p.Roles {
		names = append(names, name)
	}
	return names
}

// LoadProfiles reads the artifact written by SaveProfiles.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role profiles: %w", err)
	}
	var p Profiles
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode role profiles: %w", err)
	}
	if p.Model == nil || len(p.Roles) == 0 {
		return nil, fmt.Errorf("role profiles artifact %s is incomplete", path)
	}
	return &p, nil
}

// SaveProfiles writes the artifact atomically.
func SaveProfiles(path string, p *Profiles) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode role profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write role profiles: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace role profiles: %w", err)
	}
	return nil
}
