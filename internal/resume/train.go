package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prep-pilot/internal/textvec"
)

var ErrNoRoleDescriptions = errors.New("resume: no role description files found")

// Train fits the role vector space from a directory of <role>.txt files, one
// description per role. Files are processed in name order so the artifact is
// reproducible.
func Train(dir string, maxFeatures int) (*Profiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read role description dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRoleDescriptions, dir)
	}
	sort.Strings(names)

	roles := make([]string, 0, len(names))
	corpus := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read role description %s: %w", name, err)
		}
		roles = append(roles, strings.TrimSuffix(name, ".txt"))
		corpus = append(corpus, string(data))
	}

	model, err := textvec.Fit(corpus, maxFeatures)
	if err != nil {
		return nil, fmt.Errorf("fit role corpus: %w", err)
	}

	p := &Profiles{Model: model, Roles: make(map[string]textvec.Vector, len(roles))}
	for i, role := range roles {
		vec, err := model.Transform(corpus[i])
		if err != nil {
			return nil, err
		}
		p.Roles[role] = vec
	}
	return p, nil
}
