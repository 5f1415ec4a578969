// Command trainer builds the role profile artifact for resume matching.
// It reads one plain-text role description per file (<role>.txt) from the
// descriptions directory and writes the fitted model plus role vectors as
// JSON for the server to load.
package main

import (
	"flag"
	"log"
	"strings"

	"prep-pilot/internal/resume"
	"prep-pilot/internal/textvec"
)

func main() {
	dir := flag.String("descriptions", "data/roles", "directory of <role>.txt description files")
	out := flag.String("out", "data/role_profiles.json", "output path for the trained profiles")
	maxFeatures := flag.Int("max-features", textvec.DefaultMaxFeatures, "vocabulary size cap")
	flag.Parse()

	d := strings.TrimSpace(*dir)
	o := strings.TrimSpace(*out)
	if d == "" || o == "" {
		log.Fatalf("provide -descriptions and -out")
	}

	profiles, err := resume.Train(d, *maxFeatures)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	if err := resume.SaveProfiles(o, profiles); err != nil {
		log.Fatalf("failed to write profiles: %v", err)
	}

	log.Printf("trained %d role profiles -> %s", len(profiles.Roles), o)
}
