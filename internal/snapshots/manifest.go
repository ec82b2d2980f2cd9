package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks which board snapshots exist per league.
type Manifest struct {
	Version     int                   `json:"version"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Retention   Retention             `json:"retention"`
	Leagues     map[string]LeagueMeta `json:"leagues"`
}

type Retention struct {
	BoardDays int `json:"boardDays"`
}

type LeagueMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:   1,
		Retention: Retention{BoardDays: retentionDays},
		Leagues:   make(map[string]LeagueMeta),
	}
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Leagues == nil {
		m.Leagues = make(map[string]LeagueMeta)
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, "manifest.json")
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
