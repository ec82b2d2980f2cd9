package config

// SnapshotConfig controls where board snapshots land and how long they are kept.
type SnapshotConfig struct {
	Dir           string
	RetentionDays int
	PruneHourUTC  int // hour of day (0-23) for the daily prune job
	AdminToken    string
}

func loadSnapshots() SnapshotConfig {
	hour := intEnvOrDefault(envSnapshotHour, defaultSnapshotHour)
	if hour > 23 {
		hour = defaultSnapshotHour
	}
	return SnapshotConfig{
		Dir:           envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		PruneHourUTC:  hour,
		AdminToken:    envOrDefault(envAdminToken, ""),
	}
}
