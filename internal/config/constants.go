package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envSource       = "GAME_SOURCE"
	envLeagues      = "LEAGUES"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken   = "ADMIN_TOKEN"
	envValidation   = "VALIDATION_MODE"
	envLineHistory  = "LINE_HISTORY_DB_URL"

	envSnapshotDir  = "SNAPSHOT_DIR"
	envSnapshotDays = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotHour = "SNAPSHOT_PRUNE_HOUR"

	defaultPort = "4000"
	// Conservative default poll interval to respect upstream quotas.
	defaultPollInterval = 2 * Duration(time.Minute)
	defaultSource       = "fixture"
	defaultMetricsPort  = "9090"
	defaultSnapshotDir  = "data/snapshots"
	defaultSnapshotDays = 14
	// UTC hour to run the daily snapshot prune (2 AM UTC by default).
	defaultSnapshotHour = 2
)
