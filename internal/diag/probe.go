// Package diag builds the structured availability report served by the
// /test endpoint. Whether a dependency is configured is resolved once at
// startup; whether it is reachable is re-checked on every call. The probe
// never returns an error: failures are downgraded to descriptive strings in
// the report.
package diag

import (
	"context"
	"log/slog"
)

// maxCollections caps the number of table names included in the report.
const maxCollections = 10

// Database is the capability the probe needs from an optional SQL database.
type Database interface {
	Ping(ctx context.Context) error
	ListTables(ctx context.Context, limit int) ([]string, error)
}

// Cache is the capability the probe needs from an optional cache backend.
type Cache interface {
	Ping(ctx context.Context) error
}

// Report is the diagnostic payload. Field names and the checkmark status
// strings are a frontend contract carried over from the original dashboard.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Cache            string   `json:"cache"`
}

// Probe checks optional external dependencies. A nil Database or Cache means
// the dependency was not configured at startup; that is a first-class state,
// not an error.
type Probe struct {
	db        Database
	cache     Cache
	dbURLSet  bool
	dbNameSet bool
	logger    *slog.Logger
}

// NewProbe creates a Probe. db and cache may be nil when unconfigured;
// dbURLSet and dbNameSet record whether the corresponding settings were
// present at startup.
func NewProbe(db Database, cache Cache, dbURLSet, dbNameSet bool, logger *slog.Logger) *Probe {
	return &Probe{
		db:        db,
		cache:     cache,
		dbURLSet:  dbURLSet,
		dbNameSet: dbNameSet,
		logger:    logger,
	}
}

// Check produces the availability report. It never fails; every probe error
// is truncated and embedded as a status string.
func (p *Probe) Check(ctx context.Context) Report {
	report := Report{
		Backend:          "✅ Running",
		Database:         "❌ Not Configured",
		DatabaseURL:      setFlag(p.dbURLSet),
		DatabaseName:     setFlag(p.dbNameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Cache:            "❌ Not Configured",
	}

	if p.db != nil {
		report.Database, report.ConnectionStatus, report.Collections = p.checkDatabase(ctx)
	}
	if p.cache != nil {
		report.Cache = p.checkCache(ctx)
	}

	return report
}

func (p *Probe) checkDatabase(ctx context.Context) (status, connStatus string, collections []string) {
	collections = []string{}

	if err := p.db.Ping(ctx); err != nil {
		p.logger.WarnContext(ctx, "diag: database ping failed",
			slog.String("error", err.Error()),
		)
		return "❌ Error: " + truncate(err.Error(), 50), "Not Connected", collections
	}

	tables, err := p.db.ListTables(ctx, maxCollections)
	if err != nil {
		p.logger.WarnContext(ctx, "diag: database table listing failed",
			slog.String("error", err.Error()),
		)
		return "⚠️ Connected but Error: " + truncate(err.Error(), 50), "Connected", collections
	}

	return "✅ Connected & Working", "Connected", tables
}

func (p *Probe) checkCache(ctx context.Context) string {
	if err := p.cache.Ping(ctx); err != nil {
		p.logger.WarnContext(ctx, "diag: cache ping failed",
			slog.String("error", err.Error()),
		)
		return "❌ Error: " + truncate(err.Error(), 50)
	}
	return "✅ Connected"
}

func setFlag(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
