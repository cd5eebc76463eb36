package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"foilctf/internal/config"
	"foilctf/internal/observability"

	"gorm.io/gorm"
)

// Schema modes selected by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaStatus describes what ApplySchema would do for a config.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
	MissingGuards      []RelationshipGuard
}

// RelationshipGuard is a unique index that backs a team or friendship rule
// when two transactions race past the same pre-check.
type RelationshipGuard struct {
	Table string
	Index string
	Rule  string
}

func (g RelationshipGuard) String() string {
	return g.Table + "." + g.Index + " (" + g.Rule + ")"
}

// The pair guards are expression indexes that only the SQL migrations
// create; AutoMigrate cannot express them.
var relationshipGuards = []RelationshipGuard{
	{Table: "team_members", Index: "idx_team_members_member", Rule: "one team per user"},
	{Table: "friends", Index: "idx_friends_unordered_pair", Rule: "one friendship per pair"},
	{Table: "friend_requests", Index: "idx_friend_requests_unordered_pair", Rule: "one pending request per pair"},
}

// MissingGuards returns the relationship guards not present in db.
func MissingGuards(db *gorm.DB) []RelationshipGuard {
	var missing []RelationshipGuard
	m := db.Migrator()
	for _, g := range relationshipGuards {
		if !m.HasTable(g.Table) || !m.HasIndex(g.Table, g.Index) {
			missing = append(missing, g)
		}
	}
	return missing
}

func isProdLikeEnv(env string) bool {
	e := strings.ToLower(strings.TrimSpace(env))
	return e == "production" || e == "prod" || e == "staging" || e == "stage"
}

func normalizedSchemaMode(cfg *config.Config) string {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		return SchemaModeHybrid
	}
	return mode
}

func schemaPolicy(cfg *config.Config) (runSQL bool, runAuto bool, err error) {
	mode := normalizedSchemaMode(cfg)
	prodLike := isProdLikeEnv(cfg.Env)

	switch mode {
	case SchemaModeSQL:
		return true, false, nil
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return false, false, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		return false, true, nil
	case SchemaModeHybrid:
		return true, !prodLike, nil
	default:
		return false, false, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
}

func runAutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// ApplySchema runs SQL migrations and/or AutoMigrate according to the schema policy.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	runSQL, runAuto, err := schemaPolicy(cfg)
	if err != nil {
		return err
	}

	if runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}

	if runAuto {
		mode := normalizedSchemaMode(cfg)
		observability.GlobalLogger.Info("Running GORM AutoMigrate", slog.String("mode", mode), slog.String("env", cfg.Env))
		if err := runAutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	for _, g := range MissingGuards(db.WithContext(ctx)) {
		observability.GlobalLogger.Warn("Relationship guard missing; concurrent writes may break it",
			slog.String("table", g.Table), slog.String("index", g.Index), slog.String("rule", g.Rule))
	}

	return nil
}

// GetSchemaStatus reports the schema policy, pending migrations and any
// relationship guard the current database lacks.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	runSQL, runAuto, err := schemaPolicy(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               normalizedSchemaMode(cfg),
		Environment:        cfg.Env,
		WillRunSQL:         runSQL,
		WillRunAutoMigrate: runAuto,
	}

	status.MissingGuards = MissingGuards(db.WithContext(ctx))

	if !runSQL {
		return status, nil
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	appliedSet := make(map[int]bool, len(applied))
	for _, version := range applied {
		appliedSet[version] = true
	}
	for _, m := range GetMigrations() {
		if !appliedSet[m.Version] {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}

	return status, nil
}
