package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"weekendly/internal/activity"
)

// sqliteBackend is the structured store: plans in a primary table,
// activities in a secondary table indexed by plan id, settings and
// sync metadata in flat key-value tables.
type sqliteBackend struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (*sqliteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	b := &sqliteBackend{db: db}
	if err := b.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return b, nil
}

func (b *sqliteBackend) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		theme TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		version INTEGER NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		is_template INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_plans_theme ON plans(theme);
	CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
	CREATE INDEX IF NOT EXISTS idx_plans_updated_at ON plans(updated_at);

	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		day TEXT NOT NULL,
		start_minutes INTEGER NOT NULL,
		duration_minutes INTEGER NOT NULL,
		mood TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_activities_plan_id ON activities(plan_id);
	CREATE INDEX IF NOT EXISTS idx_activities_category ON activities(category);
	CREATE INDEX IF NOT EXISTS idx_activities_day ON activities(day);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sync (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`

	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (b *sqliteBackend) close() error {
	return b.db.Close()
}

func (b *sqliteBackend) savePlan(ctx context.Context, p *activity.Plan) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, theme, created_at, updated_at, version, tags, notes, is_template)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Theme),
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
		p.UpdatedAt.UTC().Format(time.RFC3339Nano),
		p.Version, string(tags), p.Notes, boolToInt(p.Template))
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	if err := insertActivities(ctx, tx, p.ID, p.Activities); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *sqliteBackend) updatePlan(ctx context.Context, p *activity.Plan, activitiesChanged bool) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE plans SET theme = ?, updated_at = ?, version = ?, tags = ?, notes = ?, is_template = ?
		 WHERE id = ?`,
		string(p.Theme), p.UpdatedAt.UTC().Format(time.RFC3339Nano),
		p.Version, string(tags), p.Notes, boolToInt(p.Template), p.ID)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, p.ID)
	}

	if activitiesChanged {
		// Replace the whole secondary index inside the transaction so
		// a failure between delete and insert cannot lose the set.
		if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE plan_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clearing activities: %w", err)
		}
		if err := insertActivities(ctx, tx, p.ID, p.Activities); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertActivities(ctx context.Context, tx *sql.Tx, planID string, as []activity.Activity) error {
	for _, a := range as {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, plan_id, title, category, day, start_minutes, duration_minutes, mood, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, planID, a.Title, string(a.Category), string(a.Day),
			a.StartMinutes, a.DurationMinutes, string(a.Mood), a.Notes)
		if err != nil {
			return fmt.Errorf("inserting activity %s: %w", a.ID, err)
		}
	}
	return nil
}

func (b *sqliteBackend) getPlan(ctx context.Context, id string) (*activity.Plan, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT id, theme, created_at, updated_at, version, tags, notes, is_template
		 FROM plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}

	if err := b.loadActivities(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *sqliteBackend) getAllPlans(ctx context.Context) ([]*activity.Plan, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, theme, created_at, updated_at, version, tags, notes, is_template
		 FROM plans ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*activity.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	for _, p := range plans {
		if err := b.loadActivities(ctx, p); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*activity.Plan, error) {
	var (
		p          activity.Plan
		theme      string
		createdAt  string
		updatedAt  string
		tags       string
		isTemplate int
	)
	err := row.Scan(&p.ID, &theme, &createdAt, &updatedAt, &p.Version, &tags, &p.Notes, &isTemplate)
	if err != nil {
		return nil, err
	}

	p.Theme = activity.Theme(theme)
	p.Template = isTemplate != 0
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return &p, nil
}

func (b *sqliteBackend) loadActivities(ctx context.Context, p *activity.Plan) error {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, title, category, day, start_minutes, duration_minutes, mood, notes
		 FROM activities WHERE plan_id = ? ORDER BY day, start_minutes, id`, p.ID)
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a        activity.Activity
			category string
			day      string
			mood     string
		)
		if err := rows.Scan(&a.ID, &a.Title, &category, &day, &a.StartMinutes, &a.DurationMinutes, &mood, &a.Notes); err != nil {
			return fmt.Errorf("scanning activity: %w", err)
		}
		a.Category = activity.Category(category)
		a.Day = activity.Day(day)
		a.Mood = activity.Mood(mood)
		p.Activities = append(p.Activities, a)
	}
	return rows.Err()
}

func (b *sqliteBackend) deletePlan(ctx context.Context, id string) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("deleting activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return tx.Commit()
}

func (b *sqliteBackend) getSetting(ctx context.Context, key string) (json.RawMessage, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading setting %s: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (b *sqliteBackend) setSetting(ctx context.Context, key string, value json.RawMessage) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) deleteSetting(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) getSync(ctx context.Context, key string) (string, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM sync WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading sync meta %s: %w", key, err)
	}
	return value, nil
}

func (b *sqliteBackend) setSync(ctx context.Context, key, value string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO sync (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("saving sync meta %s: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) counts(ctx context.Context) (plans, activities, settings int, err error) {
	if err = b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&plans); err != nil {
		return 0, 0, 0, fmt.Errorf("counting plans: %w", err)
	}
	if err = b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&activities); err != nil {
		return 0, 0, 0, fmt.Errorf("counting activities: %w", err)
	}
	if err = b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&settings); err != nil {
		return 0, 0, 0, fmt.Errorf("counting settings: %w", err)
	}
	return plans, activities, settings, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
