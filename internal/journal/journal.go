package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS phase_transitions (
	id          TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL,
	from_phase  INTEGER NOT NULL,
	to_phase    INTEGER NOT NULL,
	reason      TEXT NOT NULL,
	complexity  INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS heal_actions (
	id          TEXT PRIMARY KEY,
	issue       TEXT NOT NULL,
	strategy    TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	severity    REAL NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS incentive_events (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	value       REAL NOT NULL,
	kind        TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`
// #endregion schema

// #region journal-struct
// Journal persists control-loop provenance in SQLite.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}
// #endregion journal-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}
// #endregion close

// #region record-transition
// RecordTransition writes one phase transition row.
func (j *Journal) RecordTransition(runID string, from, to int, reason string, complexity int) error {
	_, err := j.db.Exec(
		`INSERT INTO phase_transitions (id, run_id, from_phase, to_phase, reason, complexity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		runID,
		from,
		to,
		reason,
		complexity,
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}
// #endregion record-transition

// #region record-heal
// RecordHealAction writes one heal action row.
func (j *Journal) RecordHealAction(issue, strategy, outcome string, severity float64) error {
	_, err := j.db.Exec(
		`INSERT INTO heal_actions (id, issue, strategy, outcome, severity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		issue,
		strategy,
		outcome,
		severity,
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record heal action: %w", err)
	}
	return nil
}
// #endregion record-heal

// #region record-incentive
// RecordIncentiveEvent writes one reward/penalty event row.
func (j *Journal) RecordIncentiveEvent(category string, value float64, kind string) error {
	_, err := j.db.Exec(
		`INSERT INTO incentive_events (id, category, value, kind, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(),
		category,
		value,
		kind,
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record incentive event: %w", err)
	}
	return nil
}
// #endregion record-incentive

// #region queries
// Transition is one row of phase_transitions.
type Transition struct {
	RunID      string
	FromPhase  int
	ToPhase    int
	Reason     string
	Complexity int
	CreatedAt  time.Time
}

// RecentTransitions returns the most recent n transitions, newest first.
func (j *Journal) RecentTransitions(n int) ([]Transition, error) {
	rows, err := j.db.Query(
		`SELECT run_id, from_phase, to_phase, reason, complexity, created_at
		 FROM phase_transitions ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var tr Transition
		var createdAt string
		if err := rows.Scan(&tr.RunID, &tr.FromPhase, &tr.ToPhase, &tr.Reason, &tr.Complexity, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		tr.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, tr)
	}
	return out, rows.Err()
}

// HealAction is one row of heal_actions.
type HealAction struct {
	Issue     string
	Strategy  string
	Outcome   string
	Severity  float64
	CreatedAt time.Time
}

// RecentHealActions returns the most recent n heal actions, newest first.
func (j *Journal) RecentHealActions(n int) ([]HealAction, error) {
	rows, err := j.db.Query(
		`SELECT issue, strategy, outcome, severity, created_at
		 FROM heal_actions ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query heal actions: %w", err)
	}
	defer rows.Close()

	var out []HealAction
	for rows.Next() {
		var ha HealAction
		var createdAt string
		if err := rows.Scan(&ha.Issue, &ha.Strategy, &ha.Outcome, &ha.Severity, &createdAt); err != nil {
			return nil, fmt.Errorf("scan heal action: %w", err)
		}
		ha.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, ha)
	}
	return out, rows.Err()
}
// #endregion queries
