package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for install records and journal rows.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SaveInstallRecord inserts or replaces the install record for an app.
func (r *Repository) SaveInstallRecord(appName, publisher, version, installDir string) error {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return fmt.Errorf("invalid record: app name cannot be empty")
	}
	_, err := r.db.Exec(`INSERT INTO install_records (app_name, publisher, version, install_dir, installed_at)
			VALUES (?, ?, ?, ?, datetime('now'))
			ON CONFLICT(app_name) DO UPDATE SET
				publisher = excluded.publisher,
				version = excluded.version,
				install_dir = excluded.install_dir,
				installed_at = excluded.installed_at`,
		appName, publisher, version, installDir)
	if err != nil {
		return fmt.Errorf("save install record: %w", err)
	}
	return nil
}

// GetInstallRecord retrieves the install record for an app, or nil if the
// app is not installed.
func (r *Repository) GetInstallRecord(appName string) (*InstallRecord, error) {
	row := r.db.QueryRow(`SELECT id, app_name, publisher, version, install_dir, installed_at
			FROM install_records WHERE app_name = ?`, appName)
	var rec InstallRecord
	if err := row.Scan(&rec.ID, &rec.AppName, &rec.Publisher, &rec.Version, &rec.InstallDir, &rec.InstalledAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteInstallRecord removes the install record for an app. Deleting a
// record that does not exist is a no-op.
func (r *Repository) DeleteInstallRecord(appName string) error {
	if _, err := r.db.Exec("DELETE FROM install_records WHERE app_name = ?", appName); err != nil {
		return fmt.Errorf("delete install record: %w", err)
	}
	return nil
}

// MarkStep records that a publish step completed for a version at a commit.
// Re-marking a step that is already journaled replaces its detail.
func (r *Repository) MarkStep(version, commitSHA, step, detail string) error {
	_, err := r.db.Exec(`INSERT INTO publish_journal (version, commit_sha, step, detail, completed_at)
			VALUES (?, ?, ?, ?, datetime('now'))
			ON CONFLICT(version, commit_sha, step) DO UPDATE SET
				detail = excluded.detail,
				completed_at = excluded.completed_at`,
		version, commitSHA, step, detail)
	if err != nil {
		return fmt.Errorf("mark step: %w", err)
	}
	return nil
}

// StepDone reports whether a publish step is journaled for a version at a
// commit.
func (r *Repository) StepDone(version, commitSHA, step string) (bool, error) {
	row := r.db.QueryRow(`SELECT COUNT(1) FROM publish_journal
			WHERE version = ? AND commit_sha = ? AND step = ?`, version, commitSHA, step)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearJournal removes all journal rows for a version. Used when starting a
// fresh (non-resumed) publish of that version.
func (r *Repository) ClearJournal(version string) error {
	if _, err := r.db.Exec("DELETE FROM publish_journal WHERE version = ?", version); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// JournalEntries returns the journal rows for a version, oldest first.
func (r *Repository) JournalEntries(version string) ([]JournalEntry, error) {
	rows, err := r.db.Query(`SELECT id, version, commit_sha, step, IFNULL(detail, ''), completed_at
			FROM publish_journal WHERE version = ? ORDER BY id ASC`, version)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Version, &e.CommitSHA, &e.Step, &e.Detail, &e.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
