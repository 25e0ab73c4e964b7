package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/approval-form/internal/domain"
)

// Directory reads the supervisor reference table from SQLite.
type Directory struct {
	db *sql.DB
}

// New opens an existing SQLite database and checks that the supervisors
// table is there. Schema migrations are managed by dbmate; run `dbmate up`
// (or `mage dbup`) before starting the server.
func New(dsn string) (*Directory, error) {
	if _, err := os.Stat(dsn); err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM supervisors`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s has no supervisor schema (run dbmate up): %w", dsn, err)
	}
	return &Directory{db: db}, nil
}

func (d *Directory) Close() error { return d.db.Close() }

// ── Supervisors ───────────────────────────────────────────────────────────────

func (d *Directory) ListSupervisors(ctx context.Context) ([]domain.Supervisor, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, project_title
		FROM supervisors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Supervisor
	byID := make(map[int64]int)
	for rows.Next() {
		var s domain.Supervisor
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ProjectTitle); err != nil {
			return nil, err
		}
		byID[s.ID] = len(list)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := d.db.QueryContext(ctx, `
		SELECT supervisor_id, name
		FROM supervisees ORDER BY supervisor_id, position, id`)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var supID int64
		var name string
		if err := srows.Scan(&supID, &name); err != nil {
			return nil, err
		}
		if i, ok := byID[supID]; ok {
			list[i].Supervisees = append(list[i].Supervisees, name)
		}
	}
	return list, srows.Err()
}

func (d *Directory) GetSupervisor(ctx context.Context, id int64) (*domain.Supervisor, error) {
	s := &domain.Supervisor{}
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, email, project_title
		FROM supervisors WHERE id=?`, id).Scan(&s.ID, &s.Name, &s.Email, &s.ProjectTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSupervisorNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT name FROM supervisees
		WHERE supervisor_id=? ORDER BY position, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		s.Supervisees = append(s.Supervisees, name)
	}
	return s, rows.Err()
}
