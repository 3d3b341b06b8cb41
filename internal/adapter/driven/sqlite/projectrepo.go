package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProjectStore = (*ProjectRepo)(nil)

// ProjectRepo is the SQLite implementation of the ProjectStore port interface.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo backed by the given DB.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, title, description, image_url, date_iso, tags_text, links_text, market_enabled`

// Create inserts a new project. Returns ErrProjectExists if a project with
// the same id already exists.
func (r *ProjectRepo) Create(ctx context.Context, p model.Project) error {
	const query = `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	tags, links, err := encodeProjectLists(p)
	if err != nil {
		return fmt.Errorf("create project %s: %w", p.ID, err)
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.ImageURL, p.DateISO, tags, links, p.MarketEnabled)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("create project %s: %w", p.ID, driven.ErrProjectExists)
		}
		return fmt.Errorf("create project %s: %w", p.ID, err)
	}

	return nil
}

// Update rewrites all fields of an existing project. Returns
// ErrProjectNotFound if the id is unknown.
func (r *ProjectRepo) Update(ctx context.Context, p model.Project) error {
	const query = `UPDATE projects
		SET title = ?, description = ?, image_url = ?, date_iso = ?, tags_text = ?, links_text = ?, market_enabled = ?
		WHERE id = ?`

	tags, links, err := encodeProjectLists(p)
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		p.Title, p.Description, p.ImageURL, p.DateISO, tags, links, p.MarketEnabled, p.ID)
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update project %s: %w", p.ID, driven.ErrProjectNotFound)
	}

	return nil
}

// Delete removes a project by id. Returns ErrProjectNotFound if the project
// does not exist.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM projects WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete project %s: %w", id, driven.ErrProjectNotFound)
	}

	return nil
}

// GetByID retrieves a project by id. Returns nil, nil if it does not exist.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	p, err := scanProject(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	return p, nil
}

// ListAll returns all projects, newest display date first.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects ORDER BY date_iso DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// SetMarketEnabled flips the marketplace flag and returns the updated
// project. Returns ErrProjectNotFound if the id is unknown.
func (r *ProjectRepo) SetMarketEnabled(ctx context.Context, id string, enabled bool) (*model.Project, error) {
	const query = `UPDATE projects SET market_enabled = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, enabled, id)
	if err != nil {
		return nil, fmt.Errorf("toggle project %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("toggle project %s: %w", id, driven.ErrProjectNotFound)
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("toggle project %s: %w", id, driven.ErrProjectNotFound)
	}

	return p, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p     model.Project
		tags  string
		links string
	)

	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.DateISO, &tags, &links, &p.MarketEnabled); err != nil {
		return nil, err
	}

	p.Tags = decodeTags(tags)
	p.Links = decodeLinks(links)

	return &p, nil
}

func encodeProjectLists(p model.Project) (tags, links string, err error) {
	t := p.Tags
	if t == nil {
		t = []string{}
	}
	l := p.Links
	if l == nil {
		l = []model.Link{}
	}

	tb, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}
	lb, err := json.Marshal(l)
	if err != nil {
		return "", "", fmt.Errorf("encode links: %w", err)
	}

	return string(tb), string(lb), nil
}

// decodeTags is total: absent or corrupt serialized text yields the empty
// list rather than an error, so a project row can always be rendered.
func decodeTags(text string) []string {
	if text == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(text), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func decodeLinks(text string) []model.Link {
	if text == "" {
		return []model.Link{}
	}
	var links []model.Link
	if err := json.Unmarshal([]byte(text), &links); err != nil || links == nil {
		return []model.Link{}
	}
	return links
}
