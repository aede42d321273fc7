package contributions

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-concertations/backend/internal/models"
)

const contributionColumns = `c.id, c.event_id, c.kind, c.title, c.description, c.public, c.created_at, c.updated_at`

// Repository handles contribution persistence, including the append-only
// status timeline and tags.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a contributions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts the contribution, its first status row, and its tags in one
// transaction. A contribution is never observable without a timeline entry.
func (r *Repository) Create(ctx context.Context, c *models.Contribution, status models.ContributionStatusValue, changeOn time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertContribution = `INSERT INTO contributions (event_id, kind, title, description, public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insertContribution, c.EventID, c.Kind, c.Title, c.Description, c.Public).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	st, err := appendStatus(ctx, tx, c.ID, status, changeOn)
	if err != nil {
		return err
	}
	c.CurrentStatus = st

	if err := saveTags(ctx, tx, c.ID, c.Tags); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	c.Tags = normalizeTags(c.Tags)
	return nil
}

// Update saves the mutable fields and tags, and appends a status row only when
// the value differs from the latest timeline entry. Repeated saves with the
// same status leave the timeline untouched.
func (r *Repository) Update(ctx context.Context, c *models.Contribution, status models.ContributionStatusValue, changeOn time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateContribution = `UPDATE contributions
		SET kind = $1, title = $2, description = $3, public = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`
	err = tx.QueryRow(ctx, updateContribution, c.Kind, c.Title, c.Description, c.Public, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		return err
	}

	current, err := latestStatus(ctx, tx, c.ID)
	if err != nil {
		return err
	}
	if needsStatusRow(current, status) {
		current, err = appendStatus(ctx, tx, c.ID, status, changeOn)
		if err != nil {
			return err
		}
	}
	c.CurrentStatus = current

	if _, err := tx.Exec(ctx, `DELETE FROM contribution_tags WHERE contribution_id = $1`, c.ID); err != nil {
		return err
	}
	if err := saveTags(ctx, tx, c.ID, c.Tags); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	c.Tags = normalizeTags(c.Tags)
	return nil
}

// GetByID returns a contribution with its current status and tags loaded.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contribution, error) {
	const q = `SELECT ` + contributionColumns + ` FROM contributions c WHERE c.id = $1`
	var c models.Contribution
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.EventID, &c.Kind, &c.Title, &c.Description, &c.Public, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByEvent returns a single event's contributions, newest first. With
// publicOnly set, private ones are skipped (the public event page); without
// it, everything is returned (the organizer view).
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID, publicOnly bool) ([]models.Contribution, error) {
	q := `SELECT ` + contributionColumns + ` FROM contributions c WHERE c.event_id = $1`
	if publicOnly {
		q += ` AND c.public`
	}
	q += ` ORDER BY c.created_at DESC`
	return r.list(ctx, q, eventID)
}

// PublicFilters narrows the cross-event public contribution listing. Zero
// values mean "no filter"; invalid input never reaches this struct.
type PublicFilters struct {
	Theme string
	Scale string
	Tag   string
}

// ListPublic returns public contributions of public events, newest first,
// optionally narrowed by the parent event's theme or scale, or by tag.
func (r *Repository) ListPublic(ctx context.Context, f PublicFilters) ([]models.Contribution, error) {
	q := `SELECT ` + contributionColumns + `
		FROM contributions c
		INNER JOIN events e ON e.id = c.event_id
		WHERE c.public AND e.pub_status = 'pub'`
	var args []any
	if f.Theme != "" {
		args = append(args, f.Theme)
		q += ` AND e.theme = $` + strconv.Itoa(len(args))
	}
	if f.Scale != "" {
		args = append(args, f.Scale)
		q += ` AND e.scale = $` + strconv.Itoa(len(args))
	}
	if f.Tag != "" {
		args = append(args, slugify(f.Tag))
		q += ` AND EXISTS (SELECT 1 FROM contribution_tags ct
			INNER JOIN tags t ON t.id = ct.tag_id
			WHERE ct.contribution_id = c.id AND t.slug = $` + strconv.Itoa(len(args)) + `)`
	}
	q += ` ORDER BY c.created_at DESC`
	return r.list(ctx, q, args...)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]models.Contribution, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.EventID, &c.Kind, &c.Title, &c.Description, &c.Public, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		if err := r.loadDetails(ctx, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *Repository) loadDetails(ctx context.Context, c *models.Contribution) error {
	st, err := latestStatus(ctx, r.pool, c.ID)
	if err != nil {
		return err
	}
	c.CurrentStatus = st

	const tagsQuery = `SELECT t.slug FROM tags t
		INNER JOIN contribution_tags ct ON ct.tag_id = t.id
		WHERE ct.contribution_id = $1
		ORDER BY t.slug`
	rows, err := r.pool.Query(ctx, tagsQuery, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	c.Tags = nil
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return err
		}
		c.Tags = append(c.Tags, slug)
	}
	return rows.Err()
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// latestStatus returns the newest timeline row, or nil when the contribution
// has no history yet.
func latestStatus(ctx context.Context, q querier, contributionID uuid.UUID) (*models.ContributionStatus, error) {
	const query = `SELECT id, contribution_id, change_on, status, created_at
		FROM contribution_statuses
		WHERE contribution_id = $1
		ORDER BY seq DESC
		LIMIT 1`
	var st models.ContributionStatus
	err := q.QueryRow(ctx, query, contributionID).Scan(&st.ID, &st.ContributionID, &st.ChangeOn, &st.Status, &st.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func appendStatus(ctx context.Context, tx pgx.Tx, contributionID uuid.UUID, status models.ContributionStatusValue, changeOn time.Time) (*models.ContributionStatus, error) {
	const q = `INSERT INTO contribution_statuses (contribution_id, change_on, status)
		VALUES ($1, $2, $3)
		RETURNING id, contribution_id, change_on, status, created_at`
	var st models.ContributionStatus
	err := tx.QueryRow(ctx, q, contributionID, changeOn, status).Scan(&st.ID, &st.ContributionID, &st.ChangeOn, &st.Status, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// saveTags upserts the tag rows and links them to the contribution. Slugs are
// lowercased so "Santé" and "santé" are the same tag.
func saveTags(ctx context.Context, tx pgx.Tx, contributionID uuid.UUID, tags []string) error {
	for _, raw := range tags {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		slug := slugify(name)
		var tagID uuid.UUID
		const upsert = `INSERT INTO tags (slug, name) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = tags.name
			RETURNING id`
		if err := tx.QueryRow(ctx, upsert, slug, name).Scan(&tagID); err != nil {
			return err
		}
		const link = `INSERT INTO contribution_tags (contribution_id, tag_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, link, contributionID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, raw := range tags {
		slug := slugify(strings.TrimSpace(raw))
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
