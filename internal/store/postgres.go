package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/jobhunt/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// Postgres is a Store backed by a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool, verifies it and applies the schema.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

const resumeColumns = `id, file_name, raw_text, page_count, skills, email, phone, links,
	location, analysis, ai_analyzed, uploaded_at`

func (p *Postgres) PutResume(ctx context.Context, r *types.ResumeRecord) error {
	skillsJSON, err := json.Marshal(nonNil(r.Skills))
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	links := r.Links
	if links == nil {
		links = types.ContactLinks{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	var analysisJSON []byte
	if r.Analysis != nil {
		if analysisJSON, err = json.Marshal(r.Analysis); err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO resumes (`+resumeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     file_name = $2, raw_text = $3, page_count = $4, skills = $5, email = $6,
		     phone = $7, links = $8, location = $9, analysis = $10, ai_analyzed = $11`,
		r.ID, r.FileName, r.RawText, r.PageCount, skillsJSON, r.Email, r.Phone, linksJSON,
		r.Location, analysisJSON, r.AIAnalyzed, r.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

func (p *Postgres) GetResume(ctx context.Context, id string) (*types.ResumeRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

func (p *Postgres) ListResumes(ctx context.Context, limit int) ([]*types.ResumeRecord, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY uploaded_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []*types.ResumeRecord
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteResume(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

const applicationColumns = `id, resume_id, listing, status, notes, applied_at, created_at, updated_at`

func (p *Postgres) PutApplication(ctx context.Context, a *types.Application) error {
	listingJSON, err := json.Marshal(a.Listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO applications (id, resume_id, external_id, listing, status, notes, applied_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     resume_id = $2, external_id = $3, listing = $4, status = $5, notes = $6,
		     applied_at = $7, updated_at = $9`,
		a.ID, a.ResumeID, a.Listing.ExternalID, listingJSON, a.Status, a.Notes,
		a.AppliedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (p *Postgres) GetApplication(ctx context.Context, id string) (*types.Application, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

func (p *Postgres) FindApplicationByExternalID(ctx context.Context, externalID string) (*types.Application, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE external_id = $1`, externalID)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application for listing %s: %w", externalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return a, nil
}

func (p *Postgres) ListApplications(ctx context.Context, status string) ([]*types.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var out []*types.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteApplication(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanResume(row pgx.Row) (*types.ResumeRecord, error) {
	var r types.ResumeRecord
	var skillsJSON, linksJSON, analysisJSON []byte
	err := row.Scan(&r.ID, &r.FileName, &r.RawText, &r.PageCount, &skillsJSON, &r.Email,
		&r.Phone, &linksJSON, &r.Location, &analysisJSON, &r.AIAnalyzed, &r.UploadedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skillsJSON, &r.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(linksJSON, &r.Links); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links: %w", err)
	}
	if analysisJSON != nil {
		r.Analysis = &types.ResumeAnalysis{}
		if err := json.Unmarshal(analysisJSON, r.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
	}
	return &r, nil
}

func scanApplication(row pgx.Row) (*types.Application, error) {
	var a types.Application
	var listingJSON []byte
	err := row.Scan(&a.ID, &a.ResumeID, &listingJSON, &a.Status, &a.Notes, &a.AppliedAt,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(listingJSON, &a.Listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	return &a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
