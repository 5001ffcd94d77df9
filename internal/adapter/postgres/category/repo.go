// Package category resolves item categories. Category management itself is
// owned elsewhere; items only need the default category's id.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	"github.com/heartmarshall/household-backend/internal/domain"
)

// Repo reads categories from PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// IDBySlug returns the id of the category with the given slug.
func (r *Repo) IDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT id FROM categories WHERE slug = $1`, slug).
		Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return id, nil
}
