package catalogrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luvit/moodfit/internal/domain/profile"
	"github.com/luvit/moodfit/internal/domain/recommend"
)

// PostgresRepository serves the tagged catalog from Postgres using pgx.
// Rows carry the item payload as jsonb so editors can extend the catalog
// without schema changes; ordering follows the position column so the
// engine's tie-break stays deterministic.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Catalog implements recommend.CatalogRepository.
func (r *PostgresRepository) Catalog(ctx context.Context, locale profile.Locale) (recommend.Catalog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, payload
		FROM catalog_items
		WHERE locale = $1
		ORDER BY position
	`, string(locale))
	if err != nil {
		return recommend.Catalog{}, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var cat recommend.Catalog
	for rows.Next() {
		var (
			kind    string
			payload []byte
		)
		if err := rows.Scan(&kind, &payload); err != nil {
			return recommend.Catalog{}, fmt.Errorf("scan catalog row: %w", err)
		}
		switch kind {
		case "recipe":
			var recipe recommend.Recipe
			if err := json.Unmarshal(payload, &recipe); err != nil {
				return recommend.Catalog{}, fmt.Errorf("decode recipe payload: %w", err)
			}
			cat.Recipes = append(cat.Recipes, recipe)
		case "outfit":
			var outfit recommend.Outfit
			if err := json.Unmarshal(payload, &outfit); err != nil {
				return recommend.Catalog{}, fmt.Errorf("decode outfit payload: %w", err)
			}
			cat.Outfits = append(cat.Outfits, outfit)
		case "workout":
			var workout recommend.Workout
			if err := json.Unmarshal(payload, &workout); err != nil {
				return recommend.Catalog{}, fmt.Errorf("decode workout payload: %w", err)
			}
			cat.Workouts = append(cat.Workouts, workout)
		}
	}
	return cat, rows.Err()
}

var _ recommend.CatalogRepository = (*PostgresRepository)(nil)
