// Package catalog reads the product catalog from PostgreSQL.
package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

const selectColumns = `id, name, brand, category, description, price, stock, sale_fraction, best_seller, sizes, colors, image_url`

type Store struct {
	db  *sql.DB
	log logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Find returns catalog entries matching the query's color constraint, up
// to its limit. Other facets are applied in-process by the matcher, only
// colors and the fetch cap narrow the SQL.
func (s *Store) Find(ctx context.Context, query models.FacetQuery) ([]models.CatalogEntry, error) {
	q := `SELECT ` + selectColumns + ` FROM catalog_entries`
	args := []interface{}{}

	if len(query.Colors) > 0 {
		q += ` WHERE colors && $1`
		args = append(args, pq.Array(query.Colors))
	}
	q += ` ORDER BY name`
	if query.Limit > 0 {
		args = append(args, query.Limit)
		if len(args) == 1 {
			q += ` LIMIT $1`
		} else {
			q += ` LIMIT $2`
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		var description, imageURL sql.NullString
		var sizes pq.Float64Array
		var colors pq.StringArray
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Brand, &e.Category, &description,
			&e.Price, &e.Stock, &e.SaleFraction, &e.BestSeller,
			&sizes, &colors, &imageURL,
		); err != nil {
			return nil, errors.NewCatalogQueryFailedError(err)
		}
		e.Description = description.String
		e.ImageURL = imageURL.String
		e.Sizes = []float64(sizes)
		e.Colors = []string(colors)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}

	return entries, nil
}

// AllColors returns the distinct colors present across the catalog, the
// vocabulary for color detection.
func (s *Store) AllColors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT unnest(colors) AS color FROM catalog_entries ORDER BY color`)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}
	defer rows.Close()

	var colors []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, errors.NewCatalogQueryFailedError(err)
		}
		if c != "" {
			colors = append(colors, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}

	return colors, nil
}

// Get fetches a single entry by id.
func (s *Store) Get(ctx context.Context, id string) (*models.CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM catalog_entries WHERE id = $1`, id)

	var e models.CatalogEntry
	var description, imageURL sql.NullString
	var sizes pq.Float64Array
	var colors pq.StringArray
	err := row.Scan(
		&e.ID, &e.Name, &e.Brand, &e.Category, &description,
		&e.Price, &e.Stock, &e.SaleFraction, &e.BestSeller,
		&sizes, &colors, &imageURL,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrItemNotFound
	}
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}
	e.Description = description.String
	e.ImageURL = imageURL.String
	e.Sizes = []float64(sizes)
	e.Colors = []string(colors)
	return &e, nil
}
