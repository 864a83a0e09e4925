package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
)

const phoneColumns = `id, name, slug, brand, current_price, original_price, discount, rating, image_url,
	processor, ram, storage, battery, main_camera, selfie_camera, display_size, display_type,
	os, network, weight, dimensions, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhone(row rowScanner) (*models.Phone, error) {
	var (
		phone    models.Phone
		brand    sql.NullString
		original sql.NullFloat64
		discount sql.NullString
		rating   sql.NullFloat64
		image    sql.NullString
		specs    [12]sql.NullString
	)

	err := row.Scan(
		&phone.ID, &phone.Name, &phone.Slug, &brand, &phone.CurrentPrice, &original, &discount, &rating, &image,
		&specs[0], &specs[1], &specs[2], &specs[3], &specs[4], &specs[5], &specs[6], &specs[7],
		&specs[8], &specs[9], &specs[10], &specs[11], &phone.CreatedAt, &phone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	phone.Brand = brand.String
	phone.OriginalPrice = floatPtr(original)
	phone.Discount = discount.String
	phone.Rating = floatPtr(rating)
	phone.ImageURL = image.String
	phone.Processor = specs[0].String
	phone.RAM = specs[1].String
	phone.Storage = specs[2].String
	phone.Battery = specs[3].String
	phone.MainCamera = specs[4].String
	phone.SelfieCamera = specs[5].String
	phone.DisplaySize = specs[6].String
	phone.DisplayType = specs[7].String
	phone.OS = specs[8].String
	phone.Network = specs[9].String
	phone.Weight = specs[10].String
	phone.Dimensions = specs[11].String

	return &phone, nil
}

func (r *Repository) queryPhones(ctx context.Context, opn, query string, args ...any) ([]models.Phone, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query phones: %w", opn, err)
	}
	defer rows.Close()

	phones := []models.Phone{}
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan phone: %w", opn, err)
		}
		phones = append(phones, *phone)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return phones, nil
}

// ListPhones returns catalog rows matching the filter.
func (r *Repository) ListPhones(ctx context.Context, filter models.PhoneFilter) ([]models.Phone, error) {
	const opn = "repository.sqlite.ListPhones"

	var (
		query strings.Builder
		conds []string
		args  []any
	)

	query.WriteString("SELECT " + phoneColumns + " FROM phones")

	if filter.Brand != "" {
		conds = append(conds, `brand LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Brand)+"%")
	}
	if filter.Query != "" {
		conds = append(conds, `name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Query)+"%")
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	query.WriteString(" ORDER BY " + orderClause(filter.Sort))

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	} else if filter.Offset > 0 {
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	return r.queryPhones(ctx, opn, query.String(), args...)
}

func orderClause(sort models.SortOption) string {
	switch sort {
	case models.SortPriceLow:
		return "current_price ASC, name COLLATE NOCASE ASC"
	case models.SortPriceHigh:
		return "current_price DESC, name COLLATE NOCASE ASC"
	case models.SortRating:
		return "rating DESC NULLS LAST, name COLLATE NOCASE ASC"
	case models.SortName:
		return "name COLLATE NOCASE ASC"
	default:
		return "created_at DESC, name COLLATE NOCASE ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetPhoneBySlug returns the phone with the given slug.
func (r *Repository) GetPhoneBySlug(ctx context.Context, slug string) (*models.Phone, error) {
	const opn = "repository.sqlite.GetPhoneBySlug"

	return r.getPhone(ctx, opn, "SELECT "+phoneColumns+" FROM phones WHERE slug = ?", slug)
}

// GetPhoneByID returns the phone with the given id.
func (r *Repository) GetPhoneByID(ctx context.Context, id string) (*models.Phone, error) {
	const opn = "repository.sqlite.GetPhoneByID"

	return r.getPhone(ctx, opn, "SELECT "+phoneColumns+" FROM phones WHERE id = ?", id)
}

func (r *Repository) getPhone(ctx context.Context, opn, query string, arg string) (*models.Phone, error) {
	phone, err := scanPhone(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPhoneNotFound
		}
		return nil, fmt.Errorf("%s: failed to get phone: %w", opn, err)
	}

	return phone, nil
}

// ListBrands returns the distinct brands of the catalog in sorted order.
func (r *Repository) ListBrands(ctx context.Context) ([]string, error) {
	const opn = "repository.sqlite.ListBrands"

	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT brand FROM phones WHERE brand IS NOT NULL AND brand != '' ORDER BY brand")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	brands := []string{}
	for rows.Next() {
		var brand string
		if err = rows.Scan(&brand); err != nil {
			return nil, fmt.Errorf("%s: failed to scan brand: %w", opn, err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return brands, nil
}

// PhonesInPriceRange returns up to limit phones priced within [minPrice, maxPrice].
func (r *Repository) PhonesInPriceRange(
	ctx context.Context,
	minPrice, maxPrice float64,
	limit int,
) ([]models.Phone, error) {
	const opn = "repository.sqlite.PhonesInPriceRange"

	return r.queryPhones(ctx, opn,
		"SELECT "+phoneColumns+" FROM phones WHERE current_price >= ? AND current_price <= ? LIMIT ?",
		minPrice, maxPrice, sqlLimit(limit),
	)
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// PhonesMissingSpecs returns up to limit phones without a processor entry.
func (r *Repository) PhonesMissingSpecs(ctx context.Context, limit int) ([]models.Phone, error) {
	const opn = "repository.sqlite.PhonesMissingSpecs"

	return r.queryPhones(ctx, opn,
		"SELECT "+phoneColumns+" FROM phones WHERE processor IS NULL OR processor = ''"+
			" ORDER BY name COLLATE NOCASE LIMIT ?",
		sqlLimit(limit),
	)
}

// UpdateSpecs writes the core spec columns of one phone.
func (r *Repository) UpdateSpecs(ctx context.Context, id string, specs *models.Specs) error {
	const opn = "repository.sqlite.UpdateSpecs"

	res, err := r.db.ExecContext(ctx, `UPDATE phones SET
		processor = ?, ram = ?, storage = ?, battery = ?, main_camera = ?, selfie_camera = ?,
		display_size = ?, display_type = ?, os = ?, network = ?, weight = ?, dimensions = ?,
		updated_at = ?
		WHERE id = ?`,
		nullString(string(specs.Processor)), nullString(string(specs.RAM)),
		nullString(string(specs.Storage)), nullString(string(specs.Battery)),
		nullString(string(specs.MainCamera)), nullString(string(specs.SelfieCamera)),
		nullString(string(specs.DisplaySize)), nullString(string(specs.DisplayType)),
		nullString(string(specs.OS)), nullString(string(specs.Network)),
		nullString(string(specs.Weight)), nullString(string(specs.Dimensions)),
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update specs: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return repository.ErrPhoneNotFound
	}

	return nil
}
