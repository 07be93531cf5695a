package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"servicehub/api/internal/models"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const listingColumns = `
	l.id, l.title, l.description, l.category, l.price, l.created_by, l.created_at, l.updated_at,
	u.id, u.first_name, u.last_name, u.email
`

func (r *ListingRepository) Create(ctx context.Context, listing models.Listing) error {
	const query = `
		INSERT INTO listings (
			id, title, description, category, price, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Price,
		listing.CreatedBy,
	)
	return err
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (models.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON u.id = l.created_by
		WHERE l.id = $1
	`

	listing, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

// List returns listings newest first, owner populated.
func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON u.id = l.created_by
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings l
		JOIN users u ON u.id = l.created_by
		WHERE l.created_by = $1
		ORDER BY l.created_at DESC, l.id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

// Update rewrites the mutable fields only; created_by is immutable.
func (r *ListingRepository) Update(ctx context.Context, listing models.Listing) error {
	const query = `
		UPDATE listings
		SET title = $2, description = $3, category = $4, price = $5, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Price,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (models.Listing, error) {
	var listing models.Listing
	var owner models.ListingOwner
	if err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.Category,
		&listing.Price,
		&listing.CreatedBy,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
	); err != nil {
		return models.Listing{}, err
	}
	listing.Owner = &owner
	return listing, nil
}

func collectListings(rows pgx.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
