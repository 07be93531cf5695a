package service

import (
	"context"

	"servicehub/api/internal/models"
)

// Store interfaces are declared on the consumer side so services can be
// exercised against in-memory fakes. The pgx repositories satisfy them.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type ListingStore interface {
	Create(ctx context.Context, listing models.Listing) error
	GetByID(ctx context.Context, id string) (models.Listing, error)
	List(ctx context.Context, limit, offset int) ([]models.Listing, error)
	Count(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	Update(ctx context.Context, listing models.Listing) error
	Delete(ctx context.Context, id string) error
}
