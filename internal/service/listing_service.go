package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"servicehub/api/internal/ids"
	"servicehub/api/internal/models"
	"servicehub/api/internal/repository"
	"servicehub/api/internal/security"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListingService struct {
	listings ListingStore
	log      zerolog.Logger
}

func NewListingService(listings ListingStore, log zerolog.Logger) *ListingService {
	return &ListingService{
		listings: listings,
		log:      log,
	}
}

type ListingInput struct {
	Title       string
	Description string
	Category    string
	Price       *float64
}

func (in *ListingInput) validate() error {
	var verr ValidationError
	if strings.TrimSpace(in.Title) == "" {
		verr.add("title", "Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.add("description", "Description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		verr.add("category", "Category is required")
	}
	if in.Price == nil {
		verr.add("price", "Price must be a number")
	} else if *in.Price < 0 {
		verr.add("price", "Price must be positive")
	}
	return verr.orNil()
}

type ListingPage struct {
	Listings      []models.Listing
	CurrentPage   int
	TotalPages    int
	TotalListings int
}

// ListPage returns one page of listings newest first. Page is floored to 1
// and limit clamped to [1, MaxPageSize]; the original left limit unbounded.
func (s *ListingService) ListPage(ctx context.Context, page, limit int) (ListingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	listings, err := s.listings.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return ListingPage{}, err
	}
	total, err := s.listings.Count(ctx)
	if err != nil {
		return ListingPage{}, err
	}

	return ListingPage{
		Listings:      listings,
		CurrentPage:   page,
		TotalPages:    (total + limit - 1) / limit,
		TotalListings: total,
	}, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (models.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

func (s *ListingService) Create(ctx context.Context, ownerID string, input ListingInput) (models.Listing, error) {
	if err := input.validate(); err != nil {
		return models.Listing{}, err
	}

	listing := models.Listing{
		ID:          ids.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Price:       *input.Price,
		CreatedBy:   ownerID,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return models.Listing{}, err
	}

	s.log.Info().Str("listing_id", listing.ID).Str("owner_id", ownerID).Msg("listing created")

	// Re-read to return timestamps and the populated owner.
	return s.Get(ctx, listing.ID)
}

func (s *ListingService) ListMine(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return s.listings.ListByOwner(ctx, ownerID)
}

// Update applies create-level validation after the existence and ownership
// checks. Concurrent edits by the owner are last-write-wins.
func (s *ListingService) Update(ctx context.Context, id, subjectID string, input ListingInput) (models.Listing, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if !security.CanModify(subjectID, existing.CreatedBy) {
		return models.Listing{}, ErrNotOwner
	}
	if err := input.validate(); err != nil {
		return models.Listing{}, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = strings.TrimSpace(input.Description)
	existing.Category = strings.TrimSpace(input.Category)
	existing.Price = *input.Price

	if err := s.listings.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}

	return s.Get(ctx, id)
}

func (s *ListingService) Delete(ctx context.Context, id, subjectID string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !security.CanModify(subjectID, existing.CreatedBy) {
		return ErrNotOwner
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	s.log.Info().Str("listing_id", id).Str("owner_id", subjectID).Msg("listing deleted")
	return nil
}
