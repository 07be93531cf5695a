package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"servicehub/api/internal/models"
	"servicehub/api/internal/repository"
)

// In-memory stores mirroring the pgx repositories' contract, including
// their sentinel errors.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User

	// createErr, when set, is returned by Create after the email pre-check
	// has passed. Simulates losing the race to the unique index.
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeListingStore struct {
	mu       sync.Mutex
	listings map[string]models.Listing
	owners   map[string]models.ListingOwner
	clock    time.Time

	lastLimit  int
	lastOffset int
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{
		listings: make(map[string]models.Listing),
		owners:   make(map[string]models.ListingOwner),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeListingStore) addOwner(owner models.ListingOwner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[owner.ID] = owner
}

func (s *fakeListingStore) populate(listing models.Listing) models.Listing {
	if owner, ok := s.owners[listing.CreatedBy]; ok {
		listing.Owner = &owner
	}
	return listing
}

func (s *fakeListingStore) sorted() []models.Listing {
	all := make([]models.Listing, 0, len(s.listings))
	for _, listing := range s.listings {
		all = append(all, s.populate(listing))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func (s *fakeListingStore) Create(_ context.Context, listing models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	listing.CreatedAt = s.clock
	listing.UpdatedAt = s.clock
	s.listings[listing.ID] = listing
	return nil
}

func (s *fakeListingStore) GetByID(_ context.Context, id string) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[id]
	if !ok {
		return models.Listing{}, repository.ErrListingNotFound
	}
	return s.populate(listing), nil
}

func (s *fakeListingStore) List(_ context.Context, limit, offset int) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	s.lastOffset = offset

	all := s.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeListingStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings), nil
}

func (s *fakeListingStore) ListByOwner(_ context.Context, ownerID string) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []models.Listing
	for _, listing := range s.sorted() {
		if listing.CreatedBy == ownerID {
			mine = append(mine, listing)
		}
	}
	return mine, nil
}

func (s *fakeListingStore) Update(_ context.Context, listing models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.listings[listing.ID]
	if !ok {
		return repository.ErrListingNotFound
	}
	s.clock = s.clock.Add(time.Second)
	existing.Title = listing.Title
	existing.Description = listing.Description
	existing.Category = listing.Category
	existing.Price = listing.Price
	existing.UpdatedAt = s.clock
	s.listings[listing.ID] = existing
	return nil
}

func (s *fakeListingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[id]; !ok {
		return repository.ErrListingNotFound
	}
	delete(s.listings, id)
	return nil
}
