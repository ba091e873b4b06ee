// Package accounts manages the chart of accounts.
package accounts

import (
	"context"
	"fmt"

	"github.com/shulebooks/shulebooks/internal/model"
)

// Store is the persistence the service needs from the chart store.
type Store interface {
	Add(ctx context.Context, a model.Account) (model.Account, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	ByID(ctx context.Context, id int64) (model.Account, error)
	ByName(ctx context.Context, name string) (model.Account, error)
	Count(ctx context.Context) (int, error)
}

// Service provides lookup and maintenance over the chart of accounts.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add validates and stores a new account.
func (s *Service) Add(ctx context.Context, a model.Account) (model.Account, error) {
	if a.Name == "" {
		return model.Account{}, fmt.Errorf("account name is required")
	}
	if !a.Class.Known() {
		return model.Account{}, fmt.Errorf("unknown account class %q", a.Class)
	}
	return s.store.Add(ctx, a)
}

// All returns the full chart.
func (s *Service) All(ctx context.Context) ([]model.Account, error) {
	return s.store.Accounts(ctx)
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id int64) (model.Account, error) {
	return s.store.ByID(ctx, id)
}

// ByName returns an account by its unique name.
func (s *Service) ByName(ctx context.Context, name string) (model.Account, error) {
	return s.store.ByName(ctx, name)
}

// ByClass returns all accounts of the given class.
func (s *Service) ByClass(ctx context.Context, class model.Class) ([]model.Account, error) {
	all, err := s.store.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	var result []model.Account
	for _, a := range all {
		if a.Class == class {
			result = append(result, a)
		}
	}
	return result, nil
}

// Seed stores the default chart into an empty database and returns the
// accounts it created.
func (s *Service) Seed(ctx context.Context) ([]model.Account, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("chart of accounts already has %d accounts", n)
	}

	var seeded []model.Account
	for _, a := range DefaultChart() {
		added, err := s.store.Add(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("seeding account %q: %w", a.Name, err)
		}
		seeded = append(seeded, added)
	}
	return seeded, nil
}
