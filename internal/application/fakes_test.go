package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory repo.UserRepository for service tests.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User // by id
	creates int
	err     error // when set, every method fails with it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByGoogle(_ context.Context, googleID, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	for _, u := range f.users {
		if u.Email != "" && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) UpdateName(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	return nil
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

// fakeAdRepo records Create calls and can be primed to fail.
type fakeAdRepo struct {
	mu        sync.Mutex
	ads       map[string]*entity.Advertisement
	createErr error
	lastLimit int
	lastCat   string
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{ads: map[string]*entity.Advertisement{}}
}

func (f *fakeAdRepo) Create(_ context.Context, ad *entity.Advertisement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	ad.ID = uuid.NewString()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	cp := *ad
	f.ads[ad.ID] = &cp
	return nil
}

func (f *fakeAdRepo) GetByID(_ context.Context, id string) (*entity.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.ads[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *ad
	return &cp, nil
}

func (f *fakeAdRepo) List(_ context.Context, category string, limit, offset int) ([]*entity.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	f.lastCat = category
	var out []*entity.Advertisement
	for _, ad := range f.ads {
		if category != "" && ad.Category != category {
			continue
		}
		cp := *ad
		out = append(out, &cp)
	}
	return out, nil
}

var _ repo.AdvertisementRepository = (*fakeAdRepo)(nil)
