package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("users.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if _, ok := r.s.users[u.ID]; ok {
		return repository.ErrDuplicate
	}
	if u.Places == nil {
		u.Places = []string{}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.s.fail("users.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.s.fail("users.GetByEmail"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	if err := r.s.fail("users.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) update(ctx context.Context, op, id string, fn func(u *entity.User)) error {
	defer r.s.write(ctx)()
	if err := r.s.fail(op); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) AddPlace(ctx context.Context, userID, placeID string) error {
	return r.update(ctx, "users.AddPlace", userID, func(u *entity.User) {
		u.Places = append(u.Places, placeID)
	})
}

func (r *UserRepository) RemovePlace(ctx context.Context, userID, placeID string) error {
	return r.update(ctx, "users.RemovePlace", userID, func(u *entity.User) {
		kept := u.Places[:0:0]
		for _, id := range u.Places {
			if id != placeID {
				kept = append(kept, id)
			}
		}
		u.Places = kept
	})
}

func (r *UserRepository) SetProfile(ctx context.Context, userID string, profileID *string) error {
	return r.update(ctx, "users.SetProfile", userID, func(u *entity.User) {
		if profileID == nil {
			u.ProfileID = nil
			return
		}
		id := *profileID
		u.ProfileID = &id
	})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("users.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
