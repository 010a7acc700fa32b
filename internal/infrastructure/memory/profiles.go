package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

type ProfileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) *ProfileRepository { return &ProfileRepository{s: s} }

// view copies p and attaches the owner snapshot. Callers hold s.mu.
func (r *ProfileRepository) view(p *entity.Profile) *entity.Profile {
	cp := clone(p)
	cp.Owner = nil
	if u, ok := r.s.users[p.CreatorID]; ok {
		cp.Owner = &entity.Owner{ID: u.ID, Name: u.Name, Image: u.Image}
	}
	return cp
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("profiles.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.profiles {
		if existing.ID == p.ID || existing.CreatorID == p.CreatorID {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := clone(p)
	stored.Owner = nil
	r.s.profiles[p.ID] = stored
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	if err := r.s.fail("profiles.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.view(p), nil
}

func (r *ProfileRepository) GetByCreator(_ context.Context, userID string) (*entity.Profile, error) {
	if err := r.s.fail("profiles.GetByCreator"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.profiles {
		if p.CreatorID == userID {
			return r.view(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) List(_ context.Context) ([]*entity.Profile, error) {
	if err := r.s.fail("profiles.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, r.view(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("profiles.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	stored := clone(p)
	stored.Owner = nil
	r.s.profiles[p.ID] = stored
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("profiles.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.profiles, id)
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
