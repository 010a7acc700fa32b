package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

type PlaceRepository struct {
	s *Store
}

func NewPlaceRepository(s *Store) *PlaceRepository { return &PlaceRepository{s: s} }

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("places.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.places[p.ID]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.places[p.ID] = clone(p)
	return nil
}

func (r *PlaceRepository) GetByID(_ context.Context, id string) (*entity.Place, error) {
	if err := r.s.fail("places.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *PlaceRepository) ListByCreator(_ context.Context, userID string) ([]*entity.Place, error) {
	if err := r.s.fail("places.ListByCreator"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Place, 0)
	for _, p := range r.s.places {
		if p.CreatorID == userID {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("places.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.places[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	r.s.places[p.ID] = clone(p)
	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("places.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.places[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.places, id)
	return nil
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
