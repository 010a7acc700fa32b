package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

type PostRepository struct {
	s *Store
}

func NewPostRepository(s *Store) *PostRepository { return &PostRepository{s: s} }

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("posts.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[p.ID]; ok {
		return repository.ErrDuplicate
	}
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	p.CreatedAt = time.Now().UTC()
	r.s.posts[p.ID] = clone(p)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	if err := r.s.fail("posts.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *PostRepository) List(_ context.Context) ([]*entity.Post, error) {
	if err := r.s.fail("posts.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("posts.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := clone(p)
	stored.Likes = cp.Likes
	stored.Comments = cp.Comments
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if err := r.s.fail("posts.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
