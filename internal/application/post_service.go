package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/internal/domain/entity"
	repo "github.com/oksasatya/placebook/internal/domain/repository"
	"github.com/oksasatya/placebook/pkg/apperror"
)

const (
	msgPostNotFound        = "Could not find post for the provided id."
	msgPostNotFoundByID    = "Could not find post for this id."
	msgFindPostFailed      = "Something went wrong, could not find a post."
	msgCreatePostFailed    = "Creating post failed, please try again."
	msgDeletePostFailed    = "Something went wrong, could not delete post."
	msgDeletePostDenied    = "You are not allowed to delete this post."
	msgPostAlreadyLiked    = "Error Occurred. Post has already been liked."
	msgPostNotLiked        = "Error Occurred. Post has not been liked by current user."
	msgTryAgainLater       = "Error Occurred. Please try again later"
	msgCommentNotFound     = "Comment does not exist."
	msgCommentDenied       = "User not authorized"
	msgDeleteCommentFailed = "Something went wrong, could not delete comment from post."
)

// PostService manages the feed, likes and comments.
type PostService struct {
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

func (s *PostService) author(ctx context.Context, userID, failMsg string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Storage(failMsg, err)
	}
	return u, nil
}

func (s *PostService) find(ctx context.Context, id, notFound string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, apperror.Storage(msgFindPostFailed, err)
	}
	return p, nil
}

// CreatePost snapshots the author's name and image onto the post.
func (s *PostService) CreatePost(ctx context.Context, userID, text string) (*entity.Post, error) {
	u, err := s.author(ctx, userID, msgCreatePostFailed)
	if err != nil {
		return nil, err
	}
	p := &entity.Post{
		ID:        uuid.NewString(),
		CreatorID: u.ID,
		Text:      text,
		Name:      u.Name,
		Image:     u.Image,
		Likes:     []entity.Like{},
		Comments:  []entity.Comment{},
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, apperror.Storage(msgCreatePostFailed, err)
	}
	return p, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.Posts.List(ctx)
	if err != nil {
		return nil, apperror.Storage(msgFindPostFailed, err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return s.find(ctx, id, msgPostNotFound)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	p, err := s.find(ctx, postID, msgPostNotFoundByID)
	if err != nil {
		return err
	}
	if !p.OwnedBy(userID) {
		return apperror.Authorization(msgDeletePostDenied)
	}
	if err := s.Posts.Delete(ctx, p.ID); err != nil {
		return apperror.Storage(msgDeletePostFailed, err)
	}
	return nil
}

// LikePost rejects a second like from the same user.
func (s *PostService) LikePost(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := s.find(ctx, postID, msgPostNotFoundByID)
	if err != nil {
		return nil, err
	}
	if !p.Like(userID) {
		return nil, apperror.Conflict(msgPostAlreadyLiked)
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgTryAgainLater, err)
	}
	return p.Likes, nil
}

// UnlikePost rejects users who have not liked the post.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := s.find(ctx, postID, msgPostNotFoundByID)
	if err != nil {
		return nil, err
	}
	if !p.Unlike(userID) {
		return nil, apperror.Conflict(msgPostNotLiked)
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgTryAgainLater, err)
	}
	return p.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	u, err := s.author(ctx, userID, msgTryAgainLater)
	if err != nil {
		return nil, err
	}
	p, err := s.find(ctx, postID, msgPostNotFoundByID)
	if err != nil {
		return nil, err
	}
	p.PrependComment(entity.Comment{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Text:      text,
		Name:      u.Name,
		Image:     u.Image,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgTryAgainLater, err)
	}
	return p.Comments, nil
}

// DeleteComment checks that the caller wrote the addressed comment, then
// removes the caller's most recent comment on the post.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	p, err := s.find(ctx, postID, msgPostNotFoundByID)
	if err != nil {
		return nil, err
	}
	c, ok := p.FindComment(commentID)
	if !ok {
		return nil, apperror.NotFound(msgCommentNotFound)
	}
	if c.UserID != userID {
		return nil, apperror.Authorization(msgCommentDenied)
	}
	p.RemoveFirstCommentBy(userID)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgDeleteCommentFailed, err)
	}
	return p.Comments, nil
}
