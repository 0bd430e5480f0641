package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsact/internal/model"
	"newsact/internal/repository"
	"newsact/internal/util"
)

type PostService struct {
	posts *repository.PostRepository
}

func NewPostService(posts *repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) List(ctx context.Context, filter model.PostFilter) ([]model.Post, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.posts.List(ctx, filter)
}

// Get returns the post and counts the read. The increment is fire-and-forget
// with respect to the returned view count.
func (s *PostService) Get(ctx context.Context, id string) (model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	if err := s.posts.IncrementViews(ctx, id); err != nil {
		return model.Post{}, err
	}
	post.Views++

	return post, nil
}

func (s *PostService) Create(ctx context.Context, req model.PostCreateRequest, adminID string) (model.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return model.Post{}, fmt.Errorf("%w: title and content are required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Category) == "" {
		return model.Post{}, fmt.Errorf("%w: category is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	readTime := strings.TrimSpace(req.ReadTime)
	if readTime == "" {
		readTime = "5 min read"
	}

	post := model.Post{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(req.Title),
		Excerpt:         util.SanitizeHTML(req.Excerpt),
		Content:         util.SanitizeHTML(req.Content),
		Author:          strings.TrimSpace(req.Author),
		Date:            strings.TrimSpace(req.Date),
		Category:        strings.TrimSpace(req.Category),
		ImageURL:        req.ImageURL,
		ReadTime:        readTime,
		IsBreaking:      req.IsBreaking,
		IsEditorsChoice: req.IsEditorsChoice,
		IsTopNews:       req.IsTopNews,
		IsTrending:      req.IsTrending,
		AdminID:         &adminID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Update(ctx context.Context, id string, req model.PostUpdateRequest) (model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = util.SanitizeHTML(*req.Excerpt)
	}
	if req.Content != nil {
		post.Content = util.SanitizeHTML(*req.Content)
	}
	if req.Author != nil {
		post.Author = strings.TrimSpace(*req.Author)
	}
	if req.Date != nil {
		post.Date = strings.TrimSpace(*req.Date)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		post.Category = strings.TrimSpace(*req.Category)
	}
	if req.ImageURL != nil {
		post.ImageURL = req.ImageURL
	}
	if req.ReadTime != nil && strings.TrimSpace(*req.ReadTime) != "" {
		post.ReadTime = strings.TrimSpace(*req.ReadTime)
	}
	if req.IsBreaking != nil {
		post.IsBreaking = *req.IsBreaking
	}
	if req.IsEditorsChoice != nil {
		post.IsEditorsChoice = *req.IsEditorsChoice
	}
	if req.IsTopNews != nil {
		post.IsTopNews = *req.IsTopNews
	}
	if req.IsTrending != nil {
		post.IsTrending = *req.IsTrending
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}
