package service

import (
	"context"

	"newsact/internal/model"
	"newsact/internal/repository"
)

type AnalyticsService struct {
	posts   *repository.PostRepository
	regions *repository.RegionRepository
	admins  *repository.AdminRepository
}

func NewAnalyticsService(posts *repository.PostRepository, regions *repository.RegionRepository, admins *repository.AdminRepository) *AnalyticsService {
	return &AnalyticsService{posts: posts, regions: regions, admins: admins}
}

func (s *AnalyticsService) Summary(ctx context.Context) (model.AnalyticsSummary, error) {
	totalPosts, err := s.posts.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	totalViews, err := s.posts.TotalViews(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	byCategory, err := s.posts.CountByCategory(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	totalRegions, err := s.regions.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	totalAdmins, err := s.admins.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	return model.AnalyticsSummary{
		TotalPosts:      totalPosts,
		TotalViews:      totalViews,
		TotalRegions:    totalRegions,
		TotalAdmins:     totalAdmins,
		PostsByCategory: byCategory,
	}, nil
}
