package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsact/internal/model"
	"newsact/internal/repository"
)

type RegionService struct {
	regions *repository.RegionRepository
}

func NewRegionService(regions *repository.RegionRepository) *RegionService {
	return &RegionService{regions: regions}
}

func (s *RegionService) List(ctx context.Context) ([]model.Region, error) {
	return s.regions.List(ctx)
}

func (s *RegionService) Get(ctx context.Context, id string) (model.Region, error) {
	return s.regions.FindByID(ctx, id)
}

func (s *RegionService) Create(ctx context.Context, req model.RegionCreateRequest) (model.Region, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Region{}, fmt.Errorf("%w: region name is required", model.ErrInvalidInput)
	}

	region := model.Region{
		ID:        uuid.NewString(),
		Name:      name,
		Image:     req.Image,
		SubZones:  []model.SubZone{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.regions.Create(ctx, region); err != nil {
		return model.Region{}, err
	}

	return region, nil
}

func (s *RegionService) Update(ctx context.Context, id string, req model.RegionUpdateRequest) (model.Region, error) {
	region, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return model.Region{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		region.Name = strings.TrimSpace(*req.Name)
	}
	if req.Image != nil {
		region.Image = req.Image
	}

	if err := s.regions.Update(ctx, region); err != nil {
		return model.Region{}, err
	}

	return region, nil
}

func (s *RegionService) Delete(ctx context.Context, id string) error {
	return s.regions.Delete(ctx, id)
}

func (s *RegionService) AddSubZone(ctx context.Context, regionID string, req model.SubZoneCreateRequest) (model.SubZone, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.SubZone{}, fmt.Errorf("%w: sub-zone name is required", model.ErrInvalidInput)
	}

	if _, err := s.regions.FindByID(ctx, regionID); err != nil {
		return model.SubZone{}, err
	}

	zone := model.SubZone{
		ID:        uuid.NewString(),
		RegionID:  regionID,
		Name:      name,
		Image:     req.Image,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.regions.CreateSubZone(ctx, zone); err != nil {
		return model.SubZone{}, err
	}

	return zone, nil
}

func (s *RegionService) RemoveSubZone(ctx context.Context, regionID string, subZoneID string) error {
	return s.regions.DeleteSubZone(ctx, regionID, subZoneID)
}
