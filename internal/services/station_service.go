package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleet_admin/internal/history"
	"fleet_admin/internal/images"
	"fleet_admin/internal/models"
	"fleet_admin/internal/repository"
)

// CreateStationInput carries the fields for a new station. Active defaults
// to true when not provided.
type CreateStationInput struct {
	Name     string
	Locality string
	Routes   string
	Active   *bool
}

type StationService struct {
	Repo    repository.StationRepository
	Images  *images.Lifecycle
	History *history.Log
}

func (s *StationService) List(ctx context.Context, filter repository.StationFilter) ([]models.Station, error) {
	return s.Repo.List(ctx, filter)
}

func (s *StationService) Get(ctx context.Context, id uint) (*models.Station, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *StationService) IDs(ctx context.Context) ([]uint, error) {
	return s.Repo.IDs(ctx)
}

// Create mirrors BusService.Create: upload first, insert second, accept the
// orphaned object when the insert fails.
func (s *StationService) Create(ctx context.Context, in CreateStationInput, up *images.Upload) (*models.Station, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	station := &models.Station{
		Name:     in.Name,
		Locality: in.Locality,
		Routes:   in.Routes,
		Active:   active,
	}

	if up != nil {
		url, err := s.Images.Save(ctx, up)
		if err != nil {
			logrus.WithError(err).Error("Failed to upload station image")
			return nil, err
		}
		station.Image = &url
	}

	if err := s.Repo.Create(ctx, station); err != nil {
		logrus.WithError(err).Error("Failed to create station")
		return nil, err
	}
	return station, nil
}

func (s *StationService) Update(ctx context.Context, id uint, patch models.StationPatch, up *images.Upload) (*models.Station, error) {
	station, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.Images.Replace(ctx, station.Image, up)
	if err != nil {
		logrus.WithError(err).WithField("station_id", id).Error("Failed to replace station image")
	}
	patch.Image = image

	return s.Repo.Patch(ctx, id, patch)
}

func (s *StationService) SetActive(ctx context.Context, id uint, active bool) (*models.Station, error) {
	return s.Repo.SetActive(ctx, id, active)
}

func (s *StationService) Delete(ctx context.Context, id uint) error {
	station, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if station.Image != nil {
		s.Images.Remove(ctx, *station.Image)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.History.Append(history.Entry{
		Kind:   "station",
		ID:     station.ID,
		Name:   station.Name,
		Detail: station.Locality,
	})
	return nil
}
