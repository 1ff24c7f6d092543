// Package services holds the per-entity orchestration between the record
// store, the image lifecycle and the deletion history.
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleet_admin/internal/history"
	"fleet_admin/internal/images"
	"fleet_admin/internal/models"
	"fleet_admin/internal/normalize"
	"fleet_admin/internal/repository"
)

// CreateBusInput carries the fields for a new bus. Active defaults to true
// when not provided.
type CreateBusInput struct {
	Name     string
	Category string
	Active   *bool
}

type BusService struct {
	Repo    repository.BusRepository
	Images  *images.Lifecycle
	History *history.Log
}

func (s *BusService) List(ctx context.Context, filter repository.BusFilter) ([]models.Bus, error) {
	return s.Repo.List(ctx, filter)
}

func (s *BusService) Get(ctx context.Context, id uint) (*models.Bus, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *BusService) IDs(ctx context.Context) ([]uint, error) {
	return s.Repo.IDs(ctx)
}

// Create uploads the image (when given) before inserting the record, so a
// failed upload fails the whole create. If the insert itself fails, the
// already-uploaded object stays behind as an orphan; storage hygiene is not
// worth a compensation protocol here.
func (s *BusService) Create(ctx context.Context, in CreateBusInput, up *images.Upload) (*models.Bus, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	bus := &models.Bus{
		Name:     in.Name,
		Category: normalize.Fold(in.Category),
		Active:   active,
	}

	if up != nil {
		url, err := s.Images.Save(ctx, up)
		if err != nil {
			logrus.WithError(err).Error("Failed to upload bus image")
			return nil, err
		}
		bus.Image = &url
	}

	if err := s.Repo.Create(ctx, bus); err != nil {
		logrus.WithError(err).Error("Failed to create bus")
		return nil, err
	}
	return bus, nil
}

// Update patches the provided fields and, when a file is supplied, replaces
// the attached image. A failed upload loses only the new image: the prior
// reference stays current and the remaining field changes still apply.
func (s *BusService) Update(ctx context.Context, id uint, patch models.BusPatch, up *images.Upload) (*models.Bus, error) {
	bus, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.Images.Replace(ctx, bus.Image, up)
	if err != nil {
		logrus.WithError(err).WithField("bus_id", id).Error("Failed to replace bus image")
	}
	patch.Image = image

	return s.Repo.Patch(ctx, id, patch)
}

func (s *BusService) SetActive(ctx context.Context, id uint, active bool) (*models.Bus, error) {
	return s.Repo.SetActive(ctx, id, active)
}

// Delete removes the record and its stored image, then appends the terminal
// snapshot to the deletion history. Image deletion is best effort and never
// blocks the record delete.
func (s *BusService) Delete(ctx context.Context, id uint) error {
	bus, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if bus.Image != nil {
		s.Images.Remove(ctx, *bus.Image)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.History.Append(history.Entry{
		Kind:   "bus",
		ID:     bus.ID,
		Name:   bus.Name,
		Detail: bus.Category,
	})
	return nil
}
