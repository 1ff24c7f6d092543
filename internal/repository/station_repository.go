package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet_admin/internal/models"
	"fleet_admin/internal/normalize"
)

// StationFilter narrows List results; every field is independently optional.
type StationFilter struct {
	ID       *uint
	Locality *string
	Active   *bool
}

type StationRepository interface {
	List(ctx context.Context, filter StationFilter) ([]models.Station, error)
	GetByID(ctx context.Context, id uint) (*models.Station, error)
	Create(ctx context.Context, station *models.Station) error
	Patch(ctx context.Context, id uint, patch models.StationPatch) (*models.Station, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.Station, error)
	Delete(ctx context.Context, id uint) error
	IDs(ctx context.Context) ([]uint, error)
}

type stationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

// List returns stations newest first (id descending), which the station
// views rely on.
func (r *stationRepository) List(ctx context.Context, filter StationFilter) ([]models.Station, error) {
	query := r.db.WithContext(ctx).Model(&models.Station{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var stations []models.Station
	if err := query.Order("id DESC").Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}

	if filter.Locality != nil {
		matched := stations[:0]
		for _, s := range stations {
			if normalize.Match(s.Locality, *filter.Locality) {
				matched = append(matched, s)
			}
		}
		stations = matched
	}
	return stations, nil
}

func (r *stationRepository) GetByID(ctx context.Context, id uint) (*models.Station, error) {
	var station models.Station
	if err := r.db.WithContext(ctx).First(&station, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get station %d: %w", id, err)
	}
	return &station, nil
}

func (r *stationRepository) Create(ctx context.Context, station *models.Station) error {
	if err := r.db.WithContext(ctx).Create(station).Error; err != nil {
		return fmt.Errorf("create station: %w", err)
	}
	return nil
}

func (r *stationRepository) Patch(ctx context.Context, id uint, patch models.StationPatch) (*models.Station, error) {
	station, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(station)
	if err := r.db.WithContext(ctx).Save(station).Error; err != nil {
		return nil, fmt.Errorf("update station %d: %w", id, err)
	}
	return station, nil
}

func (r *stationRepository) SetActive(ctx context.Context, id uint, active bool) (*models.Station, error) {
	station, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	station.Active = active
	if err := r.db.WithContext(ctx).Save(station).Error; err != nil {
		return nil, fmt.Errorf("update station %d status: %w", id, err)
	}
	return station, nil
}

func (r *stationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Station{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete station %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stationRepository) IDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Station{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list station ids: %w", err)
	}
	return ids, nil
}
