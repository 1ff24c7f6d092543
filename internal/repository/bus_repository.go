package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet_admin/internal/models"
	"fleet_admin/internal/normalize"
)

// BusFilter narrows List results; every field is independently optional.
type BusFilter struct {
	ID       *uint
	Category *string
	Active   *bool
}

type BusRepository interface {
	List(ctx context.Context, filter BusFilter) ([]models.Bus, error)
	GetByID(ctx context.Context, id uint) (*models.Bus, error)
	Create(ctx context.Context, bus *models.Bus) error
	Patch(ctx context.Context, id uint, patch models.BusPatch) (*models.Bus, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.Bus, error)
	Delete(ctx context.Context, id uint) error
	IDs(ctx context.Context) ([]uint, error)
}

type busRepository struct {
	db *gorm.DB
}

func NewBusRepository(db *gorm.DB) BusRepository {
	return &busRepository{db: db}
}

func (r *busRepository) List(ctx context.Context, filter BusFilter) ([]models.Bus, error) {
	query := r.db.WithContext(ctx).Model(&models.Bus{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var buses []models.Bus
	if err := query.Find(&buses).Error; err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}

	// Accent folding has no portable SQL form, so the category filter runs
	// over the fetched rows.
	if filter.Category != nil {
		matched := buses[:0]
		for _, b := range buses {
			if normalize.Match(b.Category, *filter.Category) {
				matched = append(matched, b)
			}
		}
		buses = matched
	}
	return buses, nil
}

func (r *busRepository) GetByID(ctx context.Context, id uint) (*models.Bus, error) {
	var bus models.Bus
	if err := r.db.WithContext(ctx).First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bus %d: %w", id, err)
	}
	return &bus, nil
}

func (r *busRepository) Create(ctx context.Context, bus *models.Bus) error {
	bus.Category = normalize.Fold(bus.Category)
	if err := r.db.WithContext(ctx).Create(bus).Error; err != nil {
		return fmt.Errorf("create bus: %w", err)
	}
	return nil
}

func (r *busRepository) Patch(ctx context.Context, id uint, patch models.BusPatch) (*models.Bus, error) {
	bus, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(bus)
	if err := r.db.WithContext(ctx).Save(bus).Error; err != nil {
		return nil, fmt.Errorf("update bus %d: %w", id, err)
	}
	return bus, nil
}

func (r *busRepository) SetActive(ctx context.Context, id uint, active bool) (*models.Bus, error) {
	bus, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bus.Active = active
	if err := r.db.WithContext(ctx).Save(bus).Error; err != nil {
		return nil, fmt.Errorf("update bus %d status: %w", id, err)
	}
	return bus, nil
}

func (r *busRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Bus{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete bus %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *busRepository) IDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Bus{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list bus ids: %w", err)
	}
	return ids, nil
}
