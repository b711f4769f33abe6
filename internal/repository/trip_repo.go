package repository

import (
	"context"
	"errors"

	"touragency/internal/model"

	"gorm.io/gorm"
)

var (
	ErrTripNotFound     = errors.New("线路不存在")
	ErrTripPlanNotFound = errors.New("班期不存在")
	ErrCarNotFound      = errors.New("车辆不存在")
	ErrRegionNotFound   = errors.New("地区不存在")
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// ------------------------------------------------------------
// 线路
// ------------------------------------------------------------

func (r *TripRepository) CreateTrip(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *TripRepository) GetTripByID(ctx context.Context, id int64) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).First(&trip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) UpdateTrip(ctx context.Context, trip *model.Trip) error {
	result := r.db.WithContext(ctx).Model(&model.Trip{}).Where("id = ?", trip.ID).Updates(map[string]interface{}{
		"name":        trip.Name,
		"description": trip.Description,
		"region_id":   trip.RegionID,
		"days":        trip.Days,
		"base_price":  trip.BasePrice,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) DeleteTrip(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Trip{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) ListTrips(ctx context.Context, page, pageSize int) ([]*model.Trip, int64, error) {
	var trips []*model.Trip
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Trip{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error

	return trips, total, err
}

// ------------------------------------------------------------
// 班期
// ------------------------------------------------------------

func (r *TripRepository) CreateTripPlan(ctx context.Context, plan *model.TripPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *TripRepository) GetTripPlanByID(ctx context.Context, id int64) (*model.TripPlan, error) {
	var plan model.TripPlan
	err := r.db.WithContext(ctx).First(&plan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *TripRepository) UpdateTripPlan(ctx context.Context, plan *model.TripPlan) error {
	result := r.db.WithContext(ctx).Model(&model.TripPlan{}).Where("id = ?", plan.ID).Updates(map[string]interface{}{
		"trip_id":    plan.TripID,
		"car_id":     plan.CarID,
		"start_date": plan.StartDate,
		"capacity":   plan.Capacity,
		"price":      plan.Price,
		"notes":      plan.Notes,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTripPlanNotFound
	}
	return nil
}

func (r *TripRepository) ListTripPlansByTrip(ctx context.Context, tripID int64) ([]*model.TripPlan, error) {
	var plans []*model.TripPlan
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("start_date ASC").
		Find(&plans).Error
	return plans, err
}

// ------------------------------------------------------------
// 车辆 / 地区
// ------------------------------------------------------------

func (r *TripRepository) CreateCar(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *TripRepository) GetCarByID(ctx context.Context, id int64) (*model.Car, error) {
	var car model.Car
	err := r.db.WithContext(ctx).First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *TripRepository) UpdateCar(ctx context.Context, car *model.Car) error {
	result := r.db.WithContext(ctx).Model(&model.Car{}).Where("id = ?", car.ID).Updates(map[string]interface{}{
		"plate_no":  car.PlateNo,
		"model":     car.Model,
		"seats":     car.Seats,
		"region_id": car.RegionID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *TripRepository) ListCars(ctx context.Context) ([]*model.Car, error) {
	var cars []*model.Car
	err := r.db.WithContext(ctx).Order("id ASC").Find(&cars).Error
	return cars, err
}

func (r *TripRepository) CreateRegion(ctx context.Context, region *model.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

func (r *TripRepository) GetRegionByID(ctx context.Context, id int64) (*model.Region, error) {
	var region model.Region
	err := r.db.WithContext(ctx).First(&region, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *TripRepository) ListRegions(ctx context.Context) ([]*model.Region, error) {
	var regions []*model.Region
	err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error
	return regions, err
}
