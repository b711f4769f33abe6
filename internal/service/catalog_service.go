package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"touragency/internal/model"
	"touragency/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService 基础数据维护：线路、班期、车辆、地区、标签、文章类型、支付方式
// 写操作一律仅管理员，读操作对已认证角色开放
type CatalogService struct {
	db          *gorm.DB
	tripRepo    *repository.TripRepository
	catalogRepo *repository.CatalogRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:          db,
		tripRepo:    repository.NewTripRepository(db),
		catalogRepo: repository.NewCatalogRepository(db),
	}
}

func (s *CatalogService) requireAdmin(actor model.Actor) error {
	if actor.Role != model.RoleAdmin {
		return model.NewUnauthorized("只有管理员可以维护基础数据")
	}
	return nil
}

func (s *CatalogService) requireReader(actor model.Actor) error {
	if !actor.IsKnownRole() {
		return model.NewUnauthorized("当前角色无权查看基础数据")
	}
	return nil
}

// ------------------------------------------------------------
// 线路 / 班期
// ------------------------------------------------------------

type TripRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	RegionID    int64           `json:"region_id" binding:"required"`
	Days        int             `json:"days" binding:"required,gt=0"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
}

func (s *CatalogService) CreateTrip(ctx context.Context, actor model.Actor, req *TripRequest) (*model.Trip, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if !req.BasePrice.IsPositive() {
		return nil, model.NewValidation("线路价格必须大于 0")
	}
	if _, err := s.tripRepo.GetRegionByID(ctx, req.RegionID); err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, model.NewNotFound("地区不存在")
		}
		return nil, fmt.Errorf("查询地区失败: %w", err)
	}

	trip := &model.Trip{
		Name:        req.Name,
		Description: req.Description,
		RegionID:    req.RegionID,
		Days:        req.Days,
		BasePrice:   req.BasePrice,
	}
	if err := s.tripRepo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("创建线路失败: %w", err)
	}
	return trip, nil
}

func (s *CatalogService) UpdateTrip(ctx context.Context, actor model.Actor, id int64, req *TripRequest) (*model.Trip, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	trip, err := s.GetTrip(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	trip.Name = req.Name
	trip.Description = req.Description
	trip.RegionID = req.RegionID
	trip.Days = req.Days
	trip.BasePrice = req.BasePrice

	if err := s.tripRepo.UpdateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("更新线路失败: %w", err)
	}
	return trip, nil
}

func (s *CatalogService) GetTrip(ctx context.Context, actor model.Actor, id int64) (*model.Trip, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetTripByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, model.NewNotFound("线路不存在")
		}
		return nil, fmt.Errorf("查询线路失败: %w", err)
	}
	return trip, nil
}

func (s *CatalogService) ListTrips(ctx context.Context, actor model.Actor, page, pageSize int) ([]*model.Trip, int64, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, 0, err
	}
	return s.tripRepo.ListTrips(ctx, page, pageSize)
}

func (s *CatalogService) DeleteTrip(ctx context.Context, actor model.Actor, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.tripRepo.DeleteTrip(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return model.NewNotFound("线路不存在")
		}
		return fmt.Errorf("删除线路失败: %w", err)
	}
	return nil
}

type TripPlanRequest struct {
	TripID    int64           `json:"trip_id" binding:"required"`
	CarID     int64           `json:"car_id" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	Capacity  int             `json:"capacity" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Notes     string          `json:"notes"`
}

func (s *CatalogService) CreateTripPlan(ctx context.Context, actor model.Actor, req *TripPlanRequest) (*model.TripPlan, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, model.NewValidation("班期价格必须大于 0")
	}

	if _, err := s.tripRepo.GetTripByID(ctx, req.TripID); err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, model.NewNotFound("线路不存在")
		}
		return nil, fmt.Errorf("查询线路失败: %w", err)
	}

	car, err := s.tripRepo.GetCarByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return nil, model.NewNotFound("车辆不存在")
		}
		return nil, fmt.Errorf("查询车辆失败: %w", err)
	}
	if req.Capacity > car.Seats {
		return nil, model.NewValidation("班期容量 %d 超过车辆座位数 %d", req.Capacity, car.Seats)
	}

	plan := &model.TripPlan{
		TripID:    req.TripID,
		CarID:     req.CarID,
		StartDate: req.StartDate,
		Capacity:  req.Capacity,
		Price:     req.Price,
		Notes:     req.Notes,
	}
	if err := s.tripRepo.CreateTripPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("创建班期失败: %w", err)
	}
	return plan, nil
}

func (s *CatalogService) ListTripPlans(ctx context.Context, actor model.Actor, tripID int64) ([]*model.TripPlan, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.tripRepo.ListTripPlansByTrip(ctx, tripID)
}

// ------------------------------------------------------------
// 车辆 / 地区
// ------------------------------------------------------------

type CarRequest struct {
	PlateNo  string `json:"plate_no" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Seats    int    `json:"seats" binding:"required,gt=0"`
	RegionID int64  `json:"region_id" binding:"required"`
}

func (s *CatalogService) CreateCar(ctx context.Context, actor model.Actor, req *CarRequest) (*model.Car, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.tripRepo.GetRegionByID(ctx, req.RegionID); err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, model.NewNotFound("地区不存在")
		}
		return nil, fmt.Errorf("查询地区失败: %w", err)
	}

	car := &model.Car{
		PlateNo:  req.PlateNo,
		Model:    req.Model,
		Seats:    req.Seats,
		RegionID: req.RegionID,
	}
	if err := s.tripRepo.CreateCar(ctx, car); err != nil {
		return nil, fmt.Errorf("创建车辆失败: %w", err)
	}
	return car, nil
}

func (s *CatalogService) ListCars(ctx context.Context, actor model.Actor) ([]*model.Car, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.tripRepo.ListCars(ctx)
}

func (s *CatalogService) CreateRegion(ctx context.Context, actor model.Actor, name string) (*model.Region, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidation("地区名称不能为空")
	}

	region := &model.Region{Name: name}
	if err := s.tripRepo.CreateRegion(ctx, region); err != nil {
		return nil, fmt.Errorf("创建地区失败: %w", err)
	}
	return region, nil
}

func (s *CatalogService) ListRegions(ctx context.Context, actor model.Actor) ([]*model.Region, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.tripRepo.ListRegions(ctx)
}

// ------------------------------------------------------------
// 标签 / 文章类型 / 支付方式
// ------------------------------------------------------------

func (s *CatalogService) CreateTag(ctx context.Context, actor model.Actor, name string) (*model.Tag, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidation("标签名称不能为空")
	}

	tag := &model.Tag{Name: name}
	if err := s.catalogRepo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}
	return tag, nil
}

func (s *CatalogService) ListTags(ctx context.Context, actor model.Actor) ([]*model.Tag, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListTags(ctx)
}

func (s *CatalogService) DeleteTag(ctx context.Context, actor model.Actor, id int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return model.NewNotFound("标签不存在")
		}
		return fmt.Errorf("删除标签失败: %w", err)
	}
	return nil
}

func (s *CatalogService) CreatePostType(ctx context.Context, actor model.Actor, name string) (*model.PostType, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidation("文章类型名称不能为空")
	}

	postType := &model.PostType{Name: name}
	if err := s.catalogRepo.CreatePostType(ctx, postType); err != nil {
		return nil, fmt.Errorf("创建文章类型失败: %w", err)
	}
	return postType, nil
}

func (s *CatalogService) ListPostTypes(ctx context.Context, actor model.Actor) ([]*model.PostType, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListPostTypes(ctx)
}

func (s *CatalogService) CreatePaymentMethod(ctx context.Context, actor model.Actor, name string) (*model.PaymentMethod, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidation("支付方式名称不能为空")
	}

	method := &model.PaymentMethod{Name: name}
	if err := s.catalogRepo.CreatePaymentMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("创建支付方式失败: %w", err)
	}
	return method, nil
}

func (s *CatalogService) ListPaymentMethods(ctx context.Context, actor model.Actor) ([]*model.PaymentMethod, error) {
	if err := s.requireReader(actor); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListPaymentMethods(ctx)
}
