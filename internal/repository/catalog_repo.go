package repository

import (
	"context"
	"errors"

	"touragency/internal/model"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound           = errors.New("标签不存在")
	ErrPostTypeNotFound      = errors.New("文章类型不存在")
	ErrPaymentMethodNotFound = errors.New("支付方式不存在")
)

// CatalogRepository 基础字典表：标签、文章类型、支付方式
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *CatalogRepository) GetTagsByIDs(ctx context.Context, ids []int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *CatalogRepository) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *CatalogRepository) DeleteTag(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *CatalogRepository) CreatePostType(ctx context.Context, postType *model.PostType) error {
	return r.db.WithContext(ctx).Create(postType).Error
}

func (r *CatalogRepository) GetPostTypeByID(ctx context.Context, id int64) (*model.PostType, error) {
	var postType model.PostType
	err := r.db.WithContext(ctx).First(&postType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostTypeNotFound
		}
		return nil, err
	}
	return &postType, nil
}

func (r *CatalogRepository) ListPostTypes(ctx context.Context) ([]*model.PostType, error) {
	var postTypes []*model.PostType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&postTypes).Error
	return postTypes, err
}

func (r *CatalogRepository) CreatePaymentMethod(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *CatalogRepository) GetPaymentMethodByID(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *CatalogRepository) ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	err := r.db.WithContext(ctx).Order("id ASC").Find(&methods).Error
	return methods, err
}
