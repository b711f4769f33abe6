package repository

import (
	"context"
	"errors"
	"time"

	"touragency/internal/model"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errors.New("文章不存在")
	ErrPostStatusInvalid = errors.New("文章状态不合法")
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdateContent 草稿内容更新（标题、正文、slug、类型）
func (r *PostRepository) UpdateContent(ctx context.Context, post *model.Post) error {
	result := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":        post.Title,
			"body":         post.Body,
			"slug":         post.Slug,
			"post_type_id": post.PostTypeID,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ReplaceTags 重建文章标签关联
func (r *PostRepository) ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

// UpdateStatus 条件更新文章状态
// WHERE 带上 fromStatus，RowsAffected 为 0 说明状态已被并发改走
func (r *PostRepository) UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus string, publishDate *time.Time) error {
	updates := map[string]interface{}{
		"status": toStatus,
	}
	if publishDate != nil {
		updates["publish_date"] = publishDate
	}

	result := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostStatusInvalid
	}

	return nil
}

// List 分页查询文章，ownerID > 0 时只返回该作者的
func (r *PostRepository) List(ctx context.Context, ownerID int64, page, pageSize int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Post{})
	if ownerID > 0 {
		query = query.Where("employee_id = ?", ownerID)
	}

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = query.
		Preload("Tags").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error

	return posts, total, err
}

// IncrementViews 浏览数累加，由后台任务批量回写
func (r *PostRepository) IncrementViews(ctx context.Context, id int64, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}
