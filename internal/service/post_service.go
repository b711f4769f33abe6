package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"touragency/internal/config"
	"touragency/internal/infrastructure/cache"
	"touragency/internal/model"
	"touragency/internal/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type PostService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	postRepo    *repository.PostRepository
	catalogRepo *repository.CatalogRepository
}

func NewPostService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *PostService {
	return &PostService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		postRepo:    repository.NewPostRepository(db),
		catalogRepo: repository.NewCatalogRepository(db),
	}
}

type PostRequest struct {
	Title      string  `json:"title" binding:"required"`
	Body       string  `json:"body" binding:"required"`
	Slug       string  `json:"slug" binding:"required"`
	PostTypeID int64   `json:"post_type_id" binding:"required"`
	TagIDs     []int64 `json:"tag_ids"`
}

// CreatePost 新建文章，总是以草稿创建，作者为当前操作者
func (s *PostService) CreatePost(ctx context.Context, actor model.Actor, req *PostRequest) (*model.Post, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权创建文章")
	}

	if strings.TrimSpace(req.Slug) == "" {
		return nil, model.NewValidation("slug 不能为空")
	}

	if _, err := s.catalogRepo.GetPostTypeByID(ctx, req.PostTypeID); err != nil {
		if errors.Is(err, repository.ErrPostTypeNotFound) {
			return nil, model.NewNotFound("文章类型不存在")
		}
		return nil, fmt.Errorf("查询文章类型失败: %w", err)
	}

	tags, err := s.loadTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:      req.Title,
		Body:       req.Body,
		Slug:       req.Slug,
		Status:     model.PostStatusDraft,
		EmployeeID: actor.EmployeeID,
		PostTypeID: req.PostTypeID,
		Tags:       tags,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("创建文章失败: %w", err)
	}

	return post, nil
}

// UpdatePost 修改文章内容，仅作者本人、仅草稿状态
func (s *PostService) UpdatePost(ctx context.Context, actor model.Actor, id int64, req *PostRequest) (*model.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.EmployeeID != actor.EmployeeID {
		return nil, model.NewUnauthorized("只有文章作者可以修改内容")
	}
	if post.Status != model.PostStatusDraft {
		return nil, model.NewInvalidOperation("文章当前状态 %s 不允许修改内容", post.Status)
	}

	tags, err := s.loadTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Body = req.Body
	post.Slug = req.Slug
	post.PostTypeID = req.PostTypeID

	if err := s.postRepo.UpdateContent(ctx, post); err != nil {
		return nil, fmt.Errorf("更新文章失败: %w", err)
	}
	if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
		return nil, fmt.Errorf("更新标签失败: %w", err)
	}

	return post, nil
}

// GetPost 单篇读取，可见性随角色收窄；命中即累加浏览数
func (s *PostService) GetPost(ctx context.Context, actor model.Actor, id int64) (*model.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := model.PostVisibleTo(actor, post); err != nil {
		return nil, err
	}

	// 浏览数只进 Redis，由后台任务批量回写
	if err := cache.IncrPostView(ctx, s.redisClient, post.ID); err != nil {
		log.Printf("累加浏览数失败: postID=%d, err=%v", post.ID, err)
	}

	return post, nil
}

// ListPosts 分页列表，管理员全量、员工仅本人
func (s *PostService) ListPosts(ctx context.Context, actor model.Actor, page, pageSize int) ([]*model.Post, int64, error) {
	ownOnly, err := model.PostReadScope(actor)
	if err != nil {
		return nil, 0, err
	}

	ownerID := int64(0)
	if ownOnly {
		ownerID = actor.EmployeeID
	}

	return s.postRepo.List(ctx, ownerID, page, pageSize)
}

// ApplyAction 执行一次发布流转（提交/审核通过/驳回/下架/恢复/删除）
func (s *PostService) ApplyAction(ctx context.Context, actor model.Actor, id int64, action model.PostAction) (*model.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}

	toStatus, err := model.ApplyPostAction(actor, post, action)
	if err != nil {
		return nil, err
	}

	var publishDate *time.Time
	if action == model.PostActionApprove {
		now := time.Now()
		publishDate = &now
	}

	if err := s.postRepo.UpdateStatus(ctx, id, post.Status, toStatus, publishDate); err != nil {
		if errors.Is(err, repository.ErrPostStatusInvalid) {
			return nil, model.NewInvalidOperation("文章状态已变更，请刷新后重试")
		}
		return nil, fmt.Errorf("更新文章状态失败: %w", err)
	}

	log.Printf("文章流转: postID=%d, action=%s, %s -> %s, actor=%d",
		id, action, post.Status, toStatus, actor.EmployeeID)

	post.Status = toStatus
	if publishDate != nil {
		post.PublishDate = publishDate
	}
	return post, nil
}

func (s *PostService) getPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, model.NewNotFound("文章不存在")
		}
		return nil, fmt.Errorf("查询文章失败: %w", err)
	}
	return post, nil
}

func (s *PostService) loadTags(ctx context.Context, tagIDs []int64) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	tags, err := s.catalogRepo.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return nil, model.NewNotFound("部分标签不存在")
	}
	return tags, nil
}
