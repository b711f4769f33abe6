package handler

import (
	"touragency/internal/model"
	"touragency/internal/service"
	"touragency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 文章接口
// ============================================================

// CreatePost 新建文章（草稿）
// POST /api/v1/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var req service.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, post)
}

// UpdatePost 修改文章内容（仅作者、仅草稿）
// PUT /api/v1/posts/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, post)
}

// GetPost 查询文章详情
// GET /api/v1/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, post)
}

// ListPosts 查询文章列表
// GET /api/v1/posts?page=1&page_size=10
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := pagination(c)

	posts, total, err := h.postService.ListPosts(c.Request.Context(), actorFrom(c), page, pageSize)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"list":      posts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// postAction 文章流转的统一入口
func (h *Handler) postAction(c *gin.Context, action model.PostAction) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.postService.ApplyAction(c.Request.Context(), actorFrom(c), id, action)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":     post.ID,
		"status": post.Status,
	})
}

// SubmitPost 提交审核  POST /api/v1/posts/:id/submit
func (h *Handler) SubmitPost(c *gin.Context) { h.postAction(c, model.PostActionSubmit) }

// ApprovePost 审核通过  POST /api/v1/posts/:id/approve
func (h *Handler) ApprovePost(c *gin.Context) { h.postAction(c, model.PostActionApprove) }

// RejectPost 审核驳回  POST /api/v1/posts/:id/reject
func (h *Handler) RejectPost(c *gin.Context) { h.postAction(c, model.PostActionReject) }

// UnpublishPost 下架  POST /api/v1/posts/:id/unpublish
func (h *Handler) UnpublishPost(c *gin.Context) { h.postAction(c, model.PostActionUnpublish) }

// RestorePost 恢复发布  POST /api/v1/posts/:id/restore
func (h *Handler) RestorePost(c *gin.Context) { h.postAction(c, model.PostActionRestore) }

// DeletePost 删除（终态）  DELETE /api/v1/posts/:id
func (h *Handler) DeletePost(c *gin.Context) { h.postAction(c, model.PostActionDelete) }
