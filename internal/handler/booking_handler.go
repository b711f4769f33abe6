package handler

import (
	"touragency/internal/service"
	"touragency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 预订接口
// ============================================================

// CreateBooking 新建预订
// POST /api/v1/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, booking)
}

// GetBooking 查询预订详情
// GET /api/v1/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, booking)
}

// ListBookings 查询预订列表
// GET /api/v1/bookings?page=1&page_size=10
func (h *Handler) ListBookings(c *gin.Context) {
	page, pageSize := pagination(c)

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), actorFrom(c), page, pageSize)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"list":      bookings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ConfirmBooking 确认预订（仅管理员）
// POST /api/v1/bookings/:id/confirm
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Confirm(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, booking)
}

// DenyBooking 拒绝预订（仅管理员）
// POST /api/v1/bookings/:id/deny
func (h *Handler) DenyBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Deny(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, booking)
}
