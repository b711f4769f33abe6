package handler

import (
	"strconv"

	"touragency/internal/service"
	"touragency/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 基础数据接口：线路、班期、车辆、地区、标签、文章类型、支付方式
// ============================================================

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTrip 新建线路  POST /api/v1/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var req service.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	trip, err := h.catalogService.CreateTrip(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, trip)
}

// UpdateTrip 更新线路  PUT /api/v1/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	trip, err := h.catalogService.UpdateTrip(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, trip)
}

// GetTrip 查询线路  GET /api/v1/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trip, err := h.catalogService.GetTrip(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, trip)
}

// ListTrips 查询线路列表  GET /api/v1/trips
func (h *Handler) ListTrips(c *gin.Context) {
	page, pageSize := pagination(c)

	trips, total, err := h.catalogService.ListTrips(c.Request.Context(), actorFrom(c), page, pageSize)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"list":      trips,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// DeleteTrip 删除线路  DELETE /api/v1/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTrip(c.Request.Context(), actorFrom(c), id); err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "线路已删除"})
}

// CreateTripPlan 新建班期  POST /api/v1/trip-plans
func (h *Handler) CreateTripPlan(c *gin.Context) {
	var req service.TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	plan, err := h.catalogService.CreateTripPlan(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, plan)
}

// ListTripPlans 查询某线路的班期  GET /api/v1/trip-plans?trip_id=xxx
func (h *Handler) ListTripPlans(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Query("trip_id"), 10, 64)
	if err != nil || tripID <= 0 {
		response.ParamError(c, "trip_id 参数错误")
		return
	}

	plans, err := h.catalogService.ListTripPlans(c.Request.Context(), actorFrom(c), tripID)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, plans)
}

// CreateCar 新建车辆  POST /api/v1/cars
func (h *Handler) CreateCar(c *gin.Context) {
	var req service.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	car, err := h.catalogService.CreateCar(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, car)
}

// ListCars 查询车辆列表  GET /api/v1/cars
func (h *Handler) ListCars(c *gin.Context) {
	cars, err := h.catalogService.ListCars(c.Request.Context(), actorFrom(c))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, cars)
}

// CreateRegion 新建地区  POST /api/v1/regions
func (h *Handler) CreateRegion(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	region, err := h.catalogService.CreateRegion(c.Request.Context(), actorFrom(c), req.Name)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, region)
}

// ListRegions 查询地区列表  GET /api/v1/regions
func (h *Handler) ListRegions(c *gin.Context) {
	regions, err := h.catalogService.ListRegions(c.Request.Context(), actorFrom(c))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, regions)
}

// CreateTag 新建标签  POST /api/v1/tags
func (h *Handler) CreateTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	tag, err := h.catalogService.CreateTag(c.Request.Context(), actorFrom(c), req.Name)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, tag)
}

// ListTags 查询标签列表  GET /api/v1/tags
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.ListTags(c.Request.Context(), actorFrom(c))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, tags)
}

// DeleteTag 删除标签  DELETE /api/v1/tags/:id
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTag(c.Request.Context(), actorFrom(c), id); err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "标签已删除"})
}

// CreatePostType 新建文章类型  POST /api/v1/post-types
func (h *Handler) CreatePostType(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	postType, err := h.catalogService.CreatePostType(c.Request.Context(), actorFrom(c), req.Name)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, postType)
}

// ListPostTypes 查询文章类型列表  GET /api/v1/post-types
func (h *Handler) ListPostTypes(c *gin.Context) {
	postTypes, err := h.catalogService.ListPostTypes(c.Request.Context(), actorFrom(c))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, postTypes)
}

// CreatePaymentMethod 新建支付方式  POST /api/v1/payment-methods
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	method, err := h.catalogService.CreatePaymentMethod(c.Request.Context(), actorFrom(c), req.Name)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, method)
}

// ListPaymentMethods 查询支付方式列表  GET /api/v1/payment-methods
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.catalogService.ListPaymentMethods(c.Request.Context(), actorFrom(c))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, methods)
}
