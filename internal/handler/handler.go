package handler

import (
	"strconv"

	"touragency/internal/config"
	"touragency/internal/service"
	"touragency/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	authService    *service.AuthService
	paymentService *service.PaymentService
	postService    *service.PostService
	bookingService *service.BookingService
	catalogService *service.CatalogService
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		authService:    service.NewAuthService(db, cfg),
		paymentService: service.NewPaymentService(db, rdb, cfg),
		postService:    service.NewPostService(db, rdb, cfg),
		bookingService: service.NewBookingService(db, cfg),
		catalogService: service.NewCatalogService(db),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "id 参数错误")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// ============================================================
// 认证相关接口
// ============================================================

// Login 登录
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, result)
}

// Register 创建员工账号（仅管理员）
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	employee, err := h.authService.Register(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":    employee.ID,
		"name":  employee.Name,
		"email": employee.Email,
		"role":  employee.Role,
	})
}

// ============================================================
// 款项与流水接口
// ============================================================

// GetPayment 查询款项详情
// GET /api/v1/payments/:id
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, payment)
}

// ListBookingPayments 查询某预订下的款项
// GET /api/v1/bookings/:id/payments
func (h *Handler) ListBookingPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, payments)
}

// CreateTransaction 录入一笔流水
// POST /api/v1/payments/:id/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	transaction, err := h.paymentService.CreateTransaction(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, transaction)
}

// ListTransactions 查询款项流水
// GET /api/v1/payments/:id/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transactions, err := h.paymentService.ListTransactions(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	response.Success(c, transactions)
}
