package handler

import (
	"touragency/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	h := NewHandler(db, rdb, cfg)

	api := r.Group("/api/v1")

	// 登录不需要令牌
	api.POST("/auth/login", h.Login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(cfg.JWT.Secret))
	{
		authed.POST("/auth/register", h.Register)

		// 款项与流水
		payment := authed.Group("/payments")
		{
			payment.GET("/:id", h.GetPayment)
			payment.GET("/:id/transactions", h.ListTransactions)
			payment.POST("/:id/transactions", h.CreateTransaction)
		}

		// 预订
		booking := authed.Group("/bookings")
		{
			booking.POST("", h.CreateBooking)
			booking.GET("", h.ListBookings)
			booking.GET("/:id", h.GetBooking)
			booking.GET("/:id/payments", h.ListBookingPayments)
			booking.POST("/:id/confirm", h.ConfirmBooking)
			booking.POST("/:id/deny", h.DenyBooking)
		}

		// 文章
		post := authed.Group("/posts")
		{
			post.POST("", h.CreatePost)
			post.GET("", h.ListPosts)
			post.GET("/:id", h.GetPost)
			post.PUT("/:id", h.UpdatePost)
			post.POST("/:id/submit", h.SubmitPost)
			post.POST("/:id/approve", h.ApprovePost)
			post.POST("/:id/reject", h.RejectPost)
			post.POST("/:id/unpublish", h.UnpublishPost)
			post.POST("/:id/restore", h.RestorePost)
			post.DELETE("/:id", h.DeletePost)
		}

		// 基础数据
		authed.POST("/trips", h.CreateTrip)
		authed.GET("/trips", h.ListTrips)
		authed.GET("/trips/:id", h.GetTrip)
		authed.PUT("/trips/:id", h.UpdateTrip)
		authed.DELETE("/trips/:id", h.DeleteTrip)

		authed.POST("/trip-plans", h.CreateTripPlan)
		authed.GET("/trip-plans", h.ListTripPlans)

		authed.POST("/cars", h.CreateCar)
		authed.GET("/cars", h.ListCars)

		authed.POST("/regions", h.CreateRegion)
		authed.GET("/regions", h.ListRegions)

		authed.POST("/tags", h.CreateTag)
		authed.GET("/tags", h.ListTags)
		authed.DELETE("/tags/:id", h.DeleteTag)

		authed.POST("/post-types", h.CreatePostType)
		authed.GET("/post-types", h.ListPostTypes)

		authed.POST("/payment-methods", h.CreatePaymentMethod)
		authed.GET("/payment-methods", h.ListPaymentMethods)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
