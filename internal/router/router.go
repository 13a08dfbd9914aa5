package router

import (
	"time"

	"roomcare/internal/database"
	"roomcare/internal/handlers"
	"roomcare/internal/middleware"
	"roomcare/internal/services"
	"roomcare/pkg/config"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter() *gin.Engine {
	cfg := config.GetConfig()
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.CORSMiddleware())

	db := database.GetDB()
	redisCache := database.GetRedisCache()

	// 服务层
	roomService := services.NewRoomService(db)
	reportService := services.NewReportService(db)
	staffService := services.NewStaffService(db, redisCache,
		time.Duration(cfg.Cache.StaffListTTL)*time.Second)
	propertyService := services.NewPropertyService(db)
	attachmentService := services.NewAttachmentService(db)

	// 处理器
	scope := handlers.NewHouseScope(db, staffService)
	authHandler := handlers.NewAuthHandler(staffService)
	roomHandler := handlers.NewRoomHandler(roomService, scope)
	reportHandler := handlers.NewReportHandler(reportService, scope)
	propertyHandler := handlers.NewPropertyHandler(propertyService, roomService)
	staffHandler := handlers.NewStaffHandler(staffService)
	streamHandler := handlers.NewStreamHandler(redisCache, cfg.Digest.Channel)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	v1 := r.Group("/api/v1")
	{
		// 仪表盘事件流：token通过查询参数认证，在处理器内校验
		v1.GET("/dashboard/stream", streamHandler.Stream)

		// ========== 认证相关（无需登录） ==========
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// ========== 需要认证的路由 ==========
		authorized := v1.Group("")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.GET("/auth/me", authHandler.Me)

			// 空室管理
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", roomHandler.ListVacant)
				rooms.GET("/detail", roomHandler.GetDetail)
				rooms.POST("/moveout", roomHandler.ConfirmMoveOut)
				rooms.POST("/early-leave", roomHandler.MarkEarlyLeave)
			}

			// 报告书
			reports := authorized.Group("/reports")
			{
				reports.GET("", reportHandler.List)
				reports.GET("/:id", reportHandler.GetDetail)
				reports.POST("", reportHandler.Create)
			}

			// 附件登记
			attachments := authorized.Group("/attachments")
			{
				attachments.POST("", attachmentHandler.Register)
				attachments.GET("/:id", attachmentHandler.Get)
			}

			// ========== 管理员路由 ==========
			admin := authorized.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				properties := admin.Group("/properties")
				{
					properties.GET("", propertyHandler.List)
					properties.GET("/:id", propertyHandler.Get)
					properties.POST("", propertyHandler.Create)
					properties.PUT("/:id", propertyHandler.Update)
					properties.POST("/:id/rooms", propertyHandler.AddRoom)
					properties.POST("/:id/tenancies", propertyHandler.AssignTenancy)
				}

				staffs := admin.Group("/staffs")
				{
					staffs.GET("", staffHandler.List)
					staffs.POST("", staffHandler.Create)
					staffs.PUT("/:id", staffHandler.Update)
					staffs.DELETE("/:id", staffHandler.Delete)
				}
			}
		}
	}

	return r
}
