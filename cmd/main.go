package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/config"
	"github.com/gongye19/OnlineStore/internal/api/admin"
	"github.com/gongye19/OnlineStore/internal/api/cart"
	"github.com/gongye19/OnlineStore/internal/api/order"
	"github.com/gongye19/OnlineStore/internal/api/product"
	"github.com/gongye19/OnlineStore/internal/api/upload"
	"github.com/gongye19/OnlineStore/internal/api/user"
	"github.com/gongye19/OnlineStore/internal/middleware"
	"github.com/gongye19/OnlineStore/internal/repository/mysql"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/storage"
	"github.com/gongye19/OnlineStore/internal/util"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	// 配置连接池
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cn_phone", util.ValidateCNPhone)
	}

	// 根据配置选择存储后端
	store := initStorage()

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, emailService)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo)
	statsService := service.NewStatsService(userRepo, productRepo, orderRepo)

	authHandler := user.NewAuthHandler(userService)
	passwordHandler := user.NewPasswordHandler(userService)
	productHandler := product.NewProductHandler(productService)
	cartHandler := cart.NewCartHandler(cartService)
	orderHandler := order.NewOrderHandler(orderService)
	uploadHandler := upload.NewUploadHandler(store)
	adminHandler := admin.NewAdminHandler(statsService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}
	r.Use(cors.New(corsConfig))

	// 本地存储时提供静态文件服务，并处理静态文件的CORS
	if config.AppConfig.StorageBackend == "local" {
		r.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
				c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
				c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

				if c.Request.Method == "OPTIONS" {
					c.AbortWithStatus(200)
					return
				}
			}
			c.Next()
		})
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 未匹配的路由也返回统一的错误格式
	r.NoRoute(notFoundHandler)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/send-email-otp", passwordHandler.SendEmailOTP)
			auth.POST("/verify-email-otp", passwordHandler.VerifyEmailOTP)
			auth.POST("/change-password", passwordHandler.ChangePassword)

			authorized := auth.Group("/")
			authorized.Use(middleware.AuthMiddleware(userService))
			{
				authorized.GET("/me", authHandler.Me)
				authorized.POST("/logout", authHandler.Logout)
			}
		}

		// 商品相关路由，读公开，写仅管理员
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", middleware.AuthMiddleware(userService), middleware.AdminMiddleware(), productHandler.CreateProduct)
		api.PUT("/products/:id", middleware.AuthMiddleware(userService), middleware.AdminMiddleware(), productHandler.UpdateProduct)
		api.DELETE("/products/:id", middleware.AuthMiddleware(userService), middleware.AdminMiddleware(), productHandler.DeleteProduct)

		// 购物车相关路由，:id 为商品ID
		cartRoutes := api.Group("/cart")
		cartRoutes.Use(middleware.AuthMiddleware(userService))
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.POST("", cartHandler.AddToCart)
			cartRoutes.PUT("/:id", cartHandler.UpdateCartItem)
			cartRoutes.DELETE("/:id", cartHandler.RemoveFromCart)
		}

		// 订单相关路由
		orderRoutes := api.Group("/orders")
		orderRoutes.Use(middleware.AuthMiddleware(userService))
		{
			orderRoutes.POST("", orderHandler.Checkout)
			orderRoutes.GET("", orderHandler.ListOrders)
			orderRoutes.GET("/:id", orderHandler.GetOrder)
			orderRoutes.PUT("/:id/status", middleware.AdminMiddleware(), orderHandler.UpdateOrderStatus)
		}

		// 图片上传路由（仅管理员）
		uploadRoutes := api.Group("/upload")
		uploadRoutes.Use(middleware.AuthMiddleware(userService), middleware.AdminMiddleware())
		{
			uploadRoutes.POST("/single", uploadHandler.UploadImage)
			uploadRoutes.POST("/multiple", uploadHandler.UploadImages)
			uploadRoutes.POST("/home", uploadHandler.UploadHomeImage)
		}

		// 管理员路由组
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(userService), middleware.AdminMiddleware())
		{
			adminRoutes.GET("/stats", adminHandler.GetStats)
		}
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// notFoundHandler 处理未匹配的路由
func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// initStorage 根据配置选择存储后端，本地存储时确保上传目录存在
func initStorage() storage.Storage {
	switch config.AppConfig.StorageBackend {
	case "s3":
		client, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化S3存储失败", zap.Error(err))
		}
		util.Logger.Info("使用S3存储", zap.String("bucket", config.AppConfig.S3Bucket))
		return client
	case "gcs":
		client, err := storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化GCS存储失败", zap.Error(err))
		}
		util.Logger.Info("使用GCS存储", zap.String("bucket", config.AppConfig.GCSBucketName))
		return client
	default:
		localStorage, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		util.Logger.Info("使用本地存储", zap.String("path", config.AppConfig.LocalStoragePath))
		return localStorage
	}
}
