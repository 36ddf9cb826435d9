package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apporder "github.com/xiebiao/crm/internal/application/order"
	"github.com/xiebiao/crm/internal/application/statistics"
	"github.com/xiebiao/crm/internal/domain/address"
	"github.com/xiebiao/crm/internal/domain/catalog"
	"github.com/xiebiao/crm/internal/domain/customer"
	"github.com/xiebiao/crm/internal/domain/product"
	"github.com/xiebiao/crm/internal/infrastructure/config"
	"github.com/xiebiao/crm/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/crm/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/crm/internal/interface/http/handler"
	"github.com/xiebiao/crm/internal/interface/http/middleware"
	"github.com/xiebiao/crm/pkg/metrics"
	"github.com/xiebiao/crm/pkg/response"
)

// @title           CRM管理系统API
// @version         1.0
// @description     客户、产品目录、订单与销售统计的管理接口
// @BasePath        /api/v1

// main 主程序入口
// 说明：手动依赖注入（Wire配置见wire.go，生成代码后可切换到InitializeApp）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化报表缓存（可选）
	// 缓存关闭时不连接Redis，统计用例直连数据库
	var reportCache statistics.ReportCache
	if cfg.Stats.CacheEnabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		reportCache = redis.NewReportCache(redisClient)
	} else {
		fmt.Println("  - 报表缓存: 已禁用")
	}

	// 5. 依赖注入（手动组装）
	// Repository ← Service/UseCase ← Handler

	// 基础设施层
	addressRepo := mysql.NewAddressRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	subCategoryRepo := mysql.NewSubCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)

	// 领域层
	addressService := address.NewService(addressRepo)
	customerService := customer.NewService(customerRepo, addressService, orderRepo)
	categoryService := catalog.NewCategoryService(categoryRepo, subCategoryRepo)
	subCategoryService := catalog.NewSubCategoryService(subCategoryRepo, categoryRepo, productRepo)
	productService := product.NewService(productRepo, subCategoryService, orderRepo)

	// 应用层
	createOrderUseCase := apporder.NewCreateOrderUseCase(orderRepo, productRepo, customerRepo, txManager)
	deleteOrderUseCase := apporder.NewDeleteOrderUseCase(orderRepo, txManager)
	categorySalesUseCase := statistics.NewCategorySalesUseCase(orderRepo, reportCache, cfg.Stats.CacheTTL)
	subCategorySalesUseCase := statistics.NewSubCategorySalesUseCase(orderRepo, reportCache, cfg.Stats.CacheTTL)
	yearComparisonUseCase := statistics.NewYearComparisonUseCase(orderRepo, reportCache, cfg.Stats.CacheTTL)

	// 接口层
	addressHandler := handler.NewAddressHandler(addressService)
	customerHandler := handler.NewCustomerHandler(customerService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	subCategoryHandler := handler.NewSubCategoryHandler(subCategoryService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(createOrderUseCase, deleteOrderUseCase, orderRepo)
	statisticsHandler := handler.NewStatisticsHandler(categorySalesUseCase, subCategorySalesUseCase, yearComparisonUseCase)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS))
	}

	// 7. 注册路由
	registerRoutes(r,
		addressHandler, customerHandler,
		categoryHandler, subCategoryHandler,
		productHandler, orderHandler, statisticsHandler,
	)

	// 8. 启动服务（优雅关闭）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号，给在途请求10秒收尾时间
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭失败: %v", err)
	}
	fmt.Println("✓ 服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	addressHandler *handler.AddressHandler,
	customerHandler *handler.CustomerHandler,
	categoryHandler *handler.CategoryHandler,
	subCategoryHandler *handler.SubCategoryHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	statisticsHandler *handler.StatisticsHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 地址模块
		addresses := v1.Group("/addresses")
		{
			addresses.POST("", addressHandler.Create)
			addresses.GET("", addressHandler.List)
			addresses.GET("/search", addressHandler.Search)
			addresses.GET("/:id", addressHandler.Get)
			addresses.PUT("/:id", addressHandler.Update)
			addresses.DELETE("/:id", addressHandler.Delete)
		}

		// 客户模块
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/search", customerHandler.Search)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		// 产品大类模块
		categories := v1.Group("/product-categories")
		{
			categories.POST("", categoryHandler.Create)
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
			categories.GET("/:id/subcategories", subCategoryHandler.ListByCategory)
		}

		// 产品子类模块
		subCategories := v1.Group("/product-subcategories")
		{
			subCategories.POST("", subCategoryHandler.Create)
			subCategories.GET("", subCategoryHandler.List)
			subCategories.GET("/:id", subCategoryHandler.Get)
			subCategories.PUT("/:id", subCategoryHandler.Update)
			subCategories.DELETE("/:id", subCategoryHandler.Delete)
		}

		// 产品模块
		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/search", productHandler.Search)
			products.GET("/low-stock", productHandler.LowStock)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// 订单模块
		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/search", orderHandler.Search)
			orders.GET("/:id", orderHandler.Get)
			orders.DELETE("/:id", orderHandler.Delete)
		}

		// 销售统计模块
		stats := v1.Group("/statistics")
		{
			stats.GET("/category-sales", statisticsHandler.CategorySales)
			stats.GET("/subcategory-sales", statisticsHandler.SubCategorySales)
			stats.GET("/year-comparison", statisticsHandler.YearComparison)
		}
	}
}
