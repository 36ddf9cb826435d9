//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 使用方式：
// Step 1: 运行 `wire gen ./cmd/api`
// Step 2: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 3: main.go调用InitializeApp()替换手动组装
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewCustomerRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	apporder "github.com/xiebiao/crm/internal/application/order"
	"github.com/xiebiao/crm/internal/application/statistics"
	"github.com/xiebiao/crm/internal/domain/address"
	"github.com/xiebiao/crm/internal/domain/catalog"
	"github.com/xiebiao/crm/internal/domain/customer"
	"github.com/xiebiao/crm/internal/domain/order"
	"github.com/xiebiao/crm/internal/domain/product"
	"github.com/xiebiao/crm/internal/infrastructure/config"
	"github.com/xiebiao/crm/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/crm/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/crm/internal/interface/http/handler"
	"github.com/xiebiao/crm/internal/interface/http/middleware"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load, // 加载配置文件
	mysql.NewDB, // 创建MySQL连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewAddressRepository,     // 地址仓储
	mysql.NewCustomerRepository,    // 客户仓储
	mysql.NewCategoryRepository,    // 产品大类仓储
	mysql.NewSubCategoryRepository, // 产品子类仓储
	mysql.NewProductRepository,     // 产品仓储
	mysql.NewOrderRepository,       // 订单仓储
	mysql.NewTxManager,             // 事务管理器
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	address.NewService,            // 地址领域服务
	customer.NewService,           // 客户领域服务
	catalog.NewCategoryService,    // 大类领域服务
	catalog.NewSubCategoryService, // 子类领域服务
	product.NewService,            // 产品领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	apporder.NewCreateOrderUseCase,         // 创建订单用例
	apporder.NewDeleteOrderUseCase,         // 删除订单用例
	statistics.NewCategorySalesUseCase,     // 大类销售统计用例
	statistics.NewSubCategorySalesUseCase,  // 子类月度统计用例
	statistics.NewYearComparisonUseCase,    // 年度对比用例
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAddressHandler,
	handler.NewCustomerHandler,
	handler.NewCategoryHandler,
	handler.NewSubCategoryHandler,
	handler.NewProductHandler,
	handler.NewOrderHandler,
	handler.NewStatisticsHandler,
)

// ========================================
// Custom Providers
// ========================================
// 跨领域的窄接口（AddressLookup等）由既有实现适配，
// Wire无法自动推断接口归属，需要手写Provider做绑定

// provideAddressLookup 客户服务的地址查询依赖
func provideAddressLookup(svc address.Service) customer.AddressLookup {
	return svc
}

// provideSubCategoryLookup 产品服务的子类查询依赖
func provideSubCategoryLookup(svc catalog.SubCategoryService) product.SubCategoryLookup {
	return svc
}

// provideProductChecker 子类删除保护依赖（由产品仓储实现）
func provideProductChecker(repo product.Repository) catalog.ProductChecker {
	return repo
}

// provideCustomerOrderChecker 客户删除保护依赖（由订单仓储实现）
func provideCustomerOrderChecker(repo order.Repository) customer.OrderChecker {
	return repo
}

// provideOrderLineChecker 产品删除保护依赖（由订单仓储实现）
func provideOrderLineChecker(repo order.Repository) product.OrderLineChecker {
	return repo
}

// provideCustomerLookup 下单用例的客户查询依赖
func provideCustomerLookup(repo customer.Repository) apporder.CustomerLookup {
	return repo
}

// provideTransactor 下单用例的事务执行器依赖
func provideTransactor(tx *mysql.TxManager) apporder.Transactor {
	return tx
}

// provideReportCache 报表缓存Provider
// 缓存关闭时返回nil，统计用例直连数据库
func provideReportCache(cfg *config.Config) (statistics.ReportCache, error) {
	if !cfg.Stats.CacheEnabled {
		return nil, nil
	}
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return redis.NewReportCache(client), nil
}

// provideCacheTTL 报表缓存过期时间
func provideCacheTTL(cfg *config.Config) time.Duration {
	return cfg.Stats.CacheTTL
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	addressHandler *handler.AddressHandler,
	customerHandler *handler.CustomerHandler,
	categoryHandler *handler.CategoryHandler,
	subCategoryHandler *handler.SubCategoryHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	statisticsHandler *handler.StatisticsHandler,
) *gin.Engine {
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

	registerRoutes(r,
		addressHandler, customerHandler,
		categoryHandler, subCategoryHandler,
		productHandler, orderHandler, statisticsHandler,
	)

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖关系自动生成组装代码：
// *gin.Engine ← Handler ← UseCase/Service ← Repository ← *gorm.DB ← *config.Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,

		// 窄接口绑定
		provideAddressLookup,
		provideSubCategoryLookup,
		provideProductChecker,
		provideCustomerOrderChecker,
		provideOrderLineChecker,
		provideCustomerLookup,
		provideTransactor,
		provideReportCache,
		provideCacheTTL,

		provideGinEngine,
	)

	// 占位返回值，实际代码由wire_gen.go生成
	return nil, nil
}
