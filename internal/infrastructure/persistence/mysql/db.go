package mysql

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/crm/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构(开发环境)
	// 注意:生产环境应使用版本化的迁移脚本,不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 这里使用GORM的模型定义(带tag),不是domain层的实体
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AddressModel{},
		&CustomerModel{},
		&CategoryModel{},
		&SubCategoryModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderLineModel{},
	)
}

// AddressModel GORM地址模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/address/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type AddressModel struct {
	ID         uint      `gorm:"primaryKey"`
	Street     string    `gorm:"size:200;not null;comment:街道"`
	City       string    `gorm:"index;size:100;not null;comment:城市"`
	State      string    `gorm:"size:100;comment:省/州"`
	PostalCode string    `gorm:"index;size:20;not null;comment:邮政编码"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AddressModel) TableName() string {
	return "addresses"
}

// CustomerModel GORM客户模型
// 邮箱唯一性由服务层预检查(软唯一),不加数据库唯一索引,
// 保留普通索引用于查询加速
type CustomerModel struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:100;not null;comment:名"`
	LastName  string    `gorm:"size:100;not null;comment:姓"`
	Email     string    `gorm:"index;size:150;not null;comment:邮箱"`
	AddressID *uint     `gorm:"index;comment:关联地址ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// CategoryModel GORM产品大类模型
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;comment:大类名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// SubCategoryModel GORM产品子类模型
type SubCategoryModel struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:100;not null;comment:子类名称"`
	CategoryID uint      `gorm:"index;not null;comment:所属大类ID"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (SubCategoryModel) TableName() string {
	return "sub_categories"
}

// ProductModel GORM产品模型
// 设计说明:
// 1. 价格使用decimal(10,2)定点数(金额禁止用float)
// 2. SKU有唯一索引,服务层预检查+索引兜底双保险
// 3. Version是乐观锁版本号,更新时CAS
type ProductModel struct {
	ID            uint            `gorm:"primaryKey"`
	SubCategoryID uint            `gorm:"index;not null;comment:所属子类ID"`
	SKU           string          `gorm:"uniqueIndex;size:50;not null;comment:SKU编码"`
	Name          string          `gorm:"index;size:200;not null;comment:产品名称"`
	Description   string          `gorm:"type:text;comment:产品描述"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:单价"`
	StockQuantity int             `gorm:"not null;default:0;comment:库存数量"`
	Active        bool            `gorm:"not null;default:true;comment:是否上架"`
	Version       int64           `gorm:"not null;default:0;comment:乐观锁版本号"`
	CreatedAt     time.Time       `gorm:"comment:创建时间"`
	UpdatedAt     time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// OrderModel GORM订单模型
// 与OrderLineModel是一对多聚合关系,必须一起保存
type OrderModel struct {
	ID          uint             `gorm:"primaryKey"`
	CustomerID  uint             `gorm:"index;not null;comment:客户ID"`
	OrderDate   time.Time        `gorm:"index;not null;comment:下单日期"`
	Status      string           `gorm:"index;size:20;not null;default:NEW;comment:订单状态"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总额"`
	Version     int64            `gorm:"not null;default:0;comment:乐观锁版本号"`
	Lines       []OrderLineModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt   time.Time        `gorm:"comment:创建时间"`
	UpdatedAt   time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel GORM订单行模型
// UnitPrice记录下单时的价格快照
type OrderLineModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null;comment:订单ID"`
	ProductID uint            `gorm:"index;not null;comment:产品ID"`
	Quantity  int             `gorm:"not null;comment:订购数量"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:行金额"`
	Version   int64           `gorm:"not null;default:0;comment:乐观锁版本号"`
}

// TableName 指定表名
func (OrderLineModel) TableName() string {
	return "order_lines"
}
