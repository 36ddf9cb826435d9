package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 产品实体(聚合根)
// 设计说明:
// 1. SKU是业务唯一标识(数据库唯一索引+服务层预检查)
// 2. 价格使用decimal定点数(金额禁止用float,数据库列decimal(10,2))
// 3. Version是乐观锁版本号:更新时按版本CAS,失配视为可重试冲突
// 4. Active为上架标记,下架产品不可下单
type Product struct {
	ID            uint
	SubCategoryID uint            // 所属子类ID
	SKU           string          // 库存单位编码(唯一)
	Name          string          // 产品名称
	Description   string          // 产品描述
	Price         decimal.Decimal // 单价(>0,最多2位小数)
	StockQuantity int             // 库存数量(>=0)
	Active        bool            // 是否上架
	Version       int64           // 乐观锁版本号
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct 创建新产品(工厂方法)
// 调用方需先通过ValidatePrice/库存校验
func NewProduct(subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) *Product {
	now := time.Now()
	return &Product{
		SubCategoryID: subCategoryID,
		SKU:           sku,
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Update 全量更新产品字段(领域行为)
// 不修改Version:版本递增由仓储在CAS更新成功时完成
func (p *Product) Update(subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) {
	p.SubCategoryID = subCategoryID
	p.SKU = sku
	p.Name = name
	p.Description = description
	p.Price = price
	p.StockQuantity = stockQuantity
	p.Active = active
	p.UpdatedAt = time.Now()
}

// HasStock 检查库存是否满足数量
func (p *Product) HasStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// ValidatePrice 校验价格:必须大于0且最多2位小数
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	// Exponent为-3表示有3位小数(如1.005)
	if price.Exponent() < -2 {
		return ErrInvalidPrice
	}
	return nil
}
