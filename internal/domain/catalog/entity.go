package catalog

import (
	"time"
)

// 产品分类固定为三层树:Category → SubCategory → Product
// Product实体在product包中,通过SubCategoryID引用本包

// Category 产品大类实体
type Category struct {
	ID        uint
	Name      string // 大类名称
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory 创建产品大类(工厂方法)
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 更新大类名称
func (c *Category) Rename(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}

// SubCategory 产品子类实体
// 必须归属于一个大类
type SubCategory struct {
	ID         uint
	Name       string // 子类名称
	CategoryID uint   // 所属大类ID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSubCategory 创建产品子类(工厂方法)
func NewSubCategory(name string, categoryID uint) *SubCategory {
	now := time.Now()
	return &SubCategory{
		Name:       name,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Update 更新子类名称与所属大类
func (sc *SubCategory) Update(name string, categoryID uint) {
	sc.Name = name
	sc.CategoryID = categoryID
	sc.UpdatedAt = time.Now()
}
