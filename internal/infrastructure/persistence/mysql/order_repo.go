package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/crm/internal/domain/order"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// orderSortColumns 订单排序白名单
var orderSortColumns = map[string]string{
	"id":           "id",
	"order_date":   "order_date",
	"status":       "status",
	"total_amount": "total_amount",
	"customer_id":  "customer_id",
}

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Order和OrderLine是聚合关系,必须一起保存/删除
// 2. 查询时使用Preload预加载订单行,避免N+1问题
// 3. 统计查询使用原生SQL(多表JOIN+GROUP BY,GORM链式API表达不了)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM通过foreignKey自动保存关联的Lines,必须在事务中调用
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Lines {
		o.Lines[i].ID = model.Lines[i].ID
		o.Lines[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单
// Preload("Lines")会执行:
// 1. SELECT * FROM orders WHERE id = ?
// 2. SELECT * FROM order_lines WHERE order_id IN (?)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Lines").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// Delete 删除订单及其订单行
// 先删行再删头,保证无孤儿行;调用方负责套事务
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	if err := db.Where("order_id = ?", id).Delete(&OrderLineModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除订单行失败")
	}

	result := db.Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// List 分页查询订单列表
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	return r.query(getDB(ctx, r.db).Model(&OrderModel{}), params)
}

// Search 按条件搜索订单,零值条件不参与过滤
func (r *orderRepository) Search(ctx context.Context, criteria order.SearchParams, params order.ListParams) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{})

	if criteria.CustomerID > 0 {
		query = query.Where("customer_id = ?", criteria.CustomerID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if !criteria.From.IsZero() {
		query = query.Where("order_date >= ?", criteria.From)
	}
	if !criteria.To.IsZero() {
		query = query.Where("order_date <= ?", criteria.To)
	}

	return r.query(query, params)
}

// ExistsByCustomerID 客户是否存在订单(客户删除保护)
func (r *orderRepository) ExistsByCustomerID(ctx context.Context, customerID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询客户订单失败")
	}
	return count > 0, nil
}

// ExistsByProductID 产品是否被订单行引用(产品删除保护)
func (r *orderRepository) ExistsByProductID(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderLineModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询产品订单引用失败")
	}
	return count > 0, nil
}

// SalesByCategory 按产品大类聚合日期区间内的销量与销售额
// 日期过滤放在派生表里而不是WHERE,否则LEFT JOIN会丢掉无销售的大类
func (r *orderRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]order.CategorySales, error) {
	var rows []order.CategorySales
	err := getDB(ctx, r.db).Raw(`
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COALESCE(SUM(s.quantity), 0) AS volume,
		       COALESCE(SUM(s.line_total), 0) AS revenue
		FROM categories c
		LEFT JOIN sub_categories sc ON sc.category_id = c.id
		LEFT JOIN products p ON p.sub_category_id = sc.id
		LEFT JOIN (
			SELECT ol.product_id, ol.quantity, ol.line_total
			FROM order_lines ol
			JOIN orders o ON o.id = ol.order_id
			WHERE o.order_date BETWEEN ? AND ?
		) s ON s.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY revenue DESC, c.id ASC
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "大类销售统计查询失败")
	}
	return rows, nil
}

// SalesBySubCategoryMonth 按子类与月份聚合日期区间内的销量与销售额
func (r *orderRepository) SalesBySubCategoryMonth(ctx context.Context, from, to time.Time, category string) ([]order.SubCategoryMonthSales, error) {
	sql := `
		SELECT sc.id AS sub_category_id,
		       sc.name AS sub_category_name,
		       c.name AS category_name,
		       DATE_FORMAT(o.order_date, '%Y-%m') AS month,
		       SUM(ol.quantity) AS volume,
		       SUM(ol.line_total) AS revenue
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		JOIN products p ON p.id = ol.product_id
		JOIN sub_categories sc ON sc.id = p.sub_category_id
		JOIN categories c ON c.id = sc.category_id
		WHERE o.order_date BETWEEN ? AND ?`
	args := []interface{}{from, to}

	if category != "" {
		sql += ` AND c.name LIKE ?`
		args = append(args, "%"+category+"%")
	}

	sql += `
		GROUP BY sc.id, sc.name, c.name, DATE_FORMAT(o.order_date, '%Y-%m')
		ORDER BY sc.name ASC, month ASC`

	var rows []order.SubCategoryMonthSales
	if err := getDB(ctx, r.db).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "子类销售统计查询失败")
	}
	return rows, nil
}

// SalesByCategoryYear 按产品大类聚合指定年份的销量与销售额
func (r *orderRepository) SalesByCategoryYear(ctx context.Context, year int) ([]order.CategorySales, error) {
	var rows []order.CategorySales
	err := getDB(ctx, r.db).Raw(`
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COALESCE(SUM(s.quantity), 0) AS volume,
		       COALESCE(SUM(s.line_total), 0) AS revenue
		FROM categories c
		LEFT JOIN sub_categories sc ON sc.category_id = c.id
		LEFT JOIN products p ON p.sub_category_id = sc.id
		LEFT JOIN (
			SELECT ol.product_id, ol.quantity, ol.line_total
			FROM order_lines ol
			JOIN orders o ON o.id = ol.order_id
			WHERE YEAR(o.order_date) = ?
		) s ON s.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY c.id ASC
	`, year).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "年度销售统计查询失败")
	}
	return rows, nil
}

// query 统计总数+排序+分页+实体转换的公共路径
func (r *orderRepository) query(query *gorm.DB, params order.ListParams) ([]*order.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	query = applySort(query, params.SortBy, params.SortDir, orderSortColumns, "id")
	query = applyPage(query, params.Page, params.PageSize)

	var models []OrderModel
	if err := query.Preload("Lines").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	model := &OrderModel{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Version:     o.Version,
		Lines:       make([]OrderLineModel, len(o.Lines)),
	}
	for i, line := range o.Lines {
		model.Lines[i] = OrderLineModel{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			Version:   line.Version,
		}
	}
	return model
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:          model.ID,
		CustomerID:  model.CustomerID,
		OrderDate:   model.OrderDate,
		Status:      model.Status,
		TotalAmount: model.TotalAmount,
		Version:     model.Version,
		Lines:       make([]*order.Line, len(model.Lines)),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	for i := range model.Lines {
		line := &model.Lines[i]
		o.Lines[i] = &order.Line{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			Version:   line.Version,
		}
	}
	return o
}
