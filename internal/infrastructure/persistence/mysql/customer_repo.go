package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/crm/internal/domain/customer"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// customerSortColumns 客户排序白名单
var customerSortColumns = map[string]string{
	"id":         "customers.id",
	"first_name": "customers.first_name",
	"last_name":  "customers.last_name",
	"email":      "customers.email",
}

// customerRepository 客户仓储实现(MySQL)
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建客户
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		AddressID: c.AddressID,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找客户
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

// Update 更新客户
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	// AddressID可能被置空,Save全量覆盖保证NULL能写回
	model := &CustomerModel{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		AddressID: c.AddressID,
		CreatedAt: c.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新客户失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除客户
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除客户失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// List 分页查询客户列表
func (r *customerRepository) List(ctx context.Context, params customer.ListParams) ([]*customer.Customer, int64, error) {
	return r.query(getDB(ctx, r.db).Model(&CustomerModel{}), params)
}

// Search 按条件搜索客户
// 通用搜索词匹配名/姓/邮箱;字段过滤AND组合;
// 城市过滤需要JOIN地址表;全名过滤匹配"名 姓"拼接
func (r *customerRepository) Search(ctx context.Context, criteria customer.SearchParams, params customer.ListParams) ([]*customer.Customer, int64, error) {
	query := getDB(ctx, r.db).Model(&CustomerModel{})

	if criteria.Term != "" {
		term := "%" + criteria.Term + "%"
		query = query.Where(
			"customers.first_name LIKE ? OR customers.last_name LIKE ? OR customers.email LIKE ?",
			term, term, term,
		)
	} else {
		if criteria.Email != "" {
			query = query.Where("customers.email LIKE ?", "%"+criteria.Email+"%")
		}
		if criteria.Name != "" {
			query = query.Where("CONCAT(customers.first_name, ' ', customers.last_name) LIKE ?", "%"+criteria.Name+"%")
		}
		if criteria.City != "" {
			query = query.
				Joins("JOIN addresses ON addresses.id = customers.address_id").
				Where("addresses.city LIKE ?", "%"+criteria.City+"%")
		}
	}

	return r.query(query, params)
}

// ExistsByEmail 检查邮箱是否已被使用(不区分大小写)
func (r *customerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	query := getDB(ctx, r.db).Model(&CustomerModel{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询邮箱占用失败")
	}
	return count > 0, nil
}

// query 统计总数+排序+分页+实体转换的公共路径
func (r *customerRepository) query(query *gorm.DB, params customer.ListParams) ([]*customer.Customer, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户总数失败")
	}

	query = applySort(query, params.SortBy, params.SortDir, customerSortColumns, "customers.id")
	query = applyPage(query, params.Page, params.PageSize)

	var models []CustomerModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户列表失败")
	}

	customers := make([]*customer.Customer, len(models))
	for i := range models {
		customers[i] = toCustomerEntity(&models[i])
	}
	return customers, total, nil
}

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		AddressID: model.AddressID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
