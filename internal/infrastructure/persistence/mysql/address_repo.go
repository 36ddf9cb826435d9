package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/crm/internal/domain/address"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// addressSortColumns 地址排序白名单
var addressSortColumns = map[string]string{
	"id":          "id",
	"street":      "street",
	"city":        "city",
	"state":       "state",
	"postal_code": "postal_code",
}

// addressRepository 地址仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/address/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

// Create 创建地址
func (r *addressRepository) Create(ctx context.Context, addr *address.Address) error {
	model := &AddressModel{
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}

	// 回填自增ID
	addr.ID = model.ID
	addr.CreatedAt = model.CreatedAt
	addr.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*address.Address, error) {
	var model AddressModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, address.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	return toAddressEntity(&model), nil
}

// Update 更新地址
func (r *addressRepository) Update(ctx context.Context, addr *address.Address) error {
	model := &AddressModel{
		ID:         addr.ID,
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		CreatedAt:  addr.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新地址失败")
	}

	addr.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除地址
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AddressModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除地址失败")
	}
	if result.RowsAffected == 0 {
		return address.ErrAddressNotFound
	}
	return nil
}

// List 分页查询地址列表
func (r *addressRepository) List(ctx context.Context, params address.ListParams) ([]*address.Address, int64, error) {
	return r.query(ctx, getDB(ctx, r.db).Model(&AddressModel{}), params)
}

// Search 按条件搜索地址
// 通用搜索词优先于字段过滤;字段过滤AND组合;条件全空退化为List
func (r *addressRepository) Search(ctx context.Context, criteria address.SearchParams, params address.ListParams) ([]*address.Address, int64, error) {
	query := getDB(ctx, r.db).Model(&AddressModel{})

	if criteria.Term != "" {
		term := "%" + criteria.Term + "%"
		query = query.Where(
			"street LIKE ? OR city LIKE ? OR state LIKE ? OR postal_code LIKE ?",
			term, term, term, term,
		)
	} else {
		if criteria.City != "" {
			query = query.Where("city LIKE ?", "%"+criteria.City+"%")
		}
		if criteria.State != "" {
			query = query.Where("state LIKE ?", "%"+criteria.State+"%")
		}
		if criteria.PostalCode != "" {
			query = query.Where("postal_code LIKE ?", "%"+criteria.PostalCode+"%")
		}
	}

	return r.query(ctx, query, params)
}

// query 统计总数+排序+分页+实体转换的公共路径
func (r *addressRepository) query(_ context.Context, query *gorm.DB, params address.ListParams) ([]*address.Address, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询地址总数失败")
	}

	query = applySort(query, params.SortBy, params.SortDir, addressSortColumns, "id")
	query = applyPage(query, params.Page, params.PageSize)

	var models []AddressModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询地址列表失败")
	}

	addrs := make([]*address.Address, len(models))
	for i := range models {
		addrs[i] = toAddressEntity(&models[i])
	}
	return addrs, total, nil
}

// toAddressEntity GORM模型 → 领域实体
func toAddressEntity(model *AddressModel) *address.Address {
	return &address.Address{
		ID:         model.ID,
		Street:     model.Street,
		City:       model.City,
		State:      model.State,
		PostalCode: model.PostalCode,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
