package customer

import (
	"context"
	"regexp"
	"strings"

	"github.com/xiebiao/crm/internal/domain/address"
)

// emailPattern 邮箱格式校验(简化版,不追求RFC完备)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AddressLookup 地址查询接口
// 设计说明:只依赖需要的一个方法,而非整个address.Service,
// 便于Mock测试(接口隔离)
type AddressLookup interface {
	GetAddressByID(ctx context.Context, id uint) (*address.Address, error)
}

// OrderChecker 订单引用检查接口
// 客户删除保护需要知道"客户是否存在订单",由订单仓储实现注入
type OrderChecker interface {
	ExistsByCustomerID(ctx context.Context, customerID uint) (bool, error)
}

// Service 客户领域服务接口
type Service interface {
	// CreateCustomer 创建客户
	// 业务规则:
	// - 姓名必填,邮箱格式合法
	// - 邮箱不能与现有客户重复(不区分大小写)
	// - 关联地址(如有)必须存在
	CreateCustomer(ctx context.Context, firstName, lastName, email string, addressID *uint) (*Customer, error)

	// GetCustomerByID 根据ID获取客户
	GetCustomerByID(ctx context.Context, id uint) (*Customer, error)

	// UpdateCustomer 全量更新客户
	UpdateCustomer(ctx context.Context, id uint, firstName, lastName, email string, addressID *uint) (*Customer, error)

	// DeleteCustomer 删除客户
	// 业务规则:客户存在订单时禁止删除(引用保护)
	DeleteCustomer(ctx context.Context, id uint) error

	// ListCustomers 分页查询客户列表
	ListCustomers(ctx context.Context, params ListParams) ([]*Customer, int64, error)

	// SearchCustomers 按条件搜索客户
	SearchCustomers(ctx context.Context, criteria SearchParams, params ListParams) ([]*Customer, int64, error)
}

// service 领域服务实现
type service struct {
	repo      Repository
	addresses AddressLookup
	orders    OrderChecker
}

// NewService 创建客户领域服务
func NewService(repo Repository, addresses AddressLookup, orders OrderChecker) Service {
	return &service{repo: repo, addresses: addresses, orders: orders}
}

// CreateCustomer 创建客户
func (s *service) CreateCustomer(ctx context.Context, firstName, lastName, email string, addressID *uint) (*Customer, error) {
	if err := s.validate(ctx, firstName, lastName, email, addressID, 0); err != nil {
		return nil, err
	}

	c := NewCustomer(firstName, lastName, email, addressID)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomerByID 根据ID获取客户
func (s *service) GetCustomerByID(ctx context.Context, id uint) (*Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCustomer 全量更新客户
func (s *service) UpdateCustomer(ctx context.Context, id uint, firstName, lastName, email string, addressID *uint) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, firstName, lastName, email, addressID, id); err != nil {
		return nil, err
	}

	c.Update(firstName, lastName, email, addressID)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCustomer 删除客户
func (s *service) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.orders.ExistsByCustomerID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCustomerInUse
	}

	return s.repo.Delete(ctx, id)
}

// ListCustomers 分页查询客户列表
func (s *service) ListCustomers(ctx context.Context, params ListParams) ([]*Customer, int64, error) {
	return s.repo.List(ctx, params)
}

// SearchCustomers 按条件搜索客户
func (s *service) SearchCustomers(ctx context.Context, criteria SearchParams, params ListParams) ([]*Customer, int64, error) {
	return s.repo.Search(ctx, criteria, params)
}

// validate 创建/更新共用的业务校验
// excludeID用于更新时跳过自身的邮箱唯一性检查
func (s *service) validate(ctx context.Context, firstName, lastName, email string, addressID *uint, excludeID uint) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return ErrInvalidName
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	// 邮箱软唯一性检查(不区分大小写)
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailDuplicate
	}

	// 关联地址必须存在
	if addressID != nil {
		if _, err := s.addresses.GetAddressByID(ctx, *addressID); err != nil {
			return err
		}
	}

	return nil
}
