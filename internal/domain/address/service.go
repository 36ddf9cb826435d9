package address

import (
	"context"
	"strings"
)

// Service 地址领域服务接口
type Service interface {
	// CreateAddress 创建地址
	// 业务规则:街道、城市、邮编必填
	CreateAddress(ctx context.Context, street, city, state, postalCode string) (*Address, error)

	// GetAddressByID 根据ID获取地址
	GetAddressByID(ctx context.Context, id uint) (*Address, error)

	// UpdateAddress 全量更新地址
	UpdateAddress(ctx context.Context, id uint, street, city, state, postalCode string) (*Address, error)

	// DeleteAddress 删除地址
	DeleteAddress(ctx context.Context, id uint) error

	// ListAddresses 分页查询地址列表
	ListAddresses(ctx context.Context, params ListParams) ([]*Address, int64, error)

	// SearchAddresses 按条件搜索地址
	SearchAddresses(ctx context.Context, criteria SearchParams, params ListParams) ([]*Address, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建地址领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateAddress 创建地址
func (s *service) CreateAddress(ctx context.Context, street, city, state, postalCode string) (*Address, error) {
	if err := validateFields(street, city, postalCode); err != nil {
		return nil, err
	}

	addr := NewAddress(street, city, state, postalCode)
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// GetAddressByID 根据ID获取地址
func (s *service) GetAddressByID(ctx context.Context, id uint) (*Address, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAddress 全量更新地址
func (s *service) UpdateAddress(ctx context.Context, id uint, street, city, state, postalCode string) (*Address, error) {
	if err := validateFields(street, city, postalCode); err != nil {
		return nil, err
	}

	addr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addr.Update(street, city, state, postalCode)
	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// DeleteAddress 删除地址
func (s *service) DeleteAddress(ctx context.Context, id uint) error {
	// 先确认存在,保证404语义
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListAddresses 分页查询地址列表
func (s *service) ListAddresses(ctx context.Context, params ListParams) ([]*Address, int64, error) {
	return s.repo.List(ctx, params)
}

// SearchAddresses 按条件搜索地址
func (s *service) SearchAddresses(ctx context.Context, criteria SearchParams, params ListParams) ([]*Address, int64, error) {
	return s.repo.Search(ctx, criteria, params)
}

// validateFields 校验必填字段
func validateFields(street, city, postalCode string) error {
	if strings.TrimSpace(street) == "" ||
		strings.TrimSpace(city) == "" ||
		strings.TrimSpace(postalCode) == "" {
		return ErrInvalidAddress
	}
	return nil
}
