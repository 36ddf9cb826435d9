package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo 内存版地址仓储
type fakeRepo struct {
	nextID    uint
	addresses map[uint]*Address
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, addresses: make(map[uint]*Address)}
}

func (f *fakeRepo) Create(_ context.Context, addr *Address) error {
	addr.ID = f.nextID
	f.nextID++
	f.addresses[addr.ID] = addr
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*Address, error) {
	addr, ok := f.addresses[id]
	if !ok {
		return nil, ErrAddressNotFound
	}
	return addr, nil
}

func (f *fakeRepo) Update(_ context.Context, addr *Address) error {
	if _, ok := f.addresses[addr.ID]; !ok {
		return ErrAddressNotFound
	}
	f.addresses[addr.ID] = addr
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.addresses[id]; !ok {
		return ErrAddressNotFound
	}
	delete(f.addresses, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ ListParams) ([]*Address, int64, error) {
	out := make([]*Address, 0, len(f.addresses))
	for _, addr := range f.addresses {
		out = append(out, addr)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Search(ctx context.Context, _ SearchParams, params ListParams) ([]*Address, int64, error) {
	return f.List(ctx, params)
}

func TestCreateAddress(t *testing.T) {
	svc := NewService(newFakeRepo())

	addr, err := svc.CreateAddress(context.Background(), "人民路100号", "上海", "上海市", "200000")
	require.NoError(t, err)

	assert.NotZero(t, addr.ID)
	assert.Equal(t, "人民路100号", addr.Street)
	assert.Equal(t, "200000", addr.PostalCode)
}

func TestCreateAddressMissingRequired(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := []struct {
		name   string
		street string
		city   string
		postal string
	}{
		{"街道为空", "", "上海", "200000"},
		{"城市为空", "人民路100号", "  ", "200000"},
		{"邮编为空", "人民路100号", "上海", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAddress(context.Background(), tc.street, tc.city, "", tc.postal)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}

	// 省/州是可选字段
	_, err := svc.CreateAddress(context.Background(), "人民路100号", "上海", "", "200000")
	assert.NoError(t, err)
}

func TestUpdateAddress(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	addr, err := svc.CreateAddress(context.Background(), "人民路100号", "上海", "上海市", "200000")
	require.NoError(t, err)

	updated, err := svc.UpdateAddress(context.Background(), addr.ID, "中山路200号", "杭州", "浙江省", "310000")
	require.NoError(t, err)

	assert.Equal(t, addr.ID, updated.ID)
	assert.Equal(t, "中山路200号", updated.Street)
	assert.Equal(t, "杭州", updated.City)
}

func TestUpdateAddressNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpdateAddress(context.Background(), 999, "中山路200号", "杭州", "浙江省", "310000")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestDeleteAddress(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	addr, err := svc.CreateAddress(context.Background(), "人民路100号", "上海", "上海市", "200000")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(context.Background(), addr.ID))

	_, err = svc.GetAddressByID(context.Background(), addr.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	// 再删一次应返回404语义
	assert.ErrorIs(t, svc.DeleteAddress(context.Background(), addr.ID), ErrAddressNotFound)
}
