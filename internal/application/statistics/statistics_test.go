package statistics

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/crm/internal/domain/order"
	"github.com/xiebiao/crm/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

var (
	reportFrom = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reportTo   = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

// fakeStatsRepo 仅实现统计查询,其余方法不会被统计用例调用
type fakeStatsRepo struct {
	order.Repository

	categoryRows    []order.CategorySales
	subCategoryRows []order.SubCategoryMonthSales
	yearRows        map[int][]order.CategorySales
	calls           int
}

func (f *fakeStatsRepo) SalesByCategory(context.Context, time.Time, time.Time) ([]order.CategorySales, error) {
	f.calls++
	return f.categoryRows, nil
}

func (f *fakeStatsRepo) SalesBySubCategoryMonth(context.Context, time.Time, time.Time, string) ([]order.SubCategoryMonthSales, error) {
	f.calls++
	return f.subCategoryRows, nil
}

func (f *fakeStatsRepo) SalesByCategoryYear(_ context.Context, year int) ([]order.CategorySales, error) {
	f.calls++
	return f.yearRows[year], nil
}

// fakeCache 内存报表缓存,走JSON序列化以贴近Redis实现
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func TestCategorySalesPercentage(t *testing.T) {
	repo := &fakeStatsRepo{categoryRows: []order.CategorySales{
		{CategoryID: 1, CategoryName: "电子产品", Volume: 30, Revenue: decimal.RequireFromString("300")},
		{CategoryID: 2, CategoryName: "图书", Volume: 10, Revenue: decimal.RequireFromString("100")},
	}}
	uc := NewCategorySalesUseCase(repo, nil, 0)

	report, err := uc.Execute(context.Background(), reportFrom, reportTo)
	require.NoError(t, err)

	assert.True(t, report.Total.Equal(decimal.RequireFromString("400")))
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "75", report.Rows[0].Percentage.String())
	assert.Equal(t, "25", report.Rows[1].Percentage.String())
	assert.Equal(t, int64(30), report.Rows[0].Volume)
}

func TestCategorySalesRounding(t *testing.T) {
	repo := &fakeStatsRepo{categoryRows: []order.CategorySales{
		{CategoryID: 1, CategoryName: "A", Revenue: decimal.RequireFromString("1")},
		{CategoryID: 2, CategoryName: "B", Revenue: decimal.RequireFromString("2")},
	}}
	uc := NewCategorySalesUseCase(repo, nil, 0)

	report, err := uc.Execute(context.Background(), reportFrom, reportTo)
	require.NoError(t, err)

	// 1/3*100 = 33.333... → 33.33,2/3*100 = 66.666... → 66.67
	assert.Equal(t, "33.33", report.Rows[0].Percentage.String())
	assert.Equal(t, "66.67", report.Rows[1].Percentage.String())
}

func TestCategorySalesZeroTotal(t *testing.T) {
	repo := &fakeStatsRepo{categoryRows: []order.CategorySales{
		{CategoryID: 1, CategoryName: "A", Revenue: decimal.Zero},
	}}
	uc := NewCategorySalesUseCase(repo, nil, 0)

	report, err := uc.Execute(context.Background(), reportFrom, reportTo)
	require.NoError(t, err)

	assert.True(t, report.Total.IsZero())
	assert.True(t, report.Rows[0].Percentage.IsZero())
}

func TestCategorySalesCached(t *testing.T) {
	repo := &fakeStatsRepo{categoryRows: []order.CategorySales{
		{CategoryID: 1, CategoryName: "A", Revenue: decimal.RequireFromString("10")},
	}}
	cache := newFakeCache()
	uc := NewCategorySalesUseCase(repo, cache, time.Minute)

	_, err := uc.Execute(context.Background(), reportFrom, reportTo)
	require.NoError(t, err)

	// 第二次命中缓存,不再查库
	report, err := uc.Execute(context.Background(), reportFrom, reportTo)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.True(t, report.Total.Equal(decimal.RequireFromString("10")))

	// 不同日期区间是不同的缓存键
	_, err = uc.Execute(context.Background(), reportFrom, reportFrom.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestSubCategorySales(t *testing.T) {
	repo := &fakeStatsRepo{subCategoryRows: []order.SubCategoryMonthSales{
		{SubCategoryID: 1, SubCategoryName: "手机", CategoryName: "电子产品", Month: "2025-01", Volume: 5, Revenue: decimal.RequireFromString("120.50")},
		{SubCategoryID: 1, SubCategoryName: "手机", CategoryName: "电子产品", Month: "2025-02", Volume: 3, Revenue: decimal.RequireFromString("80")},
	}}
	uc := NewSubCategorySalesUseCase(repo, nil, 0)

	report, err := uc.Execute(context.Background(), reportFrom, reportTo, "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2025-01", report.Rows[0].Month)
	assert.Equal(t, int64(5), report.Rows[0].Volume)
}

func TestSubCategorySalesEmpty(t *testing.T) {
	uc := NewSubCategorySalesUseCase(&fakeStatsRepo{}, nil, 0)

	report, err := uc.Execute(context.Background(), reportFrom, reportTo, "图书")
	require.NoError(t, err)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
	assert.Equal(t, "图书", report.Category)
}

func TestYearComparisonMerge(t *testing.T) {
	repo := &fakeStatsRepo{yearRows: map[int][]order.CategorySales{
		2024: {
			{CategoryID: 1, CategoryName: "电子产品", Volume: 10, Revenue: decimal.RequireFromString("500")},
			{CategoryID: 2, CategoryName: "图书", Volume: 0, Revenue: decimal.Zero},
		},
		2025: {
			{CategoryID: 1, CategoryName: "电子产品", Volume: 20, Revenue: decimal.RequireFromString("900")},
			{CategoryID: 2, CategoryName: "图书", Volume: 4, Revenue: decimal.RequireFromString("60")},
		},
	}}
	uc := NewYearComparisonUseCase(repo, nil, 0)

	report, err := uc.Execute(context.Background(), 2024, 2025)
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 2024, report.YearA)
	assert.Equal(t, 2025, report.YearB)

	// 大类1两年都有销售
	assert.Equal(t, int64(10), report.Rows[0].VolumeA)
	assert.True(t, report.Rows[0].RevenueA.Equal(decimal.RequireFromString("500")))
	assert.Equal(t, int64(20), report.Rows[0].VolumeB)
	assert.True(t, report.Rows[0].RevenueB.Equal(decimal.RequireFromString("900")))

	// 大类2前一年无销售,补0但不缺行
	assert.Equal(t, int64(0), report.Rows[1].VolumeA)
	assert.True(t, report.Rows[1].RevenueA.IsZero())
	assert.Equal(t, int64(4), report.Rows[1].VolumeB)
}
