package dto

import (
	"time"

	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// StatsRangeQuery HTTP统计日期区间参数
// 日期格式yyyy-MM-dd,两端必填且含边界
type StatsRangeQuery struct {
	From string `form:"from" binding:"required" example:"2025-01-01"`
	To   string `form:"to" binding:"required" example:"2025-12-31"`
}

// ParseRange 解析并校验日期区间
func (q StatsRangeQuery) ParseRange() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "起始日期格式非法,应为yyyy-MM-dd")
	}
	to, err := time.Parse(dateLayout, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "结束日期格式非法,应为yyyy-MM-dd")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "起始日期不能晚于结束日期")
	}
	// 含当天:推到当天最后一刻
	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}

// SubCategoryStatsQuery HTTP子类统计参数,可按大类名过滤
type SubCategoryStatsQuery struct {
	StatsRangeQuery
	Category string `form:"category" binding:"omitempty,max=100" example:"电子产品"`
}

// YearComparisonQuery HTTP年度销售对比参数
type YearComparisonQuery struct {
	YearA int `form:"yearA" binding:"required,min=1970,max=9999" example:"2024"`
	YearB int `form:"yearB" binding:"required,min=1970,max=9999" example:"2025"`
}
