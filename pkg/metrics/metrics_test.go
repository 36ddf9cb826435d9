package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if OrdersCreatedTotal == nil {
		t.Error("OrdersCreatedTotal未初始化")
	}
}

// TestInitMetricsIdempotent 测试重复初始化不会panic（promauto重复注册会panic）
func TestInitMetricsIdempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()
}

// TestOrderCounter 测试订单计数器递增
func TestOrderCounter(t *testing.T) {
	InitMetrics()

	before := counterValue(t, OrdersCreatedTotal)

	OrdersCreatedTotal.Inc()
	OrdersCreatedTotal.Inc()

	after := counterValue(t, OrdersCreatedTotal)
	if after-before != 2 {
		t.Errorf("Counter递增错误: before=%f, after=%f", before, after)
	}
}

// counterValue 读取Counter当前值
func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return m.GetCounter().GetValue()
}
