package predictor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mieluoxxx/Vegax-Predict/internal/endpoint"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"github.com/Mieluoxxx/Vegax-Predict/internal/upstream"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupEndpointService 创建内存数据库上的端点服务
func setupEndpointService(t *testing.T) *endpoint.Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ModelEndpoint{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return endpoint.NewService(endpoint.NewRepository(db))
}

// registerEndpoint 注册一个指向测试服务器的端点
func registerEndpoint(t *testing.T, service *endpoint.Service, key, url string, enabled bool) {
	_, err := service.CreateEndpoint(endpoint.CreateEndpointRequest{
		Key:           key,
		DisplayName:   key,
		ServedModel:   key + "-1",
		InvocationURL: url,
		Token:         "dapi-test",
		Enabled:       &enabled,
	})
	if err != nil {
		t.Fatalf("failed to register endpoint %s: %v", key, err)
	}
}

// predictionServer 返回固定预测值的测试服务器
func predictionServer(t *testing.T, value float64) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"predictions": [%g]}`, value)
	}))
	t.Cleanup(server.Close)
	return server
}

// errorServer 返回 500 的测试服务器
func errorServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error_code": "INTERNAL_ERROR"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

// validInput 合法的完整输入
func validInput() map[string]interface{} {
	return map[string]interface{}{
		"lead_time_days":              14.5,
		"supplier_reliability_score":  85.2,
		"weather_condition_severity":  3.1,
		"route_risk_level":            2.8,
		"disruption_likelihood_score": 15.6,
		"risk_classification":         3,
		"supplier_country":            2,
		"product_id":                  1408,
	}
}

// resultMap 构造 PerModel，succeeded 的 key 带指定预测值，failed 的 key 为失败结果
func resultMap(succeeded map[string]*float64, failed []string) map[string]*upstream.PredictionResult {
	perModel := make(map[string]*upstream.PredictionResult)
	for key, value := range succeeded {
		perModel[key] = &upstream.PredictionResult{
			ModelKey:       key,
			Succeeded:      true,
			ExtractedValue: value,
		}
	}
	for _, key := range failed {
		perModel[key] = upstream.Failed(key, "http-500: boom")
	}
	return perModel
}

// floatPtr 测试辅助函数
func floatPtr(v float64) *float64 {
	return &v
}

// TestService_PredictOne_Success 测试单模型预测成功
func TestService_PredictOne_Success(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_median", predictionServer(t, 123.45).URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	result := service.PredictOne(context.Background(), "shipping_cost_median", validInput())

	if !result.Succeeded {
		t.Fatalf("PredictOne() should succeed, error: %s", result.ErrorMessage)
	}
	if result.ExtractedValue == nil || *result.ExtractedValue != 123.45 {
		t.Errorf("PredictOne() extracted value = %v, want 123.45", result.ExtractedValue)
	}
}

// TestService_PredictOne_UnknownModel 测试未注册模型
func TestService_PredictOne_UnknownModel(t *testing.T) {
	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		setupEndpointService(t),
		upstream.NewClient(5*time.Second),
	)

	result := service.PredictOne(context.Background(), "nonexistent", validInput())

	if result.Succeeded {
		t.Fatal("PredictOne() with unknown model should fail")
	}
	if !strings.Contains(result.ErrorMessage, "unknown model") {
		t.Errorf("PredictOne() error = %q, want unknown model", result.ErrorMessage)
	}
}

// TestService_PredictOne_NoEndpoint 测试模型已注册但端点缺失
func TestService_PredictOne_NoEndpoint(t *testing.T) {
	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		setupEndpointService(t),
		upstream.NewClient(5*time.Second),
	)

	result := service.PredictOne(context.Background(), "shipping_cost_median", validInput())

	if result.Succeeded {
		t.Fatal("PredictOne() without configured endpoint should fail")
	}
	if !strings.Contains(result.ErrorMessage, "no serving endpoint configured") {
		t.Errorf("PredictOne() error = %q, want missing endpoint message", result.ErrorMessage)
	}
}

// TestService_PredictOne_DisabledEndpoint 测试端点被禁用
func TestService_PredictOne_DisabledEndpoint(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_median", predictionServer(t, 1.0).URL, false)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	result := service.PredictOne(context.Background(), "shipping_cost_median", validInput())

	if result.Succeeded {
		t.Fatal("PredictOne() against disabled endpoint should fail")
	}
	if !strings.Contains(result.ErrorMessage, "endpoint disabled") {
		t.Errorf("PredictOne() error = %q, want endpoint disabled", result.ErrorMessage)
	}
}

// TestService_PredictOne_ValidationFailure 测试校验失败不触发上游调用
func TestService_PredictOne_ValidationFailure(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"predictions": [1.0]}`))
	}))
	defer server.Close()

	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_median", server.URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	input := validInput()
	input["lead_time_days"] = 999.0
	delete(input, "product_id")

	result := service.PredictOne(context.Background(), "shipping_cost_median", input)

	if result.Succeeded {
		t.Fatal("PredictOne() with invalid input should fail")
	}
	if !strings.Contains(result.ErrorMessage, "lead_time_days must be at most 365") {
		t.Errorf("PredictOne() error = %q, want lead_time_days bound error", result.ErrorMessage)
	}
	if !strings.Contains(result.ErrorMessage, "product_id is required") {
		t.Errorf("PredictOne() error = %q, want product_id required error", result.ErrorMessage)
	}
	if called {
		t.Error("PredictOne() should not call upstream when validation fails")
	}
}

// TestService_PredictOne_RawPayloadSkipsValidation 测试原始请求格式跳过校验
func TestService_PredictOne_RawPayloadSkipsValidation(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_median", predictionServer(t, 9.9).URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	// 缺少所有契约字段，但 instances 格式应原样转发
	result := service.PredictOne(context.Background(), "shipping_cost_median", map[string]interface{}{
		"instances": []interface{}{map[string]interface{}{"custom": 1.0}},
	})

	if !result.Succeeded {
		t.Fatalf("PredictOne() with raw payload should succeed, error: %s", result.ErrorMessage)
	}
}

// TestService_PredictAll_MixedResults 测试混合结果聚合
func TestService_PredictAll_MixedResults(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_90th_percentile", predictionServer(t, 20).URL, true)
	registerEndpoint(t, endpoints, "shipping_cost_10th_percentile", predictionServer(t, 10).URL, true)
	registerEndpoint(t, endpoints, "shipping_cost_median", errorServer(t).URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	agg := service.PredictAll(context.Background(), validInput())

	if agg.SuccessCount != 2 {
		t.Errorf("PredictAll() success count = %d, want 2", agg.SuccessCount)
	}
	if agg.FailureCount != 1 {
		t.Errorf("PredictAll() failure count = %d, want 1", agg.FailureCount)
	}
	if len(agg.PerModel) != 3 {
		t.Errorf("PredictAll() should have 3 results, got %d", len(agg.PerModel))
	}
	if agg.Min == nil || *agg.Min != 10 {
		t.Errorf("PredictAll() min = %v, want 10", agg.Min)
	}
	if agg.Max == nil || *agg.Max != 20 {
		t.Errorf("PredictAll() max = %v, want 20", agg.Max)
	}
	if agg.Mean == nil || *agg.Mean != 15 {
		t.Errorf("PredictAll() mean = %v, want 15", agg.Mean)
	}
	if !strings.HasPrefix(agg.PerModel["shipping_cost_median"].ErrorMessage, "http-500") {
		t.Errorf("PredictAll() failed model error = %q, want http-500 prefix", agg.PerModel["shipping_cost_median"].ErrorMessage)
	}
}

// TestService_PredictAll_AllFail 测试全部失败时无统计量
func TestService_PredictAll_AllFail(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_median", errorServer(t).URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	agg := service.PredictAll(context.Background(), validInput())

	if agg.SuccessCount != 0 || agg.FailureCount != 1 {
		t.Fatalf("PredictAll() counts = %d/%d, want 0/1", agg.SuccessCount, agg.FailureCount)
	}
	if agg.Min != nil || agg.Max != nil || agg.Mean != nil {
		t.Error("PredictAll() statistics should be nil with zero successes")
	}
}

// TestService_PredictAll_SkipsDisabledEndpoints 测试禁用端点不参与聚合
func TestService_PredictAll_SkipsDisabledEndpoints(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "shipping_cost_90th_percentile", predictionServer(t, 20).URL, true)
	registerEndpoint(t, endpoints, "shipping_cost_median", predictionServer(t, 5).URL, false)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	agg := service.PredictAll(context.Background(), validInput())

	if len(agg.PerModel) != 1 {
		t.Fatalf("PredictAll() should only call enabled endpoints, got %d results", len(agg.PerModel))
	}
	if _, present := agg.PerModel["shipping_cost_median"]; present {
		t.Error("PredictAll() should not include disabled endpoint")
	}
}

// TestService_PredictAll_UnregisteredEndpointCountsAsFailed 测试契约未注册的端点计为失败
func TestService_PredictAll_UnregisteredEndpointCountsAsFailed(t *testing.T) {
	endpoints := setupEndpointService(t)
	registerEndpoint(t, endpoints, "mystery_model", predictionServer(t, 1).URL, true)

	service := NewService(
		schema.NewRegistry(schema.ShippingCatalog()),
		endpoints,
		upstream.NewClient(5*time.Second),
	)

	agg := service.PredictAll(context.Background(), validInput())

	if agg.FailureCount != 1 {
		t.Fatalf("PredictAll() failure count = %d, want 1", agg.FailureCount)
	}
	if !strings.Contains(agg.PerModel["mystery_model"].ErrorMessage, "unknown model") {
		t.Errorf("PredictAll() error = %q, want unknown model", agg.PerModel["mystery_model"].ErrorMessage)
	}
}
