package schema

import (
	"strings"
	"testing"
)

// TestNewRegistry_BuildsFromCatalog 测试从目录构建注册表
func TestNewRegistry_BuildsFromCatalog(t *testing.T) {
	registry := NewRegistry(ShippingCatalog())

	keys := registry.Keys()
	if len(keys) != 3 {
		t.Fatalf("Keys() should return 3 models, got %d", len(keys))
	}

	expected := []string{
		"shipping_cost_90th_percentile",
		"shipping_cost_10th_percentile",
		"shipping_cost_median",
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

// TestRegistry_GetModel 测试按 key 查询
func TestRegistry_GetModel(t *testing.T) {
	registry := NewRegistry(ShippingCatalog())

	spec, ok := registry.GetModel("shipping_cost_median")
	if !ok {
		t.Fatal("GetModel() should find shipping_cost_median")
	}
	if spec.ServedModel != "shipping-cost-xgboost-1" {
		t.Errorf("GetModel() served model = %q, want shipping-cost-xgboost-1", spec.ServedModel)
	}

	_, ok = registry.GetModel("unknown_model")
	if ok {
		t.Error("GetModel() should not find unknown_model")
	}
}

// TestRegistry_ListModels_PreservesOrder 测试列举顺序稳定
func TestRegistry_ListModels_PreservesOrder(t *testing.T) {
	registry := NewRegistry(ShippingCatalog())

	models := registry.ListModels()
	if len(models) != 3 {
		t.Fatalf("ListModels() should return 3 models, got %d", len(models))
	}
	if models[0].Key != "shipping_cost_90th_percentile" {
		t.Errorf("ListModels()[0] = %q, want shipping_cost_90th_percentile", models[0].Key)
	}
}

// TestRegistry_DuplicateKeysIgnored 测试重复 key 只保留第一个
func TestRegistry_DuplicateKeysIgnored(t *testing.T) {
	registry := NewRegistry([]*ModelSpec{
		{Key: "m", DisplayName: "first", Fields: shippingFields()},
		{Key: "m", DisplayName: "second", Fields: shippingFields()},
	})

	spec, _ := registry.GetModel("m")
	if spec.DisplayName != "first" {
		t.Errorf("duplicate key should keep first entry, got %q", spec.DisplayName)
	}
	if len(registry.Keys()) != 1 {
		t.Errorf("Keys() should have 1 entry, got %d", len(registry.Keys()))
	}
}

// TestRegistry_Check_Catalog 测试内置目录通过完整性校验
func TestRegistry_Check_Catalog(t *testing.T) {
	registry := NewRegistry(ShippingCatalog())

	if err := registry.Check(); err != nil {
		t.Errorf("Check() on built-in catalog failed: %v", err)
	}
}

// TestRegistry_Check_Errors 测试各类配置错误
func TestRegistry_Check_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		specs   []*ModelSpec
		wantMsg string
	}{
		{
			name:    "empty registry",
			specs:   nil,
			wantMsg: "registry is empty",
		},
		{
			name:    "no fields",
			specs:   []*ModelSpec{{Key: "m"}},
			wantMsg: "no fields declared",
		},
		{
			name: "empty field name",
			specs: []*ModelSpec{{Key: "m", Fields: []FieldSpec{
				{Name: "", Kind: KindFloat},
			}}},
			wantMsg: "empty name",
		},
		{
			name: "duplicate field",
			specs: []*ModelSpec{{Key: "m", Fields: []FieldSpec{
				{Name: "a", Kind: KindFloat},
				{Name: "a", Kind: KindFloat},
			}}},
			wantMsg: "duplicate field",
		},
		{
			name: "unknown kind",
			specs: []*ModelSpec{{Key: "m", Fields: []FieldSpec{
				{Name: "a", Kind: "decimal"},
			}}},
			wantMsg: "unknown kind",
		},
		{
			name: "min greater than max",
			specs: []*ModelSpec{{Key: "m", Fields: []FieldSpec{
				{Name: "a", Kind: KindFloat, Min: floatPtr(10), Max: floatPtr(1)},
			}}},
			wantMsg: "min > max",
		},
		{
			name: "sample references unknown field",
			specs: []*ModelSpec{{
				Key:         "m",
				Fields:      []FieldSpec{{Name: "a", Kind: KindFloat}},
				SampleInput: map[string]float64{"b": 1},
			}},
			wantMsg: "unknown field b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewRegistry(tc.specs).Check()
			if err == nil {
				t.Fatalf("Check() should fail for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Check() error = %q, want to contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

// TestFieldSpec_Dropdown 测试下拉框判定
func TestFieldSpec_Dropdown(t *testing.T) {
	spec, _ := NewRegistry(ShippingCatalog()).GetModel("shipping_cost_median")

	country, _ := spec.Field("supplier_country")
	if !country.Dropdown() {
		t.Error("supplier_country should be a dropdown")
	}

	leadTime, _ := spec.Field("lead_time_days")
	if leadTime.Dropdown() {
		t.Error("lead_time_days should not be a dropdown")
	}
}
