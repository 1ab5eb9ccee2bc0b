package predictor

import "github.com/Mieluoxxx/Vegax-Predict/internal/lookup"

// gateDefaults 门控字段的固定回退常量
// 字段对当前零件不可用时填入该值，与各字段的 schema 下界一致
var gateDefaults = map[string]float64{
	lookup.FlagWeatherConditionSeverity: 0,
	lookup.FlagRouteRiskLevel:           0,
	lookup.FlagDisruptionLikelihood:     0,
}

// ApplyFeatureDefaults 按特征开关填充门控字段
// 不可用字段统一写入回退常量；可用字段保持调用方提供的值
// 返回副本，不修改原始输入
func ApplyFeatureDefaults(input map[string]interface{}, flags map[string]bool) map[string]interface{} {
	gated := make(map[string]interface{}, len(input))
	for name, value := range input {
		gated[name] = value
	}

	for _, field := range lookup.GateableFields() {
		if enabled, known := flags[field]; known && !enabled {
			gated[field] = gateDefaults[field]
		}
	}

	return gated
}
