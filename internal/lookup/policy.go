package lookup

// 可门控的输入字段
// 零件类别决定哪些字段对该零件有意义；不可用字段由调用方填充固定默认值
const (
	FlagWeatherConditionSeverity = "weather_condition_severity"
	FlagRouteRiskLevel           = "route_risk_level"
	FlagDisruptionLikelihood     = "disruption_likelihood_score"
)

// 零件类别常量
const (
	CategoryStandard         = "standard"
	CategoryClimateSensitive = "climate_sensitive"
	CategoryBulk             = "bulk"
)

// FlagsForCategory 零件类别到特征开关的固定策略
// 纯函数；未知类别按 standard 处理
func FlagsForCategory(partCategory string) map[string]bool {
	switch partCategory {
	case CategoryClimateSensitive:
		return map[string]bool{
			FlagWeatherConditionSeverity: true,
			FlagRouteRiskLevel:           true,
			FlagDisruptionLikelihood:     true,
		}
	case CategoryBulk:
		return map[string]bool{
			FlagWeatherConditionSeverity: false,
			FlagRouteRiskLevel:           true,
			FlagDisruptionLikelihood:     false,
		}
	default:
		return map[string]bool{
			FlagWeatherConditionSeverity: false,
			FlagRouteRiskLevel:           true,
			FlagDisruptionLikelihood:     true,
		}
	}
}

// GateableFields 所有受门控的字段名
func GateableFields() []string {
	return []string{
		FlagWeatherConditionSeverity,
		FlagRouteRiskLevel,
		FlagDisruptionLikelihood,
	}
}
