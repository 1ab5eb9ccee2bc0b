package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValidationResult 校验结果
type ValidationResult struct {
	Valid      bool               `json:"valid"`
	Errors     []string           `json:"errors,omitempty"`
	Normalized map[string]float64 `json:"normalized,omitempty"`
}

// Validate 按模型契约校验输入
// 纯函数：按字段声明顺序检查必填、类型与边界，不修改 spec 与 input
func Validate(spec *ModelSpec, input map[string]interface{}) *ValidationResult {
	result := &ValidationResult{
		Normalized: make(map[string]float64, len(spec.Fields)),
	}

	for i := range spec.Fields {
		field := &spec.Fields[i]

		raw, present := input[field.Name]
		if !present || raw == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is required", field.Name))
			continue
		}

		value, err := coerce(field, raw)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if field.Min != nil && value < *field.Min {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s must be at least %s", field.Name, formatBound(*field.Min)))
			continue
		}
		if field.Max != nil && value > *field.Max {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s must be at most %s", field.Name, formatBound(*field.Max)))
			continue
		}

		result.Normalized[field.Name] = value
	}

	result.Valid = len(result.Errors) == 0
	if !result.Valid {
		result.Normalized = nil
	}
	return result
}

// coerce 将 JSON 值转换为字段声明的数值类型
func coerce(field *FieldSpec, raw interface{}) (float64, error) {
	var value float64

	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, typeError(field)
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, typeError(field)
		}
		value = parsed
	default:
		return 0, typeError(field)
	}

	// JSON 没有整数类型，整数字段要求小数部分为零
	if field.Kind == KindInteger && value != math.Trunc(value) {
		return 0, typeError(field)
	}

	return value, nil
}

// typeError 类型转换失败的字段级错误
func typeError(field *FieldSpec) error {
	if field.Kind == KindInteger {
		return fmt.Errorf("%s must be an integer", field.Name)
	}
	return fmt.Errorf("%s must be a number", field.Name)
}

// formatBound 边界值展示（整数边界不带小数点）
func formatBound(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
