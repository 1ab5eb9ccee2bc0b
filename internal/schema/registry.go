package schema

import (
	"fmt"
	"sort"
)

// Registry 模型输入契约注册表
// 启动时构建一次，之后只读，可安全并发访问
type Registry struct {
	specs map[string]*ModelSpec
	order []string // 稳定的列举顺序
}

// NewRegistry 从模型列表构建注册表
func NewRegistry(specs []*ModelSpec) *Registry {
	r := &Registry{
		specs: make(map[string]*ModelSpec, len(specs)),
		order: make([]string, 0, len(specs)),
	}
	for _, spec := range specs {
		if _, exists := r.specs[spec.Key]; exists {
			continue
		}
		r.specs[spec.Key] = spec
		r.order = append(r.order, spec.Key)
	}
	return r
}

// GetModel 按 key 获取模型契约
func (r *Registry) GetModel(key string) (*ModelSpec, bool) {
	spec, ok := r.specs[key]
	return spec, ok
}

// ListModels 按注册顺序列举所有模型
func (r *Registry) ListModels() []*ModelSpec {
	result := make([]*ModelSpec, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.specs[key])
	}
	return result
}

// Keys 返回所有模型 key（注册顺序）
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Check 校验注册表配置完整性
// 违反约定属于启动期致命错误，由调用方决定退出
func (r *Registry) Check() error {
	if len(r.specs) == 0 {
		return fmt.Errorf("schema registry is empty")
	}

	for _, key := range r.order {
		spec := r.specs[key]

		if len(spec.Fields) == 0 {
			return fmt.Errorf("model %s: no fields declared", key)
		}

		seen := make(map[string]bool, len(spec.Fields))
		for _, field := range spec.Fields {
			if field.Name == "" {
				return fmt.Errorf("model %s: field with empty name", key)
			}
			if seen[field.Name] {
				return fmt.Errorf("model %s: duplicate field %s", key, field.Name)
			}
			seen[field.Name] = true

			if field.Kind != KindInteger && field.Kind != KindFloat {
				return fmt.Errorf("model %s: field %s has unknown kind %q", key, field.Name, field.Kind)
			}
			if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
				return fmt.Errorf("model %s: field %s has min > max", key, field.Name)
			}
		}

		// sample_input 中引用的字段必须全部存在
		sampleKeys := make([]string, 0, len(spec.SampleInput))
		for name := range spec.SampleInput {
			sampleKeys = append(sampleKeys, name)
		}
		sort.Strings(sampleKeys)
		for _, name := range sampleKeys {
			if !seen[name] {
				return fmt.Errorf("model %s: sample_input references unknown field %s", key, name)
			}
		}
	}

	return nil
}
