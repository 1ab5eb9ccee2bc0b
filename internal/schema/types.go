package schema

// FieldKind 字段类型
type FieldKind string

const (
	// KindInteger 整数字段（Databricks long）
	KindInteger FieldKind = "integer"
	// KindFloat 浮点字段（Databricks double）
	KindFloat FieldKind = "float"
)

// Option 下拉选项
type Option struct {
	Value float64 `json:"value"`
	Label string  `json:"text"`
}

// FieldSpec 单个输入字段的类型与校验边界
type FieldSpec struct {
	Name        string
	Kind        FieldKind
	Min         *float64 // nil 表示无下界
	Max         *float64 // nil 表示无上界
	Description string
	Options     []Option // 非空时前端渲染为下拉框
}

// Dropdown 字段是否为下拉选择
func (f *FieldSpec) Dropdown() bool {
	return len(f.Options) > 0
}

// ModelSpec 一个上游预测端点的输入契约
// 字段顺序即校验与展示顺序，构建后不可变
type ModelSpec struct {
	Key         string
	DisplayName string
	Description string
	ServedModel string // Databricks 上注册的模型名
	Fields      []FieldSpec
	SampleInput map[string]float64
}

// Field 按名称查找字段
func (m *ModelSpec) Field(name string) (*FieldSpec, bool) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i], true
		}
	}
	return nil, false
}

// floatPtr 辅助函数，用于声明边界
func floatPtr(v float64) *float64 {
	return &v
}
