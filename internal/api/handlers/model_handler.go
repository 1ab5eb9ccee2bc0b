package handlers

import (
	"net/http"

	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"github.com/gin-gonic/gin"
)

// ModelHandler 模型目录 HTTP 处理器
type ModelHandler struct {
	registry *schema.Registry
}

// NewModelHandler 创建 ModelHandler 实例
func NewModelHandler(registry *schema.Registry) *ModelHandler {
	return &ModelHandler{registry: registry}
}

// fieldSchema 单字段的线上契约展示格式
// type 沿用 Databricks 的 double/long 命名
type fieldSchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	Dropdown    bool            `json:"dropdown,omitempty"`
	Options     []schema.Option `json:"options,omitempty"`
}

// modelInfo 单模型的目录条目
type modelInfo struct {
	Name        string                 `json:"name"`
	Key         string                 `json:"key"`
	Description string                 `json:"description"`
	InputSchema map[string]fieldSchema `json:"input_schema"`
	FieldOrder  []string               `json:"field_order"`
	SampleInput map[string]float64     `json:"sample_input"`
}

// ListModels 获取可用模型目录
// @Summary 获取可用模型目录
// @Description 返回所有已注册模型的输入契约与样例输入
// @Tags Models
// @Produce json
// @Success 200 {object} map[string]modelInfo
// @Router /api/models [get]
func (h *ModelHandler) ListModels(c *gin.Context) {
	catalog := make(map[string]modelInfo)

	for _, spec := range h.registry.ListModels() {
		inputSchema := make(map[string]fieldSchema, len(spec.Fields))
		fieldOrder := make([]string, 0, len(spec.Fields))

		for i := range spec.Fields {
			field := &spec.Fields[i]
			fieldOrder = append(fieldOrder, field.Name)
			inputSchema[field.Name] = fieldSchema{
				Type:        wireType(field.Kind),
				Description: field.Description,
				Min:         field.Min,
				Max:         field.Max,
				Dropdown:    field.Dropdown(),
				Options:     field.Options,
			}
		}

		catalog[spec.Key] = modelInfo{
			Name:        spec.DisplayName,
			Key:         spec.Key,
			Description: spec.Description,
			InputSchema: inputSchema,
			FieldOrder:  fieldOrder,
			SampleInput: spec.SampleInput,
		}
	}

	c.JSON(http.StatusOK, catalog)
}

// wireType 字段类型到线上命名的映射
func wireType(kind schema.FieldKind) string {
	if kind == schema.KindInteger {
		return "long"
	}
	return "double"
}
