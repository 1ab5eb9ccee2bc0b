package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Mieluoxxx/Vegax-Predict/internal/lookup"
	"github.com/Mieluoxxx/Vegax-Predict/internal/predictor"
	"github.com/Mieluoxxx/Vegax-Predict/internal/upstream"
	"github.com/gin-gonic/gin"
)

// PredictHandler 预测请求处理器
type PredictHandler struct {
	predictService *predictor.Service
	lookupService  *lookup.Service
}

// NewPredictHandler 创建预测处理器
func NewPredictHandler(predictService *predictor.Service, lookupService *lookup.Service) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
		lookupService:  lookupService,
	}
}

// PredictRequest 单模型预测请求
// part_number 可选：提供时按零件特征开关填充不可用字段的默认值
type PredictRequest struct {
	Model      string                 `json:"model"`
	Input      map[string]interface{} `json:"input"`
	PartNumber string                 `json:"part_number"`
}

// PredictAllRequest 全量预测请求
type PredictAllRequest struct {
	Input      map[string]interface{} `json:"input"`
	PartNumber string                 `json:"part_number"`
}

// Predict 执行单模型预测
// @Summary 执行单模型预测
// @Tags Predict
// @Accept json
// @Produce json
// @Param request body PredictRequest true "预测请求"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No JSON data provided"})
		return
	}

	if req.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Model key is required"})
		return
	}
	if len(req.Input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Input data is required"})
		return
	}

	log.Printf("📥 [Predict] 收到请求 - 模型: %s, IP: %s", req.Model, c.ClientIP())

	input, ok := h.gateInput(c, req.Input, req.PartNumber)
	if !ok {
		return
	}

	result := h.predictService.PredictOne(c.Request.Context(), req.Model, input)
	if !result.Succeeded {
		c.JSON(statusForFailure(result.ErrorMessage), gin.H{
			"success": false,
			"error":   result.ErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"model":      result.ModelKey,
		"prediction": result.RawResponse,
	})
}

// PredictAll 并发调用所有启用的模型并聚合
// @Summary 并发调用所有启用的模型并聚合
// @Tags Predict
// @Accept json
// @Produce json
// @Param request body PredictAllRequest true "预测请求"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/predict/all [post]
func (h *PredictHandler) PredictAll(c *gin.Context) {
	var req PredictAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No JSON data provided"})
		return
	}

	if len(req.Input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Input data is required"})
		return
	}

	log.Printf("📥 [PredictAll] 收到请求 - IP: %s", c.ClientIP())

	input, ok := h.gateInput(c, req.Input, req.PartNumber)
	if !ok {
		return
	}

	agg := h.predictService.PredictAll(c.Request.Context(), input)

	results := make(map[string]interface{})
	errors := make(map[string]string)
	for key, result := range agg.PerModel {
		if result.Succeeded {
			results[key] = result.RawResponse
		} else {
			errors[key] = result.ErrorMessage
		}
	}

	response := gin.H{
		"success":                agg.SuccessCount > 0,
		"results":                results,
		"errors":                 errors,
		"total_models":           agg.SuccessCount + agg.FailureCount,
		"successful_predictions": agg.SuccessCount,
		"failed_predictions":     agg.FailureCount,
	}

	// 零成功时不输出统计量
	if agg.Min != nil {
		response["statistics"] = gin.H{
			"min":  agg.Min,
			"max":  agg.Max,
			"mean": agg.Mean,
		}
	}

	c.JSON(http.StatusOK, response)
}

// gateInput 按零件号解析特征开关并填充门控默认值
// 未提供零件号时原样返回；零件号未知时写出 400 并返回 false
func (h *PredictHandler) gateInput(c *gin.Context, input map[string]interface{}, partNumber string) (map[string]interface{}, bool) {
	if partNumber == "" {
		return input, true
	}

	availability, err := h.lookupService.ResolveFeatures(partNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return nil, false
	}

	return predictor.ApplyFeatureDefaults(input, availability.Flags), true
}

// statusForFailure 根据失败消息映射 HTTP 状态码
// 上游侧失败返回 502，其余（校验、配置）返回 400
func statusForFailure(message string) int {
	upstreamKinds := []string{
		upstream.FailureTimeout,
		upstream.FailureConnection,
		upstream.FailureInvalidJSON,
		"http-",
	}
	for _, kind := range upstreamKinds {
		if strings.HasPrefix(message, kind) {
			return http.StatusBadGateway
		}
	}
	return http.StatusBadRequest
}
