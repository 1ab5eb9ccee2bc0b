package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Mieluoxxx/Vegax-Predict/internal/endpoint"
	"github.com/Mieluoxxx/Vegax-Predict/internal/events"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"github.com/gin-gonic/gin"
)

// EndpointHandler 端点管理 HTTP 处理器
type EndpointHandler struct {
	service       *endpoint.Service
	healthChecker *endpoint.HealthChecker
	registry      *schema.Registry
	eventService  *events.Service // 可为 nil
}

// NewEndpointHandler 创建 EndpointHandler 实例
func NewEndpointHandler(service *endpoint.Service, healthChecker *endpoint.HealthChecker, registry *schema.Registry, eventService *events.Service) *EndpointHandler {
	return &EndpointHandler{
		service:       service,
		healthChecker: healthChecker,
		registry:      registry,
		eventService:  eventService,
	}
}

// CreateEndpoint 创建端点
// @Summary 创建端点
// @Tags endpoints
// @Accept json
// @Produce json
// @Param endpoint body endpoint.CreateEndpointRequest true "端点信息"
// @Success 201 {object} endpoint.EndpointResponse
// @Failure 400 {object} endpoint.ErrorResponse
// @Failure 409 {object} endpoint.ErrorResponse
// @Router /api/endpoints [post]
func (h *EndpointHandler) CreateEndpoint(c *gin.Context) {
	var req endpoint.CreateEndpointRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request parameters",
				Details: err.Error(),
			},
		})
		return
	}

	ep, err := h.service.CreateEndpoint(req)
	if err != nil {
		if errors.Is(err, endpoint.ErrEndpointKeyExists) {
			c.JSON(http.StatusConflict, endpoint.ErrorResponse{
				Error: endpoint.ErrorDetail{
					Code:    "KEY_CONFLICT",
					Message: "Endpoint key already exists",
				},
			})
			return
		}
		if errors.Is(err, endpoint.ErrInvalidInput) || errors.Is(err, endpoint.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, endpoint.ErrorResponse{
				Error: endpoint.ErrorDetail{
					Code:    "VALIDATION_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Failed to create endpoint",
			},
		})
		return
	}

	if h.eventService != nil {
		_ = h.eventService.LogInfo(models.EventTypeEndpointAdded, "端点已创建: "+ep.Key, map[string]interface{}{
			"key": ep.Key,
		})
	}

	c.JSON(http.StatusCreated, endpoint.ToEndpointResponse(ep, ep.Token))
}

// ListEndpoints 查询端点列表
// @Summary 查询端点列表
// @Tags endpoints
// @Produce json
// @Success 200 {array} endpoint.EndpointResponse
// @Router /api/endpoints [get]
func (h *EndpointHandler) ListEndpoints(c *gin.Context) {
	endpoints, err := h.service.ListEndpoints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Failed to list endpoints",
			},
		})
		return
	}

	responses := make([]*endpoint.EndpointResponse, 0, len(endpoints))
	for _, ep := range endpoints {
		responses = append(responses, endpoint.ToEndpointResponse(ep, ep.Token))
	}

	c.JSON(http.StatusOK, responses)
}

// GetEndpoint 获取单个端点
// @Summary 获取单个端点
// @Tags endpoints
// @Produce json
// @Param id path int true "端点 ID"
// @Success 200 {object} endpoint.EndpointResponse
// @Failure 404 {object} endpoint.ErrorResponse
// @Router /api/endpoints/{id} [get]
func (h *EndpointHandler) GetEndpoint(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ep, err := h.service.GetEndpoint(id)
	if err != nil {
		h.respondServiceError(c, err, "Failed to get endpoint")
		return
	}

	c.JSON(http.StatusOK, endpoint.ToEndpointResponse(ep, ep.Token))
}

// UpdateEndpoint 更新端点
// @Summary 更新端点
// @Tags endpoints
// @Accept json
// @Produce json
// @Param id path int true "端点 ID"
// @Param endpoint body endpoint.UpdateEndpointRequest true "端点信息"
// @Success 200 {object} endpoint.EndpointResponse
// @Failure 404 {object} endpoint.ErrorResponse
// @Router /api/endpoints/{id} [put]
func (h *EndpointHandler) UpdateEndpoint(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req endpoint.UpdateEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request parameters",
				Details: err.Error(),
			},
		})
		return
	}

	ep, err := h.service.UpdateEndpoint(id, req)
	if err != nil {
		if errors.Is(err, endpoint.ErrInvalidInput) || errors.Is(err, endpoint.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, endpoint.ErrorResponse{
				Error: endpoint.ErrorDetail{
					Code:    "VALIDATION_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		h.respondServiceError(c, err, "Failed to update endpoint")
		return
	}

	if h.eventService != nil {
		_ = h.eventService.LogInfo(models.EventTypeEndpointUpdated, "端点已更新: "+ep.Key, map[string]interface{}{
			"key": ep.Key,
		})
	}

	c.JSON(http.StatusOK, endpoint.ToEndpointResponse(ep, ep.Token))
}

// DeleteEndpoint 删除端点
// @Summary 删除端点
// @Tags endpoints
// @Param id path int true "端点 ID"
// @Success 204
// @Failure 404 {object} endpoint.ErrorResponse
// @Router /api/endpoints/{id} [delete]
func (h *EndpointHandler) DeleteEndpoint(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEndpoint(id); err != nil {
		h.respondServiceError(c, err, "Failed to delete endpoint")
		return
	}

	if h.eventService != nil {
		_ = h.eventService.LogInfo(models.EventTypeEndpointDeleted, "端点已删除", map[string]interface{}{
			"id": id,
		})
	}

	c.Status(http.StatusNoContent)
}

// CheckEndpointHealth 触发端点健康检查
// @Summary 触发端点健康检查
// @Tags endpoints
// @Produce json
// @Param id path int true "端点 ID"
// @Success 200 {object} endpoint.HealthCheckResult
// @Failure 404 {object} endpoint.ErrorResponse
// @Router /api/endpoints/{id}/health-check [post]
func (h *EndpointHandler) CheckEndpointHealth(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ep, err := h.service.GetEndpoint(id)
	if err != nil {
		h.respondServiceError(c, err, "Failed to get endpoint")
		return
	}

	// 使用该模型的样例输入做探测；契约未注册时发送空样例
	var sampleInput map[string]float64
	if spec, found := h.registry.GetModel(ep.Key); found {
		sampleInput = spec.SampleInput
	}

	result, err := h.healthChecker.CheckHealth(c.Request.Context(), ep.InvocationURL, ep.Token, sampleInput)
	if err != nil {
		c.JSON(http.StatusInternalServerError, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Health check failed",
			},
		})
		return
	}

	status := "unhealthy"
	if result.Healthy {
		status = "healthy"
	}
	if err := h.service.UpdateHealthStatus(id, status); err != nil {
		log.Printf("❌ [HealthCheck] 更新健康状态失败: %v", err)
	}

	if h.eventService != nil {
		_ = h.eventService.LogInfo(models.EventTypeHealthCheck, "健康检查: "+ep.Key+" -> "+status, map[string]interface{}{
			"key":              ep.Key,
			"status":           status,
			"response_time_ms": result.ResponseTimeMs,
		})
	}

	c.JSON(http.StatusOK, result)
}

// parseID 解析路径中的端点 ID
func (h *EndpointHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "INVALID_ID",
				Message: "Invalid endpoint ID",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError 通用服务错误映射
func (h *EndpointHandler) respondServiceError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, endpoint.ErrEndpointNotFound) {
		c.JSON(http.StatusNotFound, endpoint.ErrorResponse{
			Error: endpoint.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "Endpoint not found",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, endpoint.ErrorResponse{
		Error: endpoint.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: fallback,
		},
	})
}
