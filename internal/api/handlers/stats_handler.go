package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mieluoxxx/Vegax-Predict/internal/events"
	"github.com/Mieluoxxx/Vegax-Predict/internal/stats"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler 统计信息处理器
type StatsHandler struct {
	db             *gorm.DB
	requestCounter *stats.RequestCounter
	eventService   *events.Service
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(db *gorm.DB, requestCounter *stats.RequestCounter, eventService *events.Service) *StatsHandler {
	return &StatsHandler{
		db:             db,
		requestCounter: requestCounter,
		eventService:   eventService,
	}
}

// SystemStats 系统统计信息响应
type SystemStats struct {
	Endpoints    EndpointStats              `json:"endpoints"`
	Requests     RequestStats               `json:"requests"`
	Predictions  map[string]PredictionStats `json:"predictions"`
	RecentEvents []Event                    `json:"recent_events"`
}

// EndpointStats 端点统计
type EndpointStats struct {
	Total     int `json:"total"`
	Healthy   int `json:"healthy"`
	Unhealthy int `json:"unhealthy"`
}

// RequestStats 请求统计
type RequestStats struct {
	Total      int64   `json:"total"`
	CurrentQPS float64 `json:"current_qps"`
}

// PredictionStats 单个模型的预测统计
type PredictionStats struct {
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// Event 事件日志
type Event struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}

// GetStats 获取系统统计信息
// @Summary 获取系统统计信息
// @Description 获取系统概览统计数据，包括端点状态、请求统计、预测成功率等
// @Tags Stats
// @Produce json
// @Success 200 {object} SystemStats
// @Router /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	// 查询端点统计
	var totalEndpoints int64
	var healthyEndpoints int64

	h.db.Table("model_endpoints").Where("deleted_at IS NULL").Count(&totalEndpoints)
	h.db.Table("model_endpoints").Where("deleted_at IS NULL AND health_status = ?", "healthy").Count(&healthyEndpoints)

	// 获取请求统计
	requestStats := h.requestCounter.GetStats()

	// 获取各模型的预测计数
	modelCounts := h.requestCounter.ModelStats()
	predictions := make(map[string]PredictionStats, len(modelCounts))
	for key, counts := range modelCounts {
		predictions[key] = PredictionStats{
			Succeeded: counts.Succeeded,
			Failed:    counts.Failed,
		}
	}

	// 获取最近事件（最多 10 条）
	recentEventsData, err := h.eventService.GetRecentEvents(10)
	recentEvents := make([]Event, 0, len(recentEventsData))

	if err == nil {
		for _, evt := range recentEventsData {
			recentEvents = append(recentEvents, Event{
				Timestamp: evt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				Type:      evt.Type,
				Message:   evt.Message,
			})
		}
	}

	c.JSON(http.StatusOK, SystemStats{
		Endpoints: EndpointStats{
			Total:     int(totalEndpoints),
			Healthy:   int(healthyEndpoints),
			Unhealthy: int(totalEndpoints - healthyEndpoints),
		},
		Requests: RequestStats{
			Total:      requestStats.Total,
			CurrentQPS: requestStats.CurrentQPS,
		},
		Predictions:  predictions,
		RecentEvents: recentEvents,
	})
}

// GetEvents 获取事件日志
// @Summary 获取事件日志
// @Tags Stats
// @Produce json
// @Param limit query int false "返回条数，默认 50"
// @Success 200 {array} Event
// @Router /api/events [get]
func (h *StatsHandler) GetEvents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	eventsData, err := h.eventService.GetRecentEvents(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query events"})
		return
	}

	result := make([]Event, 0, len(eventsData))
	for _, evt := range eventsData {
		result = append(result, Event{
			Timestamp: evt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Type:      evt.Type,
			Message:   evt.Message,
		})
	}

	c.JSON(http.StatusOK, result)
}
