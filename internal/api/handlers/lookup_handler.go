package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Mieluoxxx/Vegax-Predict/internal/events"
	"github.com/Mieluoxxx/Vegax-Predict/internal/lookup"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/gin-gonic/gin"
)

// LookupHandler 零件号查询处理器
type LookupHandler struct {
	service      *lookup.Service
	eventService *events.Service // 可为 nil
}

// NewLookupHandler 创建查询处理器
func NewLookupHandler(service *lookup.Service, eventService *events.Service) *LookupHandler {
	return &LookupHandler{
		service:      service,
		eventService: eventService,
	}
}

// ResolvePartNumber 根据 (MGC5, 区域) 查询零件号
// @Summary 根据 (MGC5, 区域) 查询零件号
// @Tags Lookup
// @Produce json
// @Param mgc5 query string true "MGC5 产品码"
// @Param region query string true "区域码"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/part-number [get]
func (h *LookupHandler) ResolvePartNumber(c *gin.Context) {
	mgc5 := c.Query("mgc5")
	region := c.Query("region")

	if mgc5 == "" || region == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mgc5 and region are required"})
		return
	}

	partNumber, err := h.service.ResolvePartNumber(mgc5, region)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"part_number": partNumber})
}

// FeatureAvailability 根据零件号查询特征可用性
// @Summary 根据零件号查询特征可用性
// @Tags Lookup
// @Produce json
// @Param part_number query string true "零件号"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/feature-availability [get]
func (h *LookupHandler) FeatureAvailability(c *gin.Context) {
	partNumber := c.Query("part_number")
	if partNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "part_number is required"})
		return
	}

	availability, err := h.service.ResolveFeatures(partNumber)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	// 扁平化输出：区域、产品码、类别与各特征开关放在同一层
	features := gin.H{
		"region":        availability.Region,
		"mgc5":          availability.MGC5,
		"part_category": availability.PartCategory,
	}
	for flag, enabled := range availability.Flags {
		features[flag] = enabled
	}

	c.JSON(http.StatusOK, gin.H{"features": features})
}

// respondLookupError 将查询错误映射为 HTTP 响应
func (h *LookupHandler) respondLookupError(c *gin.Context, err error) {
	var lookupErr *lookup.LookupError
	if !errors.As(err, &lookupErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	switch lookupErr.Code {
	case lookup.ErrCodeCombinationNotFound, lookup.ErrCodePartNotFound:
		log.Printf("🔍 [Lookup] 未命中: %s", lookupErr.Message)
		if h.eventService != nil {
			_ = h.eventService.LogWarning(models.EventTypeLookupMiss, lookupErr.Message, nil)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": lookupErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": lookupErr.Message})
	}
}
