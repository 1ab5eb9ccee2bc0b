package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/Mieluoxxx/Vegax-Predict/internal/config"
	"github.com/Mieluoxxx/Vegax-Predict/internal/crypto"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"gorm.io/gorm"
)

// SeedEndpoints 根据内置目录和上游配置写入端点记录
// 幂等：已存在的 key 不会被覆盖
func SeedEndpoints(db *gorm.DB, cfg *config.UpstreamConfig, specs []*schema.ModelSpec, encryptionKey []byte) error {
	for _, spec := range specs {
		var count int64
		if err := db.Model(&models.ModelEndpoint{}).Where("key = ?", spec.Key).Count(&count).Error; err != nil {
			return fmt.Errorf("查询端点 %s 失败: %w", spec.Key, err)
		}
		if count > 0 {
			continue
		}

		token := cfg.Token
		if len(encryptionKey) > 0 && token != "" {
			sealed, err := crypto.SealToken(token, encryptionKey)
			if err != nil {
				return fmt.Errorf("加密端点 %s 的 Token 失败: %w", spec.Key, err)
			}
			token = sealed
		}

		endpoint := &models.ModelEndpoint{
			Key:           spec.Key,
			DisplayName:   spec.DisplayName,
			ServedModel:   spec.ServedModel,
			InvocationURL: InvocationURL(cfg.BaseURL, spec.ServedModel),
			Token:         token,
			Enabled:       true,
			HealthStatus:  "unknown",
		}

		if err := db.Create(endpoint).Error; err != nil {
			return fmt.Errorf("创建端点 %s 失败: %w", spec.Key, err)
		}

		log.Printf("🌱 端点已写入: %s -> %s", spec.Key, endpoint.InvocationURL)
	}

	return nil
}

// InvocationURL 拼接 Databricks Serving 调用地址
func InvocationURL(baseURL, servedModel string) string {
	return strings.TrimSuffix(baseURL, "/") + "/served-models/" + servedModel + "/invocations"
}

// defaultPartMappings 内置零件号映射表
// (MGC5, 区域) 组合唯一；未列出的组合视为不支持
func defaultPartMappings() []models.PartMapping {
	return []models.PartMapping{
		{MGC5: "D1408", Region: "R1", PartNumber: "ADX16694", PartCategory: "climate_sensitive"},
		{MGC5: "D1408", Region: "R2", PartNumber: "ADX16702", PartCategory: "climate_sensitive"},
		{MGC5: "D1408", Region: "R3", PartNumber: "ADX16718", PartCategory: "standard"},
		{MGC5: "D1408", Region: "R4", PartNumber: "ADX16733", PartCategory: "standard"},
		{MGC5: "D1601", Region: "R1", PartNumber: "BRK20817", PartCategory: "standard"},
		{MGC5: "D1601", Region: "R2", PartNumber: "BRK20825", PartCategory: "bulk"},
		{MGC5: "D1601", Region: "R4", PartNumber: "BRK20848", PartCategory: "bulk"},
		{MGC5: "D0303", Region: "R1", PartNumber: "CPL09112", PartCategory: "standard"},
		{MGC5: "D0303", Region: "R2", PartNumber: "CPL09127", PartCategory: "climate_sensitive"},
		{MGC5: "D0303", Region: "R3", PartNumber: "CPL09140", PartCategory: "bulk"},
	}
}

// SeedPartMappings 写入内置零件号映射
// 幂等：已存在的 (MGC5, 区域) 组合不会被覆盖
func SeedPartMappings(db *gorm.DB) error {
	for _, mapping := range defaultPartMappings() {
		var count int64
		err := db.Model(&models.PartMapping{}).
			Where("mgc5 = ? AND region = ?", mapping.MGC5, mapping.Region).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("查询零件映射 (%s, %s) 失败: %w", mapping.MGC5, mapping.Region, err)
		}
		if count > 0 {
			continue
		}

		record := mapping
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("创建零件映射 (%s, %s) 失败: %w", mapping.MGC5, mapping.Region, err)
		}
	}

	log.Printf("🌱 零件号映射表就绪，共 %d 条内置记录", len(defaultPartMappings()))
	return nil
}
