package main

import (
	"fmt"
	"log"

	"github.com/Mieluoxxx/Vegax-Predict/internal/api"
	"github.com/Mieluoxxx/Vegax-Predict/internal/config"
	"github.com/Mieluoxxx/Vegax-Predict/internal/crypto"
	"github.com/Mieluoxxx/Vegax-Predict/internal/db"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
)

const (
	// Version 项目版本
	Version = "0.1.0"
	// AppName 应用名称
	AppName = "Vegax-Predict"
)

func main() {
	log.Printf("=== %s v%s ===\n", AppName, Version)
	log.Println("轻量级 ML 预测聚合网关")

	// 加载配置
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("❌ 加载配置失败: %v", err)
	}

	// 加载加密密钥（未设置时 token 明文存储）
	encryptionKey, err := crypto.LoadEncryptionKey()
	if err != nil {
		log.Fatalf("❌ 加载加密密钥失败: %v", err)
	}
	if encryptionKey != nil {
		log.Println("🔐 Token 加密已启用")
	} else {
		log.Println("⚠️  未设置 ENCRYPTION_KEY，Token 将明文存储")
	}

	// 初始化数据库
	database, err := db.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("❌ 初始化数据库失败: %v", err)
	}
	defer func() {
		if err := db.CloseDatabase(database); err != nil {
			log.Printf("❌ 关闭数据库失败: %v", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(database); err != nil {
			log.Fatalf("❌ 数据库迁移失败: %v", err)
		}
	}

	// 构建模型契约注册表
	registry := schema.NewRegistry(schema.ShippingCatalog())
	if err := registry.Check(); err != nil {
		log.Fatalf("❌ 模型契约校验失败: %v", err)
	}
	log.Printf("📋 已注册 %d 个预测模型", len(registry.Keys()))

	// 种子数据
	if err := db.SeedEndpoints(database, &cfg.Upstream, schema.ShippingCatalog(), encryptionKey); err != nil {
		log.Fatalf("❌ 初始化端点数据失败: %v", err)
	}
	if err := db.SeedPartMappings(database); err != nil {
		log.Fatalf("❌ 初始化零件映射数据失败: %v", err)
	}
	log.Println("🌱 种子数据就绪")

	// 启动 HTTP 服务
	router := api.SetupRouter(database, encryptionKey, registry, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("🚀 服务启动于 %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ 服务启动失败: %v", err)
	}
}
