package models

import "time"

// PartMapping 零件号映射
// 将 (MGC5 产品码, 区域码) 映射到零件号与零件类别
type PartMapping struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MGC5         string    `gorm:"column:mgc5;type:varchar(20);not null;uniqueIndex:idx_mgc5_region" json:"mgc5"`
	Region       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_mgc5_region" json:"region"`
	PartNumber   string    `gorm:"type:varchar(50);not null;index" json:"part_number"`
	PartCategory string    `gorm:"type:varchar(50);not null;default:'standard'" json:"part_category"` // standard/climate_sensitive/bulk
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定表名
func (PartMapping) TableName() string {
	return "part_mappings"
}
