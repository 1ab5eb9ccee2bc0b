package endpoint

import (
	"errors"

	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrEndpointNotFound 端点不存在
	ErrEndpointNotFound = errors.New("endpoint not found")
	// ErrEndpointKeyExists 端点 key 已存在
	ErrEndpointKeyExists = errors.New("endpoint key already exists")
)

// Repository 端点数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建端点
func (r *Repository) Create(endpoint *models.ModelEndpoint) error {
	// 使用 Select 明确指定要保存的字段，包括零值字段
	return r.db.Select("Key", "DisplayName", "ServedModel", "InvocationURL", "Token", "Enabled", "HealthStatus").
		Create(endpoint).Error
}

// FindByID 根据 ID 查找端点
func (r *Repository) FindByID(id uint) (*models.ModelEndpoint, error) {
	var endpoint models.ModelEndpoint
	err := r.db.First(&endpoint, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEndpointNotFound
		}
		return nil, err
	}
	return &endpoint, nil
}

// FindByKey 根据模型 key 查找端点
func (r *Repository) FindByKey(key string) (*models.ModelEndpoint, error) {
	var endpoint models.ModelEndpoint
	err := r.db.Where("key = ?", key).First(&endpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEndpointNotFound
		}
		return nil, err
	}
	return &endpoint, nil
}

// FindAll 查找所有端点
func (r *Repository) FindAll() ([]*models.ModelEndpoint, error) {
	var endpoints []*models.ModelEndpoint
	if err := r.db.Order("id").Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// FindEnabled 查找所有启用的端点
func (r *Repository) FindEnabled() ([]*models.ModelEndpoint, error) {
	var endpoints []*models.ModelEndpoint
	if err := r.db.Where("enabled = ?", true).Order("id").Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// Update 更新端点
func (r *Repository) Update(endpoint *models.ModelEndpoint) error {
	return r.db.Save(endpoint).Error
}

// UpdateHealthStatus 仅更新健康状态
func (r *Repository) UpdateHealthStatus(id uint, healthStatus string) error {
	return r.db.Model(&models.ModelEndpoint{}).Where("id = ?", id).Update("health_status", healthStatus).Error
}

// Delete 删除端点（软删除）
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&models.ModelEndpoint{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEndpointNotFound
	}
	return nil
}

// CheckKeyExists 检查 key 是否存在（排除指定 ID）
func (r *Repository) CheckKeyExists(key string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.ModelEndpoint{}).Where("key = ?", key)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountEnabled 启用端点数量
func (r *Repository) CountEnabled() (int64, error) {
	var count int64
	err := r.db.Model(&models.ModelEndpoint{}).Where("enabled = ?", true).Count(&count).Error
	return count, err
}
