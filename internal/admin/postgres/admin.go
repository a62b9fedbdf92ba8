package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/admin"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) CreateLog(ctx context.Context, log *admin.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AdminRepository) ListLogs(ctx context.Context, limit int) ([]*admin.AuditLog, error) {
	var logs []*admin.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
