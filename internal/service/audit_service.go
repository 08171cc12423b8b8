package service

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditService records a trail of authentication and admin mutations.
// Failures are logged but never fail the calling operation.
type AuditService interface {
	Record(ctx context.Context, userID *uint, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, userID *uint, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
