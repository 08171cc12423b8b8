package usecase

import (
	"context"
	"errors"
	"fmt"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"
	"medical-imaging-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, id uint, req *dto.RoleUpdateRequest, actorID uint) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint, actorID uint) error
	Dashboard(ctx context.Context, adminUsername string) (*dto.DashboardResponse, error)
}

type adminUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	reportRepo   repository.ReportRepository
	auditService service.AuditService
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	reportRepo repository.ReportRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		reportRepo:   reportRepo,
		auditService: auditService,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponse(users), nil
}

func (u *adminUsecase) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) UpdateUserRole(ctx context.Context, id uint, req *dto.RoleUpdateRequest, actorID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	oldRole := user.Role
	user.Role = req.Role

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user role: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &actorID, entity.AuditActionUserRoleChange, entity.JSON{
		"target_user": user.Username,
		"old_role":    oldRole,
		"new_role":    user.Role,
	})

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, id uint, actorID uint) error {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}

	if err := u.userRepo.Delete(ctx, user); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	u.auditService.Record(ctx, &actorID, entity.AuditActionUserDelete, entity.JSON{
		"target_user": user.Username,
	})

	return nil
}

// Dashboard computes simple full-table counts per request. Nothing is
// cached.
func (u *adminUsecase) Dashboard(ctx context.Context, adminUsername string) (*dto.DashboardResponse, error) {
	totalUsers, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAdmins, err := u.userRepo.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	totalStudents, err := u.userRepo.CountByRole(ctx, entity.RoleStudent)
	if err != nil {
		return nil, err
	}
	totalInstructors, err := u.userRepo.CountByRole(ctx, entity.RoleInstructor)
	if err != nil {
		return nil, err
	}
	totalPatients, err := u.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalReports, err := u.reportRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var latest *dto.LatestUser
	latestUser, err := u.userRepo.FindLatest(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		latest = &dto.LatestUser{
			Username:  latestUser.Username,
			CreatedAt: latestUser.CreatedAt,
		}
	}

	return &dto.DashboardResponse{
		Message: fmt.Sprintf("Welcome Admin %s", adminUsername),
		Stats: dto.DashboardStats{
			TotalUsers:       totalUsers,
			TotalAdmins:      totalAdmins,
			TotalStudents:    totalStudents,
			TotalInstructors: totalInstructors,
			TotalPatients:    totalPatients,
			TotalReports:     totalReports,
			LatestUserJoined: latest,
		},
	}, nil
}
