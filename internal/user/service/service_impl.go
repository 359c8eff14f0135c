// Package service implements user account management and login checks.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/anish-1308/ibilling/internal/user/password"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) userdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req userdomain.CreateUserRequest, actor string) (userdomain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return userdomain.User{}, userdomain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return userdomain.User{}, userdomain.ErrInvalidEmail
	}
	role := req.Role
	if role == "" {
		role = userdomain.RoleStaff
	}
	if !userdomain.ValidRole(role) {
		return userdomain.User{}, userdomain.ErrInvalidRole
	}
	if len(req.Password) < minPasswordLen {
		return userdomain.User{}, userdomain.ErrWeakPassword
	}

	var exists int64
	err := s.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("email = ? AND is_deleted = ?", email, false).
		Count(&exists).Error
	if err != nil {
		return userdomain.User{}, err
	}
	if exists > 0 {
		return userdomain.User{}, userdomain.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return userdomain.User{}, err
	}

	now := s.clock.Now()
	user := userdomain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		PasswordHash: hash,
		Permissions:  datatypes.NewJSONSlice(req.Permissions),
		IsActive:     true,
		CreatedAt:    now,
		ModifiedAt:   now,
		CreatedBy:    actor,
		ModifiedBy:   actor,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return userdomain.User{}, err
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id string, req userdomain.UpdateUserRequest, actor string) (userdomain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return userdomain.User{}, userdomain.ErrInvalidID
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return userdomain.User{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return userdomain.User{}, userdomain.ErrInvalidName
		}
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		if !userdomain.ValidRole(*req.Role) {
			return userdomain.User{}, userdomain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return userdomain.User{}, userdomain.ErrWeakPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return userdomain.User{}, err
		}
		user.PasswordHash = hash
	}
	if req.Permissions != nil {
		user.Permissions = datatypes.NewJSONSlice(*req.Permissions)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.ModifiedAt = s.clock.Now()
	user.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return userdomain.User{}, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (userdomain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return userdomain.User{}, userdomain.ErrInvalidID
	}
	return s.load(ctx, userID)
}

func (s *Service) List(ctx context.Context, req userdomain.ListUserRequest) (userdomain.ListUserResponse, error) {
	limit, offset := pagination.Resolve(req.Pagination)

	query := s.db.WithContext(ctx).Model(&userdomain.User{}).Where("is_deleted = ?", false)
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if role := strings.TrimSpace(req.Role); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return userdomain.ListUserResponse{}, err
	}

	var users []userdomain.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return userdomain.ListUserResponse{}, err
	}

	return userdomain.ListUserResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Users: users,
	}, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string, actor string) error {
	userID, err := parseID(id)
	if err != nil {
		return userdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"is_active":   false,
			"modified_at": s.clock.Now(),
			"modified_by": actor,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, email, plaintext string) (userdomain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user userdomain.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userdomain.User{}, userdomain.ErrInvalidCredentials
		}
		return userdomain.User{}, err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		s.log.Warn("failed login attempt", zap.String("email", email))
		return userdomain.User{}, userdomain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return userdomain.User{}, userdomain.ErrUserInactive
	}
	return user, nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (userdomain.User, error) {
	var user userdomain.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userdomain.User{}, userdomain.ErrUserNotFound
		}
		return userdomain.User{}, err
	}
	return user, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
