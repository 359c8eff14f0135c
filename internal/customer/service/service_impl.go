// Package service implements customer CRUD backed by gorm.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anish-1308/ibilling/internal/cache"
	"github.com/anish-1308/ibilling/internal/clock"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lookupTTL = 30 * time.Second

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	lookup *cache.TTLCache[snowflake.ID, customerdomain.Customer]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("customer.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		lookup: cache.NewTTLCache[snowflake.ID, customerdomain.Customer](),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest, actor string) (customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return customerdomain.Customer{}, customerdomain.ErrInvalidEmail
	}
	custType := req.Type
	if custType == "" {
		custType = customerdomain.CustomerTypeB2C
	}
	if custType != customerdomain.CustomerTypeB2B && custType != customerdomain.CustomerTypeB2C {
		return customerdomain.Customer{}, customerdomain.ErrInvalidType
	}

	now := s.clock.Now()
	customer := customerdomain.Customer{
		ID:            s.genID.Generate(),
		Name:          name,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         email,
		Fax:           optional(req.Fax),
		Address:       optional(req.Address),
		ContactPerson: optional(req.ContactPerson),
		Type:          custType,
		CreatedAt:     now,
		ModifiedAt:    now,
		CreatedBy:     actor,
		ModifiedBy:    actor,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return customerdomain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, id string, req customerdomain.UpdateCustomerRequest, actor string) (customerdomain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}

	customer, err := s.load(ctx, customerID)
	if err != nil {
		return customerdomain.Customer{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return customerdomain.Customer{}, customerdomain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return customerdomain.Customer{}, customerdomain.ErrInvalidEmail
		}
		customer.Email = email
	}
	if req.Fax != nil {
		customer.Fax = optional(*req.Fax)
	}
	if req.Address != nil {
		customer.Address = optional(*req.Address)
	}
	if req.ContactPerson != nil {
		customer.ContactPerson = optional(*req.ContactPerson)
	}
	if req.Type != nil {
		if *req.Type != customerdomain.CustomerTypeB2B && *req.Type != customerdomain.CustomerTypeB2C {
			return customerdomain.Customer{}, customerdomain.ErrInvalidType
		}
		customer.Type = *req.Type
	}

	customer.ModifiedAt = s.clock.Now()
	customer.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&customer).Error; err != nil {
		return customerdomain.Customer{}, err
	}
	s.lookup.Delete(customerID)
	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}
	if cached, ok := s.lookup.Get(customerID); ok {
		return cached, nil
	}
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	s.lookup.Set(customerID, customer, lookupTTL)
	return customer, nil
}

func (s *Service) List(ctx context.Context, req customerdomain.ListCustomerRequest) (customerdomain.ListCustomerResponse, error) {
	limit, offset := pagination.Resolve(req.Pagination)

	query := s.db.WithContext(ctx).Model(&customerdomain.Customer{}).Where("is_deleted = ?", false)
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}
	if custType := strings.TrimSpace(req.Type); custType != "" {
		query = query.Where("type = ?", custType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return customerdomain.ListCustomerResponse{}, err
	}

	var customers []customerdomain.Customer
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		return customerdomain.ListCustomerResponse{}, err
	}

	return customerdomain.ListCustomerResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Customers: customers,
	}, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string, actor string) error {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("id = ? AND is_deleted = ?", customerID, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"modified_at": s.clock.Now(),
			"modified_by": actor,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return customerdomain.ErrCustomerNotFound
	}
	s.lookup.Delete(customerID)
	return nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
		}
		return customerdomain.Customer{}, err
	}
	return customer, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
