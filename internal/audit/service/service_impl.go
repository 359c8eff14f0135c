// Package service records and lists audit trail entries.
package service

import (
	"context"

	auditdomain "github.com/anish-1308/ibilling/internal/audit/domain"
	"github.com/anish-1308/ibilling/internal/clock"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is one loggable action. Zero-value optional fields are stored NULL.
type Entry struct {
	ActorType  auditdomain.ActorType
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
	IPAddress  string
	UserAgent  string
}

type Service interface {
	// Record appends an entry. Failures are logged, never propagated:
	// audit writes must not fail the mutation they describe.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error)
}

type serviceImpl struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  auditdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  auditdomain.Repository
}

func NewService(p ServiceParam) Service {
	return &serviceImpl{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *serviceImpl) Record(ctx context.Context, entry Entry) {
	actorType := entry.ActorType
	if actorType == "" {
		actorType = auditdomain.ActorTypeSystem
	}
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	row := auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  string(actorType),
		ActorID:    optional(entry.ActorID),
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   optional(entry.TargetID),
		Metadata:   datatypes.JSONMap(metadata),
		IPAddress:  optional(entry.IPAddress),
		UserAgent:  optional(entry.UserAgent),
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		s.log.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("target_type", entry.TargetType),
			zap.Error(err),
		)
	}
}

func (s *serviceImpl) List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	return s.repo.List(ctx, s.db, filter)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
