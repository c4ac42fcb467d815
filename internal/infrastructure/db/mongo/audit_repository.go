package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository appends authentication-decision events to MongoDB. The
// collection is write-only from this service; reporting reads it offline.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Username string `bson:"username"`
	Path     string `bson:"path"`
	Provider string `bson:"provider,omitempty"`
	Outcome  string `bson:"outcome"`
	Reason   string `bson:"reason,omitempty"`
	At       int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	doc := auditDoc{
		Username: event.Username,
		Path:     event.Path,
		Provider: event.Provider,
		Outcome:  event.Outcome,
		Reason:   event.Reason,
		At:       event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
