package audit

import (
	"context"
	"errors"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle with long retention.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers denied or anomalous access.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity that may be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// ActorID is the admin uid that invoked the operation.
	ActorID string
	// Subject is the uid of the rider account affected, if one exists.
	Subject   string
	Email     string
	Reason    string
	RequestID string
	Platform  string
}

type AuditEvent string

const (
	EventRiderCreated          AuditEvent = "rider_created"
	EventRiderCreationFailed   AuditEvent = "rider_creation_failed"
	EventRiderProfileOrphaned  AuditEvent = "rider_profile_orphaned"
	EventRiderAccountReclaimed AuditEvent = "rider_account_reclaimed"
	EventRiderAccessDenied     AuditEvent = "rider_access_denied"
	EventAdminAdded            AuditEvent = "admin_added"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRiderCreated:          CategoryCompliance,
	EventRiderAccountReclaimed: CategoryCompliance,
	EventAdminAdded:            CategoryCompliance,
	EventRiderAccessDenied:     CategorySecurity,
	EventRiderProfileOrphaned:  CategoryOperations,
	EventRiderCreationFailed:   CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Fanout appends to every store and joins their errors. Nil stores are skipped.
func Fanout(stores ...Store) Store {
	var live []Store
	for _, s := range stores {
		if s != nil {
			live = append(live, s)
		}
	}
	return fanout(live)
}

type fanout []Store

func (f fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
