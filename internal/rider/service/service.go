// Package service provisions rider accounts on behalf of admins.
//
// CreateRider runs its checks in a fixed order (authentication, admin
// membership, payload) and then performs two independent writes: an
// identity account followed by a rider profile keyed by the account uid.
// The writes are not atomic. When the profile write fails the account is
// left behind unless an AccountRemover is configured with WithOrphanCleanup.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	idmodels "pharmafinder/internal/identity/models"
	"pharmafinder/internal/platform/metrics"
	"pharmafinder/internal/rider/models"
	dErrors "pharmafinder/pkg/domain-errors"
	"pharmafinder/pkg/platform/audit"
	"pharmafinder/pkg/platform/sentinel"
)

const (
	MsgUnauthenticated    = "The function must be called while authenticated."
	MsgPermissionDenied   = "You must be an admin to perform this action."
	MsgInvalidArgument    = "The function must be called with email, password, and name."
	msgAdminCheckFailed   = "Failed to verify admin privileges."
	msgAccountFailed      = "Failed to create rider account."
	msgProfileWriteFailed = "Failed to write rider profile."
)

const tracerName = "pharmafinder/internal/rider/service"

type AdminRegistry interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
	Add(ctx context.Context, uid string) error
}

type IdentityService interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (*idmodels.Account, error)
}

type ProfileStore interface {
	Put(ctx context.Context, profile *models.RiderProfile) error
	FindByUID(ctx context.Context, uid string) (*models.RiderProfile, error)
}

// AccountRemover deletes an identity account. Used only for orphan cleanup.
type AccountRemover interface {
	DeleteAccount(ctx context.Context, uid string) error
}

// Counter reports how many records a store holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates rider provisioning.
type Service struct {
	admins   AdminRegistry
	identity IdentityService
	profiles ProfileStore
	remover  AccountRemover
	accounts Counter
	riders   Counter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	audit    *auditEmitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithOrphanCleanup deletes the identity account when the profile write
// that follows it fails. The caller still receives an internal error.
func WithOrphanCleanup(remover AccountRemover) Option {
	return func(s *Service) {
		s.remover = remover
	}
}

// WithInventory enables Inventory. accounts counts identity accounts and
// riders counts profile records.
func WithInventory(accounts, riders Counter) Option {
	return func(s *Service) {
		s.accounts = accounts
		s.riders = riders
	}
}

func New(admins AdminRegistry, identity IdentityService, profiles ProfileStore, opts ...Option) (*Service, error) {
	if admins == nil {
		return nil, errors.New("admin registry is required")
	}
	if identity == nil {
		return nil, errors.New("identity service is required")
	}
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	s := &Service{
		admins:   admins,
		identity: identity,
		profiles: profiles,
		tracer:   otel.Tracer(tracerName),
		audit:    &auditEmitter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.audit.logger = s.logger
	return s, nil
}

// CreateRider provisions an identity account and rider profile for req on
// behalf of caller.
func (s *Service) CreateRider(ctx context.Context, caller models.Caller, req models.CreateRiderRequest) (*models.CreateRiderResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "rider.CreateRider")
	defer span.End()

	result, err := s.createRider(ctx, caller, req)

	if s.metrics != nil {
		s.metrics.ObserveCreateRider(start)
		if err != nil {
			s.metrics.IncrementRiderFailure(string(dErrors.CodeOf(err)))
		} else {
			s.metrics.IncrementRidersCreated()
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	return result, err
}

func (s *Service) createRider(ctx context.Context, caller models.Caller, req models.CreateRiderRequest) (*models.CreateRiderResult, error) {
	if err := s.authorize(ctx, caller); err != nil {
		return nil, err
	}
	if !req.Complete() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, MsgInvalidArgument)
	}

	account, err := s.createAccount(ctx, req)
	if err != nil {
		s.logInternal(ctx, "identity account creation failed", err, "email", req.Email)
		s.audit.emit(ctx, audit.EventRiderCreationFailed, audit.Event{
			ActorID: caller.UID,
			Email:   req.Email,
			Reason:  err.Error(),
		})
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msgAccountFailed)
	}

	profile := &models.RiderProfile{UID: account.UID, Name: req.Name, Email: req.Email}
	if err := s.writeProfile(ctx, profile); err != nil {
		s.logInternal(ctx, "rider profile write failed", err, "rider_uid", account.UID)
		s.handleOrphan(ctx, caller, account, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msgProfileWriteFailed)
	}

	s.audit.emit(ctx, audit.EventRiderCreated, audit.Event{
		ActorID: caller.UID,
		Subject: account.UID,
		Email:   req.Email,
	})
	return models.NewCreateRiderResult(req.Name, req.Email), nil
}

// GetRider returns the stored profile for uid. The caller must be an admin.
func (s *Service) GetRider(ctx context.Context, caller models.Caller, uid string) (*models.RiderProfile, error) {
	if err := s.authorize(ctx, caller); err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "rider not found")
		}
		s.logInternal(ctx, "rider profile lookup failed", err, "rider_uid", uid)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to load rider profile.")
	}
	return profile, nil
}

// Inventory compares identity accounts with rider profiles. Every account is
// created by CreateRider, so a surplus of accounts counts orphans the
// profile write left behind.
func (s *Service) Inventory(ctx context.Context) (*models.Inventory, error) {
	if s.accounts == nil || s.riders == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "Inventory is not configured.")
	}
	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		s.logInternal(ctx, "account count failed", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to count accounts.")
	}
	riders, err := s.riders.Count(ctx)
	if err != nil {
		s.logInternal(ctx, "rider count failed", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to count riders.")
	}
	return models.NewInventory(accounts, riders), nil
}

// AddAdmin grants uid the right to provision riders.
func (s *Service) AddAdmin(ctx context.Context, uid string) error {
	if uid == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "uid is required")
	}
	if err := s.admins.Add(ctx, uid); err != nil {
		s.logInternal(ctx, "admin registry write failed", err, "admin_uid", uid)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to add admin.")
	}
	s.audit.emit(ctx, audit.EventAdminAdded, audit.Event{Subject: uid})
	return nil
}

func (s *Service) authorize(ctx context.Context, caller models.Caller) error {
	if !caller.Authenticated() {
		return dErrors.New(dErrors.CodeUnauthenticated, MsgUnauthenticated)
	}
	ok, err := s.admins.IsAdmin(ctx, caller.UID)
	if err != nil {
		s.logInternal(ctx, "admin registry lookup failed", err, "caller_uid", caller.UID)
		return dErrors.Wrap(err, dErrors.CodeInternal, msgAdminCheckFailed)
	}
	if !ok {
		s.audit.emit(ctx, audit.EventRiderAccessDenied, audit.Event{ActorID: caller.UID})
		return dErrors.New(dErrors.CodePermissionDenied, MsgPermissionDenied)
	}
	return nil
}

func (s *Service) createAccount(ctx context.Context, req models.CreateRiderRequest) (*idmodels.Account, error) {
	ctx, span := s.tracer.Start(ctx, "identity.CreateAccount")
	defer span.End()
	account, err := s.identity.CreateAccount(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create account")
		return nil, err
	}
	span.SetAttributes(attribute.String("rider.uid", account.UID))
	return account, nil
}

func (s *Service) writeProfile(ctx context.Context, profile *models.RiderProfile) error {
	ctx, span := s.tracer.Start(ctx, "profile.Put", trace.WithAttributes(attribute.String("rider.uid", profile.UID)))
	defer span.End()
	if err := s.profiles.Put(ctx, profile); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write profile")
		return err
	}
	return nil
}

// handleOrphan deals with an account whose profile write failed. Without a
// remover the account is kept and reported; with one it is deleted.
func (s *Service) handleOrphan(ctx context.Context, caller models.Caller, account *idmodels.Account, cause error) {
	if s.remover != nil {
		err := s.remover.DeleteAccount(ctx, account.UID)
		if err == nil {
			s.audit.emit(ctx, audit.EventRiderAccountReclaimed, audit.Event{
				ActorID: caller.UID,
				Subject: account.UID,
				Email:   account.Email,
				Reason:  cause.Error(),
			})
			return
		}
		s.logInternal(ctx, "orphaned account cleanup failed", err, "rider_uid", account.UID)
	}

	if s.metrics != nil {
		s.metrics.IncrementOrphanedAccounts()
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, string(audit.EventRiderProfileOrphaned),
			"rider_uid", account.UID,
			"email", account.Email,
			"error", cause,
		)
	}
	s.audit.emit(ctx, audit.EventRiderProfileOrphaned, audit.Event{
		ActorID: caller.UID,
		Subject: account.UID,
		Email:   account.Email,
		Reason:  cause.Error(),
	})
}

func (s *Service) logInternal(ctx context.Context, msg string, err error, attrs ...any) {
	if s.logger == nil {
		return
	}
	s.logger.ErrorContext(ctx, msg, append(attrs, "error", err)...)
}
