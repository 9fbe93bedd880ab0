// Package checkin validates redemptions and records attendance
package checkin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/messaging"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

const (
	DefaultStoreTimeout = 5 * time.Second
	DefaultBatchWorkers = 8
	// MaxBatchSize caps a manual batch request
	MaxBatchSize = 500
)

// Config holds service configuration
type Config struct {
	StoreTimeout time.Duration
	BatchWorkers int
}

// RedeemRequest is a scanned token presented by a caller
type RedeemRequest struct {
	EventID string
	Token   string
	Caller  *identity.Caller
}

// ManualRequest is an operator-entered attendance record
type ManualRequest struct {
	EventID string
	// MemberID takes precedence over Name
	MemberID   string
	Name       string
	Status     domain.AttendanceStatus
	RecordedAt time.Time
	Notes      string
	// Operator is the subject of the privileged caller
	Operator string
}

// Result is the outcome of a redemption or manual entry.
// Entry is the newly created entry for OutcomeRecorded and the existing counted entry otherwise.
type Result struct {
	Outcome    domain.Outcome
	Entry      *schema.AttendanceEntry
	EventTitle string
	Warnings   []identity.Warning
}

// BatchResult pairs a batch item with its outcome
type BatchResult struct {
	Result *Result
	Err    error
}

// Service is the check-in validator and attendance recorder
type Service struct {
	store     store.Store
	resolver  *identity.Resolver
	publisher messaging.Publisher
	clock     adapter.Clock
	cfg       Config
	pool      pond.Pool
}

// NewService creates the check-in service. Close releases its worker pool.
func NewService(st store.Store, publisher messaging.Publisher, clock adapter.Clock, cfg Config) *Service {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultBatchWorkers
	}
	if publisher == nil {
		publisher = messaging.NewNopPublisher()
	}

	return &Service{
		store:     st,
		resolver:  identity.NewResolver(st),
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		pool:      pond.NewPool(cfg.BatchWorkers),
	}
}

// Close stops the batch worker pool
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// Redeem validates the presented token and records the caller as present
func (s *Service) Redeem(ctx context.Context, req RedeemRequest) (*Result, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	event, err := s.loadEvent(opCtx, req.EventID)
	if err != nil {
		return nil, err
	}

	if !tokenMatches(event.CurrentToken, req.Token) {
		logger.DebugCtx(ctx, "Rejected stale token", zap.String("eventID", req.EventID))
		return nil, fmt.Errorf("%w: event %s", domain.ErrTokenStale, req.EventID)
	}

	id, err := s.resolver.Resolve(opCtx, req.Caller)
	if err != nil {
		return nil, storeError(err)
	}

	entry := &schema.AttendanceEntry{
		EventID:           event.ID,
		IdentityKey:       id.Key,
		MemberID:          id.MemberID,
		DisplayName:       id.DisplayName,
		ExternalReference: id.ExternalReference,
		Status:            domain.StatusPresent,
		Origin:            domain.OriginScanned,
		RecordedAt:        s.clock.Now().UTC(),
		RecordedBy:        req.Caller.Subject,
		Notes:             domain.NotesWithMarker(domain.OriginScanned, ""),
	}

	return s.record(ctx, opCtx, event, entry, id.Warnings)
}

// RecordManual records attendance on behalf of a participant without a token
func (s *Service) RecordManual(ctx context.Context, req ManualRequest) (*Result, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, req.Status)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	event, err := s.loadEvent(opCtx, req.EventID)
	if err != nil {
		return nil, err
	}

	id, err := s.resolver.ResolveManual(opCtx, req.MemberID, req.Name)
	if err != nil {
		return nil, storeError(err)
	}

	recordedAt := req.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.clock.Now()
	}

	entry := &schema.AttendanceEntry{
		EventID:           event.ID,
		IdentityKey:       id.Key,
		MemberID:          id.MemberID,
		DisplayName:       id.DisplayName,
		ExternalReference: id.ExternalReference,
		Status:            req.Status,
		Origin:            domain.OriginManual,
		RecordedAt:        recordedAt.UTC(),
		RecordedBy:        req.Operator,
		Notes:             domain.NotesWithMarker(domain.OriginManual, req.Notes),
	}

	return s.record(ctx, opCtx, event, entry, id.Warnings)
}

// RecordManualBatch records several manual entries concurrently; results keep the input order
func (s *Service) RecordManualBatch(ctx context.Context, reqs []ManualRequest) ([]BatchResult, error) {
	if len(reqs) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds the limit of %d", len(reqs), MaxBatchSize)
	}

	results := make([]BatchResult, len(reqs))
	group := s.pool.NewGroup()
	for i, req := range reqs {
		group.Submit(func() {
			r, err := s.RecordManual(ctx, req)
			results[i] = BatchResult{Result: r, Err: err}
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to process batch: %w", err)
	}

	return results, nil
}

// ListAttendance lists the ledger entries of an event
func (s *Service) ListAttendance(ctx context.Context, eventID string, limit, offset int) ([]schema.AttendanceEntry, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	if _, err := s.loadEvent(opCtx, eventID); err != nil {
		return nil, err
	}

	entries, err := s.store.ListAttendance(opCtx, eventID, limit, offset)
	if err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}

func (s *Service) loadEvent(ctx context.Context, eventID string) (*schema.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: empty event id", domain.ErrEventNotFound)
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, storeError(err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	return event, nil
}

// record performs the constrained ledger write and publishes a notification for new entries
func (s *Service) record(ctx, opCtx context.Context, event *schema.Event, entry *schema.AttendanceEntry, warnings []identity.Warning) (*Result, error) {
	stored, created, err := s.store.RecordIfAbsent(opCtx, entry)
	if err != nil {
		return nil, storeError(err)
	}

	result := &Result{
		Outcome:    domain.OutcomeAlreadyRecorded,
		Entry:      stored,
		EventTitle: event.Title,
		Warnings:   warnings,
	}
	if !created {
		logger.DebugCtx(ctx, "Attendance already recorded",
			zap.String("eventID", event.ID),
			zap.String("identityKey", string(entry.IdentityKey)))
		return result, nil
	}

	result.Outcome = domain.OutcomeRecorded
	logger.InfoCtx(ctx, "Attendance recorded",
		zap.String("eventID", event.ID),
		zap.String("entryID", stored.ID),
		zap.String("origin", string(stored.Origin)),
		zap.String("status", string(stored.Status)))

	n := messaging.NewAttendanceRecorded(stored, event.Title, s.clock.Now())
	if err := s.publisher.PublishAttendanceRecorded(ctx, n); err != nil {
		logger.WarnCtx(ctx, "Failed to publish attendance notification",
			zap.String("entryID", stored.ID),
			zap.Error(err))
	}

	return result, nil
}

func tokenMatches(current *string, presented string) bool {
	if current == nil || *current == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*current), []byte(presented)) == 1
}

// storeError passes typed failures through and classifies everything else as a transient store failure
func storeError(err error) error {
	for _, known := range []error{
		domain.ErrEventNotFound,
		domain.ErrTokenStale,
		domain.ErrNotAuthenticated,
		domain.ErrStoreUnavailable,
		domain.ErrMemberNotFound,
		domain.ErrInvalidStatus,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
