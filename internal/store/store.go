package store

import (
	"context"
	"time"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// TokenStore holds the current redemption token of every event
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,TokenStore=MockTokenStore,AttendanceLedger=MockAttendanceLedger,MemberDirectory=MockMemberDirectory
type TokenStore interface {
	// GetEvent retrieves an event with its current token; returns nil if not found
	GetEvent(ctx context.Context, eventID string) (*schema.Event, error)
	// SetCurrentToken replaces the event's token unconditionally; returns false if the event does not exist
	SetCurrentToken(ctx context.Context, eventID string, token string, rotatedAt time.Time) (bool, error)
	// CompareAndSwapToken replaces the token only if it still equals expected (nil matches an empty cell)
	CompareAndSwapToken(ctx context.Context, eventID string, expected *string, next *string, rotatedAt *time.Time) (bool, error)
	// ListEventsWithTokensRotatedBefore returns events holding a token last rotated before cutoff
	ListEventsWithTokensRotatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]schema.Event, error)
}

// AttendanceLedger is the append-only record store for attendance entries
type AttendanceLedger interface {
	// RecordIfAbsent inserts entry unless a counted entry already exists for (event_id, identity_key).
	// It returns the stored entry and whether it was created by this call.
	RecordIfAbsent(ctx context.Context, entry *schema.AttendanceEntry) (*schema.AttendanceEntry, bool, error)
	// ListAttendance lists entries of an event ordered by recorded_at
	ListAttendance(ctx context.Context, eventID string, limit, offset int) ([]schema.AttendanceEntry, error)
	// CountCountedEntries counts counted entries for the identity; used to verify the dedup invariant
	CountCountedEntries(ctx context.Context, eventID string, key domain.IdentityKey) (int64, error)
}

// MemberDirectory resolves registered members
type MemberDirectory interface {
	// GetMemberByID returns the member or nil
	GetMemberByID(ctx context.Context, id string) (*schema.Member, error)
	// GetMemberBySubject returns the member linked to an auth subject or nil
	GetMemberBySubject(ctx context.Context, subject string) (*schema.Member, error)
	// GetMemberByEmail returns the member with the given email (case-insensitive) or nil
	GetMemberByEmail(ctx context.Context, email string) (*schema.Member, error)
	// FindMembersByNormalizedName returns up to limit members sharing a normalized name
	FindMembersByNormalizedName(ctx context.Context, normalizedName string, limit int) ([]schema.Member, error)
}

// Store defines the interface for database operations
type Store interface {
	TokenStore
	AttendanceLedger
	MemberDirectory

	// CreateEvent inserts an event record
	CreateEvent(ctx context.Context, event *schema.Event) error
	// CreateMember inserts a member record
	CreateMember(ctx context.Context, member *schema.Member) error
}
