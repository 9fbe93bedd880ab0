package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// sqlStore implements Store on top of gorm; it runs against PostgreSQL in production and SQLite in tests
type sqlStore struct {
	db *gorm.DB
}

// NewSQLStore creates a new gorm-backed store
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to NormalizeConnectionPoolSettings defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Token store
// =============================================================================

// GetEvent retrieves an event by ID
func (s *sqlStore) GetEvent(ctx context.Context, eventID string) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// SetCurrentToken overwrites the event's token in a single UPDATE
func (s *sqlStore) SetCurrentToken(ctx context.Context, eventID string, token string, rotatedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"current_token":    token,
			"token_rotated_at": rotatedAt,
			"updated_at":       rotatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to set current token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CompareAndSwapToken replaces the token only when it still holds the expected value
func (s *sqlStore) CompareAndSwapToken(ctx context.Context, eventID string, expected *string, next *string, rotatedAt *time.Time) (bool, error) {
	q := s.db.WithContext(ctx).Model(&schema.Event{}).Where("id = ?", eventID)
	if expected == nil {
		q = q.Where("current_token IS NULL")
	} else {
		q = q.Where("current_token = ?", *expected)
	}

	result := q.Updates(map[string]interface{}{
		"current_token":    next,
		"token_rotated_at": rotatedAt,
		"updated_at":       time.Now().UTC(),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to swap current token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListEventsWithTokensRotatedBefore returns events whose token has not been rotated since cutoff
func (s *sqlStore) ListEventsWithTokensRotatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]schema.Event, error) {
	var events []schema.Event
	err := s.db.WithContext(ctx).
		Where("current_token IS NOT NULL").
		Where("token_rotated_at < ?", cutoff.UTC()).
		Order("token_rotated_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale token events: %w", err)
	}
	return events, nil
}

// CreateEvent inserts an event
func (s *sqlStore) CreateEvent(ctx context.Context, event *schema.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// =============================================================================
// Attendance ledger
// =============================================================================

// RecordIfAbsent looks for an existing counted entry and, if none, inserts the new one.
// Both steps run in one transaction; the insert skips rows that would violate
// ux_attendance_counted_identity, so two racing callers cannot both create a counted entry.
func (s *sqlStore) RecordIfAbsent(ctx context.Context, entry *schema.AttendanceEntry) (*schema.AttendanceEntry, bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	var stored *schema.AttendanceEntry
	var created bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := countedEntry(tx, entry.EventID, entry.IdentityKey)
		if err != nil {
			return err
		}
		if existing != nil {
			stored = existing
			return nil
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if result.Error != nil {
			return fmt.Errorf("failed to create attendance entry: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			// Lost the race against a concurrent insert for the same identity
			existing, err = countedEntry(tx, entry.EventID, entry.IdentityKey)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("attendance entry %s was not inserted", entry.ID)
			}
			stored = existing
			return nil
		}

		stored = entry
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return stored, created, nil
}

func countedEntry(db *gorm.DB, eventID string, key domain.IdentityKey) (*schema.AttendanceEntry, error) {
	var entry schema.AttendanceEntry
	err := db.
		Where("event_id = ? AND identity_key = ?", eventID, key).
		Where("status IN ?", domain.CountedStatuses).
		Order("recorded_at ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get counted attendance entry: %w", err)
	}
	return &entry, nil
}

// CountCountedEntries counts present/late entries for the identity
func (s *sqlStore) CountCountedEntries(ctx context.Context, eventID string, key domain.IdentityKey) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.AttendanceEntry{}).
		Where("event_id = ? AND identity_key = ?", eventID, key).
		Where("status IN ?", domain.CountedStatuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance entries: %w", err)
	}
	return count, nil
}

// ListAttendance lists the entries of an event, oldest first
func (s *sqlStore) ListAttendance(ctx context.Context, eventID string, limit, offset int) ([]schema.AttendanceEntry, error) {
	var entries []schema.AttendanceEntry
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("recorded_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return entries, nil
}

// =============================================================================
// Member directory
// =============================================================================

// GetMemberByID retrieves a member by ID
func (s *sqlStore) GetMemberByID(ctx context.Context, id string) (*schema.Member, error) {
	return s.firstMember(ctx, "id = ?", id)
}

// GetMemberBySubject retrieves the member linked to an auth subject
func (s *sqlStore) GetMemberBySubject(ctx context.Context, subject string) (*schema.Member, error) {
	return s.firstMember(ctx, "subject = ?", subject)
}

// GetMemberByEmail retrieves a member by email, ignoring case
func (s *sqlStore) GetMemberByEmail(ctx context.Context, email string) (*schema.Member, error) {
	return s.firstMember(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *sqlStore) firstMember(ctx context.Context, query string, arg interface{}) (*schema.Member, error) {
	var member schema.Member
	err := s.db.WithContext(ctx).Where(query, arg).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

// FindMembersByNormalizedName returns members whose normalized name matches exactly
func (s *sqlStore) FindMembersByNormalizedName(ctx context.Context, normalizedName string, limit int) ([]schema.Member, error) {
	var members []schema.Member
	err := s.db.WithContext(ctx).
		Where("normalized_name = ?", normalizedName).
		Order("id ASC").
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find members: %w", err)
	}
	return members, nil
}

// CreateMember inserts a member
func (s *sqlStore) CreateMember(ctx context.Context, member *schema.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}
