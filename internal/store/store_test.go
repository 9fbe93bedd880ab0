package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func strPtr(s string) *string {
	return &s
}

func createTestEvent(t *testing.T, s Store, title string) *schema.Event {
	t.Helper()
	event := &schema.Event{Title: title, Location: "Room 101"}
	require.NoError(t, s.CreateEvent(context.Background(), event))
	require.NotEmpty(t, event.ID)
	return event
}

func buildTestEntry(eventID string, key domain.IdentityKey, status domain.AttendanceStatus, recordedAt time.Time) *schema.AttendanceEntry {
	return &schema.AttendanceEntry{
		EventID:     eventID,
		IdentityKey: key,
		MemberID:    nil,
		DisplayName: "Test Participant",
		Status:      status,
		Origin:      domain.OriginScanned,
		RecordedAt:  recordedAt,
		RecordedBy:  "tester",
		Notes:       domain.NotesWithMarker(domain.OriginScanned, ""),
	}
}

// RunStoreTests runs the store suite against any Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	t.Run("TokenStore", func(t *testing.T) {
		testTokenStore(t, initDB, cleanupDB)
	})
	t.Run("AttendanceLedger", func(t *testing.T) {
		testAttendanceLedger(t, initDB, cleanupDB)
	})
	t.Run("MemberDirectory", func(t *testing.T) {
		testMemberDirectory(t, initDB, cleanupDB)
	})
}

func testTokenStore(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	ctx := context.Background()

	t.Run("get missing event returns nil", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event, err := s.GetEvent(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("new event has no token", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		created := createTestEvent(t, s, "General Assembly")
		event, err := s.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, "General Assembly", event.Title)
		assert.Nil(t, event.CurrentToken)
		assert.Nil(t, event.TokenRotatedAt)
	})

	t.Run("set current token overwrites previous value", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		created := createTestEvent(t, s, "Workshop")
		now := time.Now().UTC().Truncate(time.Second)

		ok, err := s.SetCurrentToken(ctx, created.ID, "T1", now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.SetCurrentToken(ctx, created.ID, "T2", now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, ok)

		event, err := s.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, event.CurrentToken)
		assert.Equal(t, "T2", *event.CurrentToken)
		require.NotNil(t, event.TokenRotatedAt)
		assert.WithinDuration(t, now.Add(time.Minute), *event.TokenRotatedAt, time.Second)
	})

	t.Run("set current token on missing event", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		ok, err := s.SetCurrentToken(ctx, uuid.NewString(), "T1", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("compare and swap", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		created := createTestEvent(t, s, "Seminar")
		now := time.Now().UTC()

		// empty cell only matches a nil expectation
		ok, err := s.CompareAndSwapToken(ctx, created.ID, strPtr("T0"), strPtr("T1"), &now)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.CompareAndSwapToken(ctx, created.ID, nil, strPtr("T1"), &now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.CompareAndSwapToken(ctx, created.ID, strPtr("stale"), nil, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.CompareAndSwapToken(ctx, created.ID, strPtr("T1"), nil, nil)
		require.NoError(t, err)
		assert.True(t, ok)

		event, err := s.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, event.CurrentToken)
		assert.Nil(t, event.TokenRotatedAt)
	})

	t.Run("list events with tokens rotated before cutoff", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		now := time.Now().UTC().Truncate(time.Second)
		stale := createTestEvent(t, s, "Stale")
		fresh := createTestEvent(t, s, "Fresh")
		createTestEvent(t, s, "Never rotated")

		_, err := s.SetCurrentToken(ctx, stale.ID, "old", now.Add(-10*time.Minute))
		require.NoError(t, err)
		_, err = s.SetCurrentToken(ctx, fresh.ID, "new", now)
		require.NoError(t, err)

		events, err := s.ListEventsWithTokensRotatedBefore(ctx, now.Add(-3*time.Minute), 10)
		require.NoError(t, err)

		ids := make([]string, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Contains(t, ids, stale.ID)
		assert.NotContains(t, ids, fresh.ID)
	})
}

func testAttendanceLedger(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	ctx := context.Background()

	t.Run("first counted entry is created", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		entry := buildTestEntry(event.ID, domain.MemberKey("m-1"), domain.StatusPresent, time.Now().UTC())

		stored, created, err := s.RecordIfAbsent(ctx, entry)
		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.ID)

		count, err := s.CountCountedEntries(ctx, event.ID, domain.MemberKey("m-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("second counted entry returns the existing one", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		key := domain.MemberKey("m-2")
		first, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusPresent, time.Now().UTC()))
		require.NoError(t, err)
		require.True(t, created)

		again, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusLate, time.Now().UTC()))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, domain.StatusPresent, again.Status)

		count, err := s.CountCountedEntries(ctx, event.ID, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("non-counted statuses may repeat", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		key := domain.NameKey("dave")

		for range 2 {
			_, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusExcused, time.Now().UTC()))
			require.NoError(t, err)
			assert.True(t, created)
		}

		// a counted entry is still accepted after informational ones
		_, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusPresent, time.Now().UTC()))
		require.NoError(t, err)
		assert.True(t, created)

		entries, err := s.ListAttendance(ctx, event.ID, 10, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("non-counted status after counted entry is not written", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		key := domain.MemberKey("m-3")
		first, _, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusLate, time.Now().UTC()))
		require.NoError(t, err)

		stored, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusAbsent, time.Now().UTC()))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, stored.ID)
	})

	t.Run("identities are scoped per event", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		e1 := createTestEvent(t, s, "Day 1")
		e2 := createTestEvent(t, s, "Day 2")
		key := domain.MemberKey("m-4")

		_, created, err := s.RecordIfAbsent(ctx, buildTestEntry(e1.ID, key, domain.StatusPresent, time.Now().UTC()))
		require.NoError(t, err)
		assert.True(t, created)

		_, created, err = s.RecordIfAbsent(ctx, buildTestEntry(e2.ID, key, domain.StatusPresent, time.Now().UTC()))
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("list attendance orders by recorded_at", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		base := time.Now().UTC().Truncate(time.Second)

		_, _, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, domain.NameKey("b"), domain.StatusPresent, base.Add(time.Minute)))
		require.NoError(t, err)
		_, _, err = s.RecordIfAbsent(ctx, buildTestEntry(event.ID, domain.NameKey("a"), domain.StatusPresent, base))
		require.NoError(t, err)

		entries, err := s.ListAttendance(ctx, event.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.NameKey("a"), entries[0].IdentityKey)
		assert.Equal(t, domain.NameKey("b"), entries[1].IdentityKey)

		page, err := s.ListAttendance(ctx, event.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, domain.NameKey("b"), page[0].IdentityKey)
	})

	t.Run("only present and late are counted", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		event := createTestEvent(t, s, "Meeting")
		key := domain.MemberKey("m-5")

		_, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusExcused, time.Now().UTC()))
		require.NoError(t, err)
		assert.True(t, created)

		count, err := s.CountCountedEntries(ctx, event.ID, key)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		first, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusPresent, time.Now().UTC()))
		require.NoError(t, err)
		assert.True(t, created)

		// a later entry of any status resolves to the counted one
		stored, created, err := s.RecordIfAbsent(ctx, buildTestEntry(event.ID, key, domain.StatusAbsent, time.Now().UTC()))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, stored.ID)
		assert.Equal(t, "[scanned]", stored.Notes)

		count, err = s.CountCountedEntries(ctx, event.ID, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func testMemberDirectory(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	ctx := context.Background()

	t.Run("lookups", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		alice := &schema.Member{
			Subject:        strPtr("sub-alice"),
			Email:          strPtr("alice@example.org"),
			FullName:       "Alice Liddell",
			NormalizedName: "alice liddell",
		}
		require.NoError(t, s.CreateMember(ctx, alice))

		byID, err := s.GetMemberByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "Alice Liddell", byID.FullName)

		bySubject, err := s.GetMemberBySubject(ctx, "sub-alice")
		require.NoError(t, err)
		require.NotNil(t, bySubject)
		assert.Equal(t, alice.ID, bySubject.ID)

		byEmail, err := s.GetMemberByEmail(ctx, "Alice@Example.org")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, alice.ID, byEmail.ID)

		missing, err := s.GetMemberBySubject(ctx, "sub-nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("find by normalized name", func(t *testing.T) {
		s := initDB(t)
		defer cleanupDB(t)

		for range 2 {
			require.NoError(t, s.CreateMember(ctx, &schema.Member{FullName: "Sam Lee", NormalizedName: "sam lee"}))
		}

		members, err := s.FindMembersByNormalizedName(ctx, "sam lee", 5)
		require.NoError(t, err)
		assert.Len(t, members, 2)

		members, err = s.FindMembersByNormalizedName(ctx, "nobody", 5)
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}

// runConcurrentRedemptions fires n concurrent counted inserts for one identity and returns how many were created
func runConcurrentRedemptions(t *testing.T, s Store, eventID string, key domain.IdentityKey, n int) int {
	t.Helper()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.RecordIfAbsent(context.Background(), buildTestEntry(eventID, key, domain.StatusPresent, time.Now().UTC()))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	return created
}
