// Package storetest provides SQLite-backed stores and fixtures for tests in other packages
package storetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/config"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// OpenSQLite opens a migrated SQLite database in the test's temp dir
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := store.Open(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "checkin.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// NewSQLiteStore returns a store backed by a fresh SQLite database
func NewSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewSQLStore(OpenSQLite(t))
}

// SeedEvent creates an event with the given title and an optional current token
func SeedEvent(t *testing.T, s store.Store, title string, token *string) *schema.Event {
	t.Helper()

	event := &schema.Event{Title: title, Location: "Main hall"}
	require.NoError(t, s.CreateEvent(context.Background(), event))

	if token != nil {
		ok, err := s.SetCurrentToken(context.Background(), event.ID, *token, time.Now().UTC())
		require.NoError(t, err)
		require.True(t, ok)
		event.CurrentToken = token
	}
	return event
}

// SeedMember creates a member with the given full name; subject and email are optional
func SeedMember(t *testing.T, s store.Store, fullName string, subject, email *string) *schema.Member {
	t.Helper()

	number := "M-" + fullName
	member := &schema.Member{
		Subject:        subject,
		Email:          email,
		FullName:       fullName,
		NormalizedName: identity.NormalizeName(fullName),
		MemberNumber:   &number,
	}
	require.NoError(t, s.CreateMember(context.Background(), member))
	return member
}
