package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/mocks"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/storetest"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Dave", want: "dave"},
		{in: "  dave  ", want: "dave"},
		{in: "Mary  Ann\tSmith", want: "mary ann smith"},
		{in: "ＤＡＶＥ", want: "dave"},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.NormalizeName(tt.in))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewSQLiteStore(t)
	alice := storetest.SeedMember(t, s, "Alice Liddell", strPtr("sub-alice"), strPtr("alice@example.org"))
	bob := storetest.SeedMember(t, s, "Bob Ross", nil, strPtr("bob@example.org"))
	r := identity.NewResolver(s)

	t.Run("nil caller", func(t *testing.T) {
		id, err := r.Resolve(ctx, nil)
		assert.True(t, errors.Is(err, domain.ErrNotAuthenticated))
		assert.Nil(t, id)
	})

	t.Run("member by subject", func(t *testing.T) {
		id, err := r.Resolve(ctx, &identity.Caller{Subject: "sub-alice"})
		require.NoError(t, err)
		assert.Equal(t, domain.MemberKey(alice.ID), id.Key)
		require.NotNil(t, id.MemberID)
		assert.Equal(t, alice.ID, *id.MemberID)
		assert.Equal(t, "Alice Liddell", id.DisplayName)
		assert.Empty(t, id.Warnings)
	})

	t.Run("member by email when subject is unknown", func(t *testing.T) {
		id, err := r.Resolve(ctx, &identity.Caller{Subject: "sub-unknown", Email: "BOB@example.org"})
		require.NoError(t, err)
		assert.Equal(t, domain.MemberKey(bob.ID), id.Key)
	})

	t.Run("name fallback", func(t *testing.T) {
		id, err := r.Resolve(ctx, &identity.Caller{Subject: "sub-guest", DisplayName: " Guest  Speaker "})
		require.NoError(t, err)
		assert.Equal(t, domain.NameKey("guest speaker"), id.Key)
		assert.Nil(t, id.MemberID)
		assert.Equal(t, []identity.Warning{identity.WarnNameFallback}, id.Warnings)
	})

	t.Run("no usable identity", func(t *testing.T) {
		id, err := r.Resolve(ctx, &identity.Caller{Subject: "sub-guest"})
		assert.True(t, errors.Is(err, domain.ErrNotAuthenticated))
		assert.Nil(t, id)
	})
}

func TestResolver_ResolveManual(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewSQLiteStore(t)
	carol := storetest.SeedMember(t, s, "Carol Danvers", nil, nil)
	storetest.SeedMember(t, s, "Sam Lee", nil, nil)
	storetest.SeedMember(t, s, "Sam  LEE", nil, nil)
	r := identity.NewResolver(s)

	t.Run("by member id", func(t *testing.T) {
		id, err := r.ResolveManual(ctx, carol.ID, "")
		require.NoError(t, err)
		assert.Equal(t, domain.MemberKey(carol.ID), id.Key)
		require.NotNil(t, id.ExternalReference)
		assert.Equal(t, "M-Carol Danvers", *id.ExternalReference)
	})

	t.Run("unknown member id", func(t *testing.T) {
		_, err := r.ResolveManual(ctx, "missing", "")
		assert.True(t, errors.Is(err, domain.ErrMemberNotFound))
	})

	t.Run("single name match links the member", func(t *testing.T) {
		id, err := r.ResolveManual(ctx, "", "carol   DANVERS")
		require.NoError(t, err)
		assert.Equal(t, domain.MemberKey(carol.ID), id.Key)
		assert.Empty(t, id.Warnings)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		id, err := r.ResolveManual(ctx, "", "Sam Lee")
		require.NoError(t, err)
		assert.Equal(t, domain.NameKey("sam lee"), id.Key)
		assert.Equal(t, []identity.Warning{identity.WarnAmbiguousName}, id.Warnings)
	})

	t.Run("unknown name", func(t *testing.T) {
		id, err := r.ResolveManual(ctx, "", "Dave")
		require.NoError(t, err)
		assert.Equal(t, domain.NameKey("dave"), id.Key)
		assert.Equal(t, "Dave", id.DisplayName)
		assert.Equal(t, []identity.Warning{identity.WarnNameFallback}, id.Warnings)
	})

	t.Run("neither id nor name", func(t *testing.T) {
		_, err := r.ResolveManual(ctx, "", "  ")
		assert.True(t, errors.Is(err, domain.ErrMemberNotFound))
	})
}

func TestResolver_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	members := mocks.NewMockMemberDirectory(ctrl)
	members.EXPECT().GetMemberBySubject(gomock.Any(), "sub-1").Return(nil, errors.New("connection reset"))

	_, err := identity.NewResolver(members).Resolve(context.Background(), &identity.Caller{Subject: "sub-1"})
	assert.EqualError(t, err, "connection reset")
}
