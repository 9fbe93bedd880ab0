package checkin_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/checkin"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/mocks"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/storetest"
)

type fixture struct {
	store     store.Store
	service   *checkin.Service
	authority *rotation.Authority
	event     *schema.Event
	alice     *identity.Caller
}

func strPtr(s string) *string {
	return &s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := storetest.NewSQLiteStore(t)
	event := storetest.SeedEvent(t, s, "General Assembly", nil)
	storetest.SeedMember(t, s, "Alice Liddell", strPtr("sub-alice"), strPtr("alice@example.org"))

	svc := checkin.NewService(s, nil, adapter.NewClock(), checkin.Config{})
	t.Cleanup(svc.Close)

	return &fixture{
		store:     s,
		service:   svc,
		authority: rotation.NewAuthority(s, adapter.NewClock(), time.Minute),
		event:     event,
		alice:     &identity.Caller{Subject: "sub-alice", Email: "alice@example.org", DisplayName: "Alice"},
	}
}

func (f *fixture) rotate(t *testing.T) string {
	t.Helper()
	r, err := f.authority.Rotate(context.Background(), f.event.ID)
	require.NoError(t, err)
	return r.Token
}

func TestRedeem_RecordedThenAlreadyRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tokA := f.rotate(t)

	first, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: tokA, Caller: f.alice})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRecorded, first.Outcome)
	assert.Equal(t, "General Assembly", first.EventTitle)
	assert.Equal(t, domain.StatusPresent, first.Entry.Status)
	assert.Equal(t, domain.OriginScanned, first.Entry.Origin)
	assert.Equal(t, "[scanned]", first.Entry.Notes)
	assert.Equal(t, "sub-alice", first.Entry.RecordedBy)
	assert.True(t, first.Entry.IdentityKey.IsMember())

	second, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: tokA, Caller: f.alice})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyRecorded, second.Outcome)
	assert.Equal(t, first.Entry.ID, second.Entry.ID)

	count, err := f.store.CountCountedEntries(ctx, f.event.ID, first.Entry.IdentityKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedeem_PreviousTokenIsStale(t *testing.T) {
	f := newFixture(t)
	tokA := f.rotate(t)
	tokB := f.rotate(t)
	bob := &identity.Caller{Subject: "sub-bob", DisplayName: "Bob"}

	_, err := f.service.Redeem(context.Background(), checkin.RedeemRequest{EventID: f.event.ID, Token: tokA, Caller: bob})
	assert.True(t, errors.Is(err, domain.ErrTokenStale))

	r, err := f.service.Redeem(context.Background(), checkin.RedeemRequest{EventID: f.event.ID, Token: tokB, Caller: bob})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRecorded, r.Outcome)
	assert.Equal(t, domain.NameKey("bob"), r.Entry.IdentityKey)
	assert.Equal(t, []identity.Warning{identity.WarnNameFallback}, r.Warnings)
}

func TestRedeem_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("event without token", func(t *testing.T) {
		_, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: "anything", Caller: f.alice})
		assert.True(t, errors.Is(err, domain.ErrTokenStale))
	})

	tok := f.rotate(t)

	tests := []struct {
		name    string
		req     checkin.RedeemRequest
		wantErr error
	}{
		{
			name:    "unknown event",
			req:     checkin.RedeemRequest{EventID: "ev-unknown", Token: "tok-X", Caller: f.alice},
			wantErr: domain.ErrEventNotFound,
		},
		{
			name:    "empty event id",
			req:     checkin.RedeemRequest{Token: tok, Caller: f.alice},
			wantErr: domain.ErrEventNotFound,
		},
		{
			name:    "empty token",
			req:     checkin.RedeemRequest{EventID: f.event.ID, Caller: f.alice},
			wantErr: domain.ErrTokenStale,
		},
		{
			name:    "token of another length",
			req:     checkin.RedeemRequest{EventID: f.event.ID, Token: tok[:10], Caller: f.alice},
			wantErr: domain.ErrTokenStale,
		},
		{
			name:    "no caller",
			req:     checkin.RedeemRequest{EventID: f.event.ID, Token: tok},
			wantErr: domain.ErrNotAuthenticated,
		},
		{
			name:    "caller without identity",
			req:     checkin.RedeemRequest{EventID: f.event.ID, Token: tok, Caller: &identity.Caller{Subject: "sub-x"}},
			wantErr: domain.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := f.service.Redeem(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, r)
		})
	}
}

func TestRedeem_ConcurrentSameIdentity(t *testing.T) {
	f := newFixture(t)
	tok := f.rotate(t)
	carol := &identity.Caller{Subject: "sub-carol", DisplayName: "Carol"}

	const attempts = 10
	outcomes := make([]domain.Outcome, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := f.service.Redeem(context.Background(), checkin.RedeemRequest{EventID: f.event.ID, Token: tok, Caller: carol})
			errs[i] = err
			if r != nil {
				outcomes[i] = r.Outcome
			}
		}()
	}
	wg.Wait()

	recorded := 0
	for i := range outcomes {
		require.NoError(t, errs[i])
		if outcomes[i] == domain.OutcomeRecorded {
			recorded++
		} else {
			assert.Equal(t, domain.OutcomeAlreadyRecorded, outcomes[i])
		}
	}
	assert.Equal(t, 1, recorded)

	count, err := f.store.CountCountedEntries(context.Background(), f.event.ID, domain.NameKey("carol"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordManual_ThenRedeem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC)

	manual, err := f.service.RecordManual(ctx, checkin.ManualRequest{
		EventID:    f.event.ID,
		Name:       "dave",
		Status:     domain.StatusPresent,
		RecordedAt: t0,
		Notes:      "scanner broken",
		Operator:   "sub-admin",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRecorded, manual.Outcome)
	assert.Equal(t, domain.OriginManual, manual.Entry.Origin)
	assert.Equal(t, "[manual] scanner broken", manual.Entry.Notes)
	assert.Equal(t, "sub-admin", manual.Entry.RecordedBy)
	assert.True(t, t0.Equal(manual.Entry.RecordedAt))

	tok := f.rotate(t)
	dave := &identity.Caller{Subject: "sub-dave", DisplayName: "Dave"}
	r, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: tok, Caller: dave})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyRecorded, r.Outcome)
	assert.Equal(t, manual.Entry.ID, r.Entry.ID)
}

func TestRecordManual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, Name: "x", Status: "here"})
		assert.True(t, errors.Is(err, domain.ErrInvalidStatus))
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, MemberID: "nobody", Status: domain.StatusLate})
		assert.True(t, errors.Is(err, domain.ErrMemberNotFound))
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: "ev-unknown", Name: "x", Status: domain.StatusLate})
		assert.True(t, errors.Is(err, domain.ErrEventNotFound))
	})

	t.Run("name resolving to a member shares the scanned key", func(t *testing.T) {
		r, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, Name: "ALICE liddell", Status: domain.StatusLate})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeRecorded, r.Outcome)
		assert.True(t, r.Entry.IdentityKey.IsMember())
		assert.False(t, r.Entry.RecordedAt.IsZero())

		tok := f.rotate(t)
		again, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: tok, Caller: f.alice})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAlreadyRecorded, again.Outcome)
	})

	t.Run("informational status after a counted entry", func(t *testing.T) {
		r, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, Name: "Alice Liddell", Status: domain.StatusSick})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAlreadyRecorded, r.Outcome)
	})

	t.Run("informational statuses repeat", func(t *testing.T) {
		for range 2 {
			r, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, Name: "Eve", Status: domain.StatusExcused})
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeRecorded, r.Outcome)
		}
	})
}

func TestRecordManualBatch(t *testing.T) {
	f := newFixture(t)

	reqs := []checkin.ManualRequest{
		{EventID: f.event.ID, Name: "Frank", Status: domain.StatusPresent},
		{EventID: f.event.ID, Name: "frank", Status: domain.StatusPresent},
		{EventID: f.event.ID, Name: "Grace", Status: "bogus"},
		{EventID: f.event.ID, Name: "Heidi", Status: domain.StatusAbsent},
	}

	results, err := f.service.RecordManualBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	// exactly one of the two Frank entries wins
	frank := 0
	for _, r := range results[:2] {
		require.NoError(t, r.Err)
		if r.Result.Outcome == domain.OutcomeRecorded {
			frank++
		}
	}
	assert.Equal(t, 1, frank)

	assert.True(t, errors.Is(results[2].Err, domain.ErrInvalidStatus))
	require.NoError(t, results[3].Err)
	assert.Equal(t, domain.NameKey("heidi"), results[3].Result.Entry.IdentityKey)

	_, err = f.service.RecordManualBatch(context.Background(), make([]checkin.ManualRequest, checkin.MaxBatchSize+1))
	assert.Error(t, err)
}

func TestListAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.RecordManual(ctx, checkin.ManualRequest{EventID: f.event.ID, Name: "Ivan", Status: domain.StatusPresent})
	require.NoError(t, err)

	entries, err := f.service.ListAttendance(ctx, f.event.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = f.service.ListAttendance(ctx, "ev-unknown", 50, 0)
	assert.True(t, errors.Is(err, domain.ErrEventNotFound))
}

func TestRedeem_PublishesOnlyNewEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storetest.NewSQLiteStore(t)
	tok := "tok-A"
	event := storetest.SeedEvent(t, s, "Workshop", &tok)

	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().
		PublishAttendanceRecorded(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down")).
		Times(1)

	svc := checkin.NewService(s, publisher, adapter.NewClock(), checkin.Config{})
	defer svc.Close()

	caller := &identity.Caller{Subject: "sub-judy", DisplayName: "Judy"}
	for _, want := range []domain.Outcome{domain.OutcomeRecorded, domain.OutcomeAlreadyRecorded} {
		r, err := svc.Redeem(context.Background(), checkin.RedeemRequest{EventID: event.ID, Token: tok, Caller: caller})
		require.NoError(t, err)
		assert.Equal(t, want, r.Outcome)
	}
}

func TestRedeem_StoreUnavailable(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEvent(gomock.Any(), "ev-1").Return(nil, errors.New("connection refused"))

		svc := checkin.NewService(st, nil, adapter.NewClock(), checkin.Config{})
		defer svc.Close()

		_, err := svc.Redeem(context.Background(), checkin.RedeemRequest{EventID: "ev-1", Token: "t"})
		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	})

	t.Run("ledger error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tok := "tok"
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEvent(gomock.Any(), "ev-1").Return(&schema.Event{ID: "ev-1", CurrentToken: &tok}, nil)
		st.EXPECT().GetMemberBySubject(gomock.Any(), "sub-1").Return(nil, nil)
		st.EXPECT().RecordIfAbsent(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("disk full"))

		svc := checkin.NewService(st, nil, adapter.NewClock(), checkin.Config{})
		defer svc.Close()

		_, err := svc.Redeem(context.Background(), checkin.RedeemRequest{
			EventID: "ev-1",
			Token:   tok,
			Caller:  &identity.Caller{Subject: "sub-1", DisplayName: "One"},
		})
		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	})

	t.Run("slow store times out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEvent(gomock.Any(), "ev-1").DoAndReturn(func(ctx context.Context, _ string) (*schema.Event, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

		svc := checkin.NewService(st, nil, adapter.NewClock(), checkin.Config{StoreTimeout: 20 * time.Millisecond})
		defer svc.Close()

		_, err := svc.Redeem(context.Background(), checkin.RedeemRequest{EventID: "ev-1", Token: "t"})
		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestSingleValidityUnderRotation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	previous := f.rotate(t)
	for i := 0; i < 5; i++ {
		current := f.rotate(t)
		caller := &identity.Caller{Subject: "sub-loop", DisplayName: "Loop Participant"}

		_, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: previous, Caller: caller})
		assert.True(t, errors.Is(err, domain.ErrTokenStale))

		r, err := f.service.Redeem(ctx, checkin.RedeemRequest{EventID: f.event.ID, Token: current, Caller: caller})
		require.NoError(t, err)
		assert.Contains(t, []domain.Outcome{domain.OutcomeRecorded, domain.OutcomeAlreadyRecorded}, r.Outcome)

		previous = current
	}
}
