package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/testkit"
	dispatch "mvpauth/internal/services/dispatch/domain"
	dom "mvpauth/internal/services/journal/domain"
	"mvpauth/internal/services/journal/repo"

	"github.com/jackc/pgx/v5/pgconn"
)

type failingRepo struct{ repo.Memory }

func (f *failingRepo) Append(context.Context, dom.Entry) error { return errors.New("disk full") }

func fixedClock(t *testing.T) {
	t.Helper()
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	n := 0
	testkit.Swap(t, &now, func() time.Time { n++; return at.Add(time.Duration(n) * time.Second) })
	testkit.Swap(t, &newID, func() string { return "id" })
}

func TestRecord_StoresRouteOutcomeReasonOnly(t *testing.T) {
	testkit.Serial(t)
	fixedClock(t)

	s := New(repo.NewMemory(10))
	ctx := context.Background()
	s.RecordDispatch(ctx, dispatch.Outcome{
		Kind:    dispatch.Rejected,
		Reason:  dispatch.ReasonEmptyToken,
		Message: dispatch.MsgEmptyToken,
		Err:     errors.New("token=abc"),
	})
	s.RecordDispatch(ctx, dispatch.Outcome{Kind: dispatch.Dispatched, Route: dispatch.RouteBackground})
	s.RecordResult(ctx, "APPROVED", 1)

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Kind != dom.KindResult || got[0].Result != "APPROVED" || got[0].Delivered != 1 {
		t.Fatalf("newest = %+v", got[0])
	}
	if got[1].Route != "background" || got[1].Outcome != "dispatched" {
		t.Fatalf("dispatch = %+v", got[1])
	}
	if got[2].Reason != "empty_token" || got[2].Result != "" || got[2].ID != "id" || got[2].At.IsZero() {
		t.Fatalf("rejection = %+v", got[2])
	}
}

func TestRecent_Limits(t *testing.T) {
	s := New(repo.NewMemory(dom.MaxLimit))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.RecordResult(ctx, "x", 0)
	}
	got, _ := s.Recent(ctx, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	got, _ = s.Recent(ctx, dom.MaxLimit*10)
	if len(got) != 5 {
		t.Fatalf("len = %d", len(got))
	}
}

func TestRecord_StorageErrorIsSwallowed(t *testing.T) {
	s := New(&failingRepo{})
	s.RecordResult(context.Background(), "APPROVED", 1)
}

func TestNew_NilRepoPanics(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil) })
}

type flakyRepo struct {
	*repo.Memory
	fails int
	calls int
}

func (f *flakyRepo) Append(ctx context.Context, e dom.Entry) error {
	f.calls++
	if f.calls <= f.fails {
		return perr.FromPostgres(&pgconn.PgError{Code: "40001"}, "journal append")
	}
	return f.Memory.Append(ctx, e)
}

func TestRecord_RetriesTransientFailureOnce(t *testing.T) {
	ctx := context.Background()

	once := &flakyRepo{Memory: repo.NewMemory(10), fails: 1}
	New(once).RecordResult(ctx, "APPROVED", 1)
	got, _ := once.Recent(ctx, 10)
	if once.calls != 2 || len(got) != 1 {
		t.Fatalf("calls = %d entries = %d", once.calls, len(got))
	}

	twice := &flakyRepo{Memory: repo.NewMemory(10), fails: 2}
	New(twice).RecordResult(ctx, "APPROVED", 1)
	got, _ = twice.Recent(ctx, 10)
	if twice.calls != 2 || len(got) != 0 {
		t.Fatalf("calls = %d entries = %d", twice.calls, len(got))
	}
}
