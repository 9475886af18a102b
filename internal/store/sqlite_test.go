package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ashureev/scaffolder/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "data", "tutor.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func countProfiles(t *testing.T, s *SQLiteStore) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM user_profiles`).Scan(&n); err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	return n
}

func TestSaveProfileIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	ctx := context.Background()

	level := domain.UserLevel{EmpState: 2, AseState: 4, IntState: 6}
	for range 2 {
		if err := s.SaveProfile(ctx, &domain.UserProfile{UserName: "민지", Level: level}); err != nil {
			t.Fatalf("SaveProfile: %v", err)
		}
	}

	if n := countProfiles(t, s); n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	got, err := s.GetProfile(ctx, "민지")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil || got.Level != level {
		t.Fatalf("unexpected profile %+v", got)
	}
	if !got.LastUpdated.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("LastUpdated = %v", got.LastUpdated)
	}
}

func TestSaveProfileOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.UserProfile{UserName: "준호", Level: domain.UserLevel{EmpState: 1, AseState: 1, IntState: 1}}
	if err := s.SaveProfile(ctx, first); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	second := &domain.UserProfile{UserName: "준호", Level: domain.UserLevel{EmpState: 3, AseState: 9, IntState: 0}}
	if err := s.SaveProfile(ctx, second); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := s.GetProfile(ctx, "준호")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	want := domain.UserLevel{EmpState: 3, AseState: 6, IntState: 1}
	if got.Level != want {
		t.Fatalf("Level = %+v, want %+v", got.Level, want)
	}
	if second.Level != want {
		t.Fatalf("saved profile not updated with clamped level: %+v", second.Level)
	}
}

func TestGetProfileUnknownDoesNotWrite(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetProfile(context.Background(), "처음 온 사람")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil profile, got %+v", got)
	}
	if n := countProfiles(t, s); n != 0 {
		t.Fatalf("lookup wrote %d rows", n)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestIsBusy(t *testing.T) {
	cases := map[string]bool{
		"database is locked (5) (SQLITE_BUSY)": true,
		"SQLITE_BUSY":                          true,
		"database is locked":                   true,
		"no such table: user_profiles":         false,
	}
	for msg, want := range cases {
		if got := IsBusy(errors.New(msg)); got != want {
			t.Fatalf("IsBusy(%q) = %v, want %v", msg, got, want)
		}
	}
	if IsBusy(nil) {
		t.Fatal("IsBusy(nil) = true")
	}
}

func TestNewSQLiteUsesWAL(t *testing.T) {
	s := newTestStore(t)

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := s.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Fatalf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestConcurrentSaves(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers, rounds = 8, 25
	errs := make(chan error, writers*rounds)
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				p := &domain.UserProfile{
					UserName: fmt.Sprintf("reader-%d", w),
					Level:    domain.UserLevel{EmpState: r%6 + 1, AseState: 2, IntState: 3},
				}
				if err := s.SaveProfile(ctx, p); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		t.Fatalf("failed saves: %d/%d, first: %v", failed, writers*rounds, first)
	}

	var rows int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM user_profiles").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != writers {
		t.Fatalf("rows = %d, want %d", rows, writers)
	}
}
