package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qszone/naviguard/internal/storage"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	store := storage.New(storage.NewMemoryMedium(), "Test_")
	return New(NewTokenStore(store, "access_token", 6*time.Hour))
}

func TestTokenStore_RoundTrip(t *testing.T) {
	s := newTestSession(t)

	if _, ok := s.Token(); ok {
		t.Error("Token() found a credential in a fresh session")
	}

	if err := s.SetToken("tok-abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	tok, ok := s.Token()
	if !ok || tok != "tok-abc" {
		t.Errorf("Token() = (%q, %v), want (tok-abc, true)", tok, ok)
	}

	// Overwrite wins.
	if err := s.SetToken("tok-def"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	tok, _ = s.Token()
	if tok != "tok-def" {
		t.Errorf("Token() after overwrite = %q, want tok-def", tok)
	}
}

func TestSession_LoadPrincipal_CachesResult(t *testing.T) {
	s := newTestSession(t)

	var calls atomic.Int32
	fetch := func(context.Context) (*Principal, error) {
		calls.Add(1)
		return &Principal{ID: 1, Name: "admin", Role: []string{"admin"}}, nil
	}

	p, err := s.LoadPrincipal(context.Background(), fetch)
	if err != nil {
		t.Fatalf("LoadPrincipal() error = %v", err)
	}
	if p.Name != "admin" {
		t.Errorf("principal name = %q, want admin", p.Name)
	}

	// Second load short-circuits on the cached principal.
	if _, err := s.LoadPrincipal(context.Background(), fetch); err != nil {
		t.Fatalf("second LoadPrincipal() error = %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("fetch called %d times, want 1", got)
	}
}

func TestSession_LoadPrincipal_Singleflight(t *testing.T) {
	s := newTestSession(t)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (*Principal, error) {
		calls.Add(1)
		<-release
		return &Principal{ID: 1, Name: "admin"}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.LoadPrincipal(context.Background(), fetch); err != nil {
				t.Errorf("LoadPrincipal() error = %v", err)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond) // let workers pile onto the flight
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("fetch called %d times under contention, want 1", got)
	}
}

func TestSession_Reset_DiscardsLateFetch(t *testing.T) {
	s := newTestSession(t)

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(context.Context) (*Principal, error) {
		close(started)
		<-release
		return &Principal{ID: 1, Name: "admin"}, nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := s.LoadPrincipal(context.Background(), fetch)
		errCh <- err
	}()

	<-started
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	close(release)

	if err := <-errCh; !errors.Is(err, ErrSessionReset) {
		t.Errorf("LoadPrincipal() error = %v, want ErrSessionReset", err)
	}
	if _, ok := s.Principal(); ok {
		t.Error("late fetch result repopulated a reset session")
	}
}

func TestSession_Reset_ClearsEverything(t *testing.T) {
	s := newTestSession(t)

	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	s.SetPrincipal(&Principal{ID: 1, Role: []string{"editor"}})

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if _, ok := s.Token(); ok {
		t.Error("credential survived Reset()")
	}
	if _, ok := s.Principal(); ok {
		t.Error("principal survived Reset()")
	}
	if roles := s.Roles(); roles != nil {
		t.Errorf("Roles() after Reset() = %v, want nil", roles)
	}
}
