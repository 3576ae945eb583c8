// Property-based tests for AccountService.
package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/repository/memory"
)

func TestEnsureUser(t *testing.T) {
	f := newFixture(t, game.DefaultRules())
	ctx := context.Background()

	u, created, err := f.accounts.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", u.Username)

	u, created, err = f.accounts.EnsureUser(ctx, 42, "alice_renamed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice_renamed", u.Username)

	// An empty username keeps the stored one.
	u, _, err = f.accounts.EnsureUser(ctx, 42, "")
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", u.Username)

	stored, err := f.accounts.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", stored.Username)
}

func TestEnsureUser_Concurrent(t *testing.T) {
	svc := NewAccountService(memory.New())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, c, err := svc.EnsureUser(context.Background(), 7, "bob")
			assert.NoError(t, err)
			if c {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

// TestEnsureUserLastNameWinsProperty checks that after any sequence of
// EnsureUser calls the stored username is the last non-empty one given.
func TestEnsureUserLastNameWinsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc := NewAccountService(memory.New())
		ctx := context.Background()
		names := rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,6}`), 1, 10).Draw(t, "names")

		want := ""
		for i, name := range names {
			_, created, err := svc.EnsureUser(ctx, 1, name)
			if err != nil {
				t.Fatalf("EnsureUser: %v", err)
			}
			if created != (i == 0) {
				t.Fatalf("call %d: created=%v", i, created)
			}
			if i == 0 || name != "" {
				want = name
			}
		}

		u, err := svc.GetUser(ctx, 1)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.Username != want {
			t.Fatalf("username = %q, want %q", u.Username, want)
		}
	})
}
