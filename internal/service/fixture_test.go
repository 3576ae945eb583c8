package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/repository/memory"
	"daily-word-bot/internal/textgen"
)

// stubGen is a scriptable text backend.
type stubGen struct {
	mu        sync.Mutex
	word      string
	wordErr   error
	wordCalls int
	hints     map[string]string
	hintErrs  map[string]error
	hintCalls int
	reply     string
	replyErr  error
	replyIns  []textgen.ReplyInput
}

func (g *stubGen) GenerateWord(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.wordCalls++
	return g.word, g.wordErr
}

func (g *stubGen) GenerateHintText(ctx context.Context, word, code string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hintCalls++
	if err := g.hintErrs[code]; err != nil {
		return "", err
	}
	if text, ok := g.hints[code]; ok {
		return text, nil
	}
	return fmt.Sprintf("%s hint for %s", code, word), nil
}

func (g *stubGen) GenerateGuessReply(ctx context.Context, in textgen.ReplyInput) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replyIns = append(g.replyIns, in)
	return g.reply, g.replyErr
}

func (g *stubGen) calls() (words, hints int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.wordCalls, g.hintCalls
}

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	clock    *clock.MockClock
	gen      *stubGen
	rules    game.Rules
	words    *WordOfDayService
	bank     *HintBank
	sessions *SessionService
	catalog  *HintCatalogService
	accounts *AccountService
	ranking  *RankingService
}

func newFixture(t *testing.T, rules game.Rules) *fixture {
	t.Helper()
	return buildFixture(rules)
}

func buildFixture(rules game.Rules) *fixture {
	clk := clock.NewMock(testNow)
	store := memory.New(memory.WithClock(clk))
	gen := &stubGen{word: "crane", reply: "Nice try!"}
	fallback := textgen.NewLocal([]string{"PLANT"}, rules.MaxWordLength)

	bank := NewHintBank(store, gen, nil)
	words := NewWordOfDayService(store, gen, fallback, bank, clk, rules)

	return &fixture{
		store:    store,
		clock:    clk,
		gen:      gen,
		rules:    rules,
		words:    words,
		bank:     bank,
		sessions: NewSessionService(store, words, bank, gen, rules),
		catalog:  NewHintCatalogService(store, clk),
		accounts: NewAccountService(store),
		ranking:  NewRankingService(store, clk),
	}
}

// player registers a user and opens today's session.
func (f *fixture) player(t *testing.T, id int64, name string) *SessionView {
	t.Helper()
	ctx := context.Background()

	_, _, err := f.accounts.EnsureUser(ctx, id, name)
	require.NoError(t, err)
	view, err := f.sessions.GetOrCreateSession(ctx, id)
	require.NoError(t, err)
	return view
}

func (f *fixture) hintType(t *testing.T, code string) *model.HintType {
	t.Helper()
	ht, err := f.catalog.Create(context.Background(), code, "")
	require.NoError(t, err)
	return ht
}

func (f *fixture) session(t *testing.T, userID int64) *model.GameSession {
	t.Helper()
	sess, err := f.store.Sessions().GetByUserAndDate(context.Background(), userID, clock.Today(f.clock))
	require.NoError(t, err)
	return sess
}

func requireKind(t *testing.T, err error, kind game.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := game.KindOf(err)
	require.True(t, ok, "expected a game error of kind %s, got %v", kind, err)
	require.Equal(t, kind, got, err.Error())
}
