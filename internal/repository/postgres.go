package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daily-word-bot/internal/pkg/db"
)

// Postgres is the PostgreSQL implementation of Store.
type Postgres struct {
	pool *pgxpool.Pool
	*queries
}

var _ Store = (*Postgres)(nil)

// NewPostgres creates a Store backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool, queries: newQueries(pool)}
}

// InTx runs fn in a database transaction.
func (p *Postgres) InTx(ctx context.Context, fn func(Repositories) error) error {
	return db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(newQueries(tx))
	})
}

// queries binds every store to the same Querier.
type queries struct {
	users     *UserRepository
	words     *WordOfDayRepository
	hintTypes *HintTypeRepository
	wordHints *WordHintRepository
	sessions  *SessionRepository
	guesses   *GuessRepository
	hints     *HintRepository
}

func newQueries(q db.Querier) *queries {
	return &queries{
		users:     NewUserRepository(q),
		words:     NewWordOfDayRepository(q),
		hintTypes: NewHintTypeRepository(q),
		wordHints: NewWordHintRepository(q),
		sessions:  NewSessionRepository(q),
		guesses:   NewGuessRepository(q),
		hints:     NewHintRepository(q),
	}
}

func (q *queries) Users() UserStore { return q.users }
func (q *queries) Words() WordOfDayStore { return q.words }
func (q *queries) HintTypes() HintTypeStore { return q.hintTypes }
func (q *queries) WordHints() WordHintStore { return q.wordHints }
func (q *queries) Sessions() SessionStore { return q.sessions }
func (q *queries) Guesses() GuessStore { return q.guesses }
func (q *queries) Hints() HintStore { return q.hints }

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
