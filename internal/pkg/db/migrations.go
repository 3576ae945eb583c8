package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type migration struct {
	name string
	sql  string
}

// All statements are idempotent, so Migrate can run on every start.
var migrations = []migration{
	{
		name: "users table",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			telegram_id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		name: "word_of_day table",
		sql: `
		CREATE TABLE IF NOT EXISTS word_of_day (
			id BIGSERIAL PRIMARY KEY,
			solution_word VARCHAR(64) NOT NULL,
			generated_date DATE NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		name: "hint_types table",
		sql: `
		CREATE TABLE IF NOT EXISTS hint_types (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(64) NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_hint_types_code_upper ON hint_types (UPPER(code));`,
	},
	{
		name: "word_hints table",
		sql: `
		CREATE TABLE IF NOT EXISTS word_hints (
			id BIGSERIAL PRIMARY KEY,
			word_of_day_id BIGINT NOT NULL REFERENCES word_of_day(id) ON DELETE CASCADE,
			hint_type_id BIGINT NOT NULL REFERENCES hint_types(id),
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (word_of_day_id, hint_type_id)
		);`,
	},
	{
		name: "game_sessions table",
		sql: `
		CREATE TABLE IF NOT EXISTS game_sessions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(telegram_id) ON DELETE CASCADE,
			game_date DATE NOT NULL,
			remaining_lives INT NOT NULL CHECK (remaining_lives >= 0),
			status VARCHAR(16) NOT NULL,
			word_of_day_id BIGINT NOT NULL REFERENCES word_of_day(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, game_date)
		);
		CREATE INDEX IF NOT EXISTS idx_game_sessions_date_status ON game_sessions(game_date, status);`,
	},
	{
		name: "guesses table",
		sql: `
		CREATE TABLE IF NOT EXISTS guesses (
			id BIGSERIAL PRIMARY KEY,
			game_session_id BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
			guessed_word VARCHAR(64) NOT NULL,
			correct_positions INT[] NOT NULL DEFAULT '{}',
			missed_positions INT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_guesses_session ON guesses(game_session_id, id);`,
	},
	{
		name: "hints table",
		sql: `
		CREATE TABLE IF NOT EXISTS hints (
			id BIGSERIAL PRIMARY KEY,
			game_session_id BIGINT NOT NULL REFERENCES game_sessions(id) ON DELETE CASCADE,
			word_hint_id BIGINT NOT NULL REFERENCES word_hints(id),
			hint_type_id BIGINT NOT NULL REFERENCES hint_types(id),
			used_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (game_session_id, hint_type_id)
		);`,
	},
}

// Migrate applies the database schema.
func Migrate(ctx context.Context, q Querier) error {
	log.Info().Msg("Running database migrations...")

	for i, m := range migrations {
		if _, err := q.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i+1, m.name, err)
		}
		log.Info().Int("step", i+1).Msgf("Migration %d: %s created", i+1, m.name)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
