package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/repository"
)

type users struct{ v *view }

func (r users) Create(ctx context.Context, telegramID int64, username string) (*model.User, error) {
	var out model.User
	err := r.v.write(func(st *state) error {
		if _, ok := st.users[telegramID]; ok {
			return repository.ErrDuplicate
		}
		now := r.v.store.now()
		out = model.User{TelegramID: telegramID, Username: username, Base: model.Base{CreatedAt: now, UpdatedAt: now}}
		st.users[telegramID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r users) GetByID(ctx context.Context, telegramID int64) (*model.User, error) {
	var out model.User
	err := r.v.read(func(st *state) error {
		u, ok := st.users[telegramID]
		if !ok {
			return repository.ErrUserNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r users) UpdateUsername(ctx context.Context, telegramID int64, username string) error {
	return r.v.write(func(st *state) error {
		u, ok := st.users[telegramID]
		if !ok {
			return repository.ErrUserNotFound
		}
		u.Username = username
		u.UpdatedAt = r.v.store.now()
		st.users[telegramID] = u
		return nil
	})
}

func (r users) Exists(ctx context.Context, telegramID int64) (bool, error) {
	var exists bool
	err := r.v.read(func(st *state) error {
		_, exists = st.users[telegramID]
		return nil
	})
	return exists, err
}

type words struct{ v *view }

func (r words) Create(ctx context.Context, solution string, date time.Time) (*model.WordOfDay, error) {
	var out model.WordOfDay
	err := r.v.write(func(st *state) error {
		for _, w := range st.words {
			if w.GeneratedDate.Equal(date) {
				return repository.ErrDuplicate
			}
		}
		now := r.v.store.now()
		out = model.WordOfDay{
			ID:            st.id(),
			SolutionWord:  solution,
			GeneratedDate: date,
			Base:          model.Base{CreatedAt: now, UpdatedAt: now},
		}
		st.words[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r words) GetByDate(ctx context.Context, date time.Time) (*model.WordOfDay, error) {
	var out *model.WordOfDay
	err := r.v.read(func(st *state) error {
		for _, w := range st.words {
			if w.GeneratedDate.Equal(date) {
				out = &w
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r words) GetByID(ctx context.Context, id int64) (*model.WordOfDay, error) {
	var out model.WordOfDay
	err := r.v.read(func(st *state) error {
		w, ok := st.words[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type hintTypes struct{ v *view }

// codeTaken reports whether code collides with a type other than exceptID.
func codeTaken(st *state, code string, exceptID int64) bool {
	for id, ht := range st.hintTypes {
		if id != exceptID && strings.EqualFold(ht.Code, code) {
			return true
		}
	}
	return false
}

func (r hintTypes) Create(ctx context.Context, code, displayName string) (*model.HintType, error) {
	var out model.HintType
	err := r.v.write(func(st *state) error {
		if codeTaken(st, code, 0) {
			return repository.ErrDuplicate
		}
		now := r.v.store.now()
		out = model.HintType{
			ID:          st.id(),
			Code:        code,
			DisplayName: displayName,
			State:       model.Active{},
			Base:        model.Base{CreatedAt: now, UpdatedAt: now},
		}
		st.hintTypes[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r hintTypes) GetByCode(ctx context.Context, code string) (*model.HintType, error) {
	var out *model.HintType
	err := r.v.read(func(st *state) error {
		for _, ht := range st.hintTypes {
			if strings.EqualFold(ht.Code, code) {
				out = &ht
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r hintTypes) GetByID(ctx context.Context, id int64) (*model.HintType, error) {
	var out model.HintType
	err := r.v.read(func(st *state) error {
		ht, ok := st.hintTypes[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = ht
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r hintTypes) List(ctx context.Context, includeDeleted bool) ([]*model.HintType, error) {
	var out []*model.HintType
	err := r.v.read(func(st *state) error {
		for _, ht := range st.hintTypes {
			if includeDeleted || ht.IsActive() {
				out = append(out, &ht)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *model.HintType) int { return strings.Compare(a.Code, b.Code) })
	return out, err
}

func (r hintTypes) Update(ctx context.Context, ht *model.HintType) (*model.HintType, error) {
	var out model.HintType
	err := r.v.write(func(st *state) error {
		current, ok := st.hintTypes[ht.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if codeTaken(st, ht.Code, ht.ID) {
			return repository.ErrDuplicate
		}
		current.Code = ht.Code
		current.DisplayName = ht.DisplayName
		current.State = ht.State
		if current.State == nil {
			current.State = model.Active{}
		}
		current.UpdatedAt = r.v.store.now()
		st.hintTypes[ht.ID] = current
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type wordHints struct{ v *view }

func findWordHint(st *state, wordOfDayID, hintTypeID int64) (model.WordHint, bool) {
	for _, wh := range st.wordHints {
		if wh.WordOfDayID == wordOfDayID && wh.HintTypeID == hintTypeID {
			return wh, true
		}
	}
	return model.WordHint{}, false
}

func (r wordHints) Create(ctx context.Context, wordOfDayID, hintTypeID int64, text string) (*model.WordHint, error) {
	var out model.WordHint
	err := r.v.write(func(st *state) error {
		if _, ok := st.words[wordOfDayID]; !ok {
			return fmt.Errorf("word of day %d: %w", wordOfDayID, repository.ErrNotFound)
		}
		if _, ok := st.hintTypes[hintTypeID]; !ok {
			return fmt.Errorf("hint type %d: %w", hintTypeID, repository.ErrNotFound)
		}
		if _, ok := findWordHint(st, wordOfDayID, hintTypeID); ok {
			return repository.ErrDuplicate
		}
		now := r.v.store.now()
		out = model.WordHint{
			ID:          st.id(),
			WordOfDayID: wordOfDayID,
			HintTypeID:  hintTypeID,
			Text:        text,
			Base:        model.Base{CreatedAt: now, UpdatedAt: now},
		}
		st.wordHints[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r wordHints) Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, error) {
	var out model.WordHint
	err := r.v.read(func(st *state) error {
		wh, ok := findWordHint(st, wordOfDayID, hintTypeID)
		if !ok {
			return repository.ErrNotFound
		}
		out = wh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r wordHints) Exists(ctx context.Context, wordOfDayID, hintTypeID int64) (bool, error) {
	_, err := r.Get(ctx, wordOfDayID, hintTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type sessions struct{ v *view }

func findSession(st *state, userID int64, date time.Time) (model.GameSession, bool) {
	for _, s := range st.sessions {
		if s.UserID == userID && s.GameDate.Equal(date) {
			return s, true
		}
	}
	return model.GameSession{}, false
}

func (r sessions) Create(ctx context.Context, s *model.GameSession) (*model.GameSession, error) {
	var out model.GameSession
	err := r.v.write(func(st *state) error {
		if _, ok := st.users[s.UserID]; !ok {
			return fmt.Errorf("user %d: %w", s.UserID, repository.ErrUserNotFound)
		}
		if _, ok := st.words[s.WordOfDayID]; !ok {
			return fmt.Errorf("word of day %d: %w", s.WordOfDayID, repository.ErrNotFound)
		}
		if s.RemainingLives < 0 {
			return fmt.Errorf("remaining lives must not be negative, got %d", s.RemainingLives)
		}
		if _, ok := findSession(st, s.UserID, s.GameDate); ok {
			return repository.ErrDuplicate
		}
		now := r.v.store.now()
		out = *s
		out.ID = st.id()
		out.Base = model.Base{CreatedAt: now, UpdatedAt: now}
		st.sessions[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r sessions) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error) {
	var out model.GameSession
	err := r.v.read(func(st *state) error {
		s, ok := findSession(st, userID, date)
		if !ok {
			return repository.ErrNotFound
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByUserAndDateForUpdate needs no extra locking: transactions already run
// one at a time.
func (r sessions) GetByUserAndDateForUpdate(ctx context.Context, userID int64, date time.Time) (*model.GameSession, error) {
	return r.GetByUserAndDate(ctx, userID, date)
}

func (r sessions) Update(ctx context.Context, s *model.GameSession) error {
	return r.v.write(func(st *state) error {
		current, ok := st.sessions[s.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if s.RemainingLives < 0 {
			return fmt.Errorf("remaining lives must not be negative, got %d", s.RemainingLives)
		}
		current.RemainingLives = s.RemainingLives
		current.Status = s.Status
		current.UpdatedAt = r.v.store.now()
		st.sessions[s.ID] = current
		return nil
	})
}

func (r sessions) Ranking(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	var out []*model.DailyRank
	err := r.v.read(func(st *state) error {
		for _, s := range st.sessions {
			if !s.GameDate.Equal(date) || s.Status != model.StatusWon {
				continue
			}
			rank := &model.DailyRank{
				UserID:         s.UserID,
				Username:       st.users[s.UserID].Username,
				RemainingLives: s.RemainingLives,
				FinishedAt:     s.UpdatedAt,
			}
			for _, g := range st.guesses {
				if g.GameSessionID == s.ID {
					rank.Guesses++
				}
			}
			for _, h := range st.hints {
				if h.GameSessionID == s.ID {
					rank.HintsUsed++
				}
			}
			out = append(out, rank)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *model.DailyRank) int {
		return cmp.Or(
			cmp.Compare(a.Guesses, b.Guesses),
			cmp.Compare(a.HintsUsed, b.HintsUsed),
			a.FinishedAt.Compare(b.FinishedAt),
			cmp.Compare(a.UserID, b.UserID),
		)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

type guesses struct{ v *view }

func (r guesses) Create(ctx context.Context, g *model.Guess) (*model.Guess, error) {
	var out model.Guess
	err := r.v.write(func(st *state) error {
		if _, ok := st.sessions[g.GameSessionID]; !ok {
			return fmt.Errorf("game session %d: %w", g.GameSessionID, repository.ErrNotFound)
		}
		out = model.Guess{
			ID:               st.id(),
			GameSessionID:    g.GameSessionID,
			GuessedWord:      g.GuessedWord,
			CorrectPositions: slices.Clone(g.CorrectPositions),
			MissedPositions:  slices.Clone(g.MissedPositions),
			CreatedAt:        r.v.store.now(),
		}
		st.guesses[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cloneGuess(out), nil
}

func cloneGuess(g model.Guess) *model.Guess {
	g.CorrectPositions = slices.Clone(g.CorrectPositions)
	g.MissedPositions = slices.Clone(g.MissedPositions)
	return &g
}

func (r guesses) ListBySession(ctx context.Context, sessionID int64) ([]*model.Guess, error) {
	var out []*model.Guess
	err := r.v.read(func(st *state) error {
		for _, g := range st.guesses {
			if g.GameSessionID == sessionID {
				out = append(out, cloneGuess(g))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *model.Guess) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

func (r guesses) CountBySession(ctx context.Context, sessionID int64) (int, error) {
	count := 0
	err := r.v.read(func(st *state) error {
		for _, g := range st.guesses {
			if g.GameSessionID == sessionID {
				count++
			}
		}
		return nil
	})
	return count, err
}

type hints struct{ v *view }

func (r hints) Create(ctx context.Context, h *model.Hint) (*model.Hint, error) {
	var out model.Hint
	err := r.v.write(func(st *state) error {
		if _, ok := st.sessions[h.GameSessionID]; !ok {
			return fmt.Errorf("game session %d: %w", h.GameSessionID, repository.ErrNotFound)
		}
		if _, ok := st.wordHints[h.WordHintID]; !ok {
			return fmt.Errorf("word hint %d: %w", h.WordHintID, repository.ErrNotFound)
		}
		for _, existing := range st.hints {
			if existing.GameSessionID == h.GameSessionID && existing.HintTypeID == h.HintTypeID {
				return repository.ErrDuplicate
			}
		}
		out = model.Hint{
			ID:            st.id(),
			GameSessionID: h.GameSessionID,
			WordHintID:    h.WordHintID,
			HintTypeID:    h.HintTypeID,
			UsedAt:        r.v.store.now(),
		}
		st.hints[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r hints) ExistsForSessionAndType(ctx context.Context, sessionID, hintTypeID int64) (bool, error) {
	exists := false
	err := r.v.read(func(st *state) error {
		for _, h := range st.hints {
			if h.GameSessionID == sessionID && h.HintTypeID == hintTypeID {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r hints) CountByUserAndDate(ctx context.Context, userID int64, date time.Time) (int, error) {
	count := 0
	err := r.v.read(func(st *state) error {
		s, ok := findSession(st, userID, date)
		if !ok {
			return nil
		}
		for _, h := range st.hints {
			if h.GameSessionID == s.ID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r hints) ListUsedBySession(ctx context.Context, sessionID int64) ([]model.UsedHint, error) {
	type row struct {
		id   int64
		used model.UsedHint
	}
	var rows []row
	err := r.v.read(func(st *state) error {
		for _, h := range st.hints {
			if h.GameSessionID != sessionID {
				continue
			}
			ht := st.hintTypes[h.HintTypeID]
			rows = append(rows, row{id: h.ID, used: model.UsedHint{
				TypeCode:    ht.Code,
				DisplayName: ht.DisplayName,
				Text:        st.wordHints[h.WordHintID].Text,
				UsedAt:      h.UsedAt,
			}})
		}
		return nil
	})
	slices.SortFunc(rows, func(a, b row) int {
		return cmp.Or(a.used.UsedAt.Compare(b.used.UsedAt), cmp.Compare(a.id, b.id))
	})
	out := make([]model.UsedHint, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.used)
	}
	return out, err
}
