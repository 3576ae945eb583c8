package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"daily-word-bot/internal/config"
	"daily-word-bot/internal/model"
)

type HintCacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *HintCache
	ctx   context.Context
}

func TestHintCacheSuite(t *testing.T) {
	suite.Run(t, new(HintCacheSuite))
}

func (s *HintCacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.cache = NewWithClient(client, "test:", time.Hour)
	s.ctx = context.Background()
}

func (s *HintCacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func (s *HintCacheSuite) TestMiss() {
	wh, ok, err := s.cache.Get(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.False(ok)
	s.Nil(wh)
}

func (s *HintCacheSuite) TestSetAndGet() {
	in := &model.WordHint{ID: 42, WordOfDayID: 1, HintTypeID: 2, Text: "A bird with long legs."}
	s.Require().NoError(s.cache.Set(s.ctx, in))

	wh, ok, err := s.cache.Get(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(42), wh.ID)
	s.Equal("A bird with long legs.", wh.Text)

	s.True(s.mini.Exists("test:hint:1:2"))

	_, ok, err = s.cache.Get(s.ctx, 1, 3)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *HintCacheSuite) TestExpires() {
	s.Require().NoError(s.cache.Set(s.ctx, &model.WordHint{WordOfDayID: 7, HintTypeID: 8, Text: "text"}))
	s.mini.FastForward(2 * time.Hour)

	_, ok, err := s.cache.Get(s.ctx, 7, 8)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *HintCacheSuite) TestCorruptEntry() {
	s.Require().NoError(s.mini.Set("test:hint:5:5", "not json"))

	_, _, err := s.cache.Get(s.ctx, 5, 5)
	s.Error(err)
}

func (s *HintCacheSuite) TestServerDown() {
	s.mini.Close()

	_, _, err := s.cache.Get(s.ctx, 1, 2)
	s.Error(err)
	s.Error(s.cache.Set(s.ctx, &model.WordHint{WordOfDayID: 1, HintTypeID: 2}))
}

func (s *HintCacheSuite) TestDefaultPrefix() {
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), "", 0)
	defer c.Close()

	s.Require().NoError(c.Set(s.ctx, &model.WordHint{WordOfDayID: 1, HintTypeID: 1}))
	s.True(s.mini.Exists("dwb:hint:1:1"))
	s.Equal(time.Duration(0), s.mini.TTL("dwb:hint:1:1"))
}

func TestNew(t *testing.T) {
	mini := miniredis.RunT(t)

	c, err := New(config.RedisConfig{URL: "redis://" + mini.Addr(), HintTTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if err := c.Set(context.Background(), &model.WordHint{WordOfDayID: 1, HintTypeID: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := New(config.RedisConfig{URL: "not a url"}); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
