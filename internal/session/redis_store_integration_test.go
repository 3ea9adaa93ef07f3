package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreIntegrationTestSuite struct {
	suite.Suite
	rdb   *redis.Client
	store *RedisStore
	rc    testcontainers.Container
	ctx   context.Context
}

func (s *RedisStoreIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	rc, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.rc = rc

	addr, err := rc.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.rdb = redis.NewClient(&redis.Options{Addr: addr})
	s.Require().NoError(s.rdb.Ping(s.ctx).Err())
	s.store = NewRedisStore(s.rdb)
}

func (s *RedisStoreIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.rc != nil {
		s.NoError(s.rc.Terminate(s.ctx))
	}
}

func (s *RedisStoreIntegrationTestSuite) TestPutGetDelete() {
	s.Require().NoError(s.store.Put(s.ctx, "tab", []byte(`{"id":1}`), time.Minute))

	raw, err := s.store.Get(s.ctx, "tab")
	s.Require().NoError(err)
	s.JSONEq(`{"id":1}`, string(raw))

	ttl, err := s.rdb.TTL(s.ctx, redisKeyPrefix+"tab").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(s.store.Delete(s.ctx, "tab"))
	_, err = s.store.Get(s.ctx, "tab")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreIntegrationTestSuite) TestManagerTransientScope() {
	m := NewManager(NewMemoryStore(), s.store, 720*time.Hour, 12*time.Hour)

	h, err := m.Save(s.ctx, Keys{}, Transient, []byte(`{"id":7,"role":"GIRL"}`))
	s.Require().NoError(err)

	rec, err := m.Load(s.ctx, Keys{Transient: h.Key})
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.Equal("7", rec.ID.String())
}

func TestRedisStoreIntegrationTestSuite(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("DOCKER_HOST not set, skipping redis integration suite")
	}
	suite.Run(t, new(RedisStoreIntegrationTestSuite))
}
