package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tmsim/pkg/adapters/redis"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunReportStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	report := domain.NewReport("", nil)
	require.NoError(t, store.Save(context.Background(), report))

	assert.True(t, mr.Exists("test:"+report.ID))
	assert.True(t, mr.Exists("test:index"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	report := domain.NewReport("ttl.txt", []domain.Result{{Input: "0", Verdict: domain.Accept}})
	require.NoError(t, store.Save(ctx, report))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, report.ID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
