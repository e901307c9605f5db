package cache_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/cache"
)

func inputs() profitability.CostInputs {
	return profitability.CostInputs{
		ProductCost:                  50,
		ShippingFixedCost:            10,
		MarketplaceCommissionPercent: 20,
		TaxPercent:                   4,
		TargetMode:                   profitability.FixedPrice,
		TargetValue:                  150,
	}
}

func TestKey_Determinista(t *testing.T) {
	a, err := cache.Key(inputs())
	require.NoError(t, err)
	b, err := cache.Key(inputs())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "roas:solve:"))
	assert.Len(t, strings.TrimPrefix(a, "roas:solve:"), 64)
}

func TestKey_IgnoraRoasObservadoYNormalizaFacturacion(t *testing.T) {
	base, err := cache.Key(inputs())
	require.NoError(t, err)

	withRoas := inputs()
	roas := 7.5
	withRoas.CurrentRoas = &roas
	k, err := cache.Key(withRoas)
	require.NoError(t, err)
	assert.Equal(t, base, k)

	explicit := inputs()
	full := 100.0
	explicit.InvoicedSharePercent = &full
	k, err = cache.Key(explicit)
	require.NoError(t, err)
	assert.Equal(t, base, k)
}

func TestKey_CambiaConLasEntradas(t *testing.T) {
	base, _ := cache.Key(inputs())

	other := inputs()
	other.TargetValue = 151
	k, err := cache.Key(other)
	require.NoError(t, err)
	assert.NotEqual(t, base, k)

	mode := inputs()
	mode.TargetMode = profitability.FixedNetMargin
	k, _ = cache.Key(mode)
	assert.NotEqual(t, base, k)
}

func TestKey_ErrorConValorNoFinito(t *testing.T) {
	bad := inputs()
	bad.TargetValue = math.Inf(1)
	_, err := cache.Key(bad)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / Set
// ──────────────────────────────────────────────────────────────────────────────

// memRedis implementa solo GET y SET de redis.Cmdable; el resto no se usa.
type memRedis struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	b, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("valor no soportado"))
	}
	m.data[key] = string(b)
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestRedisResultCache_MissYLuegoHit(t *testing.T) {
	ctx := context.Background()
	store := newMemRedis()
	c := cache.NewRedisResultCache(store, time.Minute, nil)

	in := inputs()
	in.TargetMode = profitability.FixedNetMargin
	in.TargetValue = 20

	_, ok, err := c.Get(ctx, in)
	require.NoError(t, err)
	assert.False(t, ok)

	want := profitability.Solve(in)
	require.NoError(t, c.Set(ctx, in, want))

	key, err := cache.Key(in)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, store.ttls[key])

	got, ok, err := c.Get(ctx, in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Len(t, got.Rows, 30)
}

func TestRedisResultCache_ResultadoInviableSeConserva(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedisResultCache(newMemRedis(), 0, nil)

	in := inputs()
	in.TargetValue = 0
	require.NoError(t, c.Set(ctx, in, profitability.Solve(in)))

	got, ok, err := c.Get(ctx, in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.Price)
	assert.NotNil(t, got.Rows)
	assert.Empty(t, got.Rows)
}

func TestRedisResultCache_Errores(t *testing.T) {
	ctx := context.Background()
	store := newMemRedis()
	c := cache.NewRedisResultCache(store, time.Minute, nil)

	store.getErr = errors.New("conexión rechazada")
	_, ok, err := c.Get(ctx, inputs())
	assert.Error(t, err)
	assert.False(t, ok)
	store.getErr = nil

	key, _ := cache.Key(inputs())
	store.data[key] = "{no es json"
	_, ok, err = c.Get(ctx, inputs())
	assert.Error(t, err)
	assert.False(t, ok)
}
