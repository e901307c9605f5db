// Package cache memoriza resultados del solver en Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/pkg/config"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

const keyPrefix = "roas:solve:"

var _ simulation.ResultCache = (*RedisResultCache)(nil)

// RedisResultCache guarda profitability.Result como JSON con TTL.
type RedisResultCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewClient crea el cliente de go-redis a partir de la configuración.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})
}

// NewRedisResultCache construye la caché sobre cualquier redis.Cmdable (cliente, cluster o ring).
// ttl <= 0 usa 10 minutos.
func NewRedisResultCache(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *RedisResultCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisResultCache{client: client, ttl: ttl, log: log.Component("result_cache")}
}

// Ping verifica la conexión al arrancar.
func (c *RedisResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente si admite cierre.
func (c *RedisResultCache) Close() {
	if closer, ok := c.client.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Get devuelve (resultado, true) si la clave existe.
func (c *RedisResultCache) Get(ctx context.Context, in profitability.CostInputs) (profitability.Result, bool, error) {
	key, err := Key(in)
	if err != nil {
		return profitability.Result{}, false, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return profitability.Result{}, false, nil
	}
	if err != nil {
		return profitability.Result{}, false, fmt.Errorf("cache get: %w", err)
	}

	var res profitability.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return profitability.Result{}, false, fmt.Errorf("cache unmarshal: %w", err)
	}
	c.log.Debug().Str("key", key).Msg("hit")
	return res, true, nil
}

// Set guarda el resultado con el TTL configurado.
func (c *RedisResultCache) Set(ctx context.Context, in profitability.CostInputs, res profitability.Result) error {
	key, err := Key(in)
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Key arma la clave a partir de las entradas que afectan a Solve.
// El ROAS observado no cambia la tabla, así que no forma parte de la clave.
func Key(in profitability.CostInputs) (string, error) {
	in.CurrentRoas = nil
	if in.InvoicedSharePercent == nil {
		full := 100.0
		in.InvoicedSharePercent = &full
	}
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}
