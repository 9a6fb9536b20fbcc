// Package cache implementa un decorador cache-aside sobre Redis para el catálogo de precios.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/vidrieria-api/internal/application/catalog"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

var (
	_ repository.CatalogRepository = (*CatalogCache)(nil)
	_ catalog.CacheInvalidator     = (*CatalogCache)(nil)
)

const keyPrefix = "vidrieria:catalog:"

// Metrics registra aciertos y fallos de caché (implementado en infrastructure/metrics).
type Metrics interface {
	ObserveCache(kind, result string)
}

// CatalogCache envuelve un CatalogRepository. Un error de Redis nunca falla la lectura:
// se registra y se consulta la base de datos.
type CatalogCache struct {
	inner   repository.CatalogRepository
	client  *redis.Client
	ttl     time.Duration
	sf      singleflight.Group // evita estampidas ante fallos concurrentes
	metrics Metrics
	log     zerolog.Logger
}

// NewCatalogCache construye el decorador. metrics puede ser nil.
func NewCatalogCache(inner repository.CatalogRepository, client *redis.Client, ttl time.Duration, metrics Metrics, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		log:     log.With().Str("component", "catalog_cache").Logger(),
	}
}

func productKey(id string) string { return keyPrefix + "product:" + id }
func serviceKey(id string) string { return keyPrefix + "service:" + id }
func processKey(id string) string { return keyPrefix + "process:" + id }

const processListKey = keyPrefix + "processes:all"

func (c *CatalogCache) observe(kind, result string) {
	if c.metrics != nil {
		c.metrics.ObserveCache(kind, result)
	}
}

// get lee y decodifica una clave. false si no está o si Redis falla.
func (c *CatalogCache) get(ctx context.Context, kind, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observe(kind, "miss")
			return false
		}
		c.observe(kind, "error")
		c.log.Warn().Err(err).Str("key", key).Msg("error leyendo caché")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.observe(kind, "error")
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta")
		return false
	}
	c.observe(kind, "hit")
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar para caché")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
	}
}

// GetProduct cache-aside por ID. Los inexistentes no se cachean.
func (c *CatalogCache) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	key := productKey(id)
	var cached entity.Product
	if c.get(ctx, "product", key, &cached) {
		return &cached, nil
	}
	val, err, _ := c.sf.Do(key, func() (any, error) {
		return c.inner.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	p, _ := val.(*entity.Product)
	if p == nil {
		return nil, nil
	}
	c.set(ctx, key, p)
	return p, nil
}

// GetService cache-aside por ID.
func (c *CatalogCache) GetService(ctx context.Context, id string) (*entity.Service, error) {
	key := serviceKey(id)
	var cached entity.Service
	if c.get(ctx, "service", key, &cached) {
		return &cached, nil
	}
	val, err, _ := c.sf.Do(key, func() (any, error) {
		return c.inner.GetService(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s, _ := val.(*entity.Service)
	if s == nil {
		return nil, nil
	}
	c.set(ctx, key, s)
	return s, nil
}

// GetProcesses lee cada proceso de la caché con MGET y consulta solo los faltantes.
func (c *CatalogCache) GetProcesses(ctx context.Context, ids []string) (map[string]entity.Process, error) {
	out := make(map[string]entity.Process, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = processKey(id)
	}

	var missing []string
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.observe("process", "error")
		c.log.Warn().Err(err).Msg("error leyendo procesos de caché")
		missing = ids
	} else {
		for i, v := range vals {
			s, ok := v.(string)
			var p entity.Process
			if !ok || json.Unmarshal([]byte(s), &p) != nil {
				c.observe("process", "miss")
				missing = append(missing, ids[i])
				continue
			}
			c.observe("process", "hit")
			out[ids[i]] = p
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.inner.GetProcesses(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, p := range loaded {
		out[id] = p
		c.set(ctx, processKey(id), p)
	}
	return out, nil
}

// ListProcesses cachea el listado completo bajo una sola clave.
func (c *CatalogCache) ListProcesses(ctx context.Context) ([]entity.Process, error) {
	var cached []entity.Process
	if c.get(ctx, "process_list", processListKey, &cached) {
		return cached, nil
	}
	val, err, _ := c.sf.Do(processListKey, func() (any, error) {
		return c.inner.ListProcesses(ctx)
	})
	if err != nil {
		return nil, err
	}
	list, _ := val.([]entity.Process)
	c.set(ctx, processListKey, list)
	return list, nil
}

// InvalidateProcesses borra los procesos cacheados y el listado (SCAN + DEL).
func (c *CatalogCache) InvalidateProcesses(ctx context.Context) error {
	return c.deletePattern(ctx, keyPrefix+"process*")
}

// InvalidateAll borra todo el catálogo cacheado.
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	return c.deletePattern(ctx, keyPrefix+"*")
}

func (c *CatalogCache) deletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
