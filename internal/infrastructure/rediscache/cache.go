package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/mini-crm/internal/application/cache"
)

var _ cache.Store = (*Cache)(nil)

// Cache adaptador Redis del puerto de caché. Claves con forma crm:<tipo>:<clave>.
// Es best-effort: cualquier error de red se loguea y se trata como miss / no-op;
// nunca hace fallar la operación del caller.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration // 0 = sin expiración; la coherencia la da la invalidación, no el TTL
}

// New construye el adaptador sobre un cliente Redis.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

const prefix = "crm:"

func fullKey(typ, key string) string {
	return prefix + typ + ":" + key
}

// Get devuelve el valor cacheado o miss.
func (c *Cache) Get(typ, key string) ([]byte, bool) {
	b, err := c.rdb.Get(context.Background(), fullKey(typ, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", fullKey(typ, key)).Msg("redis get falló; se trata como miss")
		return nil, false
	}
	return b, true
}

// Set guarda el valor bajo (tipo, clave).
func (c *Cache) Set(typ, key string, value []byte) {
	if err := c.rdb.Set(context.Background(), fullKey(typ, key), value, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", fullKey(typ, key)).Msg("redis set falló; entrada no cacheada")
	}
}

// InvalidateTypes elimina todas las claves de los tipos indicados (SCAN + DEL por prefijo).
func (c *Cache) InvalidateTypes(types ...string) {
	ctx := context.Background()
	for _, typ := range types {
		iter := c.rdb.Scan(ctx, 0, prefix+typ+":*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				log.Warn().Err(err).Str("key", iter.Val()).Msg("redis del falló durante invalidación")
			}
		}
		if err := iter.Err(); err != nil {
			log.Warn().Err(err).Str("type", typ).Msg("redis scan falló durante invalidación")
		}
	}
}
