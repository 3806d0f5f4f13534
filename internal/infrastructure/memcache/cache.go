package memcache

import (
	"sync"

	"github.com/tu-usuario/mini-crm/internal/application/cache"
)

var _ cache.Store = (*Cache)(nil)

// Cache adaptador en memoria del puerto de caché: un mapa por tipo de agregado
// bajo un RWMutex. Es el default cuando no hay Redis configurado y el doble
// usado en tests. La instancia se construye en el bootstrap y se inyecta;
// no hay estado global de proceso.
type Cache struct {
	mu    sync.RWMutex
	types map[string]map[string][]byte
}

// New construye el caché en memoria vacío.
func New() *Cache {
	return &Cache{types: make(map[string]map[string][]byte)}
}

// Get devuelve el valor cacheado o miss.
func (c *Cache) Get(typ, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, ok := c.types[typ]
	if !ok {
		return nil, false
	}
	v, ok := entries[key]
	return v, ok
}

// Set guarda el valor bajo (tipo, clave).
func (c *Cache) Set(typ, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.types[typ]
	if !ok {
		entries = make(map[string][]byte)
		c.types[typ] = entries
	}
	entries[key] = value
}

// InvalidateTypes elimina todas las claves de los tipos indicados.
func (c *Cache) InvalidateTypes(types ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, typ := range types {
		delete(c.types, typ)
	}
}
