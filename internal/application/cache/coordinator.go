package cache

import "encoding/json"

// Coordinator mantiene el caché coherente con las escrituras del store.
// Lecturas: cache-aside (hit devuelve sin tocar el store; miss carga y puebla).
// Escrituras: los casos de uso llaman al método Invalidate* correspondiente
// después de cada mutación confirmada y antes de responder al caller.
//
// La política es deliberadamente gruesa: se invalida el tipo completo en lugar
// de claves precisas. Se pierde hit-rate pero ninguna lectura posterior a una
// escritura confirmada puede devolver datos previos a esa escritura.
type Coordinator struct {
	store Store
}

// NewCoordinator construye el coordinador sobre un Store de caché.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// ReadThrough devuelve el valor cacheado bajo (typ, key) o ejecuta el loader,
// puebla el caché y devuelve el resultado. La población es best-effort: una
// invalidación concurrente inmediatamente posterior es aceptable.
func ReadThrough[T any](c *Coordinator, typ, key string, loader func() (T, error)) (T, error) {
	if b, ok := c.store.Get(typ, key); ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
		// Entrada ilegible: se ignora y se recarga desde el store.
	}
	v, err := loader()
	if err != nil {
		var zero T
		return zero, err
	}
	if b, err := json.Marshal(v); err == nil {
		c.store.Set(typ, key, b)
	}
	return v, nil
}

// CustomerWritten invalida el caché de clientes tras create/update.
func (c *Coordinator) CustomerWritten() {
	c.store.InvalidateTypes(TypeCustomer)
}

// CustomerDeleted invalida clientes, ofertas y tareas: el borrado de un cliente
// cascadea sobre sus ofertas y tareas.
func (c *Coordinator) CustomerDeleted() {
	c.store.InvalidateTypes(TypeCustomer, TypeOffer, TypeTask)
}

// OfferWritten invalida el caché de ofertas tras create/update/cambio de estado.
// No toca clientes: ningún dato de cliente depende del estado de sus ofertas.
func (c *Coordinator) OfferWritten() {
	c.store.InvalidateTypes(TypeOffer)
}

// OfferDeleted invalida ofertas y tareas: el borrado limpia OfferID en las
// tareas dependientes, así que las filas de tareas también cambian.
func (c *Coordinator) OfferDeleted() {
	c.store.InvalidateTypes(TypeOffer, TypeTask)
}

// TaskWritten invalida el caché de tareas tras cualquier mutación de tarea.
func (c *Coordinator) TaskWritten() {
	c.store.InvalidateTypes(TypeTask)
}
