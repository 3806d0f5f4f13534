package cache

// Tipos de agregado que delimitan el espacio de claves del caché.
// La invalidación siempre es por tipo completo, nunca por clave individual.
const (
	TypeCustomer = "customers"
	TypeOffer    = "offers"
	TypeTask     = "tasks"
)

// Store puerto de caché por tipo de agregado. Valores como bytes JSON.
// Las implementaciones son best-effort: un fallo de red en el backend se trata
// como miss y nunca hace fallar la operación del caller.
type Store interface {
	// Get devuelve el valor cacheado y true, o false si hay miss.
	Get(typ, key string) ([]byte, bool)
	// Set guarda el valor bajo (tipo, clave).
	Set(typ, key string, value []byte)
	// InvalidateTypes elimina todas las claves de los tipos indicados.
	InvalidateTypes(types ...string)
}

// KeyAll clave del listado completo de un tipo.
const KeyAll = "all"

// KeyByID clave de entrada individual.
func KeyByID(id string) string { return "id:" + id }

// KeyByCustomer clave de listado por cliente (offers y tasks).
func KeyByCustomer(customerID string) string { return "customer:" + customerID }

// KeyByOffer clave de listado de tareas por oferta.
func KeyByOffer(offerID string) string { return "offer:" + offerID }

// KeyByStatus clave de listado de tareas por estado.
func KeyByStatus(status string) string { return "status:" + status }
