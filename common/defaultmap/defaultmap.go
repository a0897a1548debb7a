package defaultmap

// Map that creates a value on first access and remembers insertion order.
// Not safe for concurrent use.
type DefaultMap[K comparable, V any] interface {
	Get(key K) V
	Peek(key K) (V, bool)
	Set(key K, val V)
	Has(key K) bool
	Delete(key K)
	Count() int
	Keys() []K
	Foreach(it func(K, V) bool)
}

type defaultmapImpl[K comparable, V any] struct {
	data        map[K]V
	order       []K
	defaultFunc func() V
}

func New[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return &defaultmapImpl[K, V]{
		data:        make(map[K]V),
		order:       make([]K, 0),
		defaultFunc: defaultFunc,
	}
}

// Get returns the stored value, creating it with the default func if the key is unseen
func (h *defaultmapImpl[K, V]) Get(key K) V {
	v, ex := h.data[key]
	if !ex {
		v = h.defaultFunc()
		h.data[key] = v
		h.order = append(h.order, key)
	}
	return v
}

// Peek never creates an entry
func (h *defaultmapImpl[K, V]) Peek(key K) (V, bool) {
	v, ex := h.data[key]
	return v, ex
}

func (h *defaultmapImpl[K, V]) Set(key K, val V) {
	if _, ex := h.data[key]; !ex {
		h.order = append(h.order, key)
	}
	h.data[key] = val
}

func (h *defaultmapImpl[K, V]) Has(key K) bool {
	_, ex := h.data[key]
	return ex
}

func (h *defaultmapImpl[K, V]) Delete(key K) {
	if _, ex := h.data[key]; !ex {
		return
	}
	delete(h.data, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *defaultmapImpl[K, V]) Count() int {
	return len(h.data)
}

// Keys in insertion order
func (h *defaultmapImpl[K, V]) Keys() []K {
	keys := make([]K, len(h.order))
	copy(keys, h.order)
	return keys
}

func (h *defaultmapImpl[K, V]) Foreach(it func(K, V) bool) {
	for _, k := range h.order {
		if !it(k, h.data[k]) {
			break
		}
	}
}
