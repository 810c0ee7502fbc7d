package accessor

type bound[S any] struct {
	m     *Map[S]
	store S
}

// Bind pairs a shared map with one store.
func Bind[S any](m *Map[S], store S) Table {
	return &bound[S]{m: m, store: store}
}

func (b *bound[S]) Model() string                  { return b.m.name }
func (b *bound[S]) Keys() []string                 { return b.m.Keys() }
func (b *bound[S]) Param(key string) (Param, bool) { return b.m.Param(key) }

func (b *bound[S]) Resolve(op, key string, indices ...int) (Param, error) {
	return b.m.Resolve(op, key, indices...)
}

func (b *bound[S]) Get(op, key string, indices ...int) (float64, error) {
	return b.m.get(b.store, op, key, indices)
}

func (b *bound[S]) Set(op, key string, value float64, indices ...int) error {
	return b.m.set(b.store, op, key, value, indices)
}
