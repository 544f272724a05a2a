package ecs

// Lookup returns the component stored under name if it implements T.
func Lookup[T any](c *Components, name string) (T, bool) {
	var zero T
	component, ok := c.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := component.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// EachOf calls fn for every named component that implements T, in order.
// Components that do not implement T are skipped.
//
//	ecs.EachOf(c, func(_ string, d Drawer) { d.Draw(screen) })
func EachOf[T any](c *Components, fn func(key string, component T), keys ...string) {
	c.walk(c.resolve(keys), func(component any, key string) bool {
		if typed, ok := component.(T); ok {
			fn(key, typed)
		}
		return true
	})
}
