package ecs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComponents_GetAdd(t *testing.T) {
	t.Run("Get after Add", func(t *testing.T) {
		c := New()
		pos := &position{X: 1}
		c.Add("position", pos)

		got, ok := c.Get("position")
		require.True(t, ok)
		require.Same(t, pos, got)

		got, ok = c.Get("velocity")
		require.False(t, ok)
		require.Nil(t, got)
		require.False(t, c.Has("velocity"))
	})

	t.Run("Add overwrites in place", func(t *testing.T) {
		c := New()
		c.Add("a", 1)
		c.Add("b", 2)
		c.Add("a", 3)

		got, _ := c.Get("a")
		require.Equal(t, 3, got)
		require.Equal(t, []string{"a", "b"}, c.Keys())
		require.Equal(t, 2, c.Len())
	})

	t.Run("initial components in lexical order", func(t *testing.T) {
		c := NewComponents(map[string]any{"sprite": 1, "body": 2, "input": 3})
		c.Add("audio", 4)
		require.Equal(t, []string{"body", "input", "sprite", "audio"}, c.Keys())
		require.Equal(t, []string{"body", "input", "sprite", "audio"}, c.Snapshot().Collect())
	})

	t.Run("Keys is a snapshot", func(t *testing.T) {
		c := NewComponents(map[string]any{"a": 1})
		keys := c.Keys()
		keys[0] = "mutated"
		require.Equal(t, []string{"a"}, c.Keys())
	})
}

func TestComponents_ForEachComponent(t *testing.T) {
	t.Run("visits every key once in order", func(t *testing.T) {
		c := New()
		c.Add("a", 1)
		c.Add("b", 2)
		c.Add("c", 3)

		var keys []string
		var values []any
		c.ForEachComponent(func(component any, key string) {
			keys = append(keys, key)
			values = append(values, component)
		})
		require.Equal(t, []string{"a", "b", "c"}, keys)
		require.Equal(t, []any{1, 2, 3}, values)
	})

	t.Run("snapshot is taken before the first call", func(t *testing.T) {
		c := New()
		c.Add("a", 1)

		var keys []string
		c.ForEach(func(_ any, key string) {
			keys = append(keys, key)
			c.Add("late", 2)
		})
		require.Equal(t, []string{"a"}, keys)
		require.True(t, c.Has("late"))
	})

	t.Run("explicit keys", func(t *testing.T) {
		c := NewComponents(map[string]any{"a": 1, "b": 2})

		visited := map[string]any{}
		c.ForEachComponent(func(component any, key string) {
			visited[key] = component
		}, "b", "missing")
		require.Equal(t, map[string]any{"b": 2, "missing": nil}, visited)
	})

	t.Run("empty explicit keys visit nothing", func(t *testing.T) {
		c := NewComponents(map[string]any{"a": 1})
		c.ForEachComponent(func(any, string) {
			t.Fatal("iterator must not be called")
		}, []string{}...)
	})

	t.Run("panic stops enumeration", func(t *testing.T) {
		c := NewComponents(map[string]any{"a": 1, "b": 2})
		var seen []string
		require.Panics(t, func() {
			c.ForEachComponent(func(_ any, key string) {
				seen = append(seen, key)
				panic("boom")
			})
		})
		require.Equal(t, []string{"a"}, seen)
	})
}

func TestComponents_ForEachComponentParallel(t *testing.T) {
	c := NewComponents(map[string]any{"a": 1, "b": 2, "c": 3})

	t.Run("all components", func(t *testing.T) {
		var mu sync.Mutex
		sum := 0
		err := c.ForEachComponentParallel(context.Background(), func(_ context.Context, _ string, component any) error {
			mu.Lock()
			sum += component.(int)
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 6, sum)
	})

	t.Run("first error", func(t *testing.T) {
		boom := errors.New("boom")
		err := c.ForEachComponentParallel(context.Background(), func(_ context.Context, key string, _ any) error {
			if key == "b" {
				return boom
			}
			return nil
		}, "a", "b")
		require.ErrorIs(t, err, boom)
	})
}

func TestComponents_ForEachComponentParallelLimit(t *testing.T) {
	c := New()
	for _, key := range []string{"a", "b", "c", "d", "e", "f"} {
		c.Add(key, key)
	}

	var mu sync.Mutex
	inFlight, peak := 0, 0
	var visited []string
	err := c.ForEachComponentParallelLimit(context.Background(), 2, func(_ context.Context, key string, _ any) error {
		mu.Lock()
		inFlight++
		peak = max(peak, inFlight)
		visited = append(visited, key)
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	require.LessOrEqual(t, peak, 2)
	require.ElementsMatch(t, c.Keys(), visited)
}

func TestEntity(t *testing.T) {
	a, b := NewEntity(), NewEntity()
	require.NotEqual(t, a, b)
	require.Equal(t, a.ID().String(), a.String())
	require.Equal(t, a, a)
}

func TestCapabilities(t *testing.T) {
	c := New()
	c.Add("position", &position{X: 2})
	c.Add("counter", &counter{})
	c.Add("plain", 42)

	p, ok := Lookup[*position](c, "position")
	require.True(t, ok)
	require.Equal(t, 2.0, p.X)

	_, ok = Lookup[*position](c, "counter")
	require.False(t, ok)
	_, ok = Lookup[*position](c, "missing")
	require.False(t, ok)

	type resetter interface{ Reset() }
	var keys []string
	EachOf(c, func(key string, r resetter) {
		keys = append(keys, key)
		r.Reset()
	})
	require.Equal(t, []string{"position", "counter"}, keys)
}
