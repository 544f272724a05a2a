package manifest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/entity/pkg/ecs"
)

type sprite struct {
	Path   string
	loaded bool
}

func (s *sprite) Load(done ecs.Finish) {
	s.loaded = true
	done(nil)
}

type health struct {
	Max int
}

func testRegistry() Registry {
	r := NewRegistry()
	r.Register("sprite", func(params map[string]any) (any, error) {
		path, _ := params["path"].(string)
		if path == "" {
			return nil, errors.New("sprite needs a path")
		}
		return &sprite{Path: path}, nil
	})
	r.Register("health", func(params map[string]any) (any, error) {
		switch v := params["max"].(type) {
		case int:
			return &health{Max: v}, nil
		case float64:
			return &health{Max: int(v)}, nil
		default:
			return nil, fmt.Errorf("health max must be a number, got %T", v)
		}
	})
	return r
}

const yamlManifest = `
components:
  - name: sprite
    type: sprite
    params:
      path: hero.png
  - name: health
    type: health
    params:
      max: 10
`

func TestLoadYAMLAndBuild(t *testing.T) {
	m, err := LoadYAML(strings.NewReader(yamlManifest))
	require.NoError(t, err)
	require.Len(t, m.Components, 2)

	c, err := m.Build(testRegistry())
	require.NoError(t, err)
	require.Equal(t, []string{"sprite", "health"}, c.Keys())

	h, ok := ecs.Lookup[*health](c, "health")
	require.True(t, ok)
	require.Equal(t, 10, h.Max)

	_, err = c.InvokeGo("Load", nil).Await(context.Background())
	require.NoError(t, err)
	s, _ := ecs.Lookup[*sprite](c, "sprite")
	require.True(t, s.loaded)
}

func TestLoadJSONAndBuild(t *testing.T) {
	m, err := LoadJSON(strings.NewReader(`{"components":[
		{"name":"health","type":"health","params":{"max":3}},
		{"name":"sprite","type":"sprite","params":{"path":"a.png"}},
		{"name":"health","type":"health","params":{"max":7}}
	]}`))
	require.NoError(t, err)

	c, err := m.Build(testRegistry())
	require.NoError(t, err)
	require.Equal(t, []string{"health", "sprite"}, c.Keys())

	h, _ := ecs.Lookup[*health](c, "health")
	require.Equal(t, 7, h.Max)
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		m := &Manifest{Components: []Entry{{Name: "x", Type: "ghost"}}}
		_, err := m.Build(testRegistry())
		require.ErrorIs(t, err, ErrUnknownComponentType)
	})

	t.Run("missing name", func(t *testing.T) {
		m := &Manifest{Components: []Entry{{Type: "health"}}}
		_, err := m.Build(testRegistry())
		require.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("missing type", func(t *testing.T) {
		m := &Manifest{Components: []Entry{{Name: "health"}}}
		require.ErrorIs(t, m.Validate(), ErrInvalidManifest)
	})

	t.Run("factory failure", func(t *testing.T) {
		m := &Manifest{Components: []Entry{{Name: "s", Type: "sprite"}}}
		_, err := m.Build(testRegistry())
		require.ErrorContains(t, err, "sprite needs a path")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("components: [name: {"))
		require.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	r := testRegistry()
	require.Equal(t, []string{"health", "sprite"}, r.Types())

	r.Register("health", func(map[string]any) (any, error) { return &health{Max: 1}, nil })
	v, err := r.New("health", nil)
	require.NoError(t, err)
	require.Equal(t, 1, v.(*health).Max)
}
