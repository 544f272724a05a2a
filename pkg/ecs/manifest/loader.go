// Package manifest builds component sets from declarative JSON or YAML
// descriptions.
//
// A manifest lists components in enumeration order:
//
//	components:
//	  - name: position
//	    type: vec2
//	    params: {x: 1, y: 2}
//	  - name: sprite
//	    type: sprite
//	    params: {path: hero.png}
package manifest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zeusync/entity/pkg/ecs"
	"gopkg.in/yaml.v3"
)

// Manifest describes the components of one set.
type Manifest struct {
	Components []Entry `json:"components" yaml:"components"`
}

// Entry describes one component. Type selects the registry factory and
// Params are handed to it untouched.
type Entry struct {
	Name   string         `json:"name" yaml:"name"`
	Type   string         `json:"type" yaml:"type"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadJSON loads a manifest from a JSON reader.
func LoadJSON(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadYAML loads a manifest from a YAML reader.
func LoadYAML(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry is named and typed.
func (m *Manifest) Validate() error {
	for i, e := range m.Components {
		if e.Name == "" {
			return fmt.Errorf("%w: component %d has no name", ErrInvalidManifest, i)
		}
		if e.Type == "" {
			return fmt.Errorf("%w: component %q has no type", ErrInvalidManifest, e.Name)
		}
	}
	return nil
}

// Build creates every component through reg and adds them in manifest order.
// A repeated name replaces the earlier component but keeps its position.
func (m *Manifest) Build(reg Registry, opts ...ecs.Option) (*ecs.Components, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	c := ecs.New(opts...)
	for _, e := range m.Components {
		component, err := reg.New(e.Type, e.Params)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", e.Name, err)
		}
		c.Add(e.Name, component)
	}
	return c, nil
}
