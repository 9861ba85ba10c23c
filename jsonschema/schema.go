package jsonschema

import (
	"bytes"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jdec/jsonvalue"
)

// Schema is the rendered form of a decoder schema. It covers the subset of
// JSON Schema that decoder shapes can produce; an empty Schema accepts
// anything.
type Schema struct {
	Ref  string `json:"$ref,omitempty"`
	Type string `json:"type,omitempty"`

	Enum Values `json:"enum,omitempty"`

	// Object
	Properties Properties `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`
	// AdditionalProperties is either a bool or a *Schema.
	AdditionalProperties any `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	// DecoderError carries the message of a schema that could not be
	// derived, so broken output is visible rather than silently wrong.
	DecoderError string `json:"x-decoder-error,omitempty"`
}

// Values lists enum members. It encodes through jsonvalue so numbers keep
// their literal text.
type Values []jsonvalue.Value

func (v Values) MarshalJSON() ([]byte, error) { return jsonvalue.Array(v).MarshalJSON() }

// Property is one entry of Properties.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered name to Schema mapping that marshals as a JSON
// object.
type Properties []Property

// Get returns the schema registered for name.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Schema, true
		}
	}
	return nil, false
}

// With returns p with name bound to s. An existing entry keeps its position.
func (p Properties) With(name string, s *Schema) Properties {
	for i, e := range p {
		if e.Name == name {
			out := append(Properties(nil), p...)
			out[i].Schema = s
			return out
		}
	}
	return append(p, Property{Name: name, Schema: s})
}

// Names returns the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, e := range p {
		names[i] = e.Name
	}
	return names
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := j.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := j.Marshal(e.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON returns the compact JSON encoding of s.
func (s *Schema) JSON() ([]byte, error) { return j.Marshal(s) }

// JSONIndent returns the indented JSON encoding of s.
func (s *Schema) JSONIndent(indent string) ([]byte, error) { return j.MarshalIndent(s, "", indent) }

// YAML returns s as a block-style YAML document with the same key order as
// the JSON encoding.
func (s *Schema) YAML() ([]byte, error) {
	data, err := s.JSON()
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles the JSON input implies; the
// encoder re-quotes scalars that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
