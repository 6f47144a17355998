package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind names a factory.
type Kind string

const (
	KindConstant     Kind = "constant"
	KindNumbers      Kind = "numbers"
	KindIntegers     Kind = "integers"
	KindBooleans     Kind = "booleans"
	KindSeeds        Kind = "seeds"
	KindChoices      Kind = "choices"
	KindAlternatives Kind = "alternatives"
	KindArrays       Kind = "arrays"
	KindObjects      Kind = "objects"
	KindPermutations Kind = "permutations"
	KindComposites   Kind = "composites"
	KindPhrases      Kind = "phrases"
	KindSentences    Kind = "sentences"
	KindParagraphs   Kind = "paragraphs"
	KindDates        Kind = "dates"
	KindStrings      Kind = "strings"
	KindUUIDs        Kind = "uuids"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindConstant, KindNumbers, KindIntegers, KindBooleans, KindSeeds, KindChoices,
	KindAlternatives, KindArrays, KindObjects, KindPermutations, KindComposites,
	KindPhrases, KindSentences, KindParagraphs, KindDates, KindStrings, KindUUIDs,
}

// Blueprint is a named, seeded factory tree.
type Blueprint struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Seed        string `yaml:"seed,omitempty" json:"seed,omitempty"`
	// Count is how many values a run draws. Zero means one.
	Count int   `yaml:"count,omitempty" json:"count,omitempty"`
	Root  *Spec `yaml:"root" json:"-"`
}

// Draws returns the effective number of values to draw.
func (b *Blueprint) Draws() int {
	if b.Count <= 0 {
		return 1
	}
	return b.Count
}

// Spec describes one factory. Only the parameters of its Kind are used.
type Spec struct {
	Kind Kind

	Min   *float64 // numbers, integers
	Max   *float64 // numbers, integers
	Step  float64  // numbers
	Split *float64 // booleans

	Value  any   // constant
	Values []any // choices, permutations

	Count    *Spec       // arrays, permutations
	Items    *Spec       // arrays
	Branches *Spec       // composites
	Words    *Spec       // phrases
	Length   *Spec       // strings
	Options  []*Spec     // alternatives
	Fields   []NamedSpec // objects, composites

	Depth    int    // composites
	Children string // composites
	Charset  string // strings
	From     string // dates, RFC 3339
	To       string // dates, RFC 3339
}

// NamedSpec is one field of an object template.
type NamedSpec struct {
	Key  string
	Spec *Spec
}

type specYAML struct {
	Kind     Kind      `yaml:"kind"`
	Min      *float64  `yaml:"min"`
	Max      *float64  `yaml:"max"`
	Step     float64   `yaml:"step"`
	Split    *float64  `yaml:"split"`
	Value    any       `yaml:"value"`
	Values   []any     `yaml:"values"`
	Count    *Spec     `yaml:"count"`
	Items    *Spec     `yaml:"items"`
	Branches *Spec     `yaml:"branches"`
	Words    *Spec     `yaml:"words"`
	Length   *Spec     `yaml:"length"`
	Options  []*Spec   `yaml:"options"`
	Fields   yaml.Node `yaml:"fields"`
	Depth    int       `yaml:"depth"`
	Children string    `yaml:"children"`
	Charset  string    `yaml:"charset"`
	From     string    `yaml:"from"`
	To       string    `yaml:"to"`
}

// UnmarshalYAML decodes a spec. Scalars and sequences are constants;
// mappings carry a kind. Object fields keep their declared order.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = Spec{Kind: KindConstant, Value: v}
		return nil
	}

	var raw specYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	fields, err := decodeFields(&raw.Fields)
	if err != nil {
		return err
	}

	*s = Spec{
		Kind:     raw.Kind,
		Min:      raw.Min,
		Max:      raw.Max,
		Step:     raw.Step,
		Split:    raw.Split,
		Value:    raw.Value,
		Values:   raw.Values,
		Count:    raw.Count,
		Items:    raw.Items,
		Branches: raw.Branches,
		Words:    raw.Words,
		Length:   raw.Length,
		Options:  raw.Options,
		Fields:   fields,
		Depth:    raw.Depth,
		Children: raw.Children,
		Charset:  raw.Charset,
		From:     raw.From,
		To:       raw.To,
	}
	return nil
}

func decodeFields(node *yaml.Node) ([]NamedSpec, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	fields := make([]NamedSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		spec := new(Spec)
		if err := node.Content[i+1].Decode(spec); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, NamedSpec{Key: key, Spec: spec})
	}
	return fields, nil
}

// Parse decodes a YAML or JSON blueprint and validates it.
func Parse(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := Validate(&bp); err != nil {
		return nil, err
	}
	return &bp, nil
}
