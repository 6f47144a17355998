package dsl

import (
	"time"

	"github.com/aretw0/randomizer/pkg/schema"
)

// Node provides a fluent API for configuring a factory spec.
type Node struct {
	spec schema.Spec
}

func kind(k schema.Kind) *Node {
	return &Node{spec: schema.Spec{Kind: k}}
}

func bounds(k schema.Kind, min, max float64) *Node {
	n := kind(k)
	n.spec.Min, n.spec.Max = &min, &max
	return n
}

// Constant always yields v.
func Constant(v any) *Node {
	n := kind(schema.KindConstant)
	n.spec.Value = v
	return n
}

// Numbers draws floats in [min, max).
func Numbers(min, max float64) *Node {
	return bounds(schema.KindNumbers, min, max)
}

// Integers draws integers in [min, max].
func Integers(min, max int) *Node {
	return bounds(schema.KindIntegers, float64(min), float64(max))
}

// Step quantizes a numbers node.
func (n *Node) Step(step float64) *Node {
	n.spec.Step = step
	return n
}

// Booleans draws true with probability one half unless Split says otherwise.
func Booleans() *Node {
	return kind(schema.KindBooleans)
}

// Split sets the probability of true on a booleans node.
func (n *Node) Split(p float64) *Node {
	n.spec.Split = &p
	return n
}

// Seeds draws seed strings.
func Seeds() *Node {
	return kind(schema.KindSeeds)
}

// Choices picks one of values.
func Choices(values ...any) *Node {
	n := kind(schema.KindChoices)
	n.spec.Values = values
	return n
}

// Alternatives delegates each draw to one of options.
func Alternatives(options ...*Node) *Node {
	n := kind(schema.KindAlternatives)
	for _, o := range options {
		n.spec.Options = append(n.spec.Options, o.Spec())
	}
	return n
}

// Arrays draws count items.
func Arrays(count, items *Node) *Node {
	n := kind(schema.KindArrays)
	n.spec.Count, n.spec.Items = count.Spec(), items.Spec()
	return n
}

// Objects draws records; add keys with Field.
func Objects() *Node {
	return kind(schema.KindObjects)
}

// Composites draws trees depth levels deep whose nodes list their children
// under the children key; add keys with Field.
func Composites(branches *Node, depth int, children string) *Node {
	n := kind(schema.KindComposites)
	n.spec.Branches = branches.Spec()
	n.spec.Depth = depth
	n.spec.Children = children
	return n
}

// Field appends a key to an objects or composites node. Keys keep the
// order they are added in.
func (n *Node) Field(key string, value *Node) *Node {
	n.spec.Fields = append(n.spec.Fields, schema.NamedSpec{Key: key, Spec: value.Spec()})
	return n
}

// Permutations draws count distinct elements of values in random order.
func Permutations(count *Node, values ...any) *Node {
	n := kind(schema.KindPermutations)
	n.spec.Count = count.Spec()
	n.spec.Values = values
	return n
}

// Phrases draws space separated words.
func Phrases(words *Node) *Node {
	n := kind(schema.KindPhrases)
	n.spec.Words = words.Spec()
	return n
}

// Sentences draws one sentence.
func Sentences() *Node {
	return kind(schema.KindSentences)
}

// Paragraphs draws one paragraph.
func Paragraphs() *Node {
	return kind(schema.KindParagraphs)
}

// Dates draws instants in [from, to).
func Dates(from, to time.Time) *Node {
	n := kind(schema.KindDates)
	n.spec.From = from.UTC().Format(time.RFC3339)
	n.spec.To = to.UTC().Format(time.RFC3339)
	return n
}

// Strings draws length characters of a named charset or a literal one.
func Strings(charset string, length *Node) *Node {
	n := kind(schema.KindStrings)
	n.spec.Charset = charset
	n.spec.Length = length.Spec()
	return n
}

// UUIDs draws version 4 UUIDs.
func UUIDs() *Node {
	return kind(schema.KindUUIDs)
}

// Spec returns a copy of the underlying spec. A nil node yields nil.
func (n *Node) Spec() *schema.Spec {
	if n == nil {
		return nil
	}
	s := n.spec
	return &s
}
