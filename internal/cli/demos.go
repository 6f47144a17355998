package cli

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/aretw0/randomizer"
)

// Demo is a scripted walk through the factory API.
type Demo struct {
	Name        string
	Description string
	// Seed is used when the caller passes none.
	Seed string
	Run  func(s *randomizer.Session, w io.Writer) error
}

// Demos lists the built-in demos by name.
var Demos = []Demo{
	{
		Name:        "categories",
		Description: "a category tree built by composites",
		Seed:        "categories seed 14",
		Run:         demoCategories,
	},
	{
		Name:        "permutations",
		Description: "20 permutations of 2 to 4 words",
		Seed:        "abc",
		Run:         demoPermutations,
	},
	{
		Name:        "prices",
		Description: "25 prices ending in .99 or .98",
		Seed:        "Example seed for prices demo 1",
		Run:         demoPrices,
	},
	{
		Name:        "transformations",
		Description: "25 powers of ten from a transformed object",
		Seed:        "Example seed for demo of powers of ten",
		Run:         demoTransformations,
	},
}

// FindDemo returns the demo called name.
func FindDemo(name string) (Demo, bool) {
	i := slices.IndexFunc(Demos, func(d Demo) bool { return d.Name == name })
	if i < 0 {
		return Demo{}, false
	}
	return Demos[i], true
}

// RunDemo runs d against a fresh session seeded with seed, or d.Seed when
// seed is empty.
func RunDemo(d Demo, seed string, w io.Writer, opts ...randomizer.Option) error {
	if seed == "" {
		seed = d.Seed
	}
	s, err := randomizer.New(seed, opts...)
	if err != nil {
		return err
	}
	return d.Run(s, w)
}

func demoCategories(s *randomizer.Session, w io.Writer) error {
	branches, err := s.Integers(2, 3)
	if err != nil {
		return err
	}
	depth, err := s.Integers(3, 5)
	if err != nil {
		return err
	}
	ids, err := s.Integers(10000, 20000)
	if err != nil {
		return err
	}
	words, err := s.Integers(3, 6)
	if err != nil {
		return err
	}
	names, err := s.Phrases(randomizer.Derived(words.Factory()))
	if err != nil {
		return err
	}

	category, err := randomizer.Composites(s, randomizer.Derived(branches.Factory()), depth.Next(), "subCategories", randomizer.Template{
		randomizer.Dynamic("id", ids.Factory()),
		randomizer.Dynamic("name", names),
	})
	if err != nil {
		return err
	}

	var sb strings.Builder
	writeCategory(&sb, category(), "")
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeCategory(sb *strings.Builder, c randomizer.Object, prefix string) {
	id, _ := c.Get("id")
	name, _ := c.Get("name")
	fmt.Fprintf(sb, "%s#%v %v\n", prefix, id, name)

	children, _ := c.Get("subCategories")
	for _, child := range children.([]randomizer.Object) {
		writeCategory(sb, child, prefix+"    ")
	}
}

func demoPermutations(s *randomizer.Session, w io.Writer) error {
	count, err := s.Integers(2, 4)
	if err != nil {
		return err
	}
	perm, err := randomizer.Permutations(s, randomizer.Derived(count.Factory()), []string{"foo", "bar", "baz", "quux", "corge"})
	if err != nil {
		return err
	}
	for range 20 {
		if _, err := fmt.Fprintln(w, perm()); err != nil {
			return err
		}
	}
	return nil
}

func demoPrices(s *randomizer.Session, w io.Writer) error {
	nines, err := s.Numbers(0.99, 199.99, 1)
	if err != nil {
		return err
	}
	eights, err := s.Numbers(0.98, 199.98, 1)
	if err != nil {
		return err
	}
	price, err := randomizer.Alternatives(s, nines.Factory(), eights.Factory())
	if err != nil {
		return err
	}
	for range 25 {
		if _, err := fmt.Fprintf(w, "%.2f\n", price()); err != nil {
			return err
		}
	}
	return nil
}

func demoTransformations(s *randomizer.Session, w io.Writer) error {
	digits, err := s.Integers(1, 9)
	if err != nil {
		return err
	}
	powers, err := s.Integers(0, 6)
	if err != nil {
		return err
	}
	record, err := randomizer.Objects(s, randomizer.Template{
		randomizer.Dynamic("digit", digits.Factory()),
		randomizer.Dynamic("power", powers.Factory()),
	})
	if err != nil {
		return err
	}
	powerOfTen := randomizer.Transform(record, func(o randomizer.Object) int {
		digit, _ := o.Get("digit")
		power, _ := o.Get("power")
		return digit.(int) * int(math.Pow10(power.(int)))
	})
	for range 25 {
		if _, err := fmt.Fprintln(w, powerOfTen()); err != nil {
			return err
		}
	}
	return nil
}
