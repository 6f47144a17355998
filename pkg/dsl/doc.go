/*
Package dsl provides a Go DSL for programmatically constructing blueprints.

It builds the same schema.Blueprint a YAML document describes, using a fluent
builder instead of external files. This is useful for generating fixtures from
tests and for keeping blueprints type-checked alongside the code that uses them.

Example usage:

	bp, err := dsl.New("categories").
		Seed("categories seed 14").
		Root(dsl.Composites(dsl.Integers(2, 3), 3, "subCategories").
			Field("id", dsl.Integers(10000, 20000)).
			Field("name", dsl.Phrases(dsl.Integers(3, 6)))).
		Build()
	if err != nil {
		// ...
	}

	fixture, err := runner.New().Run(ctx, bp, runner.RunOptions{})
*/
package dsl
