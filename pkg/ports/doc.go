/*
Package ports defines the driven ports (interfaces) of the fixture runner.

These interfaces decouple generation from storage and template sources, so the
runner and its transports work with any backend.

# Key Interfaces

  - FixtureStore: persists generated fixtures (memory, Redis).
  - TemplateLibrary: looks up stored blueprints (memory, Loam).
*/
package ports
