/*
Package domain contains the records produced when blueprints are run.

It is kept free of I/O so that stores, transports and the runner share one
vocabulary.

# Key Entities

  - Fixture: the values drawn by one run of a blueprint, with the seed that
    reproduces them.
  - TemplateInfo: the catalogue entry of a stored blueprint.
*/
package domain
