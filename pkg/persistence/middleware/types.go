// Package middleware decorates fixture stores.
package middleware

import "github.com/aretw0/randomizer/pkg/ports"

// Middleware allows wrapping a FixtureStore to add behavior.
type Middleware func(ports.FixtureStore) ports.FixtureStore

// Chain applies mws to store; the first middleware is the outermost.
func Chain(store ports.FixtureStore, mws ...Middleware) ports.FixtureStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
