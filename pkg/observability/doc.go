/*
Package observability turns session hooks into logs and Prometheus metrics.

Hooks from several observers can be combined with Combine and installed on a
runner (runner.WithHooks) or a session (randomizer.WithHooks).
*/
package observability
