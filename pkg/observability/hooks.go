package observability

import (
	"log/slog"

	"github.com/aretw0/randomizer"
)

// Combine fans each event out to every hook set, in order.
func Combine(hooks ...randomizer.Hooks) randomizer.Hooks {
	var groups []func(int, string)
	var ungroups []func(int)
	for _, h := range hooks {
		if h.OnGroup != nil {
			groups = append(groups, h.OnGroup)
		}
		if h.OnUngroup != nil {
			ungroups = append(ungroups, h.OnUngroup)
		}
	}

	var combined randomizer.Hooks
	if len(groups) > 0 {
		combined.OnGroup = func(depth int, seed string) {
			for _, fn := range groups {
				fn(depth, seed)
			}
		}
	}
	if len(ungroups) > 0 {
		combined.OnUngroup = func(depth int) {
			for _, fn := range ungroups {
				fn(depth)
			}
		}
	}
	return combined
}

// LogHooks traces stream derivation at debug level.
func LogHooks(logger *slog.Logger) randomizer.Hooks {
	return randomizer.Hooks{
		OnGroup: func(depth int, seed string) {
			logger.Debug("group", "depth", depth, "seed", seed)
		},
		OnUngroup: func(depth int) {
			logger.Debug("ungroup", "depth", depth)
		},
	}
}
