package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
)

// Registry resolves the strategy for a habit type. The table is built once
// at construction; call sites never switch on the type themselves.
type Registry struct {
	strategies map[domain.HabitType]Strategy
}

// NewRegistry builds the closed strategy table over the five habit types.
func NewRegistry(clk clock.Clock) *Registry {
	if clk == nil {
		clk = clock.System()
	}
	b := base{clock: clk}
	table := []Strategy{
		&booleanStrategy{base: b},
		&counterStrategy{base: b},
		&negativeBooleanStrategy{base: b},
		&negativeCounterStrategy{base: b},
		&taskStrategy{base: b},
	}

	strategies := make(map[domain.HabitType]Strategy, len(table))
	for _, s := range table {
		strategies[s.Type()] = s
	}
	return &Registry{strategies: strategies}
}

// Resolve returns the strategy governing the given type.
func (r *Registry) Resolve(t domain.HabitType) (Strategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, domain.ErrInvalidHabitType
	}
	return s, nil
}
