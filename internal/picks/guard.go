package picks

import (
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
)

// Guard runs one strategy and substitutes an empty list if it panics. The
// panic value is logged with the strategy name. A nil result becomes empty.
func Guard[T any](logger *slog.Logger, strategy Strategy, fn func() []T) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(logger, "pick strategy failed", fmt.Errorf("panic: %v", r), logging.FieldStrategy, string(strategy))
			out = []T{}
		}
	}()
	out = fn()
	if out == nil {
		out = []T{}
	}
	return out
}
