package fifteen

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// magic square corners, the strongest openings after the center 5
var corners = []int{2, 4, 6, 8}

// HeuristicChoice picks the bot's next number: 5 when still available,
// otherwise a random free corner, otherwise any free number.
func HeuristicChoice(pool entity.Pool) (int, error) {
	if pool.IsExhausted() {
		return 0, ErrNoAvailableMoves
	}

	if pool.Contains(5) {
		return 5, nil
	}

	available := make([]int, 0, len(corners))
	for _, n := range corners {
		if pool.Contains(n) {
			available = append(available, n)
		}
	}

	if len(available) == 0 {
		available = pool
	}

	return available[rand.Intn(len(available))], nil //nolint: gosec // it's ok
}
