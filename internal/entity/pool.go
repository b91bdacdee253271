package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fifteen-backend/internal/apperror"
)

const (
	// PoolMin and PoolMax bound the numbers a player may pick.
	PoolMin = 1
	PoolMax = 9
)

// Pool is the shared set of not-yet-picked numbers, kept sorted.
type Pool []int

// NewPool returns a pool holding every number from PoolMin to PoolMax.
func NewPool() Pool {
	pool := make(Pool, 0, PoolMax-PoolMin+1)
	for n := PoolMin; n <= PoolMax; n++ {
		pool = append(pool, n)
	}

	return pool
}

// Pick removes n from the pool. The pool is left untouched on error.
func (that *Pool) Pick(n int) error {
	if n < PoolMin || n > PoolMax {
		return fmt.Errorf("%w: %d is not between %d and %d", apperror.ErrInvalidMove, n, PoolMin, PoolMax)
	}

	for i, candidate := range *that {
		if candidate == n {
			*that = append((*that)[:i], (*that)[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %d", apperror.ErrNumberTaken, n)
}

func (that Pool) Contains(n int) bool {
	for _, candidate := range that {
		if candidate == n {
			return true
		}
	}

	return false
}

func (that Pool) IsExhausted() bool {
	return len(that) == 0
}

func (that Pool) String() string {
	return joinNumbers(that)
}

func joinNumbers(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, strconv.Itoa(n))
	}

	return strings.Join(parts, " ")
}
