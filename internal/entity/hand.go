package entity

import "sort"

// WinningSum is the total a 3-number subset must reach to win.
const WinningSum = 15

// Hand is the sequence of numbers one player has picked, in pick order.
type Hand []int

// WinningSet returns the first 3-number subset of the hand summing to
// WinningSum. The check walks every C(size,3) combination, so it stays
// correct even for hands longer than three numbers.
func (that Hand) WinningSet() (Hand, bool) {
	for i := 0; i < len(that); i++ {
		for j := i + 1; j < len(that); j++ {
			for k := j + 1; k < len(that); k++ {
				if that[i]+that[j]+that[k] == WinningSum {
					return Hand{that[i], that[j], that[k]}, true
				}
			}
		}
	}

	return nil, false
}

func (that Hand) Contains(n int) bool {
	for _, candidate := range that {
		if candidate == n {
			return true
		}
	}

	return false
}

// String renders the hand sorted, the way the board is shown to players.
func (that Hand) String() string {
	sorted := make([]int, len(that))
	copy(sorted, that)
	sort.Ints(sorted)

	return joinNumbers(sorted)
}
