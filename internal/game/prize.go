package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPrizes = errors.New("invalid prize table")

// MinPrizePegs is the smallest wheel whose slices are told apart by their pegs.
// With two pegs both slices lie between pegs 1 and 2.
const MinPrizePegs = 3

// palette cycles through the slice colors of the stock wheel.
var palette = []string{
	"#e966ac", "#b868ad", "#8869ad", "#3276b5", "#33a7d8", "#33b8a5",
	"#a3fd39", "#fff533", "#fece3e", "#f9a54b", "#f04950", "#d9d9d9",
}

// Prize is the slice of the wheel between two adjacent pegs.
type Prize struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Pegs  [2]int `json:"pegs"`
}

// DefaultPrizes builds one prize per slice: (1,2), (2,3) ... (n,1).
func DefaultPrizes(n int) []Prize {
	prizes := make([]Prize, 0, n)
	for i := 1; i <= n; i++ {
		next := i%n + 1
		prizes = append(prizes, Prize{
			Name:  fmt.Sprintf("Prize %d", i),
			Color: palette[(i-1)%len(palette)],
			Pegs:  [2]int{i, next},
		})
	}
	return prizes
}

func adjacent(a, b, n int) bool {
	if a < 1 || a > n || b < 1 || b > n || a == b {
		return false
	}
	return b == a%n+1 || a == b%n+1
}

// sliceKey identifies a slice independent of peg order.
func sliceKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// ValidatePrizes checks that prizes cover every slice of an n-peg wheel
// exactly once and that each one sits between two adjacent pegs.
func ValidatePrizes(n int, prizes []Prize) error {
	if n < MinPrizePegs {
		return fmt.Errorf("%w: need at least %d pegs, have %d", ErrInvalidPrizes, MinPrizePegs, n)
	}
	if len(prizes) != n {
		return fmt.Errorf("%w: %d prizes for %d slices", ErrInvalidPrizes, len(prizes), n)
	}

	seen := make(map[[2]int]bool, n)
	for _, p := range prizes {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: prize between %d and %d has no name", ErrInvalidPrizes, p.Pegs[0], p.Pegs[1])
		}
		if !adjacent(p.Pegs[0], p.Pegs[1], n) {
			return fmt.Errorf("%w: pegs %d and %d are not adjacent", ErrInvalidPrizes, p.Pegs[0], p.Pegs[1])
		}
		key := sliceKey(p.Pegs[0], p.Pegs[1])
		if seen[key] {
			return fmt.Errorf("%w: slice %d-%d listed twice", ErrInvalidPrizes, key[0], key[1])
		}
		seen[key] = true
	}
	return nil
}
