package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sarratt/treasury/pkg/math"
)

// Reward is the amount granted for a timed claim. It is either a fixed
// amount (Min == Max) or a closed [Min, Max] range from which an integer
// is drawn uniformly.
type Reward struct {
	Min int
	Max int
}

// FixedReward returns a reward that always grants amount.
func FixedReward(amount int) Reward {
	return Reward{Min: amount, Max: amount}
}

// RangeReward returns a reward drawn from the closed [min, max] interval.
// Swapped bounds are normalized.
func RangeReward(min int, max int) Reward {
	return Reward{Min: math.Min(min, max), Max: math.Max(min, max)}
}

// Fixed reports whether the reward is a single amount rather than a range.
func (r Reward) Fixed() bool {
	return r.Min == r.Max
}

// Draw returns the granted amount, drawing uniformly from the closed
// interval at integer granularity when the reward is a range.
func (r Reward) Draw(rng *rand.Rand) int {
	if r.Fixed() {
		return r.Min
	}
	return math.RandRange(rng, r.Min, r.Max)
}

func (r Reward) String() string {
	if r.Fixed() {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// UnmarshalText parses "100", "[10,50]" or "10,50". A single-element
// array is a fixed reward equal to that element.
func (r *Reward) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		amount, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("invalid reward %q: %w", text, err)
		}
		*r = FixedReward(amount)
	case 2:
		min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("invalid reward %q: %w", text, err)
		}
		max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("invalid reward %q: %w", text, err)
		}
		*r = RangeReward(min, max)
	default:
		return fmt.Errorf("invalid reward %q: expected an amount or a [min,max] pair", text)
	}
	return nil
}

// MarshalJSON writes a fixed reward as a number and a range as [min,max],
// matching the stored document schema.
func (r Reward) MarshalJSON() ([]byte, error) {
	if r.Fixed() {
		return json.Marshal(r.Min)
	}
	return json.Marshal([2]int{r.Min, r.Max})
}

// UnmarshalJSON accepts a number or a [min,max] array.
func (r *Reward) UnmarshalJSON(data []byte) error {
	var amount int
	if err := json.Unmarshal(data, &amount); err == nil {
		*r = FixedReward(amount)
		return nil
	}

	var bounds []int
	if err := json.Unmarshal(data, &bounds); err != nil {
		return fmt.Errorf("invalid reward %s: %w", data, err)
	}
	switch len(bounds) {
	case 1:
		*r = FixedReward(bounds[0])
	case 2:
		*r = RangeReward(bounds[0], bounds[1])
	default:
		return fmt.Errorf("invalid reward %s: expected an amount or a [min,max] pair", data)
	}
	return nil
}
