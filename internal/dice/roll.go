// Package dice evaluates dice-expression commands of the form NdS, NdS+M,
// or NdS-M (e.g. "2d6+1"). Rolling is deterministic with respect to the
// provided random source.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var (
	ErrEmptyCommand   = errors.New("dice command is empty")
	ErrInvalidCommand = errors.New("invalid dice command")
)

// Spec is a parsed dice command.
type Spec struct {
	Count    int
	Sides    int
	Modifier int
}

// Result holds the individual die results and the modified total for one
// evaluated command.
type Result struct {
	Rolls []int
	Total int
}

// Parse parses a dice command. The count defaults to 1 when omitted
// ("d20" rolls one d20); whitespace around the command is ignored.
func Parse(command string) (Spec, error) {
	trimmed := strings.ToLower(strings.TrimSpace(command))
	if trimmed == "" {
		return Spec{}, ErrEmptyCommand
	}

	countPart, rest, found := strings.Cut(trimmed, "d")
	if !found {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}

	count := 1
	if countPart != "" {
		parsed, err := strconv.Atoi(countPart)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
		}
		count = parsed
	}

	sidesPart := rest
	modifier := 0
	if idx := strings.IndexAny(rest, "+-"); idx >= 0 {
		sidesPart = rest[:idx]
		parsed, err := strconv.Atoi(rest[idx:])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
		}
		modifier = parsed
	}

	sides, err := strconv.Atoi(sidesPart)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}

	if count <= 0 || sides <= 0 {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}

	return Spec{Count: count, Sides: sides, Modifier: modifier}, nil
}

// RollWithRng rolls a parsed spec using the provided random source. Given
// the same source state and spec it always produces the same result.
func RollWithRng(rng *rand.Rand, spec Spec) Result {
	rolls := make([]int, spec.Count)
	total := spec.Modifier
	for i := 0; i < spec.Count; i++ {
		value := rollDie(rng, spec.Sides)
		rolls[i] = value
		total += value
	}

	return Result{Rolls: rolls, Total: total}
}

// Eval parses and rolls a command in one step.
func Eval(rng *rand.Rand, command string) (Result, error) {
	spec, err := Parse(command)
	if err != nil {
		return Result{}, err
	}
	return RollWithRng(rng, spec), nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
