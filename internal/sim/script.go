// Package sim runs the lab without a terminal: a scripted sequence of key
// presses is replayed against a Machine and every snapshot is collected.
package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/motion-lab/internal/lab"
)

// Press is one scripted key press, applied just before the given tick.
type Press struct {
	Tick      int
	Direction lab.Direction
}

// Script is an ordered list of presses.
type Script []Press

// ParseScript parses "tick:dir[xN],..." e.g. "0:up x4,10:down".
// An "xN" suffix repeats the press N times on the same tick.
func ParseScript(s string) (Script, error) {
	var script Script
	s = strings.TrimSpace(s)
	if s == "" {
		return script, nil
	}

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		tickStr, rest, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("sim: press %q: expected tick:direction", item)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("sim: press %q: invalid tick", item)
		}

		dirStr, countStr, repeated := strings.Cut(strings.TrimSpace(rest), "x")
		count := 1
		if repeated {
			count, err = strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil || count < 1 {
				return nil, fmt.Errorf("sim: press %q: invalid repeat count", item)
			}
		}
		dir, err := lab.ParseDirection(strings.ToLower(strings.TrimSpace(dirStr)))
		if err != nil {
			return nil, fmt.Errorf("sim: press %q: %w", item, err)
		}

		for i := 0; i < count; i++ {
			script = append(script, Press{Tick: tick, Direction: dir})
		}
	}

	sort.SliceStable(script, func(i, j int) bool {
		return script[i].Tick < script[j].Tick
	})
	return script, nil
}
