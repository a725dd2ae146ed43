// Package sequence turns a profile into the flat, ordered list of key events
// the replayer emits: each setting's adjustment presses, with a single Down
// between consecutive settings.
package sequence

import (
	"fmt"
	"strings"

	"github.com/protunedev/protune/internal/profile"
)

// Key is one directional menu key.
type Key int

const (
	// KeyLeft decreases delta settings and increases absolute ones.
	KeyLeft Key = iota
	// KeyRight increases delta settings and decreases absolute ones.
	KeyRight
	// KeyDown moves the menu cursor to the next setting.
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Step is one same-direction press group for a single setting, kept for
// transcripts and the simulator. Count is always >= 0.
type Step struct {
	Setting string
	Key     Key
	Count   int
}

// Plan is the complete event stream for one profile. Building a plan holds
// no state: the same profile always yields the same plan.
type Plan struct {
	Events []Key
	Steps  []Step
}

// Build lays out the plan for a profile: for every setting after the first,
// one Down; then that setting's adjustment presses. A setting with zero
// ticks still costs its Down but emits no adjustment keys.
func Build(p *profile.Profile) Plan {
	var plan Plan
	for i, s := range p.Settings {
		if i > 0 {
			plan.Events = append(plan.Events, KeyDown)
		}
		ticks := s.Ticks()
		key, count := KeyRight, ticks
		if ticks < 0 {
			key, count = KeyLeft, -ticks
		}
		for range count {
			plan.Events = append(plan.Events, key)
		}
		plan.Steps = append(plan.Steps, Step{Setting: s.Name, Key: key, Count: count})
	}
	return plan
}

// Adjustments returns the number of Left/Right events in the plan.
func (p Plan) Adjustments() int {
	n := 0
	for _, e := range p.Events {
		if e != KeyDown {
			n++
		}
	}
	return n
}

// Downs returns the number of Down events in the plan.
func (p Plan) Downs() int {
	return len(p.Events) - p.Adjustments()
}

// Total returns the total number of key events.
func (p Plan) Total() int {
	return len(p.Events)
}

// Transcript renders a human-readable listing of the plan, one line per
// setting, with event totals.
func (p Plan) Transcript() string {
	var sb strings.Builder
	for i, st := range p.Steps {
		if i > 0 {
			fmt.Fprintf(&sb, "  down\n")
		}
		if st.Count == 0 {
			fmt.Fprintf(&sb, "%-22s (no change)\n", st.Setting)
			continue
		}
		fmt.Fprintf(&sb, "%-22s %d x %s\n", st.Setting, st.Count, st.Key)
	}
	fmt.Fprintf(&sb, "\n%d adjustments, %d downs, %d key events total\n",
		p.Adjustments(), p.Downs(), p.Total())
	return sb.String()
}
