package metrics

// Activity counts cells that changed between consecutive observations. The
// first observation after a Reset reports zero.
type Activity struct {
	name    string
	prev    []bool
	changed int
	primed  bool
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(gen int, cells []bool) {
	if !a.primed || len(a.prev) != len(cells) {
		a.prev = append(a.prev[:0], cells...)
		a.changed = 0
		a.primed = true
		return
	}
	a.changed = 0
	for i, c := range cells {
		if a.prev[i] != c {
			a.changed++
		}
	}
	copy(a.prev, cells)
}

func (a *Activity) Value() float64 { return float64(a.changed) }

func (a *Activity) Reset() {
	a.prev = a.prev[:0]
	a.changed = 0
	a.primed = false
}
