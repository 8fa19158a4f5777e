package metrics

// Population counts live cells in the latest observed generation.
type Population struct {
	name  string
	count int
	peak  int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(gen int, cells []bool) {
	p.count = countAlive(cells)
	p.peak = max(p.peak, p.count)
}

func (p *Population) Value() float64 { return float64(p.count) }

// Peak returns the largest population seen since the last Reset.
func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.count = 0
	p.peak = 0
}

// Density is the live fraction of the grid.
type Density struct {
	name    string
	density float64
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(gen int, cells []bool) {
	if len(cells) == 0 {
		d.density = 0
		return
	}
	d.density = float64(countAlive(cells)) / float64(len(cells))
}

func (d *Density) Value() float64 { return d.density }

func (d *Density) Reset() { d.density = 0 }

func countAlive(cells []bool) int {
	n := 0
	for _, c := range cells {
		if c {
			n++
		}
	}
	return n
}
