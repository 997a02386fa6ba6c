package entities

// Stat names a combat attribute
type Stat string

const (
	StatPower   Stat = "power"
	StatDefense Stat = "defense"
	StatSpeed   Stat = "speed"
	StatHP      Stat = "hp"
)

// AllStats lists every combat attribute in display order
var AllStats = []Stat{StatPower, StatDefense, StatSpeed, StatHP}

// Stats maps a combat attribute to its value
type Stats map[Stat]int

// Clone returns an independent copy
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Add merges other into s point-for-point
func (s Stats) Add(other Stats) {
	for k, v := range other {
		s[k] += v
	}
}

// AddScaled merges other into s, multiplying each contribution by ratio and
// flooring the result.
func (s Stats) AddScaled(other Stats, ratio float64) {
	for k, v := range other {
		s[k] += int(float64(v) * ratio)
	}
}
