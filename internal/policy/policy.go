package policy

// FilingBonus is the flat number of points credited to the submitter the
// moment a report is accepted, regardless of category.
const FilingBonus = 50

// Reward is a fixed catalog entry redeemable for points.
type Reward struct {
	Pts   int
	Label string
}

// Tables holds the immutable category/points/SLA/reward lookup tables. Built
// once at startup with Default() and injected into the services that need
// them; never mutated afterwards.
type Tables struct {
	categories []string
	potential  map[string]int
	slaDays    map[string]int
	rewards    map[string]Reward
}

// Default returns the production lookup tables.
func Default() *Tables {
	return &Tables{
		categories: []string{
			"corruption", "encroach", "pollution", "road",
			"litter", "water", "power", "forest",
		},
		potential: map[string]int{
			"corruption": 500,
			"encroach":   300,
			"pollution":  250,
			"road":       150,
			"litter":     100,
			"water":      200,
			"power":      120,
			"forest":     200,
		},
		slaDays: map[string]int{
			"corruption": 7,
			"encroach":   14,
			"pollution":  10,
			"road":       21,
			"litter":     3,
			"water":      5,
			"power":      7,
			"forest":     3,
		},
		rewards: map[string]Reward{
			"r1": {Pts: 100, Label: "₹10 UPI Cashback"},
			"r2": {Pts: 300, Label: "Metro Rides x3"},
			"r3": {Pts: 500, Label: "₹50 UPI Cashback"},
			"r4": {Pts: 1000, Label: "1 Month Bus Pass"},
			"r5": {Pts: 2000, Label: "₹200 Grocery Voucher"},
			"r7": {Pts: 5000, Label: "IT Rebate Cert"},
		},
	}
}

// Categories returns the fixed category enumeration in a stable order.
func (t *Tables) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// ValidCategory reports whether c is one of the fixed categories.
func (t *Tables) ValidCategory(c string) bool {
	_, ok := t.potential[c]
	return ok
}

// PotentialPoints maps a category to its potential points value. Unknown
// categories fall back to 100 so a future category never panics the pipeline.
func (t *Tables) PotentialPoints(category string) int {
	if pts, ok := t.potential[category]; ok {
		return pts
	}
	return 100
}

// SLADays returns the escalation deadline in days for a category.
func (t *Tables) SLADays(category string) int {
	return t.slaDays[category]
}

// Reward looks up a reward catalog entry by id.
func (t *Tables) Reward(id string) (Reward, bool) {
	r, ok := t.rewards[id]
	return r, ok
}

// RewardIDs returns the catalog ids in a stable order.
func (t *Tables) RewardIDs() []string {
	return []string{"r1", "r2", "r3", "r4", "r5", "r7"}
}
