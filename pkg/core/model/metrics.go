package model

// RoleBucket is the low/mid/high grouping of a role preference score
type RoleBucket string

const (
	RoleBucketLow  RoleBucket = "F"
	RoleBucketMid  RoleBucket = "N"
	RoleBucketHigh RoleBucket = "M"
)

// BucketForScore maps a role score to its bucket: <=4 low, >=6 high, anything else mid
func BucketForScore(score float64) RoleBucket {
	if score <= 4 {
		return RoleBucketLow
	}
	if score >= 6 {
		return RoleBucketHigh
	}
	return RoleBucketMid
}

// RosterMetrics summarises the make-up of a group of dancers
type RosterMetrics struct {
	Total     int
	Newbies   int
	Returning int
	High      int
	Low       int
	Mid       int
	AvgRole   float64

	NewbieRatio float64
	HighRatio   float64
	LowRatio    float64
}

// CalcRosterMetrics computes counts and ratios for the given dancers.
// Ratios and the average are zero for an empty roster.
func CalcRosterMetrics(dancers []Dancer) RosterMetrics {
	m := RosterMetrics{Total: len(dancers)}
	roleSum := 0.0

	for _, d := range dancers {
		if d.IsNew {
			m.Newbies++
		} else {
			m.Returning++
		}
		roleSum += d.RoleScore

		switch d.RoleBucket() {
		case RoleBucketHigh:
			m.High++
		case RoleBucketLow:
			m.Low++
		default:
			m.Mid++
		}
	}

	if m.Total == 0 {
		return m
	}

	total := float64(m.Total)
	m.AvgRole = roleSum / total
	m.NewbieRatio = float64(m.Newbies) / total
	m.HighRatio = float64(m.High) / total
	m.LowRatio = float64(m.Low) / total

	return m
}
