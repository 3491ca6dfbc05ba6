package model

// Player is a roster entry with its per-round score history
type Player struct {
	Name   string
	Rounds []int // one entry per recorded round, in order
}

// Total returns the cumulative score across all recorded rounds
func (p *Player) Total() int {
	total := 0
	for _, score := range p.Rounds {
		total += score
	}
	return total
}

// RoundCount returns the number of recorded rounds
func (p *Player) RoundCount() int {
	return len(p.Rounds)
}

// Progress returns how far the player is towards the threshold, clamped to [0, 1]
func (p *Player) Progress(threshold int) float64 {
	if threshold <= 0 {
		return 0
	}
	progress := float64(p.Total()) / float64(threshold)
	switch {
	case progress < 0:
		return 0
	case progress > 1:
		return 1
	}
	return progress
}

// Reaches reports whether the player's total meets or exceeds the threshold
func (p *Player) Reaches(threshold int) bool {
	return p.Total() >= threshold
}

func (p Player) clone() Player {
	rounds := make([]int, len(p.Rounds))
	copy(rounds, p.Rounds)
	return Player{Name: p.Name, Rounds: rounds}
}
