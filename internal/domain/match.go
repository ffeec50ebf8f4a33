package domain

import "sort"

// CoachWeeklySlots is a coach paired with the slots their weekly grid
// marks available.
type CoachWeeklySlots struct {
	CoachID string
	Slots   []SlotKey
}

// CoachMatch scores one coach against a desired weekly pattern.
type CoachMatch struct {
	CoachID          string
	MatchedSlots     int
	RequestedSlots   int
	UnavailableSlots []SlotKey
}

// MatchCoaches partitions a coach pool into full and partial matches
// against the desired pattern. Coaches covering zero desired slots are
// excluded. Both lists are sorted by descending match ratio, ties broken
// by ascending coach id. Pure and read-only: a full match here reserves
// nothing.
func MatchCoaches(desired []SlotKey, pool []CoachWeeklySlots) (full, partial []CoachMatch) {
	if len(desired) == 0 {
		return nil, nil
	}

	full = make([]CoachMatch, 0, len(pool))
	partial = make([]CoachMatch, 0, len(pool))

	for _, coach := range pool {
		available := make(map[SlotKey]struct{}, len(coach.Slots))
		for _, k := range coach.Slots {
			available[k] = struct{}{}
		}

		m := CoachMatch{CoachID: coach.CoachID, RequestedSlots: len(desired)}
		for _, k := range desired {
			if _, ok := available[k]; ok {
				m.MatchedSlots++
			} else {
				m.UnavailableSlots = append(m.UnavailableSlots, k)
			}
		}
		sort.Slice(m.UnavailableSlots, func(i, j int) bool {
			return m.UnavailableSlots[i].less(m.UnavailableSlots[j])
		})

		switch {
		case m.MatchedSlots == 0:
		case m.MatchedSlots == m.RequestedSlots:
			full = append(full, m)
		default:
			partial = append(partial, m)
		}
	}

	sortMatches(full)
	sortMatches(partial)
	return full, partial
}

func sortMatches(ms []CoachMatch) {
	sort.Slice(ms, func(i, j int) bool {
		ri := float64(ms[i].MatchedSlots) / float64(ms[i].RequestedSlots)
		rj := float64(ms[j].MatchedSlots) / float64(ms[j].RequestedSlots)
		if ri != rj {
			return ri > rj
		}
		return ms[i].CoachID < ms[j].CoachID
	})
}
