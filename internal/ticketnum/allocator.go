package ticketnum

// Range is a validated pair of endpoints. Both share a prefix and
// Start.Num <= End.Num; construct via ValidateRange.
type Range struct {
	Start TicketID
	End   TicketID
}

// Each walks the unused ticket numbers across ranges in order: ranges in the
// order given, numbers ascending within each range, numbers present in used
// skipped. Iteration stops when fn returns false. Each has no side effects
// and yields an identical sequence for identical inputs.
func Each(ranges []Range, used map[string]struct{}, fn func(number string) bool) {
	for _, r := range ranges {
		for num := r.Start.Num; num <= r.End.Num; num++ {
			candidate := TicketID{Prefix: r.Start.Prefix, Num: num}.String()
			if _, taken := used[candidate]; taken {
				continue
			}
			if !fn(candidate) {
				return
			}
		}
	}
}

// Available collects up to limit unused ticket numbers across ranges.
// A non-positive limit collects everything.
func Available(ranges []Range, used map[string]struct{}, limit int) []string {
	var result []string
	Each(ranges, used, func(number string) bool {
		result = append(result, number)
		return limit <= 0 || len(result) < limit
	})
	return result
}
