package glint

// RatioDistribute divides total cells among len(ratios) children in
// proportion to their ratios (typically their measured maximum widths),
// clipping each share to the corresponding minimum. Integer rounding
// leftovers go to the earliest children, one cell each, so the result
// is stable and deterministic. minimums may be nil.
func RatioDistribute(total int, ratios []int, minimums []int) []int {
	shares := make([]int, len(ratios))
	if len(ratios) == 0 {
		return shares
	}

	sum := 0
	for _, r := range ratios {
		if r > 0 {
			sum += r
		}
	}

	distributed := 0
	for i, r := range ratios {
		share := 0
		if sum > 0 && r > 0 {
			share = total * r / sum
		}
		if minimums != nil && share < minimums[i] {
			share = minimums[i]
		}
		shares[i] = share
		distributed += share
	}

	// Hand out rounding leftovers front to back.
	for leftover := total - distributed; leftover > 0; {
		for i := range shares {
			shares[i]++
			leftover--
			if leftover == 0 {
				break
			}
		}
	}
	return shares
}
