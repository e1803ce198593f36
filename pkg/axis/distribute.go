package axis

import "math"

// weightScale is the fixed-point range weights are rescaled to before
// slack is split, so that rounding is reproducible.
const weightScale = 100000

// integerWeights rescales ws to integers summing to roughly weightScale.
// When no weight is positive every element gets weight 1.
func integerWeights(ws []float64) []int64 {
	iw := make([]int64, len(ws))
	var sum float64
	for _, w := range ws {
		if w > 0 {
			sum += w
		}
	}
	var total int64
	if sum > 0 {
		for i, w := range ws {
			if w > 0 {
				iw[i] = int64(math.Round(w / sum * weightScale))
				total += iw[i]
			}
		}
	}
	if total == 0 {
		for i := range iw {
			iw[i] = 1
		}
	}
	return iw
}

// distribute sizes elements for a total of space (spacing excluded).
//
// Every element starts at its minimum. The remaining slack is split among
// the elements that can still grow in proportion to their integer weights.
// Elements whose share would take them past their maximum are pinned there,
// the excess goes back into the pool, and the split repeats for the rest.
// Each round pins at least one element or ends the loop, so there are at
// most len(mins) rounds. Slack left once every element is at its maximum is
// spread evenly.
func distribute(space int, mins, maxs []int, weights []float64) []int {
	n := len(mins)
	sizes := make([]int, n)
	copy(sizes, mins)
	rem := space
	for _, m := range mins {
		rem -= m
	}
	if n == 0 || rem <= 0 {
		return sizes
	}

	live := make([]int, 0, n)
	for i := range n {
		if maxs[i] > sizes[i] {
			live = append(live, i)
		}
	}

	for len(live) > 0 && rem > 0 {
		ws := make([]float64, len(live))
		for j, i := range live {
			ws[j] = weights[i]
		}
		shares := splitShares(rem, integerWeights(ws))

		var pinned bool
		next := make([]int, 0, len(live))
		for j, i := range live {
			if sizes[i]+shares[j] >= maxs[i] {
				rem -= maxs[i] - sizes[i]
				sizes[i] = maxs[i]
				pinned = true
				continue
			}
			next = append(next, i)
		}
		if !pinned {
			for j, i := range live {
				sizes[i] += shares[j]
			}
			return sizes
		}
		live = next
	}

	if rem > 0 {
		shares := splitShares(rem, integerWeights(make([]float64, n)))
		for i := range sizes {
			sizes[i] += shares[i]
		}
	}
	return sizes
}

// splitShares splits space by integer weights. Each share is its exact part
// of what is still unassigned, rounded half up, so shares sum to space and
// each is within one unit of its proportional value.
func splitShares(space int, iw []int64) []int {
	var remW int64
	for _, w := range iw {
		remW += w
	}
	rem := int64(space)
	shares := make([]int, len(iw))
	for i, w := range iw {
		if remW <= 0 {
			break
		}
		s := (rem*w + remW/2) / remW
		shares[i] = int(s)
		rem -= s
		remW -= w
	}
	return shares
}
