package axis

// element is the per-element state shared by the Uniform and Complex
// strategies.
type element struct {
	min, max  int
	preferred int
	weight    float64
}

func newElement() element {
	return element{max: SizeUnlimited, weight: 1}
}

// constrain merges a constraint into e. Values are capped at MaxBound and
// the maximum never drops below the minimum.
func (e *element) constrain(lo, hi, preferred int) {
	lo, hi, preferred = clampBound(lo), clampBound(hi), clampBound(preferred)
	if lo != SizeUnset {
		e.min = max(e.min, lo)
	}
	if hi != SizeUnset {
		e.max = min(e.max, hi)
	}
	e.max = max(e.max, e.min)
	if preferred != SizeUnset {
		e.preferred = max(e.preferred, preferred)
	}
}

func (e element) preferredSize() int {
	return clamp(e.preferred, e.min, e.max)
}

type elements []element

// ensure grows the set to at least n elements.
func (es *elements) ensure(n int) {
	for len(*es) < n {
		*es = append(*es, newElement())
	}
}

func (es *elements) setWeight(i int, w float64) {
	if i < 0 {
		return
	}
	es.ensure(i + 1)
	(*es)[i].weight = max(w, 0)
}

func (es elements) weights() []float64 {
	ws := make([]float64, len(es))
	for i, e := range es {
		ws[i] = e.weight
	}
	return ws
}

func (es elements) clone() elements {
	return append(elements(nil), es...)
}
