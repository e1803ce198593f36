package axis

// Uniform lays out an axis whose elements are constrained individually.
// Constraints spanning more than one element create the elements they name
// but are otherwise ignored.
type Uniform struct {
	spacing int
	elems   elements
	cache   layoutCache
}

// NewUniform returns an empty layouter with spacing between elements.
func NewUniform(spacing int) *Uniform {
	return &Uniform{spacing: clamp(spacing, 0, MaxBound)}
}

// AddConstraints merges per-element bounds. Ranges only create their
// elements.
func (u *Uniform) AddConstraints(element, length, lo, hi, preferred int) {
	if element < 0 || length < 1 {
		return
	}
	u.elems.ensure(element + length)
	if length == 1 {
		u.elems[element].constrain(lo, hi, preferred)
	}
	u.cache.invalidate()
}

// SetWeight sets the share of slack for element.
func (u *Uniform) SetWeight(element int, weight float64) {
	u.elems.setWeight(element, weight)
	u.cache.invalidate()
}

// ElementCount returns the number of elements referenced so far.
func (u *Uniform) ElementCount() int { return len(u.elems) }

// MinSize returns the sum of the element minimums plus spacing.
func (u *Uniform) MinSize() int {
	sum := 0
	for _, e := range u.elems {
		sum = satAdd(sum, e.min)
	}
	return withSpacing(sum, len(u.elems), u.spacing)
}

// MaxSize returns the sum of the element maximums plus spacing.
func (u *Uniform) MaxSize() int {
	sum := 0
	for _, e := range u.elems {
		sum = satAdd(sum, e.max)
	}
	return withSpacing(sum, len(u.elems), u.spacing)
}

// PreferredSize returns the sum of the clamped preferred sizes plus spacing.
func (u *Uniform) PreferredSize() int {
	sum := 0
	for _, e := range u.elems {
		sum = satAdd(sum, e.preferredSize())
	}
	return clamp(withSpacing(sum, len(u.elems), u.spacing), u.MinSize(), u.MaxSize())
}

// Validate always succeeds.
func (u *Uniform) Validate() error { return nil }

// CreateLayoutInfo returns an empty result.
func (u *Uniform) CreateLayoutInfo() *Result { return &Result{} }

// Layout grows every element from its minimum by its share of the slack.
func (u *Uniform) Layout(info *Result, size int) error {
	if info == nil {
		return ErrNilResult
	}
	n := len(u.elems)
	size = clamp(size, u.MinSize(), u.MaxSize())
	if sizes, ok := u.cache.lookup(size); ok {
		info.place(sizes, u.spacing)
		return nil
	}

	mins := make([]int, n)
	maxs := make([]int, n)
	for i, e := range u.elems {
		mins[i], maxs[i] = e.min, e.max
	}
	sizes := distribute(size-spacingTotal(n, u.spacing), mins, maxs, u.elems.weights())

	u.cache.store(size, sizes)
	info.place(sizes, u.spacing)
	return nil
}

// CloneLayouter returns a copy with the same elements and spacing.
func (u *Uniform) CloneLayouter() Layouter {
	return &Uniform{spacing: u.spacing, elems: u.elems.clone()}
}
