package axis

// Trivial lays out an axis with a single slot. Every constraint applies to
// that slot regardless of the element and length it names.
type Trivial struct {
	slot element
}

// NewTrivial returns an unconstrained single-slot layouter.
func NewTrivial() *Trivial {
	return &Trivial{slot: newElement()}
}

// AddConstraints merges the bounds into the single slot; element and length
// are ignored.
func (t *Trivial) AddConstraints(_, _, lo, hi, preferred int) {
	t.slot.constrain(lo, hi, preferred)
}

// SetWeight records the weight of the slot. It has no effect on the layout.
func (t *Trivial) SetWeight(_ int, weight float64) {
	t.slot.weight = max(weight, 0)
}

// ElementCount always returns 1.
func (t *Trivial) ElementCount() int { return 1 }

// MinSize returns the merged minimum of the slot.
func (t *Trivial) MinSize() int { return t.slot.min }

// MaxSize returns the merged maximum of the slot.
func (t *Trivial) MaxSize() int { return t.slot.max }

// PreferredSize returns the preferred size clamped into the slot bounds.
func (t *Trivial) PreferredSize() int { return t.slot.preferredSize() }

// Validate always succeeds.
func (t *Trivial) Validate() error { return nil }

// CreateLayoutInfo returns an empty result.
func (t *Trivial) CreateLayoutInfo() *Result { return &Result{} }

// Layout places the clamped size at location 0.
func (t *Trivial) Layout(info *Result, size int) error {
	if info == nil {
		return ErrNilResult
	}
	info.place([]int{clamp(size, t.slot.min, t.slot.max)}, 0)
	return nil
}

// CloneLayouter returns a copy of the slot.
func (t *Trivial) CloneLayouter() Layouter {
	return &Trivial{slot: t.slot}
}
