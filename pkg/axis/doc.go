// Package axis allocates integer space along one dimension of a grid.
//
// # Overview
//
// An axis is a row of adjacent elements (the columns of a grid, or its rows).
// Each element carries a minimum, maximum and preferred size plus a weight
// that decides how slack space is shared. Widgets that span several elements
// add range constraints that bound the sum of a contiguous block of sizes.
// Given a requested total, a [Layouter] produces an exact integer location
// and size for every element.
//
// # Strategies
//
// Four implementations of [Layouter] cover the shapes an axis can take:
//
//   - [Trivial]: a single slot. Every constraint applies to it.
//   - [Uniform]: per-element constraints only. Slack is distributed by
//     weight in rounds, clamping elements that reach their maximum.
//   - [Complex]: range constraints. Bounds are propagated through a
//     triangular range table, conflicting maxima are relaxed, and the final
//     placement comes from the active-set solver in the optimizer package.
//   - [Collapsing]: removes elements that carry no size constraint at all,
//     then picks one of the above for the rest.
//
// Most callers want [NewCollapsing]:
//
//	l := axis.NewCollapsing(4)
//	l.AddConstraints(0, 1, 10, axis.SizeUnset, 40)
//	l.AddConstraints(1, 1, 10, axis.SizeUnset, 40)
//	l.AddConstraints(0, 2, 60, axis.SizeUnset, axis.SizeUnset)
//
//	info := l.CreateLayoutInfo()
//	if err := l.Layout(info, 100); err != nil {
//	    return err
//	}
//	fmt.Println(info.Sizes())
//
// # Sizes and Spacing
//
// Sizes are non-negative integers. [SizeUnset] leaves a bound open: an unset
// minimum is 0 and an unset maximum is [SizeUnlimited]. Every strategy is
// built with a spacing that separates consecutive elements, and the aggregate
// sizes reported by [Layouter.MinSize], [Layouter.MaxSize] and
// [Layouter.PreferredSize] include it. Range bounds also include the spacing
// between the elements they cover.
//
// After a successful [Layouter.Layout] with size s:
//
//	sum(sizes) + spacing*(n-1) == clamp(s, MinSize(), MaxSize())
//
// # Errors
//
// A minimum that cannot be satisfied together with the minima already
// accepted is a modeling error ([ErrModeling]); the layouter must be
// discarded. Maxima that conflict with the rest of the model are widened
// silently and recorded (see [Complex.Relaxations]).
//
// Layouters are not safe for concurrent use.
package axis
