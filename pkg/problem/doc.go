// Package problem defines the file and wire format of an axis layout problem
// and turns it into an [axis.Layouter].
//
// A problem lists per-element bounds, range constraints over consecutive
// elements, the spacing between elements and the total sizes to solve for.
// Problems are written in TOML or JSON:
//
//	name = "toolbar"
//	spacing = 4
//
//	[[elements]]
//	index = 0
//	min = 20
//	weight = 2.0
//
//	[[elements]]
//	index = 1
//	min = 20
//	max = 80
//
//	[[ranges]]
//	first = 0
//	last = 1
//	max = 120
//
// Unset bounds are omitted (nil pointers in Go). [Problem.Build] feeds the
// constraints into the layouter selected by [Problem.Strategy]; the default
// "auto" strategy uses [axis.Collapsing], which picks the cheapest strategy
// that honors every constraint.
//
// Results are reported as a [Solution] per requested size and a [Bounds]
// summary; both are plain JSON-tagged structs shared by the CLI, the cache
// and the HTTP API.
package problem
