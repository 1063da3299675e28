// Package combx encodes combinations of independent option selections as
// single integers.
//
// A Manager is built from k dimensions, each an ordered list of options.
// Dimension i has the unit weight size(0) × … × size(i-1), so an identifier
// is the mixed-radix number whose digits are the selected option indices,
// least significant dimension first:
//
//	m, _ := combx.NewManager(
//		[]any{0, 1, 2, 3},
//		[]any{0, 4, 8, 12},
//		[]any{0, 16, 32, 48},
//	)
//	id, _ := m.Encode(1, 4, 32) // 37
//	sel, _ := m.Decode(37)      // [1 4 32]
//
// Options are matched with DefaultEqual unless PushComparator installs a
// typed equality for a dimension.
package combx
