// File: combx.go
// Title: Combinatorial Identifier Codec
// Description: Maps a tuple of option selections, one per independent
//              dimension, onto a single integer and back using mixed-radix
//              positional weights. Equality per dimension is pluggable.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package combx

import (
	"fmt"
	"math"
	"reflect"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

// Equal decides whether an option matches a selection component
type Equal func(option, component any) bool

// Manager encodes and decodes selections over a fixed set of dimensions.
// Dimension 0 is the least significant digit. A Manager is not safe for
// concurrent use while comparators are being pushed.
type Manager struct {
	options [][]any
	units   []int
	equal   []Equal
	count   int
}

// DefaultEqual treats two nils as equal, a single nil as unequal and
// compares everything else with reflect.DeepEqual
func DefaultEqual(option, component any) bool {
	if option == nil || component == nil {
		return option == nil && component == nil
	}
	return reflect.DeepEqual(option, component)
}

// NewManager builds a codec over the given dimensions. Each dimension is an
// ordered list of options; none may be empty. The option slices are copied.
func NewManager(dimensions ...[]any) (*Manager, error) {
	if len(dimensions) == 0 {
		return nil, mdwerrors.CombxEmptyDimension(-1)
	}

	m := &Manager{
		options: make([][]any, len(dimensions)),
		units:   make([]int, len(dimensions)),
		equal:   make([]Equal, len(dimensions)),
		count:   1,
	}
	for i, options := range dimensions {
		if len(options) == 0 {
			return nil, mdwerrors.CombxEmptyDimension(i)
		}
		if m.count > math.MaxInt/len(options) {
			return nil, mdwerrors.CombxOverflow(i)
		}
		m.options[i] = append([]any(nil), options...)
		m.units[i] = m.count
		m.equal[i] = DefaultEqual
		m.count *= len(options)
	}
	return m, nil
}

// Count returns the number of distinct identifiers, the product of all
// dimension sizes
func (m *Manager) Count() int { return m.count }

// Dimensions returns the number of dimensions
func (m *Manager) Dimensions() int { return len(m.options) }

// Options returns a copy of the options of dimension dim, nil when dim does
// not exist
func (m *Manager) Options(dim int) []any {
	if dim < 0 || dim >= len(m.options) {
		return nil
	}
	return append([]any(nil), m.options[dim]...)
}

// Weights returns the positional weight of every option of dimension dim:
// the option index times the product of the sizes of all lower dimensions
func (m *Manager) Weights(dim int) []int {
	if dim < 0 || dim >= len(m.options) {
		return nil
	}
	weights := make([]int, len(m.options[dim]))
	for i := range weights {
		weights[i] = i * m.units[dim]
	}
	return weights
}

// Encode returns the identifier of a selection given as option values, one
// per dimension starting at dimension 0. Trailing dimensions may be omitted
// and nil components are skipped; both contribute nothing.
func (m *Manager) Encode(selection ...any) (int, error) {
	if len(selection) == 0 {
		return 0, mdwerrors.CombxInvalidArgument("encode", "no selection given")
	}
	if len(selection) > len(m.options) {
		return 0, mdwerrors.CombxInvalidArgument("encode",
			fmt.Sprintf("%d components for %d dimensions", len(selection), len(m.options)))
	}

	id := 0
	for dim, component := range selection {
		if component == nil {
			continue
		}
		index := m.indexOf(dim, component)
		if index < 0 {
			return 0, mdwerrors.CombxNoMatch(dim, component)
		}
		id += index * m.units[dim]
	}
	return id, nil
}

func (m *Manager) indexOf(dim int, component any) int {
	for i, option := range m.options[dim] {
		if m.equal[dim](option, component) {
			return i
		}
	}
	return -1
}

// EncodeWithIndex returns the identifier of a selection given as option
// indices. Exactly one index per dimension is required.
func (m *Manager) EncodeWithIndex(indices ...int) (int, error) {
	if len(indices) != len(m.options) {
		return 0, mdwerrors.CombxInvalidArgument("encode_with_index",
			fmt.Sprintf("%d indices for %d dimensions", len(indices), len(m.options)))
	}

	id := 0
	for dim, index := range indices {
		if index < 0 || index >= len(m.options[dim]) {
			return 0, mdwerrors.CombxInvalidArgument("encode_with_index",
				fmt.Sprintf("index %d outside dimension %d of size %d", index, dim, len(m.options[dim])))
		}
		id += index * m.units[dim]
	}
	return id, nil
}

// Decode returns the selection identified by id, one option per dimension.
// Starting at the highest dimension it takes the largest weight that does
// not exceed the remainder. Count() itself is accepted and decodes to the
// last option of every dimension.
func (m *Manager) Decode(id int) ([]any, error) {
	if id < 0 || id > m.count {
		return nil, mdwerrors.CombxIDOutOfRange(id, m.count)
	}

	selection := make([]any, len(m.options))
	remainder := id
	for dim := len(m.options) - 1; dim >= 0; dim-- {
		index := min(remainder/m.units[dim], len(m.options[dim])-1)
		selection[dim] = m.options[dim][index]
		remainder -= index * m.units[dim]
	}
	return selection, nil
}

// DecodeIndices is Decode returning option indices instead of values
func (m *Manager) DecodeIndices(id int) ([]int, error) {
	if id < 0 || id > m.count {
		return nil, mdwerrors.CombxIDOutOfRange(id, m.count)
	}

	indices := make([]int, len(m.options))
	remainder := id
	for dim := len(m.options) - 1; dim >= 0; dim-- {
		indices[dim] = min(remainder/m.units[dim], len(m.options[dim])-1)
		remainder -= indices[dim] * m.units[dim]
	}
	return indices, nil
}

// PushComparator replaces the equality of dimension dim. The first option of
// the dimension must be a T. The comparator only sees non-nil values of type
// T: two nils are equal, a single nil or a value of another type is not.
func PushComparator[T any](m *Manager, dim int, eq func(option, component T) bool) error {
	if dim < 0 || dim >= len(m.options) {
		return mdwerrors.CombxInvalidArgument("push_comparator",
			fmt.Sprintf("dimension %d outside [0, %d)", dim, len(m.options)))
	}
	if eq == nil {
		return mdwerrors.CombxInvalidArgument("push_comparator", "nil comparator")
	}
	if _, ok := m.options[dim][0].(T); !ok {
		return mdwerrors.CombxTypeMismatch(dim, reflect.TypeFor[T]().String(), fmt.Sprintf("%T", m.options[dim][0]))
	}

	m.equal[dim] = func(option, component any) bool {
		if option == nil || component == nil {
			return option == nil && component == nil
		}
		a, okA := option.(T)
		b, okB := component.(T)
		if !okA || !okB {
			return false
		}
		return eq(a, b)
	}
	return nil
}
