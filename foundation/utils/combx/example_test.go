package combx_test

import (
	"fmt"

	"github.com/msto63/numerik/foundation/utils/combx"
)

func ExampleManager() {
	m, err := combx.NewManager(
		[]any{0, 1, 2, 3},
		[]any{0, 4, 8, 12},
		[]any{0, 16, 32, 48},
	)
	if err != nil {
		panic(err)
	}
	id, _ := m.Encode(1, 4, 32)
	sel, _ := m.Decode(id)
	fmt.Println(id, sel, m.Count())
	// Output: 37 [1 4 32] 64
}
