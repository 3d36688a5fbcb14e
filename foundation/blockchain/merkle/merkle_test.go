package merkle_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
	"github.com/ardanlabs/sealchain/foundation/blockchain/merkle"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Data represents a value stored in the tree.
type Data struct {
	X string `json:"x"`
}

// =============================================================================

func Test_Root(t *testing.T) {
	h := hasher.Hash

	a, b, c := Data{X: "a"}, Data{X: "b"}, Data{X: "c"}
	ha, hb, hc := h(a), h(b), h(c)

	type table struct {
		name string
		data []Data
		exp  string
	}

	tt := []table{
		{
			name: "single",
			data: []Data{a},
			exp:  h(ha + ha),
		},
		{
			name: "pair",
			data: []Data{a, b},
			exp:  h(ha + hb),
		},
		{
			// [a b c c] -> [c c ab] -> [ab cc] -> [abcc]
			name: "three",
			data: []Data{a, b, c},
			exp:  h(h(ha+hb) + h(hc+hc)),
		},
		{
			// [a b c a b c] -> [ab ca bc] -> [bc abca] -> [bcabca]
			name: "six",
			data: []Data{a, b, c, a, b, c},
			exp:  h(h(hb+hc) + h(h(ha+hb)+h(hc+ha))),
		},
	}

	t.Log("Given the need to calculate merkle roots.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					root, err := merkle.Root(tst.data)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to calculate the root: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to calculate the root.", success, testID)

					if root != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, root)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould pair hashes from the front of the queue.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould pair hashes from the front of the queue.", success, testID)

					again, err := merkle.Root(tst.data)
					if err != nil || again != root {
						t.Fatalf("\t%s\tTest %d:\tShould be deterministic.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be deterministic.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Empty(t *testing.T) {
	t.Log("Given the need to reject empty input.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling no values.", testID)
		{
			_, err := merkle.Root([]Data{})
			if !errors.Is(err, merkle.ErrEmptyInput) {
				t.Fatalf("\t%s\tTest %d:\tShould get ErrEmptyInput, got %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get ErrEmptyInput.", success, testID)

			_, err = merkle.Leaves[Data](nil)
			if !errors.Is(err, merkle.ErrEmptyInput) {
				t.Fatalf("\t%s\tTest %d:\tShould get ErrEmptyInput for leaves, got %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get ErrEmptyInput for leaves.", success, testID)
		}
	}
}

func Test_Leaves(t *testing.T) {
	data := []Data{{X: "a"}, {X: "b"}, {X: "c"}}

	leaves, err := merkle.Leaves(data)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to build leaves: %v", failed, err)
	}

	if len(leaves) != 4 || leaves[3] != leaves[2] || leaves[2] != hasher.Hash(data[2]) {
		t.Fatalf("\t%s\tShould duplicate the last leaf: %v", failed, leaves)
	}
	t.Logf("\t%s\tShould duplicate the last leaf.", success)
}

func Test_HashStrategy(t *testing.T) {
	legacy := hasher.Hasher{Encoding: hasher.EncodingLegacy}
	data := []Data{{X: "a"}, {X: "b"}}

	root, err := merkle.Root(data, merkle.WithHashStrategy(legacy.Hash))
	if err != nil {
		t.Fatalf("\t%s\tShould be able to calculate the root: %v", failed, err)
	}

	exp := legacy.Hash(legacy.Hash(data[0]) + legacy.Hash(data[1]))
	if root != exp {
		t.Logf("\t%s\tgot: %s", failed, root)
		t.Logf("\t%s\texp: %s", failed, exp)
		t.Fatalf("\t%s\tShould use the provided hash strategy.", failed)
	}
	t.Logf("\t%s\tShould use the provided hash strategy.", success)
}
