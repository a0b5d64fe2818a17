package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrune(t *testing.T) {
	tests := []struct {
		name    string
		minRuns int
		want    []string
	}{
		{"zero keeps all", 0, []string{"C", "A", "B"}},
		{"one keeps all", 1, []string{"C", "A", "B"}},
		{"default", DefaultMinRuns, []string{"C", "B"}},
		{"three", 3, []string{"C"}},
		{"none qualify", 4, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := fixture()
			got := Prune(ds, tt.minRuns)
			assert.Equal(t, tt.want, got.Models())

			for _, name := range got.Models() {
				orig, err := ds.Model(name)
				require.NoError(t, err)
				kept, err := got.Model(name)
				require.NoError(t, err)
				assert.Equal(t, orig.Runs(), kept.Runs())
				for _, run := range kept.Runs() {
					a, _ := orig.Run(run)
					b, _ := kept.Run(run)
					assert.Same(t, a, b)
				}
			}
		})
	}
}

func TestPruneScenario(t *testing.T) {
	ds := New()
	ds.Add("A", "r1", constCube(2, 0))
	ds.Add("B", "r1", constCube(2, 0))
	ds.Add("B", "r2", constCube(2, 0))

	got := Prune(ds, 2)
	assert.Equal(t, []string{"B"}, got.Models())
	_, err := got.Model("A")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestPruneLeavesInputUntouched(t *testing.T) {
	ds := fixture()
	_ = Prune(ds, 3)
	assert.Equal(t, []string{"C", "A", "B"}, ds.Models())
	assert.Equal(t, 6, ds.TotalRuns())
}

func TestPruneEmpty(t *testing.T) {
	got := Prune(New(), DefaultMinRuns)
	assert.Equal(t, 0, got.Len())
}
