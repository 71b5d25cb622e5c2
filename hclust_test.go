package hclust

import (
	"errors"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func demoDataset() *Dataset {
	return NewDataset().
		MustAdd("a", []float64{1, 2}).
		MustAdd("b", []float64{2, 3}).
		MustAdd("c", []float64{5, 5})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Method != LinkageAverage {
		t.Errorf("Method: got %q, want %q", cfg.Method, LinkageAverage)
	}
	if _, ok := cfg.Metric.(EuclideanMetric); !ok {
		t.Errorf("Metric: got %T, want EuclideanMetric", cfg.Metric)
	}
	if cfg.Linkage != nil {
		t.Errorf("Linkage: got %T, want nil", cfg.Linkage)
	}
	if cfg.ReturnDistances {
		t.Error("ReturnDistances: got true, want false")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown method", func(c *Config) { c.Method = "ward" }},
		{"upper-case method", func(c *Config) { c.Method = "Average" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
			_, err = Run(demoDataset(), cfg)
			if err == nil {
				t.Errorf("Run: expected error for %s", tt.name)
			}
		})
	}
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, AverageLinkage{Metric: EuclideanMetric{}}, c.Linkage())
}

func TestNew_LinkageOverridesMethod(t *testing.T) {
	calls := 0
	custom := LinkageFunc(func(a, b [][]float64) (float64, bool) {
		calls++
		return simpleDistance(a[0], b[0]), true
	})
	c, err := New(Config{Method: "ward", Linkage: custom})
	require.NoError(t, err)

	got, err := c.Run(lineDataset(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Positive(t, calls)
	assert.Equal(t, 5, got[0].Size())
}

func TestRun_Demo(t *testing.T) {
	cfg := Config{Method: LinkageAverage, Metric: ManhattanMetric{}}
	got, err := Run(demoDataset(), cfg)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `[["c"], [["a"], ["b"]]]`, got[0].String())

	cfg.ReturnDistances = true
	got, err = Run(demoDataset(), cfg)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `[["c"], [["a"], ["b"], 2], 6]`, got[0].String())
}

func TestRun_UnknownsWithDistances(t *testing.T) {
	got, err := Run(unknownsDataset(t), Config{
		Method:          LinkageAverage,
		Metric:          ManhattanMetric{},
		ReturnDistances: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `[["c"], [["e"], [["a"], [["b"], ["d"], 0], 2], 6.666666666666667], 11]`, got[0].String())
}

func TestRun_EmptyDataset(t *testing.T) {
	got, err := Run(NewDataset(), DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRun_SingleItem(t *testing.T) {
	data := NewDataset().MustAdd("only", []float64{1, 2, 3})
	got, err := Run(data, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &Leaf{ID: "only"}, got[0])
}

func TestRun_NilDataset(t *testing.T) {
	_, err := Run(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilDataset)
}

func TestRun_NoComparablePair(t *testing.T) {
	data := NewDataset().
		MustAdd("x", []float64{1, nan}).
		MustAdd("y", []float64{nan, 2})
	got, err := Run(data, DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrNoComparablePair))
	assert.Contains(t, err.Error(), "merge 1 of 1")
}

func TestRun_NoComparablePairAfterMerges(t *testing.T) {
	// x and y merge first; z shares no coordinate with either.
	data := NewDataset().
		MustAdd("x", []float64{1, nan}).
		MustAdd("y", []float64{2, nan}).
		MustAdd("z", []float64{nan, 5})
	_, err := Run(data, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoComparablePair)
	assert.ErrorContains(t, err, "merge 2 of 2")
}

func TestRun_DoesNotModifyDataset(t *testing.T) {
	data := unknownsDataset(t)
	before := data.IDs()
	_, err := Run(data, Config{Metric: ManhattanMetric{}})
	require.NoError(t, err)
	assert.Equal(t, before, data.IDs())
	v, _ := data.Vector("a")
	assert.Equal(t, []float64{1, 2}, v)
}

func TestRun_TreeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, m := range []int{2, 3, 7, 20} {
		for _, method := range []LinkageMethod{LinkageSingle, LinkageComplete, LinkageAverage} {
			t.Run(string(method)+"/"+strconv.Itoa(m), func(t *testing.T) {
				data := NewDataset()
				for i := 0; i < m; i++ {
					data.MustAdd("p"+strconv.Itoa(i), randomVector(rng, 3, 0))
				}

				got, err := Run(data, Config{Method: method, ReturnDistances: true})
				require.NoError(t, err)
				require.Len(t, got, 1)
				root := got[0]

				leaves := root.Leaves()
				assert.Len(t, leaves, m)
				assert.ElementsMatch(t, data.IDs(), leaves)

				merges := 0
				Walk(root, func(n Cluster) bool {
					if mg, ok := n.(*Merge); ok {
						merges++
						assert.True(t, mg.HasDistance)
						assert.Equal(t, mg.Left.Size()+mg.Right.Size(), mg.Size())
					}
					return true
				})
				assert.Equal(t, m-1, merges)
			})
		}
	}
}

func TestRun_MergeDistancesNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := NewDataset()
	for i := 0; i < 15; i++ {
		data.MustAdd("p"+strconv.Itoa(i), randomVector(rng, 4, 0.2))
	}
	for _, method := range []LinkageMethod{LinkageSingle, LinkageComplete, LinkageAverage} {
		c, err := New(Config{Method: method, Metric: ManhattanMetric{}})
		require.NoError(t, err)
		rows, err := c.RunLinkage(data)
		require.NoError(t, err)
		for k := 1; k < len(rows); k++ {
			assert.GreaterOrEqual(t, rows[k][2], rows[k-1][2]-1e-9, "%s: row %d", method, k)
		}
	}
}

func TestRun_InputPermutationGivesEquivalentTree(t *testing.T) {
	gd := loadGoldenFile(t, "testdata/grades.json")
	want, err := Run(gd.dataset(t), Config{ReturnDistances: true})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		items := slices.Clone(gd.Items)
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		shuffled := goldenData{Items: items}

		got, err := Run(shuffled.dataset(t), Config{ReturnDistances: true})
		require.NoError(t, err)
		assert.True(t, Equivalent(want[0], got[0], 1e-9), "trial %d: got %s", trial, got[0])
	}
}

func TestRunLinkage_Unknowns(t *testing.T) {
	c, err := New(Config{Method: LinkageAverage, Metric: ManhattanMetric{}})
	require.NoError(t, err)
	rows, err := c.RunLinkage(unknownsDataset(t))
	require.NoError(t, err)
	assert.Equal(t, unknownsLinkage, rows)
}

func TestRunLinkage_DistancesIgnoreReturnDistances(t *testing.T) {
	c, err := New(Config{Metric: ManhattanMetric{}, ReturnDistances: false})
	require.NoError(t, err)
	rows, err := c.RunLinkage(demoDataset())
	require.NoError(t, err)
	assert.Equal(t, [][4]float64{{0, 1, 2, 2}, {2, 3, 6, 3}}, rows)
}

func TestRunLinkage_Empty(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	rows, err := c.RunLinkage(NewDataset())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClusterer_Reusable(t *testing.T) {
	c, err := New(Config{Metric: ManhattanMetric{}, ReturnDistances: true})
	require.NoError(t, err)
	first, err := c.Run(demoDataset())
	require.NoError(t, err)
	second, err := c.Run(demoDataset())
	require.NoError(t, err)
	assert.Equal(t, first[0].String(), second[0].String())
}

func TestRun_LogsEveryMerge(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := Config{Metric: ManhattanMetric{}, Logger: zap.New(core)}

	_, err := Run(unknownsDataset(t), cfg)
	require.NoError(t, err)

	merged := logs.FilterMessage("merged clusters").All()
	require.Len(t, merged, 4)
	first := merged[0].ContextMap()
	assert.Equal(t, int64(0), first["step"])
	assert.Equal(t, `["b"]`, first["first"])
	assert.Equal(t, `["d"]`, first["second"])
	assert.Equal(t, int64(2), first["size"])

	finished := logs.FilterMessage("clustering finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(4), finished[0].ContextMap()["merges"])

	// c has no coordinate in common with b or d.
	assert.Positive(t, logs.FilterMessage("skipped incomparable cluster pairs").Len())
}

func TestRun_WithTestLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = zaptest.NewLogger(t)
	got, err := Run(demoDataset(), cfg)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
