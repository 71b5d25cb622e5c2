package hclust

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Config controls hierarchical clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Method selects the built-in linkage used to compare clusters:
	// "single" (nearest members), "complete" (farthest members) or
	// "average" (mean over all member pairs). Default: "average".
	Method LinkageMethod

	// Metric is the vector distance the built-in linkage aggregates.
	// Built-in: EuclideanMetric, ManhattanMetric, MinkowskiMetric. Use
	// DistanceFunc to wrap a custom function. Default: EuclideanMetric.
	Metric DistanceMetric

	// Linkage, when set, is used as the cluster distance function as is and
	// Method and Metric are ignored. Use LinkageFunc to wrap a custom
	// function.
	Linkage Linkage

	// ReturnDistances records the merge distance on every *Merge node of
	// the result. Default: false.
	ReturnDistances bool

	// Logger receives debug logs for every merge. Default: zap.NewNop().
	Logger *zap.Logger
}

// DefaultConfig returns a Config using average linkage over Euclidean
// distance.
func DefaultConfig() Config {
	return Config{
		Method: LinkageAverage,
		Metric: EuclideanMetric{},
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Method == "" {
		cfg.Method = LinkageAverage
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Linkage != nil {
		return nil
	}
	switch cfg.Method {
	case LinkageSingle, LinkageComplete, LinkageAverage:
		// valid
	default:
		return fmt.Errorf("hclust: Method must be \"single\", \"complete\" or \"average\", got %q", cfg.Method)
	}
	return nil
}

// Clusterer performs agglomerative hierarchical clustering with a fixed
// cluster distance function. A Clusterer holds no per-run state and may be
// reused.
type Clusterer struct {
	linkage         Linkage
	returnDistances bool
	logger          *zap.Logger
}

// New builds a Clusterer from cfg. Returns an error if the config is invalid.
func New(cfg Config) (*Clusterer, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	linkage := cfg.Linkage
	if linkage == nil {
		var err error
		if linkage, err = NewLinkage(cfg.Method, cfg.Metric); err != nil {
			return nil, err
		}
	}

	return &Clusterer{
		linkage:         linkage,
		returnDistances: cfg.ReturnDistances,
		logger:          cfg.Logger,
	}, nil
}

// Run clusters data with a Clusterer built from cfg.
func Run(data *Dataset, cfg Config) ([]Cluster, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Run(data)
}

// Linkage returns the cluster distance function in use.
func (c *Clusterer) Linkage() Linkage { return c.linkage }

// ClosestClusters returns the closest pair among clusters under the
// configured linkage. See ClosestPair.
func (c *Clusterer) ClosestClusters(data *Dataset, clusters []Cluster) (Pair, error) {
	return ClosestPair(data, clusters, c.linkage)
}

// Run merges the closest pair of clusters until one remains and returns it
// as the only element of the result. The first cluster of each merged pair
// becomes the Left child. An empty dataset yields an empty result and a
// single item yields its leaf.
//
// If at some step no pair of clusters is comparable, Run returns an error
// wrapping ErrNoComparablePair and no partial result.
func (c *Clusterer) Run(data *Dataset) ([]Cluster, error) {
	root, _, err := c.run(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return []Cluster{}, nil
	}
	return []Cluster{root}, nil
}

// RunLinkage clusters data and returns the merge history in scipy linkage
// format: row k is [first, second, distance, size]. Leaves are numbered
// 0..n-1 in dataset order and the cluster created by row k is n+k.
// Distances are always filled in, whatever ReturnDistances says.
func (c *Clusterer) RunLinkage(data *Dataset) ([][4]float64, error) {
	_, rows, err := c.run(data)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Clusterer) run(data *Dataset) (Cluster, [][4]float64, error) {
	if data == nil {
		return nil, nil, ErrNilDataset
	}

	n := data.Len()
	if n == 0 {
		return nil, nil, nil
	}

	// active and ids stay aligned: ids[k] is the linkage-matrix id of active[k].
	active := make([]Cluster, n)
	ids := make([]int, n)
	for k, id := range data.ids {
		active[k] = &Leaf{ID: id}
		ids[k] = k
	}

	rows := make([][4]float64, 0, n-1)
	for step := 0; len(active) >= 2; step++ {
		p, skipped, err := closestPair(data, active, c.linkage)
		if err != nil {
			return nil, nil, fmt.Errorf("merge %d of %d: %w", step+1, n-1, err)
		}
		if skipped > 0 {
			c.logger.Debug("skipped incomparable cluster pairs",
				zap.Int("step", step),
				zap.Int("skipped", skipped),
			)
		}

		var merged *Merge
		if c.returnDistances {
			merged = NewMergeWithDistance(p.First, p.Second, p.Distance)
		} else {
			merged = NewMerge(p.First, p.Second)
		}
		size := merged.Size()
		rows = append(rows, [4]float64{float64(ids[p.i]), float64(ids[p.j]), p.Distance, float64(size)})

		// Remove j before i so i stays valid.
		active = slices.Delete(active, p.j, p.j+1)
		active = slices.Delete(active, p.i, p.i+1)
		ids = slices.Delete(ids, p.j, p.j+1)
		ids = slices.Delete(ids, p.i, p.i+1)
		active = append(active, merged)
		ids = append(ids, n+step)

		c.logger.Debug("merged clusters",
			zap.Int("step", step),
			zap.Stringer("first", p.First),
			zap.Stringer("second", p.Second),
			zap.Float64("distance", p.Distance),
			zap.Int("size", size),
			zap.Int("remaining", len(active)),
		)
	}

	c.logger.Debug("clustering finished",
		zap.Int("items", n),
		zap.Int("merges", len(rows)),
	)
	return active[0], rows, nil
}
