package recommender

import (
	"math"
	"math/rand"
	"sort"

	"prep-pilot/internal/textvec"
)

// No random-forest library exists in this stack, so the re-ranker carries a
// compact CART/gini implementation. Training is fully deterministic for a
// given sample set: every source of randomness derives from forestSeed.

const (
	forestSeed     = 42
	forestTrees    = 100
	forestMaxDepth = 12
	forestMinLeaf  = 1
)

type sample struct {
	vec   textvec.Vector
	label int
}

type treeNode struct {
	leaf      bool
	prob      float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// Forest is a trained binary classifier over sparse TF-IDF features plus the
// difficulty ordinal.
type Forest struct {
	trees []*treeNode
}

// trainForest fits nTrees bootstrapped CART trees. activeFeatures are the
// dimensions worth splitting on (the union of dimensions present in the
// training samples); everything else is constant zero and can't split.
func trainForest(samples []sample) *Forest {
	active := activeFeatures(samples)
	mtry := int(math.Ceil(math.Sqrt(float64(len(active)))))
	if mtry < 1 {
		mtry = 1
	}

	f := &Forest{trees: make([]*treeNode, forestTrees)}
	for t := 0; t < forestTrees; t++ {
		rng := rand.New(rand.NewSource(forestSeed + int64(t)))
		boot := make([]sample, len(samples))
		for i := range boot {
			boot[i] = samples[rng.Intn(len(samples))]
		}
		f.trees[t] = growTree(boot, active, mtry, 0, rng)
	}
	return f
}

// PredictProb returns the mean positive-class probability across trees.
func (f *Forest) PredictProb(v textvec.Vector) float64 {
	if f == nil || len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range f.trees {
		sum += tree.predict(v)
	}
	return sum / float64(len(f.trees))
}

func (n *treeNode) predict(v textvec.Vector) float64 {
	for !n.leaf {
		if v.At(n.feature) <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.prob
}

func growTree(samples []sample, active []int, mtry, depth int, rng *rand.Rand) *treeNode {
	pos := countPositives(samples)
	if depth >= forestMaxDepth || pos == 0 || pos == len(samples) || len(samples) < 2*forestMinLeaf {
		return leafNode(pos, len(samples))
	}

	feature, threshold, ok := bestSplit(samples, active, mtry, rng)
	if !ok {
		return leafNode(pos, len(samples))
	}

	var left, right []sample
	for _, s := range samples {
		if s.vec.At(feature) <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) < forestMinLeaf || len(right) < forestMinLeaf {
		return leafNode(pos, len(samples))
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(left, active, mtry, depth+1, rng),
		right:     growTree(right, active, mtry, depth+1, rng),
	}
}

func leafNode(pos, total int) *treeNode {
	return &treeNode{leaf: true, prob: float64(pos) / float64(total)}
}

// bestSplit evaluates mtry randomly chosen active features and returns the
// split with the lowest weighted gini impurity.
func bestSplit(samples []sample, active []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	perm := rng.Perm(len(active))
	if mtry > len(perm) {
		mtry = len(perm)
	}

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	for _, pi := range perm[:mtry] {
		feature := active[pi]

		values := make([]float64, len(samples))
		for i, s := range samples {
			values[i] = s.vec.At(feature)
		}
		uniq := uniqueSorted(values)
		if len(uniq) < 2 {
			continue
		}

		for i := 0; i+1 < len(uniq); i++ {
			threshold := (uniq[i] + uniq[i+1]) / 2
			g, ok := splitGini(samples, feature, threshold)
			if ok && g < bestGini {
				bestGini = g
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func splitGini(samples []sample, feature int, threshold float64) (float64, bool) {
	var nL, posL, nR, posR int
	for _, s := range samples {
		if s.vec.At(feature) <= threshold {
			nL++
			posL += s.label
		} else {
			nR++
			posR += s.label
		}
	}
	if nL == 0 || nR == 0 {
		return 0, false
	}
	total := float64(nL + nR)
	return float64(nL)/total*gini(posL, nL) + float64(nR)/total*gini(posR, nR), true
}

func gini(pos, n int) float64 {
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}

func countPositives(samples []sample) int {
	n := 0
	for _, s := range samples {
		n += s.label
	}
	return n
}

func activeFeatures(samples []sample) []int {
	seen := make(map[int]struct{})
	for _, s := range samples {
		for _, idx := range s.vec.Indices {
			seen[idx] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func uniqueSorted(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
