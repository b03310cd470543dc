// Package hac implements Hierarchical Agglomerative Clustering over a
// symmetric distance matrix, grounded on the Engram similarity-clustering
// package's merge-and-relabel structure, generalized from single-linkage
// Jaccard clustering to the spec's four Lance-Williams linkages.
package hac

import "math"

// Linkage selects the inter-cluster distance update rule via tagged-
// variant dispatch.
type Linkage string

const (
	Single   Linkage = "single"
	Complete Linkage = "complete"
	Average  Linkage = "average"
	Ward     Linkage = "ward"
)

// Merge records one dendrogram node: clusters a and b merged into a new
// cluster at distance d, whose resulting size is size.
type Merge struct {
	A, B int
	Dist float64
	Size int
}

// Dendrogram is the full sequence of N-1 merges produced by Build, plus
// bookkeeping needed to cut it at an arbitrary cluster count.
type Dendrogram struct {
	Merges []Merge
	n      int // original leaf count
}

type cluster struct {
	id      int
	members []int // original leaf indices, sorted
}

// Build runs HAC over an N x N symmetric distance matrix with the given
// linkage, producing exactly N-1 merges. A zero-variance (all-zero)
// matrix still produces a full dendrogram; callers that want the
// numeric-error policy's "single cluster with a warning" behavior should
// check for that condition before calling Build (see the discover
// component, which does).
func Build(dist [][]float64, linkage Linkage) *Dendrogram {
	n := len(dist)
	d := &Dendrogram{n: n}
	if n == 0 {
		return d
	}

	active := make([]*cluster, n)
	for i := 0; i < n; i++ {
		active[i] = &cluster{id: i, members: []int{i}}
	}

	// cur[i][j] holds the current inter-cluster distance between active
	// cluster indices i and j (indices into `active`, not cluster ids).
	cur := make([][]float64, n)
	for i := range cur {
		cur[i] = append([]float64(nil), dist[i]...)
	}

	nextID := n
	for len(active) > 1 {
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				dij := cur[i][j]
				if dij < best || (dij == best && lexLess(active[i].id, active[j].id, active[bi].id, active[bj].id)) {
					best = dij
					bi, bj = i, j
				}
			}
		}

		a, b := active[bi], active[bj]
		newMembers := make([]int, 0, len(a.members)+len(b.members))
		newMembers = append(newMembers, a.members...)
		newMembers = append(newMembers, b.members...)
		newCluster := &cluster{id: nextID, members: newMembers}

		d.Merges = append(d.Merges, Merge{A: a.id, B: b.id, Dist: best, Size: len(newMembers)})

		// Compute new distances from the merged cluster to every other
		// remaining cluster, then rebuild the active list/matrix.
		var keep []int
		for i := range active {
			if i != bi && i != bj {
				keep = append(keep, i)
			}
		}
		newActive := make([]*cluster, 0, len(keep)+1)
		newDist := make([][]float64, 0, len(keep)+1)
		sizes := make([]float64, 0, len(keep)+1)

		for _, i := range keep {
			newActive = append(newActive, active[i])
		}
		newActive = append(newActive, newCluster)

		for _, c := range newActive {
			sizes = append(sizes, float64(len(c.members)))
		}

		for idx, i := range keep {
			row := make([]float64, len(newActive))
			for jdx, j := range keep {
				row[jdx] = cur[i][j]
			}
			row[len(newActive)-1] = lanceWilliams(linkage, cur[bi][i], cur[bj][i], best, float64(len(a.members)), float64(len(b.members)), sizes[idx])
			newDist = append(newDist, row)
		}
		lastRow := make([]float64, len(newActive))
		for jdx := range keep {
			lastRow[jdx] = newDist[jdx][len(newActive)-1]
		}
		newDist = append(newDist, lastRow)

		active = newActive
		cur = newDist
		nextID++
	}

	return d
}

// lanceWilliams implements the spec's four linkage update rules. dac/dbc
// are the pre-merge distances cluster a (resp. b) had to cluster c; dOld
// is d(a,b), the distance at which a and b were just merged (only used
// by Ward; ignored by the other three).
func lanceWilliams(linkage Linkage, dac, dbc, dOld, sizeA, sizeB, sizeC float64) float64 {
	switch linkage {
	case Single:
		return math.Min(dac, dbc)
	case Complete:
		return math.Max(dac, dbc)
	case Average:
		return (sizeA*dac + sizeB*dbc) / (sizeA + sizeB)
	case Ward:
		total := sizeA + sizeB + sizeC
		alphaA := (sizeA + sizeC) / total
		alphaB := (sizeB + sizeC) / total
		beta := -sizeC / total
		return alphaA*dac + alphaB*dbc + beta*dOld
	default:
		return math.Min(dac, dbc)
	}
}

// lexLess reports whether (aID,bID) lexicographically precedes
// (cID,dID), used to break equal-distance ties deterministically.
func lexLess(aID, bID, cID, dID int) bool {
	lo1, hi1 := aID, bID
	if lo1 > hi1 {
		lo1, hi1 = hi1, lo1
	}
	lo2, hi2 := cID, dID
	if lo2 > hi2 {
		lo2, hi2 = hi2, lo2
	}
	if lo1 != lo2 {
		return lo1 < lo2
	}
	return hi1 < hi2
}

// CutAt removes the last k-1 merges and reports the resulting k clusters
// as slices of original leaf indices, sorted for determinism.
func (d *Dendrogram) CutAt(k int) [][]int {
	if d.n == 0 {
		return nil
	}
	if k <= 1 {
		k = 1
	}
	if k > d.n {
		k = d.n
	}
	keepMerges := d.n - k
	if keepMerges < 0 {
		keepMerges = 0
	}

	parent := make(map[int][]int, d.n) // cluster id -> leaf members
	for i := 0; i < d.n; i++ {
		parent[i] = []int{i}
	}
	nextID := d.n
	for i := 0; i < keepMerges; i++ {
		m := d.Merges[i]
		merged := append(append([]int(nil), parent[m.A]...), parent[m.B]...)
		delete(parent, m.A)
		delete(parent, m.B)
		parent[nextID] = merged
		nextID++
	}

	clusters := make([][]int, 0, len(parent))
	for _, members := range parent {
		sorted := append([]int(nil), members...)
		sortInts(sorted)
		clusters = append(clusters, sorted)
	}
	sortClusters(clusters)
	return clusters
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func sortClusters(cs [][]int) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && firstLess(cs[j], cs[j-1]); j-- {
			cs[j-1], cs[j] = cs[j], cs[j-1]
		}
	}
}

func firstLess(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) < len(b)
	}
	return a[0] < b[0]
}
