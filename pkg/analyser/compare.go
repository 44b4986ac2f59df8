package analyser

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// DefaultCompareMinSize is the smallest cluster the comparer looks at.
const DefaultCompareMinSize = 2

// clusterNode is a cluster reduced to what the comparison needs.
type clusterNode struct {
	id     string
	titles []string // sorted

	neighbours int
	shared     int
}

// Comparer compares two clusterings of the same spectra. The list with
// fewer clusters provides the "stars", the other one the "starlets".
// Each star is linked to every starlet it shares spectra with.
type Comparer struct {
	Filter *filter.Config

	lists [2][]*clusterNode
}

// NewComparer creates a Comparer ignoring clusters below
// DefaultCompareMinSize.
func NewComparer() *Comparer {
	cfg := filter.DefaultConfig()
	cfg.MinSize = DefaultCompareMinSize
	return &Comparer{Filter: cfg}
}

// Add records a cluster of list 0 or 1.
func (c *Comparer) Add(list int, cluster *core.Cluster) error {
	if list != 0 && list != 1 {
		return fmt.Errorf("invalid cluster list %d", list)
	}
	if ignore(c.Filter, cluster) {
		return nil
	}

	titles := make([]string, cluster.NSpectra())
	for i, s := range cluster.Spectra() {
		titles[i] = s.Title
	}
	sort.Strings(titles)

	c.lists[list] = append(c.lists[list], &clusterNode{id: cluster.ID, titles: titles})
	return nil
}

// List returns a Processor adding clusters to the given list.
func (c *Comparer) List(list int) Processor {
	return ProcessorFunc(func(cluster *core.Cluster) error {
		return c.Add(list, cluster)
	})
}

// Similarity returns the number of shared titles n of two sorted title
// lists and their similarity 0.5 * (n/len(a) + n/len(b)).
func Similarity(a, b []string) (int, float64) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}

	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n, 0.5 * (float64(n)/float64(len(a)) + float64(n)/float64(len(b)))
}

// ConsistencyWarning reports a node sharing more spectra with its
// neighbours than it contains, which happens when spectrum titles are
// not unique.
type ConsistencyWarning struct {
	ClusterID string
	Spectra   int
	Shared    int
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("cluster %s has %d spectra but shares %d with its neighbours", w.ClusterID, w.Spectra, w.Shared)
}

// SideSummary holds the per list results of a comparison.
type SideSummary struct {
	File                int // index of the input list
	Clusters            int
	Spectra             int
	AverageSize         float64
	SizeDist            map[int]int
	Standalone          int // clusters without any neighbour
	LostSpectra         int // spectra not shared with any neighbour
	DivideFactorDist    map[int]int
	AverageDivideFactor float64
}

// Comparison is the result of Comparer.Compare.
type Comparison struct {
	Stars    SideSummary
	Starlets SideSummary

	SharedSpectra       int
	SimilarityDist      map[int]int // similarity * 10, truncated
	ConnectedComponents int
	LargestComponent    int

	Warnings []ConsistencyWarning
}

// IdenticalClusters returns the number of star/starlet pairs with
// identical spectra.
func (r *Comparison) IdenticalClusters() int {
	return r.SimilarityDist[10]
}

// Compare compares all star/starlet pairs and builds the similarity
// network. Both lists must hold at least one cluster.
func (c *Comparer) Compare() (*Comparison, error) {
	starIndex, starletIndex := 1, 0
	if len(c.lists[0]) < len(c.lists[1]) {
		starIndex, starletIndex = 0, 1
	}
	stars, starlets := c.lists[starIndex], c.lists[starletIndex]
	if len(stars) == 0 {
		return nil, fmt.Errorf("no clusters to compare in list %d", starIndex)
	}

	for _, lists := range [][]*clusterNode{stars, starlets} {
		for _, n := range lists {
			n.neighbours, n.shared = 0, 0
		}
	}

	result := &Comparison{
		Stars:          summarise(starIndex, stars),
		Starlets:       summarise(starletIndex, starlets),
		SimilarityDist: make(map[int]int),
	}

	// Stars take the ids [0, len(stars)), starlets follow.
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range len(stars) + len(starlets) {
		g.AddNode(simple.Node(i))
	}

	for i, star := range stars {
		for j, starlet := range starlets {
			shared, similarity := Similarity(star.titles, starlet.titles)
			if similarity == 0 {
				continue
			}

			result.SimilarityDist[int(similarity*10)]++
			result.SharedSpectra += shared

			star.neighbours++
			star.shared += shared
			starlet.neighbours++
			starlet.shared += shared

			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(i),
				T: simple.Node(len(stars) + j),
				W: similarity,
			})
		}
	}

	components := topo.ConnectedComponents(g)
	result.ConnectedComponents = len(components)
	for _, cc := range components {
		result.LargestComponent = max(result.LargestComponent, len(cc))
	}

	result.Warnings = append(result.Warnings,
		divideFactors(&result.Stars, stars, result.Starlets.AverageSize)...)
	result.Warnings = append(result.Warnings,
		divideFactors(&result.Starlets, starlets, result.Stars.AverageSize)...)

	return result, nil
}

func summarise(index int, nodes []*clusterNode) SideSummary {
	s := SideSummary{
		File:             index,
		Clusters:         len(nodes),
		SizeDist:         make(map[int]int),
		DivideFactorDist: make(map[int]int),
	}

	sizes := make([]float64, len(nodes))
	for i, n := range nodes {
		size := len(n.titles)
		s.Spectra += size
		s.SizeDist[size]++
		sizes[i] = float64(size)
	}
	if len(sizes) > 0 {
		s.AverageSize = stat.Mean(sizes, nil)
	}
	return s
}

// divideFactors estimates into how many clusters of the other list each
// node was split: its neighbours plus its unshared spectra in units of
// the other list's average cluster size.
func divideFactors(s *SideSummary, nodes []*clusterNode, otherAverageSize float64) []ConsistencyWarning {
	if len(nodes) == 0 {
		return nil
	}

	var warnings []ConsistencyWarning
	factors := make([]float64, len(nodes))
	for i, n := range nodes {
		if n.neighbours == 0 {
			s.Standalone++
		}

		unshared := len(n.titles) - n.shared
		factor := float64(n.neighbours)
		if otherAverageSize > 0 {
			factor += 2 * float64(unshared) / otherAverageSize
		}
		factors[i] = factor
		s.DivideFactorDist[int(math.RoundToEven(factor))]++

		switch {
		case unshared < 0:
			warnings = append(warnings, ConsistencyWarning{ClusterID: n.id, Spectra: len(n.titles), Shared: n.shared})
		case unshared > 0:
			s.LostSpectra += unshared
		}
	}
	s.AverageDivideFactor = stat.Mean(factors, nil)
	return warnings
}

// Sections renders the comparison as report tables.
func (r *Comparison) Sections() []table.Section {
	pct := func(v, total int) string {
		if total == 0 {
			return table.NA
		}
		return strconv.FormatFloat(100*float64(v)/float64(total), 'f', 2, 64)
	}
	itoa := strconv.Itoa

	sections := []table.Section{{
		Title:  "statistics of files",
		Header: []string{"name", "number", "description"},
		Rows: [][]string{
			{"stars No.", itoa(r.Stars.Clusters), "in file with less (or equal) clusters: file" + itoa(r.Stars.File)},
			{"starlets No.", itoa(r.Starlets.Clusters), "in file with more (or equal) clusters: file" + itoa(r.Starlets.File)},
			{"identical cluster No.", itoa(r.IdenticalClusters()), "between them"},
			{"spectrum No", itoa(r.Stars.Spectra), "in stars"},
			{"spectrum No", itoa(r.Starlets.Spectra), "in starlets"},
			{"shared spectrum No", itoa(r.SharedSpectra), "between them"},
			{"shared spectrum percent", pct(r.SharedSpectra, r.Stars.Spectra), "in stars"},
			{"shared spectrum percent", pct(r.SharedSpectra, r.Starlets.Spectra), "in starlets"},
			{"standalone stars", itoa(r.Stars.Standalone), "without any starlet"},
			{"standalone starlets", itoa(r.Starlets.Standalone), "without any star"},
			{"lost spectrum No", itoa(r.Stars.LostSpectra), "in stars"},
			{"lost spectrum No", itoa(r.Starlets.LostSpectra), "in starlets"},
			{"connected components", itoa(r.ConnectedComponents), "in the star/starlet network"},
			{"largest component", itoa(r.LargestComponent), "clusters"},
		},
	}}

	for _, side := range []struct {
		name string
		s    *SideSummary
	}{{"stars", &r.Stars}, {"starlets", &r.Starlets}} {
		rows := [][]string{{strconv.FormatFloat(side.s.AverageSize, 'f', 2, 64), "average", "", ""}}
		accumulated := 0
		for _, size := range sortedKeys(side.s.SizeDist) {
			n := side.s.SizeDist[size]
			accumulated += n
			rows = append(rows, []string{itoa(size), itoa(n), pct(n, side.s.Clusters), pct(accumulated, side.s.Clusters)})
		}
		sections = append(sections, table.Section{
			Title:  "distribution of cluster size in " + side.name,
			Header: []string{"cluster size", "No.", "percentage", "accumulated percentage"},
			Rows:   rows,
		})
	}

	var simRows [][]string
	keys := sortedKeys(r.SimilarityDist)
	for i := len(keys) - 1; i >= 0; i-- {
		n := r.SimilarityDist[keys[i]]
		simRows = append(simRows, []string{itoa(keys[i]), itoa(n), pct(n, r.Stars.Clusters), pct(n, r.Starlets.Clusters)})
	}
	sections = append(sections, table.Section{
		Title:  "distribution of similarity (identical = 10)",
		Header: []string{"similarity score", "pairs of clusters", "percentage(stars)", "percentage(starlets)"},
		Rows:   simRows,
	})

	for _, side := range []struct {
		name string
		s    *SideSummary
	}{{"star", &r.Stars}, {"starlet", &r.Starlets}} {
		rows := [][]string{{strconv.FormatFloat(side.s.AverageDivideFactor, 'f', 2, 64), "average", ""}}
		for _, f := range sortedKeys(side.s.DivideFactorDist) {
			n := side.s.DivideFactorDist[f]
			rows = append(rows, []string{itoa(f), itoa(n), pct(n, side.s.Clusters)})
		}
		sections = append(sections, table.Section{
			Title:  "distribution of " + side.name + " divide factors",
			Header: []string{"divide factor", "No.", "percentage"},
			Rows:   rows,
		})
	}

	return sections
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
