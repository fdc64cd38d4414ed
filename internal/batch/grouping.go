// internal/batch/grouping.go
package batch

import (
	"github.com/samber/lo"

	urlutil "github.com/law-makers/linkresolve/internal/utils/url"
)

// DefaultGroup collects pairs whose base has no parseable host
const DefaultGroup = "default"

// GroupByHost groups pair indexes by the host of their base URL, keeping
// input order inside each group.
func GroupByHost(pairs []Pair) map[string][]int {
	indexes := lo.Range(len(pairs))
	return lo.GroupBy(indexes, func(i int) string {
		return hostOf(pairs[i].Base)
	})
}

// DispatchOrder returns every pair index grouped by host. Groups come in the
// order their host first appears in pairs, so the order is stable across runs.
func DispatchOrder(pairs []Pair) []int {
	groups := GroupByHost(pairs)
	hosts := lo.Uniq(lo.Map(pairs, func(p Pair, _ int) string {
		return hostOf(p.Base)
	}))
	return lo.FlatMap(hosts, func(h string, _ int) []int {
		return groups[h]
	})
}

func hostOf(base string) string {
	if h := urlutil.Host(base); h != "" {
		return h
	}
	return DefaultGroup
}
