package dedupe

import (
	"mediamerge/internal/identity"
	"mediamerge/internal/medium"
)

// Cluster is the set of recipes sharing one fingerprint, in input order.
// A singleton cluster flows through the merger as a trivial merge.
type Cluster struct {
	Fingerprint string
	Members     []*medium.Recipe
}

// Unfingerprintable pairs a recipe that yielded no identity with the error
// explaining why. These are reported, never silently dropped.
type Unfingerprintable struct {
	Recipe *medium.Recipe
	Err    error
}

// MatchResult is the outcome of grouping a corpus by fingerprint.
type MatchResult struct {
	// Clusters are ordered by first appearance of their fingerprint in the
	// input so results are stable for a given corpus ordering.
	Clusters          []Cluster
	Unfingerprintable []Unfingerprintable
}

// DuplicateClusters returns only the clusters with more than one member.
func (r *MatchResult) DuplicateClusters() []Cluster {
	out := make([]Cluster, 0, len(r.Clusters))
	for _, cluster := range r.Clusters {
		if len(cluster.Members) > 1 {
			out = append(out, cluster)
		}
	}
	return out
}

// Match groups recipes by exact fingerprint equality in a single reduction
// pass, computing each fingerprint inline. Use Group when fingerprints were
// already computed (e.g. by the parallel pipeline).
func Match(recipes []*medium.Recipe) MatchResult {
	fingerprints := make([]string, len(recipes))
	errs := make([]error, len(recipes))
	for i, recipe := range recipes {
		fingerprints[i], errs[i] = identity.Fingerprint(recipe)
	}
	return Group(recipes, fingerprints, errs)
}

// Group reduces precomputed fingerprints into clusters. The three slices are
// parallel: errs[i] non-nil marks recipes[i] unfingerprintable.
func Group(recipes []*medium.Recipe, fingerprints []string, errs []error) MatchResult {
	var result MatchResult
	index := make(map[string]int, len(recipes))
	for i, recipe := range recipes {
		if errs[i] != nil {
			result.Unfingerprintable = append(result.Unfingerprintable, Unfingerprintable{
				Recipe: recipe,
				Err:    errs[i],
			})
			continue
		}
		fp := fingerprints[i]
		if at, ok := index[fp]; ok {
			result.Clusters[at].Members = append(result.Clusters[at].Members, recipe)
			continue
		}
		index[fp] = len(result.Clusters)
		result.Clusters = append(result.Clusters, Cluster{
			Fingerprint: fp,
			Members:     []*medium.Recipe{recipe},
		})
	}
	return result
}
