// Package dedupe groups recipes by content fingerprint and consolidates each
// duplicate cluster into one canonical record with an inspectable audit trail.
//
// Matching is exact fingerprint equality only. Near-duplicates with distinct
// ingredient sets stay separate clusters: a false merge destroys information
// while a false negative is fixable upstream. Grouping is a single reduction
// pass over precomputed fingerprints, so the whole stage stays linear in
// corpus size.
//
// Merging anchors stable fields on a deterministically chosen base recipe,
// unions provenance, synonyms, curation history, and quality flags across all
// members, and records cross-member concentration disagreements as audit
// alternates instead of overwriting them. Every real merge appends a curation
// event to the merged recipe; merges are never invisible.
//
// Run drives the full stage: fingerprints fan out over a worker pool (each
// computation is stateless), grouping is the single synchronization point, and
// merges proceed per cluster. One malformed record never fails a batch;
// unfingerprintable recipes and failed merges are collected and reported.
package dedupe
