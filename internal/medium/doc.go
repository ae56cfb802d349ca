// Package medium defines the normalized growth-medium recipe model shared by
// every pipeline stage.
//
// A Recipe is the unit of work: named ingredients (optionally resolved to a
// chemical-ontology term by the upstream enrichment pipeline), named
// sub-solutions with their own compositions, and provenance metadata recording
// which source database and file each record came from.
//
// Records arrive from internal/ingest already normalized; the dedupe stage
// consolidates duplicates and appends curation events describing each merge.
// Keep this package free of behavior beyond structural helpers so the identity
// and dedupe packages stay the single owners of recipe semantics.
package medium
