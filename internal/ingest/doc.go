// Package ingest converts raw source exports into normalized recipe records.
//
// Converters are mechanical 1:1 field mappings with no semantics: JSON exports
// decode straight into the recipe model, TSV composition tables group one
// ingredient row per line into recipes. Identity derivation, deduplication,
// and any ontology enrichment happen elsewhere; this package only stamps each
// record with its source database and file so provenance survives merging.
package ingest
