// Command mediamerge aggregates growth-media recipes from heterogeneous source
// databases and consolidates duplicate records.
//
// The CLI is a thin wrapper around the internal pipeline: import reads source
// exports into the corpus, dedupe fingerprints and merges duplicates, clusters
// and export inspect and publish the consolidated corpus. All recipe semantics
// live in internal packages; commands only wire configuration, storage, and
// terminal output together.
package main
