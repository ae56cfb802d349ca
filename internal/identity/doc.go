// Package identity derives canonical content fingerprints for growth-medium
// recipes so duplicate records can be detected across source databases.
//
// A recipe's identity is the set of its ingredient signatures: every ingredient
// at the recipe top level and inside every solution composition contributes one
// signature. Ingredients resolved to a chemical-ontology term are identified by
// that term's ID; everything else falls back to its normalized name. Ontology
// identity always wins, so two differently spelled ingredients sharing an ID
// collapse to one signature.
//
// The fingerprint is a SHA-256 digest over the sorted, deduplicated signature
// set. It is deterministic across calls and process restarts and deliberately
// ignores ingredient ordering, duplicate entries, concentrations, units, and
// every other non-identity attribute. Recipes that yield no signatures have no
// identity and fail with IdentityError.
package identity
