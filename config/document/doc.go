// Package document provides the untyped configuration tree shared by every
// configuration layer, and the deep merge used to combine layers.
//
// A Document is a tree of mappings (map[string]any or Document), sequences
// ([]any) and scalars (string, integer kinds, float64, bool, nil). Parsers in
// config/parser produce Documents; the preset package merges them and only
// then validates the result into a typed configuration.
//
// # Merge Rules
//
// Merge(base, override) is applied key by key:
//   - a key present on one side only keeps that side's value
//   - two mappings are merged recursively
//   - two sequences are concatenated, base first, duplicates kept
//   - anything else is replaced by the override value
//   - a key missing from override (or set to nil) never removes a base key
//
// Merge never mutates its inputs and the result never shares mutable
// structure with them, so a Document may be reused across calls.
//
// Merge is not associative for sequences. Apply layers strictly from lowest
// to highest priority, for example with MergeAll:
//
//	merged := document.MergeAll(userDefaults, template, overrides)
package document
