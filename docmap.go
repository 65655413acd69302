// Package docmap infers a module/submodule map of a documentation site.
// It crawls the site, extracts heading-structured sections from each page,
// splits the aggregated text into token-bounded chunks, asks a language model
// for the module taxonomy of each chunk, and merges the answers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, openai/).
package docmap
