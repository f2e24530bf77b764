// Package termmap builds the per-decode mapping from integer term IDs to
// (term, codec) pairs.
//
// A compressed CBOR-LD document replaces every JSON-LD term with a small
// integer. The lowest IDs are reserved for JSON-LD keywords and the
// @codec pseudo-term; everything above format.FirstTermID is assigned
// sequentially from the term declarations of the document's resolved
// contexts, in context order then declaration order. Because assignment
// is positional, the resolver preserves both the order in which context
// URLs are referenced and the order in which each context declares its
// terms (see ParseContextDocument).
//
// The Resolver performs the only suspending work in a decode call:
// fetching context documents through a loader.DocumentLoader. Compiled
// term lists are memoized by content digest, so repeated decodes against
// unchanged contexts skip re-parsing.
package termmap
