/*
Package markov provides a small in-memory toolkit for generating
pseudo-random sentences and paragraphs from a text corpus using a
second-order Markov chain over words.

A Model is built once from a corpus: the text is split on whitespace, every
word ending in a period marks the end of a sentence, and each pair of
consecutive words inside a sentence records the corpus positions that may
follow it. Generation then walks the chain from a random sentence start until
it draws a sentence-ending word. Duplicate entries are kept on purpose, so
common starts and continuations are picked proportionally more often.

A Model is immutable after construction and may be shared by any number of
goroutines. Randomness comes from a caller-supplied *rand.Rand (see WithRand
and NewSeededRand), or from the concurrency-safe math/rand/v2 top-level source.
*/
package markov
