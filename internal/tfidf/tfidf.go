// Package tfidf computes corpus-relative term-weighted vectors for
// catalog text and cosine similarity between them.
package tfidf

import (
	"encoding/binary"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vector is a dense float64 vector over the fitted vocabulary.
type Vector = []float64

// tokens of at least two word characters, matching the usual
// vectorizer default so short noise ("a", "1") drops out.
var tokenRe = regexp.MustCompile(`\w\w+`)

// Tokenize lowercases text and extracts word tokens.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Vectorizer holds a fitted vocabulary and per-term inverse document
// frequencies. Vocabulary order is the sorted term list, so the same
// corpus always yields the same vector layout.
type Vectorizer struct {
	vocab []string
	index map[string]int
	idf   []float64
}

// Fit builds a vectorizer over the given document corpus.
// IDF uses smoothed weighting: ln((1+n)/(1+df)) + 1.
func Fit(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Vectorizer{vocab: vocab, index: index, idf: idf}
}

// Dims returns the vocabulary size.
func (v *Vectorizer) Dims() int { return len(v.vocab) }

// Vocabulary returns the fitted terms in vector order.
func (v *Vectorizer) Vocabulary() []string { return v.vocab }

// Transform converts a document into an L2-normalized TF-IDF vector.
// A document with no in-vocabulary tokens yields a zero vector.
func (v *Vectorizer) Transform(doc string) Vector {
	vec := make(Vector, len(v.vocab))
	for _, tok := range Tokenize(doc) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Cosine computes cosine similarity between two vectors.
// Zero vectors and mismatched lengths score 0.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Encode serializes a vector as little-endian float64 bytes for the
// embedding column.
func Encode(vec Vector) []byte {
	buf := make([]byte, 8*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// Decode parses a little-endian float64 blob. Trailing partial values
// are dropped; nil or empty input yields nil.
func Decode(buf []byte) Vector {
	n := len(buf) / 8
	if n == 0 {
		return nil
	}
	vec := make(Vector, n)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return vec
}
