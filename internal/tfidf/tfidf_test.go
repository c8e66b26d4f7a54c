package tfidf

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("Go, a Compiled language! v2")
	want := []string{"go", "compiled", "language", "v2"}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], toks[i])
		}
	}
}

func TestFitTransform(t *testing.T) {
	docs := []string{
		"python machine learning tutorial",
		"python web development",
		"cooking italian pasta",
	}
	v := Fit(docs)

	if v.Dims() == 0 {
		t.Fatal("expected non-empty vocabulary")
	}

	a := v.Transform(docs[0])
	b := v.Transform(docs[1])
	c := v.Transform(docs[2])

	// Vectors are L2-normalized
	var norm float64
	for _, f := range a {
		norm += f * f
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("expected unit norm, got %f", math.Sqrt(norm))
	}

	// Shared "python" term: a is closer to b than to c
	if Cosine(a, b) <= Cosine(a, c) {
		t.Errorf("expected sim(a,b) > sim(a,c), got %f vs %f", Cosine(a, b), Cosine(a, c))
	}
	if Cosine(a, c) != 0 {
		t.Errorf("expected 0 similarity for disjoint docs, got %f", Cosine(a, c))
	}
}

func TestIDFDownweightsCommonTerms(t *testing.T) {
	docs := []string{
		"video python",
		"video cooking",
		"video travel",
	}
	v := Fit(docs)
	vec := v.Transform("video python")

	var videoW, pythonW float64
	for i, term := range v.Vocabulary() {
		switch term {
		case "video":
			videoW = vec[i]
		case "python":
			pythonW = vec[i]
		}
	}
	if videoW >= pythonW {
		t.Errorf("expected rare term to outweigh common term: video=%f python=%f", videoW, pythonW)
	}
}

func TestEmptyDocumentZeroVector(t *testing.T) {
	v := Fit([]string{"python tutorial", ""})
	vec := v.Transform("")
	for i, f := range vec {
		if f != 0 {
			t.Fatalf("expected zero vector, got %f at %d", f, i)
		}
	}
	// Zero vectors score 0 against anything, including themselves
	if Cosine(vec, vec) != 0 {
		t.Errorf("expected 0 self-similarity for zero vector, got %f", Cosine(vec, vec))
	}
	if Cosine(vec, v.Transform("python")) != 0 {
		t.Error("expected 0 similarity against zero vector")
	}
}

func TestCosineBoundsAndIdentity(t *testing.T) {
	v := Fit([]string{"python machine learning", "cooking pasta"})
	a := v.Transform("python machine learning")

	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected self-similarity 1, got %f", got)
	}
	if got := Cosine(a, Vector{1, 2}); got != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %f", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty vectors, got %f", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	vec := Vector{0, 0.5, -1.25, math.Pi}
	got := Decode(Encode(vec))
	if len(got) != len(vec) {
		t.Fatalf("expected %d values, got %d", len(vec), len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("value %d: expected %v, got %v", i, vec[i], got[i])
		}
	}

	if Decode(nil) != nil {
		t.Error("expected nil for empty blob")
	}
}

func TestDeterministicVocabulary(t *testing.T) {
	docs := []string{"beta alpha", "gamma alpha"}
	v1 := Fit(docs)
	v2 := Fit(docs)
	a1 := v1.Transform("alpha beta gamma")
	a2 := v2.Transform("alpha beta gamma")
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("expected identical vectors across fits, differ at %d", i)
		}
	}
}
