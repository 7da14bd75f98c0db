package models

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// Embed returns a deterministic bag-of-words embedding of text. Each token is
// hashed into one of EmbeddingDims buckets and the result is L2-normalised,
// so recipes sharing vocabulary land close together.
func Embed(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDims)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%EmbeddingDims]++
	}
	normalize(vec)
	return pgvector.NewVector(vec)
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
