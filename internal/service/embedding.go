package service

import (
	"github.com/pageza/recipeswipe/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
)

// Centroid averages the given embeddings. It returns false when there is
// nothing to average.
func Centroid(vectors []pgvector.Vector) (pgvector.Vector, bool) {
	sum := make([]float32, models.EmbeddingDims)
	n := 0
	for _, v := range vectors {
		s := v.Slice()
		if len(s) != models.EmbeddingDims {
			continue
		}
		for i, x := range s {
			sum[i] += x
		}
		n++
	}
	if n == 0 {
		return pgvector.Vector{}, false
	}
	for i := range sum {
		sum[i] /= float32(n)
	}
	return pgvector.NewVector(sum), true
}
