package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/slug"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := slug.Generate()
		words := strings.Split(s, "-")
		assert.Len(t, words, 3, s)
		for _, w := range words {
			assert.NotEmpty(t, w, s)
		}
		assert.True(t, domain.IsValidTitle(s), s)
	}
}

func TestGenerate_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[slug.Generate()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
