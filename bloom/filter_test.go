package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pdfoutline/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("introduction"))

	f.Add("introduction")

	assert.True(t, f.Test("introduction"))
	assert.False(t, f.Test("conclusion"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("introduction")
	f.Add("methods")
	f.Add("results")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("section added %d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("section missing %d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("reports first insertion only", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewSet(10)

		assert.True(t, s.Add("overview"))
		assert.False(t, s.Add("overview"))
		assert.True(t, s.Add("summary"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("has no false positives", func(t *testing.T) {
		t.Parallel()

		// Undersized so the filter saturates and reports spurious hits.
		s := bloom.NewSet(1)
		for i := range 500 {
			s.Add(fmt.Sprintf("title %d", i))
		}

		for i := range 500 {
			assert.False(t, s.Contains(fmt.Sprintf("other %d", i)))
		}
		assert.Equal(t, 500, s.Len())
	})

	t.Run("works with zero expected size", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewSet(0)

		assert.True(t, s.Add("only"))
		assert.True(t, s.Contains("only"))
	})
}
