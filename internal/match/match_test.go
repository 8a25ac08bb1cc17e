package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"hello", "hello", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"Hello", "hello", 1},

		// Field names
		{"pricecents", "totalcents", 5},
		{"createdat", "updatedat", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "symmetry")
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"OrderID", "order_id", "order-id", "orderId", "ORDER_ID"} {
		assert.Equal(t, "orderid", Normalize(in), in)
	}

	assert.Equal(t, "", Normalize(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("UserID", "user_id"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("Name", "Nam"), 1e-9)
}

func TestRank_Deterministic(t *testing.T) {
	ranked := Rank("Notes", []string{"Totes", "Nodes", "Notes", "Currency"})

	names := make([]string, len(ranked))
	for i, c := range ranked {
		names[i] = c.Name
	}

	assert.Equal(t, []string{"Notes", "Nodes", "Totes", "Currency"}, names)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.8, ranked[1].Score, 1e-9)
	assert.InDelta(t, 0.125, ranked[3].Score, 1e-9)
}

func TestSuggest(t *testing.T) {
	known := []string{"OrderNumber", "Status", "Notes", "TotalCents", "Currency"}

	assert.Equal(t, []string{"Notes"}, Suggest("Note", known, 3, DefaultThreshold))
	assert.Equal(t, []string{"TotalCents"}, Suggest("total_cent", known, 3, DefaultThreshold))
	assert.Empty(t, Suggest("Zzz", known, 3, DefaultThreshold))
	assert.Len(t, Suggest("s", known, 2, 0), 2)
}
