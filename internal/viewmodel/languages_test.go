package viewmodel

import (
	"fmt"
	"testing"

	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageBreakdown(t *testing.T) {
	stats := LanguageBreakdown(map[string]map[string]int{
		"web": {"JavaScript": 200, "Go": 50},
		"api": {"JavaScript": 100, "Go": 50},
	})

	require.Len(t, stats, 2)
	assert.Equal(t, LanguageStat{Language: "JavaScript", Bytes: 300, Percentage: 75.0}, stats[0])
	assert.Equal(t, LanguageStat{Language: "Go", Bytes: 100, Percentage: 25.0}, stats[1])
}

func TestLanguageBreakdown_Empty(t *testing.T) {
	assert.Nil(t, LanguageBreakdown(nil))
	assert.Nil(t, LanguageBreakdown(map[string]map[string]int{"empty": {}}))
}

func TestLanguageBreakdown_TopTenCap(t *testing.T) {
	langs := make(map[string]int)
	for i := 0; i < 15; i++ {
		langs[fmt.Sprintf("lang-%02d", i)] = (i + 1) * 10
	}

	stats := LanguageBreakdown(map[string]map[string]int{"repo": langs})
	require.Len(t, stats, 10)
	assert.Equal(t, "lang-14", stats[0].Language)
}

func TestLanguageBreakdown_TiesBreakByName(t *testing.T) {
	stats := LanguageBreakdown(map[string]map[string]int{
		"repo": {"Zig": 50, "Ada": 50},
	})

	require.Len(t, stats, 2)
	assert.Equal(t, "Ada", stats[0].Language)
	assert.Equal(t, "Zig", stats[1].Language)
}

func TestTotalStarsAndForks(t *testing.T) {
	repos := []*gh.Repository{
		{StargazersCount: gh.Int(3), ForksCount: gh.Int(1)},
		{StargazersCount: gh.Int(7), ForksCount: gh.Int(0)},
	}
	assert.Equal(t, 10, TotalStars(repos))
	assert.Equal(t, 1, TotalForks(repos))
}
