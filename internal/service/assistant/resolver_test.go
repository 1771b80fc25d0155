package assistant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testThreshold  = 0.6
	testAutoSelect = 0.95
	testMaxSuggest = 3
)

func resolve(query string, records []nameRecord) Resolution {
	return resolveName(query, records, testThreshold, testAutoSelect, testMaxSuggest)
}

func TestResolveName_LastNameTieBreaksAlphabetically(t *testing.T) {
	t.Parallel()

	records := []nameRecord{
		{ID: uuid.New(), FirstName: "Sarah", LastName: "Chen"},
		{ID: uuid.New(), FirstName: "David", LastName: "Chen"},
	}

	res := resolve("Chen", records)
	require.Equal(t, ResolutionAuto, res.Kind)
	assert.Equal(t, "David Chen", res.Match.Name)
	assert.Equal(t, MatchLastName, res.Match.MatchType)
	assert.Equal(t, 1.0, res.Match.Score)
}

func TestResolveName_ExactMatchBeatsNearMatch(t *testing.T) {
	t.Parallel()

	records := []nameRecord{
		{ID: uuid.New(), FirstName: "Jon", LastName: "Smith"},
		{ID: uuid.New(), FirstName: "John", LastName: "Smith"},
	}

	res := resolve("Jon Smith", records)
	require.Equal(t, ResolutionAuto, res.Kind)
	assert.Equal(t, "Jon Smith", res.Match.Name)
	assert.Equal(t, MatchFullName, res.Match.MatchType)
}

func TestResolveName_MisspellingDisambiguates(t *testing.T) {
	t.Parallel()

	records := []nameRecord{
		{ID: uuid.New(), FirstName: "Robert", LastName: "Brown"},
	}

	res := resolve("Robrt", records)
	require.Equal(t, ResolutionAmbiguous, res.Kind)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Robert Brown", res.Suggestions[0].Name)
	assert.GreaterOrEqual(t, res.Suggestions[0].Score, testThreshold)
	assert.Less(t, res.Suggestions[0].Score, testAutoSelect)
}

func TestResolveName_NoMatch(t *testing.T) {
	t.Parallel()

	records := []nameRecord{
		{ID: uuid.New(), FirstName: "Robert", LastName: "Brown"},
		{ID: uuid.New(), FirstName: "Maria", LastName: "Lopez"},
	}

	res := resolve("Xzqw", records)
	assert.Equal(t, ResolutionNone, res.Kind)
	assert.Empty(t, res.Suggestions)
}

func TestResolveName_CapsSuggestions(t *testing.T) {
	t.Parallel()

	records := []nameRecord{
		{ID: uuid.New(), FirstName: "Jamie", LastName: "Smith"},
		{ID: uuid.New(), FirstName: "Jamey", LastName: "Jones"},
		{ID: uuid.New(), FirstName: "Jaime", LastName: "Diaz"},
		{ID: uuid.New(), FirstName: "Jami", LastName: "Reed"},
	}

	res := resolve("Jmie", records)
	require.Equal(t, ResolutionAmbiguous, res.Kind)
	assert.LessOrEqual(t, len(res.Suggestions), testMaxSuggest)
	for i := 1; i < len(res.Suggestions); i++ {
		assert.GreaterOrEqual(t, res.Suggestions[i-1].Score, res.Suggestions[i].Score)
	}
}
