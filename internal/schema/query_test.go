package schema

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    Page
		wantErr []string
	}{
		{name: "defaults", query: "", want: Page{Skip: 0, Limit: 100}},
		{name: "explicit values", query: "skip=10&limit=5", want: Page{Skip: 10, Limit: 5}},
		{name: "upper bound", query: "limit=1000", want: Page{Skip: 0, Limit: 1000}},
		{name: "limit above max", query: "limit=1001", wantErr: []string{"limit"}},
		{name: "limit zero", query: "limit=0", wantErr: []string{"limit"}},
		{name: "negative skip", query: "skip=-1", wantErr: []string{"skip"}},
		{name: "non integer", query: "skip=a&limit=b", wantErr: []string{"skip", "limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page, err := ParsePage(q)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, page)
				return
			}

			ve := requireValidationError(t, err)
			var fields []string
			for _, fe := range ve.Errors {
				assert.Equal(t, LocationQuery, fe.Location)
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantErr, fields)
		})
	}
}

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, Page{Skip: 0, Limit: 1}, Page{Skip: -5, Limit: 0}.Normalize())
	assert.Equal(t, Page{Skip: 3, Limit: MaxLimit}, Page{Skip: 3, Limit: 5000}.Normalize())
	assert.Equal(t, DefaultPage(), DefaultPage().Normalize())
}

func TestParseSearch(t *testing.T) {
	t.Run("no criteria", func(t *testing.T) {
		criteria, page, err := ParseSearch(url.Values{})
		require.NoError(t, err)
		assert.True(t, criteria.IsEmpty())
		assert.Equal(t, DefaultPage(), page)
	})

	t.Run("all criteria", func(t *testing.T) {
		q := url.Values{"title": {"war"}, "author": {"tolstoy"}, "year": {"1869"}, "limit": {"10"}}
		criteria, page, err := ParseSearch(q)
		require.NoError(t, err)

		require.NotNil(t, criteria.Title)
		require.NotNil(t, criteria.Author)
		require.NotNil(t, criteria.Year)
		assert.Equal(t, "war", *criteria.Title)
		assert.Equal(t, "tolstoy", *criteria.Author)
		assert.Equal(t, 1869, *criteria.Year)
		assert.Equal(t, 10, page.Limit)
	})

	t.Run("year zero is a criterion", func(t *testing.T) {
		criteria, _, err := ParseSearch(url.Values{"year": {"0"}})
		require.NoError(t, err)
		require.NotNil(t, criteria.Year)
		assert.Equal(t, 0, *criteria.Year)
	})

	t.Run("empty strings are absent", func(t *testing.T) {
		criteria, _, err := ParseSearch(url.Values{"title": {""}, "author": {""}, "year": {""}})
		require.NoError(t, err)
		assert.True(t, criteria.IsEmpty())
	})

	t.Run("invalid year and limit reported together", func(t *testing.T) {
		_, _, err := ParseSearch(url.Values{"year": {"old"}, "limit": {"0"}})
		ve := requireValidationError(t, err)
		require.Len(t, ve.Errors, 2)
		assert.Equal(t, "year", ve.Errors[0].Field)
		assert.Equal(t, "limit", ve.Errors[1].Field)
	})
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "abc", "-1", "1.5"} {
		_, err := ParseID(raw)
		ve := requireValidationError(t, err)
		assert.Equal(t, LocationPath, ve.Errors[0].Location)
		assert.Equal(t, "id", ve.Errors[0].Field)
	}
}
