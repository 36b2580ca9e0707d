package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

// dictServer serves canned API responses keyed by the looked-up word.
func dictServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Path[len("/"):]
		body, ok := responses[word]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func entryJSON(word, partOfSpeech, definition string) string {
	return `[{"word":"` + word + `","meanings":[{"partOfSpeech":"` + partOfSpeech +
		`","definitions":[{"definition":"` + definition + `"}]}]}]`
}

func TestClientValidate(t *testing.T) {
	srv := dictServer(t, map[string]string{
		"fox": entryJSON("fox", "noun", "A carnivorous mammal."),
	})
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	v, err := c.Validate(context.Background(), "FOX")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "A carnivorous mammal.", v.Definition)
	assert.Equal(t, wordvia.RestrictionNone, v.Restriction)
}

func TestClientValidateNotFound(t *testing.T) {
	srv := dictServer(t, nil)
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	v, err := c.Validate(context.Background(), "QZX")
	require.NoError(t, err, "a 404 means invalid, not broken")
	assert.False(t, v.Valid)
}

func TestClientValidateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.Validate(context.Background(), "FOX")
	assert.Error(t, err, "transport-level failures surface so the caller can fail closed")
}

func TestClientValidateUnreachable(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	_, err := c.Validate(context.Background(), "FOX")
	assert.Error(t, err)
}

func TestClientClassifiesRestrictions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want wordvia.Restriction
	}{
		{"plural", entryJSON("cats", "noun", "Plural of cat."), wordvia.RestrictionPlural},
		{"past tense", entryJSON("ran", "verb", "Past tense of run."), wordvia.RestrictionInflected},
		{"participle", entryJSON("eaten", "verb", "Past participle of eat."), wordvia.RestrictionInflected},
		{"proper noun", entryJSON("paris", "proper noun", "The capital of France."), wordvia.RestrictionProperNoun},
		{"initialism", entryJSON("tv", "noun", "Initialism of television."), wordvia.RestrictionAbbreviation},
		{"alternative form", entryJSON("thru", "preposition", "Alternative form of through."), wordvia.RestrictionNotBaseForm},
		{"clean", entryJSON("run", "verb", "To move quickly."), wordvia.RestrictionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := dictServer(t, map[string]string{"w": tt.body})
			defer srv.Close()
			c := NewClient(WithBaseURL(srv.URL))

			v, err := c.Validate(context.Background(), "w")
			require.NoError(t, err)
			assert.True(t, v.Valid, "restricted words are still recognized")
			assert.Equal(t, tt.want, v.Restriction)
		})
	}
}

func TestClientDefinitionPrefersLexicon(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	def, err := c.Definition(context.Background(), "dog")
	require.NoError(t, err)
	assert.NotEmpty(t, def)
	assert.Zero(t, calls, "lexicon hits never reach the network")

	def, err = c.Definition(context.Background(), "qzx")
	require.NoError(t, err)
	assert.Empty(t, def)
	assert.Equal(t, 1, calls)
}

func TestClientLowercasesLookups(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.Validate(context.Background(), " FOX ")
	require.NoError(t, err)
	assert.Equal(t, "/fox", got)
}
