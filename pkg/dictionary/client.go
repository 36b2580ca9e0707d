// Package dictionary implements the word-validation oracle on top of the
// free dictionary API, with an offline lexicon consulted first for
// definitions.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

// DefaultBaseURL is the public dictionary API endpoint.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// entry mirrors one element of the API's response array.
type entry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []meaning `json:"meanings"`
}

type meaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definitions  []struct {
		Definition string `json:"definition"`
		Example    string `json:"example"`
	} `json:"definitions"`
}

type Client struct {
	baseURL string
	http    *http.Client
	lexicon *Lexicon
	logger  *log.Logger
}

type ClientOption func(*Client)

func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		lexicon: DefaultLexicon(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ wordvia.Oracle = (*Client)(nil)

// Validate looks the word up and classifies any restriction. A 404 from
// the API means the word is simply invalid, not a system error; transport
// and decode failures are returned so the caller can fail closed.
func (c *Client) Validate(ctx context.Context, word string) (wordvia.Validation, error) {
	entries, found, err := c.lookup(ctx, word)
	if err != nil {
		return wordvia.Validation{}, err
	}
	if !found {
		return wordvia.Validation{}, nil
	}
	v := wordvia.Validation{
		Valid:       true,
		Definition:  firstDefinition(entries),
		Restriction: classify(entries),
	}
	return v, nil
}

// Definition returns meaning text for a word, consulting the offline
// lexicon before the API. Returns "" when no definition is available.
func (c *Client) Definition(ctx context.Context, word string) (string, error) {
	if def, ok := c.lexicon.Lookup(word); ok {
		return def, nil
	}
	entries, found, err := c.lookup(ctx, word)
	if err != nil || !found {
		return "", err
	}
	return firstDefinition(entries), nil
}

func (c *Client) lookup(ctx context.Context, word string) ([]entry, bool, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToLower(strings.TrimSpace(word)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build dictionary request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("dictionary lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("word not found", "word", word)
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("dictionary lookup returned status %d", resp.StatusCode)
	}
	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, false, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, false, nil
	}
	return entries, true, nil
}

func firstDefinition(entries []entry) string {
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				if d.Definition != "" {
					return d.Definition
				}
			}
		}
	}
	return ""
}

// classify maps the dictionary entry to the closed restriction enum. The
// API has no structured flag for these, so the part of speech and the
// leading phrase of the definitions are inspected.
func classify(entries []entry) wordvia.Restriction {
	for _, e := range entries {
		for _, m := range e.Meanings {
			pos := strings.ToLower(m.PartOfSpeech)
			if strings.Contains(pos, "proper noun") {
				return wordvia.RestrictionProperNoun
			}
			if strings.Contains(pos, "abbreviation") || strings.Contains(pos, "initialism") || strings.Contains(pos, "acronym") {
				return wordvia.RestrictionAbbreviation
			}
			for _, d := range m.Definitions {
				def := strings.ToLower(d.Definition)
				switch {
				case strings.HasPrefix(def, "plural of") || strings.HasPrefix(def, "plural form of"):
					return wordvia.RestrictionPlural
				case strings.HasPrefix(def, "past tense of") ||
					strings.HasPrefix(def, "past participle of") ||
					strings.HasPrefix(def, "present participle of") ||
					strings.HasPrefix(def, "third-person singular"):
					return wordvia.RestrictionInflected
				case strings.HasPrefix(def, "abbreviation of") || strings.HasPrefix(def, "initialism of") || strings.Contains(def, "(slang)"):
					return wordvia.RestrictionAbbreviation
				case strings.HasPrefix(def, "inflection of") || strings.HasPrefix(def, "alternative form of"):
					return wordvia.RestrictionNotBaseForm
				}
			}
		}
	}
	return wordvia.RestrictionNone
}
