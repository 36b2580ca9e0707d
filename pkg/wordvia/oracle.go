package wordvia

import "context"

// Restriction is a reason a recognized word is nonetheless disallowed.
type Restriction int

const (
	RestrictionNone Restriction = iota
	RestrictionPlural
	RestrictionInflected
	RestrictionProperNoun
	RestrictionAbbreviation
	RestrictionNotBaseForm
)

func (r Restriction) String() string {
	switch r {
	case RestrictionNone:
		return "none"
	case RestrictionPlural:
		return "plural"
	case RestrictionInflected:
		return "inflected"
	case RestrictionProperNoun:
		return "proper-noun"
	case RestrictionAbbreviation:
		return "abbreviation"
	case RestrictionNotBaseForm:
		return "not-base-form"
	}
	return "unknown"
}

// Message returns the player-facing explanation for a restriction.
func (r Restriction) Message() string {
	switch r {
	case RestrictionPlural:
		return "Plural forms are not allowed. Use the singular base word instead."
	case RestrictionInflected:
		return "Verb tenses and inflected forms are not allowed. Use the base form instead."
	case RestrictionProperNoun:
		return "Proper nouns are not allowed."
	case RestrictionAbbreviation:
		return "Abbreviations and slang are not allowed."
	case RestrictionNotBaseForm:
		return "Only unrestricted base-form words are allowed."
	}
	return ""
}

// Validation is the oracle's answer for a single word. A word with any
// restriction is never scored, even when otherwise recognized.
type Validation struct {
	Valid       bool
	Definition  string
	Restriction Restriction
}

// Scorable reports whether the validation allows the word to score.
func (v Validation) Scorable() bool {
	return v.Valid && v.Restriction == RestrictionNone
}

// Oracle answers whether a token is a valid, unrestricted base-form word.
// Implementations may be slow (network bound) and may fail; callers treat a
// failed lookup as "cannot confirm valid".
type Oracle interface {
	Validate(ctx context.Context, word string) (Validation, error)

	// Definition returns human-readable meaning text for a word, or ""
	// when none is available. Implementations consult an offline lexicon
	// before any remote lookup.
	Definition(ctx context.Context, word string) (string, error)
}

// Judge renders a strict binary verdict on whether a free-text meaning
// matches a word. Judge failures are given the benefit of the doubt by
// callers.
type Judge interface {
	VerifyMeaning(ctx context.Context, word, meaning string) (bool, error)
}
