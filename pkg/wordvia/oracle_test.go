package wordvia

import (
	"context"
	"errors"
	"strings"
)

// fakeOracle validates exactly the words it is given. Lookups for words in
// failWords return an error; calls counts oracle hits per word.
type fakeOracle struct {
	valid     map[string]Validation
	failWords map[string]bool
	calls     map[string]int
}

func newFakeOracle(words ...string) *fakeOracle {
	f := &fakeOracle{
		valid:     make(map[string]Validation),
		failWords: make(map[string]bool),
		calls:     make(map[string]int),
	}
	for _, w := range words {
		f.valid[strings.ToUpper(w)] = Validation{Valid: true, Definition: "a " + strings.ToLower(w)}
	}
	return f
}

func (f *fakeOracle) restrict(word string, r Restriction) {
	w := strings.ToUpper(word)
	v := f.valid[w]
	v.Valid = true
	v.Restriction = r
	f.valid[w] = v
}

func (f *fakeOracle) Validate(_ context.Context, word string) (Validation, error) {
	w := strings.ToUpper(word)
	f.calls[w]++
	if f.failWords[w] {
		return Validation{}, errors.New("oracle unavailable")
	}
	return f.valid[w], nil
}

func (f *fakeOracle) Definition(_ context.Context, word string) (string, error) {
	w := strings.ToUpper(word)
	if f.failWords[w] {
		return "", errors.New("oracle unavailable")
	}
	return f.valid[w].Definition, nil
}

// fakeJudge returns a fixed verdict, or an error when failing.
type fakeJudge struct {
	verdict bool
	fail    bool
	asked   []string
}

func (j *fakeJudge) VerifyMeaning(_ context.Context, word, _ string) (bool, error) {
	j.asked = append(j.asked, word)
	if j.fail {
		return false, errors.New("judge unavailable")
	}
	return j.verdict, nil
}
