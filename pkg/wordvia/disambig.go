package wordvia

import "context"

// WordResult is the scoring record for one word reading of a placement.
// Points equal the word length when valid, zero otherwise. Cells may be
// empty when the caller does not need the coordinates painted.
type WordResult struct {
	Word       string     `json:"word"`
	Valid      bool       `json:"isValid"`
	Points     int        `json:"points"`
	Definition string     `json:"definition,omitempty"`
	Cells      []Position `json:"cells"`
}

type ResolutionKind int

const (
	// ResolutionEmpty: no candidate in the direction reaches the minimum
	// word length.
	ResolutionEmpty ResolutionKind = iota
	// ResolutionWord: the direction produced exactly one result, valid or
	// not, which can be applied directly.
	ResolutionWord
	// ResolutionChoice: two or more distinct words validated; the player
	// must choose one.
	ResolutionChoice
)

// WordOption is one selectable reading offered during disambiguation.
// Already-used words remain visible as options but are marked unusable.
type WordOption struct {
	Word       string
	Valid      bool
	Usable     bool
	Definition string
	Cells      []Position
}

// DirectionResolution classifies the extractor's output for one direction.
type DirectionResolution struct {
	Kind    ResolutionKind
	Dir     Direction
	Result  WordResult
	Options []WordOption
}

// ResolveDirection runs extraction and validation for one direction of a
// placement and classifies the outcome. Horizontal and vertical directions
// are resolved independently of each other.
//
// An oracle failure for a candidate is treated as "cannot confirm valid":
// the candidate simply does not validate, and resolution continues. The
// cache deduplicates oracle calls for words appearing in both directions of
// the same placement.
func ResolveDirection(ctx context.Context, g *Grid, p Position, dir Direction, oracle Oracle, used *Registry, cache map[string]Validation) DirectionResolution {
	candidates := Subwords(g, p, dir)
	if len(candidates) == 0 {
		return DirectionResolution{Kind: ResolutionEmpty, Dir: dir}
	}

	validated := make([]WordOption, 0, len(candidates))
	for _, c := range candidates {
		v, ok := cache[c.Word]
		if !ok {
			var err error
			v, err = oracle.Validate(ctx, c.Word)
			if err != nil {
				// Cannot confirm: fails closed for scoring.
				v = Validation{}
			}
			cache[c.Word] = v
		}
		if !v.Scorable() {
			continue
		}
		validated = append(validated, WordOption{
			Word:       c.Word,
			Valid:      true,
			Usable:     !used.Contains(c.Word),
			Definition: v.Definition,
			Cells:      c.Cells,
		})
	}

	switch len(validated) {
	case 0:
		// The run exists but nothing in it validates: surface the full
		// run as an invalid, zero-point result so its cells can be
		// painted accordingly.
		full := candidates[0]
		return DirectionResolution{
			Kind: ResolutionWord,
			Dir:  dir,
			Result: WordResult{
				Word:  full.Word,
				Cells: full.Cells,
			},
		}
	case 1:
		opt := validated[0]
		return DirectionResolution{
			Kind: ResolutionWord,
			Dir:  dir,
			Result: WordResult{
				Word:       opt.Word,
				Valid:      true,
				Points:     len(opt.Word),
				Definition: opt.Definition,
				Cells:      opt.Cells,
			},
		}
	default:
		return DirectionResolution{Kind: ResolutionChoice, Dir: dir, Options: validated}
	}
}
