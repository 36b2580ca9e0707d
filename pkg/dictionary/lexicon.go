package dictionary

import (
	"context"
	"strings"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

// commonDefinitions is the offline lexicon of short, frequent words. It is
// consulted before the API when a definition is needed (bot challenge
// defenses must not depend on the network) and doubles as a deterministic
// oracle for simulations and tests.
var commonDefinitions = map[string]string{
	"AD":   "An advertisement.",
	"ADO":  "Trouble; fuss; bustle.",
	"AGE":  "The length of time a person or thing has existed.",
	"AIR":  "The invisible mixture of gases surrounding the earth.",
	"ANT":  "A small social insect living in organized colonies.",
	"ARC":  "A part of the circumference of a circle or other curve.",
	"ARM":  "The upper limb of the human body.",
	"ART":  "The expression of creative skill and imagination.",
	"AT":   "Indicating a particular place or position.",
	"BAT":  "A flying mammal, or a club used to hit a ball.",
	"BE":   "To exist or live.",
	"BED":  "A piece of furniture for sleeping on.",
	"BIG":  "Of considerable size or extent.",
	"BOX":  "A container with flat sides and a lid.",
	"CAR":  "A road vehicle powered by an engine.",
	"CAT":  "A small domesticated carnivorous mammal.",
	"COT":  "A small, portable bed.",
	"CUP":  "A small open container used for drinking.",
	"DEN":  "A wild animal's lair or habitation.",
	"DO":   "To perform or carry out an action.",
	"DOG":  "A domesticated carnivorous mammal kept as a pet.",
	"DOT":  "A small round mark or spot.",
	"EAR":  "The organ of hearing.",
	"EAT":  "To put food into the mouth, chew and swallow it.",
	"EGG":  "An oval object laid by a bird, containing a developing embryo.",
	"END":  "The final part of something.",
	"ERA":  "A long and distinct period of history.",
	"FAR":  "At or to a great distance.",
	"FIT":  "Of a suitable quality or type.",
	"FOX":  "A carnivorous mammal with a pointed muzzle and bushy tail.",
	"GO":   "To move or travel somewhere.",
	"HAT":  "A shaped covering for the head.",
	"HE":   "A male person previously mentioned.",
	"HOT":  "Having a high temperature.",
	"ICE":  "Frozen water.",
	"IN":   "Expressing inclusion or position within.",
	"INK":  "A colored fluid used for writing or printing.",
	"IT":   "A thing previously mentioned.",
	"JAR":  "A wide-mouthed cylindrical container.",
	"KEY":  "A small metal instrument for operating a lock.",
	"LET":  "To allow or permit.",
	"LOG":  "A part of the trunk or a large branch of a felled tree.",
	"MAN":  "An adult human male.",
	"MAP":  "A diagrammatic representation of an area.",
	"NET":  "An open-meshed fabric of cord or rope.",
	"NO":   "Used to give a negative response.",
	"NOT":  "Used to express negation or denial.",
	"OAR":  "A pole with a flat blade used to row a boat.",
	"ON":   "Physically in contact with and supported by a surface.",
	"ONE":  "The lowest cardinal number.",
	"OR":   "Used to link alternatives.",
	"OX":   "A domesticated bovine animal used for draft work.",
	"PAN":  "A metal container used for cooking.",
	"PEN":  "An instrument for writing with ink.",
	"PET":  "A domestic animal kept for companionship.",
	"PIT":  "A large hole in the ground.",
	"RAT":  "A rodent resembling a large mouse.",
	"RED":  "The color of blood or fire.",
	"RUN":  "To move at a speed faster than walking.",
	"SEA":  "The expanse of salt water covering most of the earth.",
	"SIT":  "To rest with the body supported by the buttocks.",
	"SO":   "To such a great extent.",
	"SUN":  "The star around which the earth orbits.",
	"TAN":  "A yellowish-brown color.",
	"TAR":  "A dark, thick liquid distilled from wood or coal.",
	"TEN":  "The cardinal number after nine.",
	"TIN":  "A silvery-white metal, or a sealed metal container.",
	"TO":   "Expressing direction or motion toward.",
	"TOP":  "The highest point or part of something.",
	"UP":   "Toward a higher place or position.",
	"WE":   "The speaker together with others.",
	"WET":  "Covered or saturated with liquid.",
	"WIN":  "To be successful in a contest.",
	"YES":  "Used to give an affirmative response.",
	"ZOO":  "A place where wild animals are kept for exhibition.",
	"GAME": "An activity engaged in for amusement, with rules and a goal.",
	"WORD": "A distinct meaningful unit of language.",
}

// Lexicon is the offline word list. It satisfies the oracle interface so
// it can stand in for the remote dictionary wherever determinism matters.
type Lexicon struct {
	defs map[string]string
}

var _ wordvia.Oracle = (*Lexicon)(nil)

// DefaultLexicon returns the built-in common-word lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{defs: commonDefinitions}
}

// NewLexicon builds a lexicon from an arbitrary word/definition map.
// Keys are uppercased.
func NewLexicon(defs map[string]string) *Lexicon {
	m := make(map[string]string, len(defs))
	for w, d := range defs {
		m[strings.ToUpper(w)] = d
	}
	return &Lexicon{defs: m}
}

// Lookup returns the stored definition, if any.
func (l *Lexicon) Lookup(word string) (string, bool) {
	def, ok := l.defs[strings.ToUpper(word)]
	return def, ok
}

// Validate implements the oracle over the offline list alone: known words
// are valid and unrestricted, everything else is invalid. It never fails.
func (l *Lexicon) Validate(_ context.Context, word string) (wordvia.Validation, error) {
	def, ok := l.Lookup(word)
	if !ok {
		return wordvia.Validation{}, nil
	}
	return wordvia.Validation{Valid: true, Definition: def}, nil
}

// Definition implements the oracle's definition capability.
func (l *Lexicon) Definition(_ context.Context, word string) (string, error) {
	def, _ := l.Lookup(word)
	return def, nil
}
