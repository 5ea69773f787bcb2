// Package wordbank holds the immutable catalog of candidate words.
//
// Words are normalized to upper-case A–Z: accents are stripped with a
// Unicode NFD decomposition, and anything else is rejected. A word is
// identified by its index in the bank (ID); grids refer to words only by ID.
package wordbank

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for word bank construction.
var (
	// ErrInput indicates a malformed word-list entry.
	ErrInput = errors.New("wordbank: invalid input")

	// ErrEmptyWord indicates a word with no letters after normalization.
	ErrEmptyWord = errors.New("wordbank: empty word")

	// ErrInvalidLetter indicates a character outside A–Z after normalization.
	ErrInvalidLetter = errors.New("wordbank: word must contain only letters A-Z")
)

// ID identifies a word by its index in a Bank.
type ID int

// Word is one catalog entry.
type Word struct {
	Text     string    `json:"text" yaml:"text"`
	Clue     string    `json:"clue,omitempty" yaml:"clue,omitempty"`
	Required Direction `json:"direction" yaml:"direction"`
}

// Len returns the number of letters.
func (w Word) Len() int { return len(w.Text) }

// Bank is an immutable, ordered set of words.
type Bank struct {
	words []Word
	index map[string]ID
}

// New builds a Bank from already-constructed words, normalizing each text.
// Duplicate texts are rejected.
func New(words ...Word) (*Bank, error) {
	b := &Bank{index: make(map[string]ID, len(words))}
	for i, w := range words {
		text, err := Normalize(w.Text)
		if err != nil {
			return nil, fmt.Errorf("wordbank: word %d: %w", i, err)
		}
		if _, dup := b.index[text]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInput, text)
		}
		w.Text = text
		b.index[text] = ID(len(b.words))
		b.words = append(b.words, w)
	}
	return b, nil
}

// FromStrings is a convenience constructor for unconstrained, clue-less words.
func FromStrings(texts ...string) (*Bank, error) {
	words := make([]Word, len(texts))
	for i, t := range texts {
		words[i] = Word{Text: t}
	}
	return New(words...)
}

// MustFromStrings is FromStrings that panics on error; for tests and examples.
func MustFromStrings(texts ...string) *Bank {
	b, err := FromStrings(texts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of words.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.words)
}

// Word returns the word with the given id. It panics on an out-of-range id,
// like a slice index.
func (b *Bank) Word(id ID) Word { return b.words[id] }

// Valid reports whether id refers to a word in b.
func (b *Bank) Valid(id ID) bool { return id >= 0 && int(id) < b.Len() }

// Lookup returns the id of a normalized or raw text.
func (b *Bank) Lookup(text string) (ID, bool) {
	n, err := Normalize(text)
	if err != nil {
		return -1, false
	}
	id, ok := b.index[n]
	return id, ok
}

// Words returns a copy of all words in id order.
func (b *Bank) Words() []Word {
	out := make([]Word, len(b.words))
	copy(out, b.words)
	return out
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize upper-cases s, strips diacritics and spaces/hyphens, and checks
// that only A–Z remain.
func Normalize(s string) (string, error) {
	t, _, err := transform.String(stripMarks, s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInput, err)
	}
	t = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\'' {
			return -1
		}
		return unicode.ToUpper(r)
	}, t)
	if t == "" {
		return "", ErrEmptyWord
	}
	for _, r := range t {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidLetter, r)
		}
	}
	return t, nil
}
