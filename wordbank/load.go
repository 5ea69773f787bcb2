package wordbank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// InputError reports a malformed word-list entry with its position.
type InputError struct {
	Line  int    // 1-based line number
	Field string // "word", "direction" or "line"
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("wordbank: line %d: %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *InputError) Unwrap() error { return e.Err }

// Is makes every InputError match ErrInput.
func (e *InputError) Is(target error) bool { return target == ErrInput }

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	log     *zap.Logger
	maxLine int
}

// DefaultMaxLineLength bounds one word-list line, clue included.
const DefaultMaxLineLength = 64 * 1024

// ErrLineTooLong is the cause of an InputError for a line over the limit.
var ErrLineTooLong = errors.New("line too long")

// WithLogger routes warnings (such as skipped duplicates) to l.
func WithLogger(l *zap.Logger) LoadOption {
	return func(c *loadConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxLineLength sets the longest accepted line in bytes. Non-positive
// values keep DefaultMaxLineLength.
func WithMaxLineLength(n int) LoadOption {
	return func(c *loadConfig) {
		if n > 0 {
			c.maxLine = n
		}
	}
}

// Load parses a word list: one entry per line, fields separated by '|':
//
//	WORD
//	WORD|direction
//	WORD|direction|clue text
//
// Blank lines and lines starting with '#' are skipped. The clue may itself
// contain '|'. Duplicate words are skipped with a warning. The first
// malformed line aborts loading with an *InputError, as does a line longer
// than the maximum length (ErrLineTooLong).
func Load(r io.Reader, opts ...LoadOption) (*Bank, error) {
	cfg := loadConfig{log: zap.NewNop(), maxLine: DefaultMaxLineLength}
	for _, o := range opts {
		o(&cfg)
	}

	b := &Bank{index: make(map[string]ID)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(cfg.maxLine, 4096)), cfg.maxLine)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		w, err := parseEntry(raw)
		if err != nil {
			var ie *InputError
			if errors.As(err, &ie) {
				ie.Line = line
				return nil, ie
			}
			return nil, &InputError{Line: line, Field: "line", Err: err}
		}
		if first, dup := b.index[w.Text]; dup {
			cfg.log.Warn("skipping duplicate word",
				zap.Int("line", line),
				zap.String("word", w.Text),
				zap.Int("first_id", int(first)))
			continue
		}
		b.index[w.Text] = ID(len(b.words))
		b.words = append(b.words, w)
	}
	if err := sc.Err(); errors.Is(err, bufio.ErrTooLong) {
		return nil, &InputError{Line: line + 1, Field: "line",
			Err: fmt.Errorf("%w: over %d bytes", ErrLineTooLong, cfg.maxLine)}
	} else if err != nil {
		return nil, fmt.Errorf("wordbank: read: %w", err)
	}
	cfg.log.Debug("word list loaded", zap.Int("words", len(b.words)), zap.Int("lines", line))
	return b, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...LoadOption) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordbank: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

func parseEntry(raw string) (Word, error) {
	parts := strings.SplitN(raw, "|", 3)
	text, err := Normalize(parts[0])
	if err != nil {
		return Word{}, &InputError{Field: "word", Err: err}
	}
	w := Word{Text: text}
	if len(parts) > 1 {
		d, err := ParseDirection(parts[1])
		if err != nil {
			return Word{}, &InputError{Field: "direction", Err: err}
		}
		w.Required = d
	}
	if len(parts) > 2 {
		w.Clue = strings.TrimSpace(parts[2])
	}
	return w, nil
}
