package wordbank_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/crossgrid/wordbank"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"cat", "CAT", nil},
		{"  Crème brûlée ", "CREMEBRULEE", nil},
		{"o'clock", "OCLOCK", nil},
		{"jack-in-the-box", "JACKINTHEBOX", nil},
		{"", "", wordbank.ErrEmptyWord},
		{"r2d2", "", wordbank.ErrInvalidLetter},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := wordbank.Normalize(tc.in)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	src := `# animals
cat
dog|down
emu|across|Flightless bird | from Australia

fox||Sly one
`
	b, err := wordbank.Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 4, b.Len())

	assert.Equal(t, wordbank.Word{Text: "CAT"}, b.Word(0))
	assert.Equal(t, wordbank.Down, b.Word(1).Required)
	assert.Equal(t, "Flightless bird | from Australia", b.Word(2).Clue)
	assert.Equal(t, wordbank.Across, b.Word(2).Required)
	assert.Equal(t, wordbank.Either, b.Word(3).Required)
	assert.Equal(t, "Sly one", b.Word(3).Clue)

	id, ok := b.Lookup("Emu")
	assert.True(t, ok)
	assert.Equal(t, wordbank.ID(2), id)
}

func TestLoad_ReportsLineAndField(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		line  int
		field string
	}{
		{"bad letters", "cat\nd0g\n", 2, "word"},
		{"bad direction", "cat\n\ndog|sideways\n", 3, "direction"},
		{"empty word", "# c\n|across\n", 2, "word"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wordbank.Load(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, wordbank.ErrInput)

			var ie *wordbank.InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.line, ie.Line)
			assert.Equal(t, tc.field, ie.Field)
		})
	}
}

func TestLoad_LineTooLong(t *testing.T) {
	src := "cat\ndog\n" + strings.Repeat("a", 40) + "\nemu\n"
	_, err := wordbank.Load(strings.NewReader(src), wordbank.WithMaxLineLength(16))
	var ie *wordbank.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Line)
	assert.Equal(t, "line", ie.Field)
	assert.ErrorIs(t, err, wordbank.ErrLineTooLong)
	assert.ErrorIs(t, err, wordbank.ErrInput)

	clue := "cat|across|" + strings.Repeat("x", wordbank.DefaultMaxLineLength)
	_, err = wordbank.Load(strings.NewReader("dog\n" + clue + "\n"))
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Line)

	b, err := wordbank.Load(strings.NewReader(src), wordbank.WithMaxLineLength(64))
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())
}

func TestLoad_DuplicateWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b, err := wordbank.Load(strings.NewReader("cat\nCAT|down\n"), wordbank.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "skipping duplicate word", logs.All()[0].Message)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := wordbank.FromStrings("cat", "Cat")
	assert.ErrorIs(t, err, wordbank.ErrInput)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, wordbank.Down, wordbank.Across.Perpendicular())
	assert.Equal(t, wordbank.Across, wordbank.Down.Perpendicular())
	assert.True(t, wordbank.Either.Allows(wordbank.Down))
	assert.False(t, wordbank.Across.Allows(wordbank.Down))

	var d wordbank.Direction
	require.NoError(t, d.UnmarshalText([]byte("D")))
	assert.Equal(t, wordbank.Down, d)
	assert.Error(t, d.UnmarshalText([]byte("up")))
}
