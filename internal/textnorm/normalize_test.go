package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "Lady", "lady"},
		{"diacritics", "Café Größe", "cafe groe"},
		{"fill words", "The Rhythm and the Blues", "rhythm blues"},
		{"german fill words", "Der Mann und die Frau", "mann frau"},
		{"featuring", "Believe feat. Someone featuring Other", "believe someone other"},
		{"ampersand", "Simon & Garfunkel", "simon garfunkel"},
		{"punctuation", "Hey Ya! (Radio-Edit)", "hey ya radioedit"},
		{"collapse whitespace", "  Hey   Ya  ", "hey ya"},
		{"punctuation only token", "Lady - Hear Me Tonight", "lady hear me tonight"},
		{"fill word with trailing punctuation", "Rock and. Roll", "rock roll"},
		{"digits kept", "99 Luftballons", "99 luftballons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Lady (Hear Me Tonight)",
		"The Symbol & The Artist feat. Him",
		"Hie u jetzt - Right Here Right Now",
		"AND. the. feat..",
		"Ça plane pour moi",
		"Ænima ﬁne",
		"Mambo No. 5 (A Little Bit Of...)",
		"tab\tseparated\nlines",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestStripNonASCII(t *testing.T) {
	assert.Equal(t, "", StripNonASCII(""))
	assert.Equal(t, "Cafe", StripNonASCII("Café"))
	assert.Equal(t, `track:"Ca plane pour moi"`, StripNonASCII(`track:"Ça plane pour moi"`))
	assert.Equal(t, "Beyonce", StripNonASCII("Beyoncé"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"lady", "hear", "me", "tonight"}, Tokenize("Lady (Hear Me Tonight)"))
	assert.Equal(t, []string{"hey", "ya"}, Tokenize("Hey Ya! Hey Ya!"))
	assert.Equal(t, []string{"symbol"}, Tokenize("The Symbol"))
	assert.Equal(t, []string{"beyonce"}, Tokenize("Beyoncé"))
	assert.Equal(t, []string{"don", "t", "stop"}, Tokenize("Don't stop"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("& - !"))
}

func TestTokenizeAll(t *testing.T) {
	tokens := TokenizeAll([]string{"Daft Punk", "Punk Rock", "The"})
	assert.Equal(t, []string{"daft", "punk", "rock"}, tokens)
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("lady karaoke version", "karaoke"))
	assert.True(t, ContainsPhrase("song radio edit", "radio edit"))
	assert.False(t, ContainsPhrase("deliver", "live"))
	assert.False(t, ContainsPhrase("radio editor", "radio edit"))
	assert.False(t, ContainsPhrase("", "live"))
	assert.False(t, ContainsPhrase("live", ""))
}
