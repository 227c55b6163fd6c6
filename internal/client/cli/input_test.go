package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func in(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(in("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	got, err := GetSimpleText(in("lastline"), "Name?", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in(""), "Name?", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Enter password")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(io.Discard, "Enter password")
	require.Error(t, err)
}

func TestGetChoice(t *testing.T) {
	var out bytes.Buffer
	got, err := GetChoice(in("daily\n3-4\n"), "Exercise", []string{"none", "3-4"}, false, &out)
	require.NoError(t, err)
	assert.Equal(t, "3-4", got)
	assert.Contains(t, out.String(), "Please choose one of: none, 3-4")

	got, err = GetChoice(in("\n"), "Caffeine", []string{"low"}, true, io.Discard)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = GetChoice(in("LOW\n"), "Caffeine", []string{"low"}, true, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "low", got)

	_, err = GetChoice(in("nope\n"), "Caffeine", []string{"low"}, false, io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer
	got, err := GetInt(in("abc\n30\n7\n"), "Sleep hours", 0, 24, &out)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number between 0 and 24"))
}

func TestGetYesNo(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := GetYesNo(in(input), "Ok?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

func TestGetList(t *testing.T) {
	got, err := GetList(in(" zinc, ,folate ,\n"), "Supplements", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"zinc", "folate"}, got)

	got, err = GetList(in("\n"), "Supplements", io.Discard)
	require.NoError(t, err)
	assert.Nil(t, got)
}
