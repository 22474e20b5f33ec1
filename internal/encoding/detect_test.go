package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/artha/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "date,description,amount\n2024-01-05,Café ₹ Chai,-150\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Café Résumé\n"))
	require.NoError(t, err)

	assert.Equal(t, "Café Résumé\n", decode(t, encoded))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("date,amount\n")...)
	assert.Equal(t, "date,amount\n", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "hi" as UTF-16LE with BOM.
	input := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	assert.Equal(t, "hi", decode(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
