package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotolog/rotolog/rotation"
)

func TestParseSize(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	good := map[string]int64{
		"10":     10 * 1024, // bare numbers are kilobytes.
		"0":      0,
		"5K":     5 * 1024,
		"2M":     2 * 1024 * 1024,
		"1G":     1024 * 1024 * 1024,
		"2k":     2 * 1024,
		"3m":     3 * 1024 * 1024,
		"4g":     4 * 1024 * 1024 * 1024,
		"  8M  ": 8 * 1024 * 1024,
	}

	for input, want := range good {
		got, err := rotation.ParseSize(input)
		assert.NoError(err, "input %q", input)
		assert.Equal(want, got, "input %q", input)
	}
}

func TestParseSizeErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := rotation.ParseSize("")
	assert.ErrorIs(err, rotation.ErrSizeParse, "empty input")

	_, err = rotation.ParseSize("   ")
	assert.ErrorIs(err, rotation.ErrSizeParse, "blank input")

	_, err = rotation.ParseSize("5X")
	assert.ErrorIs(err, rotation.ErrSizeParse)
	assert.Contains(err.Error(), `"X"`, "the error names the unsupported unit")

	_, err = rotation.ParseSize("abcM")
	assert.ErrorIs(err, rotation.ErrSizeParse, "non-numeric magnitude")

	_, err = rotation.ParseSize("-1M")
	assert.ErrorIs(err, rotation.ErrSizeParse, "negative magnitude")

	_, err = rotation.ParseSize("99999999999999999999")
	assert.ErrorIs(err, rotation.ErrSizeParse, "magnitude too large to parse")

	_, err = rotation.ParseSize("9999999999G")
	assert.ErrorIs(err, rotation.ErrSizeParse, "multiplication overflow")
}
