package rotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rotolog/rotolog/rotation"
)

func TestPeriodSuffix(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// 2024-01-10 is a Wednesday; the Monday of that week is 2024-01-08.
	wednesday := time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)

	assert.Equal("", rotation.PeriodNever.Suffix(wednesday))
	assert.Equal("2024-01-10T15", rotation.Hourly.Suffix(wednesday))
	assert.Equal("2024-01-10", rotation.Daily.Suffix(wednesday))
	assert.Equal("2024-01-08", rotation.Weekly.Suffix(wednesday))
	assert.Equal("2024-01", rotation.Monthly.Suffix(wednesday))
}

func TestPeriodSuffixStableWithinPeriod(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	early := time.Date(2024, 1, 10, 0, 0, 1, 0, time.UTC)
	late := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)

	assert.Equal(rotation.Daily.Suffix(early), rotation.Daily.Suffix(late))
	assert.NotEqual(rotation.Daily.Suffix(early), rotation.Daily.Suffix(late.Add(time.Second)))

	sameHour := early.Add(59 * time.Minute)
	assert.Equal(rotation.Hourly.Suffix(early), rotation.Hourly.Suffix(sameHour))
	assert.NotEqual(rotation.Hourly.Suffix(early), rotation.Hourly.Suffix(sameHour.Add(time.Minute)))
}

func TestWeeklySuffixIsTheMonday(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	monday := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal("2024-01-08", rotation.Weekly.Suffix(monday), "a Monday labels itself")
	assert.Equal("2024-01-08", rotation.Weekly.Suffix(sunday), "Sunday still belongs to Monday's week")
	assert.Equal("2024-01-15", rotation.Weekly.Suffix(nextMonday))
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for _, period := range []rotation.Period{
		rotation.PeriodNever, rotation.Hourly, rotation.Daily, rotation.Weekly, rotation.Monthly,
	} {
		parsed, err := rotation.ParsePeriod(period.String())
		assert.NoError(err)
		assert.Equal(period, parsed)
	}

	parsed, err := rotation.ParsePeriod(" Daily ")
	assert.NoError(err, "parsing is case and space insensitive")
	assert.Equal(rotation.Daily, parsed)

	_, err = rotation.ParsePeriod("fortnightly")
	assert.ErrorIs(err, rotation.ErrInvalidTrigger)
}
