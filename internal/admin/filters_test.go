package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDateFilter(t *testing.T) {
	now := time.Date(2026, time.October, 15, 16, 45, 0, 0, time.UTC)

	cases := []struct {
		choice   string
		from, to time.Time
	}{
		{DateToday, day(2026, 10, 15), day(2026, 10, 16)},
		{DatePast7Days, day(2026, 10, 8), day(2026, 10, 16)},
		{DateThisMonth, day(2026, 10, 1), day(2026, 11, 1)},
		{DateThisYear, day(2026, 1, 1), day(2027, 1, 1)},
	}
	for _, tc := range cases {
		r, err := ResolveDateFilter(tc.choice, now)
		require.NoError(t, err, tc.choice)
		require.NotNil(t, r.From, tc.choice)
		require.NotNil(t, r.To, tc.choice)
		assert.Equal(t, tc.from, *r.From, tc.choice)
		assert.Equal(t, tc.to, *r.To, tc.choice)
		assert.Nil(t, r.IsNull, tc.choice)
	}

	r, err := ResolveDateFilter(DateNoDate, now)
	require.NoError(t, err)
	require.NotNil(t, r.IsNull)
	assert.True(t, *r.IsNull)

	r, err = ResolveDateFilter(DateHasDate, now)
	require.NoError(t, err)
	require.NotNil(t, r.IsNull)
	assert.False(t, *r.IsNull)

	r, err = ResolveDateFilter("", now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{}, r)

	_, err = ResolveDateFilter("next_week", now)
	assert.Error(t, err)
}

func TestDateChoicesCopy(t *testing.T) {
	c := DateChoices()
	c[0] = "x"
	assert.Equal(t, DateAny, DateChoices()[0])
}
