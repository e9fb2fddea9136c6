package hebdate

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGregorianRoshHashanah(t *testing.T) {
	// 1 Tishrei 5786 falls on September 23, 2025.
	d := FromGregorian(time.Date(2025, time.September, 23, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 5786, d.Year())
	assert.Equal(t, 7, d.Month())
	assert.Equal(t, 1, d.Day())
}

func TestGregorianRoundTrip(t *testing.T) {
	d := New(5786, 7, 1)
	g := d.Gregorian()
	assert.Equal(t, 2025, g.Year())
	assert.Equal(t, time.September, g.Month())
	assert.Equal(t, 23, g.Day())
	assert.True(t, FromGregorian(g).Equal(d))

	// 5784 has two Adars; both must survive the round trip.
	adarI := New(5784, 12, 10)
	assert.True(t, FromGregorian(adarI.Gregorian()).Equal(adarI))
	adarII := New(5784, 13, 14)
	assert.True(t, FromGregorian(adarII.Gregorian()).Equal(adarII))
}

func TestLeapYearAdarII(t *testing.T) {
	// Purim 5784 (a leap year): 14 Adar II fell on March 24, 2024.
	d := FromGregorian(time.Date(2024, time.March, 24, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 5784, d.Year())
	assert.Equal(t, 13, d.Month())
	assert.Equal(t, 14, d.Day())
}

func TestAddDaysYearRollover(t *testing.T) {
	d := New(5785, 6, 29) // 29 Elul, last day of 5785
	next := d.AddDays(1)
	assert.Equal(t, 5786, next.Year())
	assert.Equal(t, 7, next.Month())
	assert.Equal(t, 1, next.Day())

	assert.True(t, next.SubtractDays(1).Equal(d))
}

func TestAddDaysWithinMonth(t *testing.T) {
	d := New(5786, 7, 10)
	assert.True(t, d.AddDays(5).Equal(New(5786, 7, 15)))
	assert.True(t, d.AddDays(0).Equal(d))
}

func TestAfter(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want bool
	}{
		{"later year", New(5786, 1, 1), New(5785, 13, 29), true},
		{"earlier year", New(5785, 13, 29), New(5786, 1, 1), false},
		{"later month same year", New(5786, 7, 1), New(5786, 6, 29), true},
		{"later day same month", New(5786, 7, 2), New(5786, 7, 1), true},
		{"equal dates", New(5786, 7, 1), New(5786, 7, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.After(tt.b))
		})
	}
}

func TestAgeAt(t *testing.T) {
	birth := New(5773, 7, 15)

	tests := []struct {
		name  string
		today Date
		want  int
	}{
		{"before anniversary month", New(5786, 6, 29), 12},
		{"day before anniversary", New(5786, 7, 14), 12},
		{"on anniversary", New(5786, 7, 15), 13},
		{"after anniversary", New(5786, 8, 1), 13},
		{"same year", New(5773, 8, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, birth.AgeAt(tt.today))
		})
	}
}

func TestIsZero(t *testing.T) {
	var zero Date
	assert.True(t, zero.IsZero())
	assert.False(t, New(5786, 7, 1).IsZero())
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(5786, 7, 1).IsValid())
	assert.True(t, New(5784, 13, 14).IsValid())

	assert.False(t, New(5786, 0, 1).IsValid())
	assert.False(t, New(5786, 14, 1).IsValid())
	// 5786 is not a leap year, so Adar II does not exist.
	assert.False(t, New(5786, 13, 1).IsValid())
	assert.False(t, New(5786, 7, 31).IsValid())
	// Elul always has 29 days.
	assert.False(t, New(5786, 6, 30).IsValid())
}

func TestParashaStableAcrossWeek(t *testing.T) {
	// Every day of a regular week resolves to the same upcoming Saturday
	// and therefore the same portion.
	base := FromGregorian(time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC))
	want := base.Parasha()
	require.NotEmpty(t, want)

	for i := 1; i < 7; i++ {
		assert.Equal(t, want, base.AddDays(i).Parasha(), "day offset %d", i)
	}
}

func TestString(t *testing.T) {
	s := New(5786, 1, 15).String()
	assert.True(t, strings.HasPrefix(s, "ט״ו ניסן "), "got %q", s)
	assert.Len(t, strings.Fields(s), 3)

	s = New(5784, 13, 14).String()
	assert.True(t, strings.HasPrefix(s, "י״ד אדר ב׳ "), "got %q", s)
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(5786, 7, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":5786,"month":7,"day":1}`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d))
}
