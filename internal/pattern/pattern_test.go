package pattern

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, template, filename string) time.Time {
	t.Helper()
	m, err := Compile(template)
	require.NoError(t, err)
	ts, err := m.Extract(filename, nil)
	require.NoError(t, err)
	return ts
}

func TestExtractSingleFields(t *testing.T) {
	tests := []struct {
		template string
		filename string
		get      func(time.Time) int
		want     int
	}{
		{"{year}", "2022", time.Time.Year, 2022},
		{"{year}", "2020", time.Time.Year, 2020},
		{"{month}", "1", func(ts time.Time) int { return int(ts.Month()) }, 1},
		{"{month}", "3", func(ts time.Time) int { return int(ts.Month()) }, 3},
		{"{month}", "12", func(ts time.Time) int { return int(ts.Month()) }, 12},
		{"{day}", "1", time.Time.Day, 1},
		{"{day}", "2", time.Time.Day, 2},
		{"{day}", "31", time.Time.Day, 31},
		{"{hour}", "1", time.Time.Hour, 1},
		{"{hour}", "12", time.Time.Hour, 12},
		{"{minutes}", "0", time.Time.Minute, 0},
		{"{minutes}", "59", time.Time.Minute, 59},
		{"{seconds}", "1", time.Time.Second, 1},
		{"{seconds}", "59", time.Time.Second, 59},
	}

	for _, tt := range tests {
		t.Run(tt.template+"/"+tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.get(extract(t, tt.template, tt.filename)))
		})
	}
}

func TestExtractMonthAbbreviation(t *testing.T) {
	for _, template := range []string{"{month_abbr}", "{month_abr}"} {
		for filename, want := range map[string]time.Month{
			"Jan": time.January,
			"Mar": time.March,
			"MAR": time.March,
			"mar": time.March,
			"JUN": time.June,
			"dec": time.December,
			"Foo": time.January,
		} {
			t.Run(template+"/"+filename, func(t *testing.T) {
				assert.Equal(t, want, extract(t, template, filename).Month())
			})
		}
	}
}

func TestExtractNumericMonthWinsOverAbbreviation(t *testing.T) {
	ts := extract(t, "{month_abbr}-{month}", "Mar-7")
	assert.Equal(t, time.July, ts.Month())
}

func TestExtractBasicDates(t *testing.T) {
	tests := []struct {
		template string
		filename string
		want     time.Time
	}{
		{"{year}-{month}-{day}", "2022-12-19", time.Date(2022, 12, 19, 0, 0, 0, 0, time.UTC)},
		{"{year}-{month}-{day}", "2022-01-19", time.Date(2022, 1, 19, 0, 0, 0, 0, time.UTC)},
		{"{year}.{month}.{day}", "2021.1.4", time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"backup_{year}{month}{day}_{hour}{minutes}{seconds}.tar.gz", "backup_20230405_061520.tar.gz", time.Date(2023, 4, 5, 6, 15, 20, 0, time.UTC)},
		{"{name}-{day}-{month_abbr}-{year}.zip", "site-03-Feb-2021.zip", time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.True(t, tt.want.Equal(extract(t, tt.template, tt.filename)))
		})
	}
}

func TestExtractDefaults(t *testing.T) {
	ts := extract(t, "static.txt", "static.txt")
	assert.True(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).Equal(ts))
}

func TestLiteralTextIsEscaped(t *testing.T) {
	m, err := Compile("db.{year}(+){month}")
	require.NoError(t, err)

	_, err = m.Extract("db.2021(+)05", nil)
	require.NoError(t, err)

	_, err = m.Extract("dbx2021(+)05", nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestUnknownPlaceholderIsLiteral(t *testing.T) {
	ts := extract(t, "{foo}-{year}", "{foo}-2019")
	assert.Equal(t, 2019, ts.Year())

	m, err := Compile("{foo}-{year}")
	require.NoError(t, err)
	_, err = m.Extract("bar-2019", nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestDuplicatePlaceholderLastWins(t *testing.T) {
	ts := extract(t, "{year}-{year}", "2019-2021")
	assert.Equal(t, 2021, ts.Year())
}

func TestCompileIsDeterministic(t *testing.T) {
	a := MustCompile("{name}_{year}-{month}-{day}.tgz")
	b := MustCompile("{name}_{year}-{month}-{day}.tgz")
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "{name}_{year}-{month}-{day}.tgz", a.Template())
}

func TestExtractNoMatch(t *testing.T) {
	m := MustCompile("{year}-{month}-{day}")
	_, err := m.Extract("latest.tar", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.True(t, IsParseFailure(err))
}

func TestExtractImpossibleDate(t *testing.T) {
	tests := []string{"2022-02-31", "2021-13-01", "2021-00-10", "2021-04-31"}
	m := MustCompile("{year}-{month}-{day}")

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Extract(name, nil)
			var ce *CalendarError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.True(t, IsParseFailure(err))
		})
	}

	_, err := MustCompile("{hour}h").Extract("24h", nil)
	assert.True(t, IsParseFailure(err))

	ts, err := m.Extract("2024-02-29", nil)
	require.NoError(t, err)
	assert.Equal(t, 29, ts.Day())
}

func TestExtractLocation(t *testing.T) {
	m := MustCompile("{year}-{month}-{day}T{hour}")
	loc := time.FixedZone("plus2", 2*3600)

	ts, err := m.Extract("2022-06-01T10", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC).Equal(ts))

	ts, err = m.Extract("2022-06-01T10", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestExtractCapturedOffsetWins(t *testing.T) {
	m := MustCompile("{year}-{month}-{day}T{hour}{TZ}")
	loc := time.FixedZone("plus2", 2*3600)

	ts, err := m.Extract("2022-06-01T10-03:30", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2022, 6, 1, 13, 30, 0, 0, time.UTC).Equal(ts))

	ts, err = m.Extract("2022-06-01T10Z", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2022, 6, 1, 10, 0, 0, 0, time.UTC).Equal(ts))
}

func TestExtractNormalizesFilename(t *testing.T) {
	// "é" precomposed in the template, decomposed in the filename
	m := MustCompile("caf\u00e9-{year}")
	ts, err := m.Extract("cafe\u0301-2018", nil)
	require.NoError(t, err)
	assert.Equal(t, 2018, ts.Year())
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("{{year}x{bogus}{day")
	require.Len(t, tokens, 3)

	assert.Equal(t, token{text: "{"}, tokens[0])
	assert.True(t, tokens[1].placeholder)
	assert.Equal(t, fieldYear, tokens[1].field)
	assert.Equal(t, "x{bogus}{day", tokens[2].text)
}
