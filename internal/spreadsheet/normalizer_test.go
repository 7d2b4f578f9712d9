package spreadsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMapsSynonymHeaders(t *testing.T) {
	csv := "Student Name, Course, Date\nJane Doe,Intro to X,2024-10-22\n"

	table, err := Read(strings.NewReader(csv), "recipients.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, 2, row.Number)
	assert.Equal(t, "Jane Doe", row.Get(ColRecipientName))
	assert.Equal(t, "Intro to X", row.Get(ColCourseTitle))
	assert.Equal(t, "2024-10-22", row.Get(ColIssueDate))
	assert.Equal(t, 0, row.Extras.Len())
}

func TestReadMissingRequiredColumns(t *testing.T) {
	csv := "Foo,Bar\n1,2\n"

	_, err := Read(strings.NewReader(csv), "recipients.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), ColRecipientName)
	assert.Contains(t, err.Error(), ColCourseTitle)
	assert.Contains(t, err.Error(), ColIssueDate)
}

func TestReadPreservesExtraColumns(t *testing.T) {
	csv := "Name,Course,Issue Date,Amount,Seat\nJane,Go 101,2024-10-22,$150.00,A4\n"

	table, err := Read(strings.NewReader(csv), "recipients.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	amount, ok := row.Extras.Get(ColAmount)
	_ = ok
	// Amount is a canonical column, so it lands in Fields, not Extras.
	assert.Equal(t, "$150.00", row.Get(ColAmount))
	assert.Empty(t, amount)

	seat, ok := row.Extras.Get("seat")
	assert.True(t, ok)
	assert.Equal(t, "A4", seat)
	assert.Equal(t, []string{"seat"}, row.Extras.Keys())
}

func TestReadSkipsEmptyRowsAndKeepsNumbering(t *testing.T) {
	csv := "Name,Course,Date\nJane,Go 101,2024-10-22\n,,\nBob,Go 102,2024-10-23\n"

	table, err := Read(strings.NewReader(csv), "recipients.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, 4, table.Rows[1].Number)
	assert.Equal(t, "Bob", table.Rows[1].Get(ColRecipientName))
}

func TestReadDelimiterDetection(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"semicolon", "Name;Course;Date\nJane;Go 101;2024-10-22\n"},
		{"tab", "Name\tCourse\tDate\nJane\tGo 101\t2024-10-22\n"},
		{"pipe", "Name|Course|Date\nJane|Go 101|2024-10-22\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := Read(strings.NewReader(tc.csv), "recipients.csv")
			require.NoError(t, err)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, "Jane", table.Rows[0].Get(ColRecipientName))
			assert.Equal(t, "Go 101", table.Rows[0].Get(ColCourseTitle))
		})
	}
}

func TestReadRejectsLegacyFormats(t *testing.T) {
	for _, name := range []string{"old.xls", "sheet.ods"} {
		_, err := Read(strings.NewReader("data"), name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "not supported")
	}
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), "recipients.csv")
	assert.Error(t, err)

	_, err = Read(strings.NewReader("Name,Course,Date\n"), "recipients.csv")
	assert.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		raw       string
		want      string
		canonical bool
	}{
		{"Student Name", ColRecipientName, true},
		{"EMAIL", ColRecipientEmail, true},
		{"e-mail", ColRecipientEmail, true},
		{"Course", ColCourseTitle, true},
		{" Issue Date ", ColIssueDate, true},
		{"Issued By", ColIssuerName, true},
		{"Fee", ColAmount, true},
		{"Seat Number", "seat_number", false},
	}

	for _, tc := range cases {
		got, canonical := NormalizeHeader(tc.raw)
		assert.Equal(t, tc.want, got, "header %q", tc.raw)
		assert.Equal(t, tc.canonical, canonical, "header %q", tc.raw)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Jane@Example.COM ", "jane@example.com"},
		{"user@gmail", "user@gmail.com"},
		{"user@yahoo", "user@yahoo.com"},
		{"user@company", "user@company"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in), "input %q", tc.in)
	}
}
