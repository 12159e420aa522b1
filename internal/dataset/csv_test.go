package dataset

import (
	"strings"
	"testing"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "Title,Text,Rating,Year,Month,Day,Hometown,Extra\n" +
		"Great,Loved it,5,2019,3,14,\"Brooklyn, New York\",x\n" +
		"NaN,Too crowded,2.0,2020,7,1,,y\n" +
		"Meh,None,3,2021,12,31,France,z\n"

	reviews, stats, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, LoadStats{Rows: 3, Accepted: 3}, stats)
	assert.Equal(t, []model.RawReview{
		{ID: 0, Title: "Great", Text: "Loved it", Rating: 5, Year: 2019, Month: 3, Day: 14, Hometown: "Brooklyn, New York"},
		{ID: 1, Title: "", Text: "Too crowded", Rating: 2, Year: 2020, Month: 7, Day: 1, Hometown: ""},
		{ID: 2, Title: "Meh", Text: "", Rating: 3, Year: 2021, Month: 12, Day: 31, Hometown: "France"},
	}, reviews)
}

func TestReadCSV_HeaderCaseAndOrder(t *testing.T) {
	input := "\ufeffhometown,DAY,month,YEAR,rating,text,title\n" +
		"Paris,2,3,2022,4,Nice,Visit\n"

	reviews, _, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Paris", reviews[0].Hometown)
	assert.Equal(t, "Visit", reviews[0].Title)
	assert.Equal(t, 2022, reviews[0].Year)
	assert.Equal(t, 2, reviews[0].Day)
}

func TestReadCSV_SkipsMalformedRows(t *testing.T) {
	input := "Title,Text,Rating,Year,Month,Day,Hometown\n" +
		"a,ok,5,2019,1,1,\n" +
		"b,no rating,,2019,1,1,\n" +
		"c,bad rating,7,2019,1,1,\n" +
		"d,bad month,4,2019,13,1,\n" +
		"e,fractional year,4,2019.5,1,1,\n" +
		"f,short row,4\n" +
		"g,ok,4,2020,2,29,\n"

	reviews, stats, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, LoadStats{Rows: 7, Accepted: 2, Skipped: 5}, stats)
	require.Len(t, reviews, 2)
	assert.Equal(t, 0, reviews[0].ID)
	assert.Equal(t, 6, reviews[1].ID, "IDs keep the source row position")
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("Title,Text,Rating,Year,Month\nx,y,1,2019,1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
	assert.Contains(t, err.Error(), "day, hometown")
}

func TestReadCSV_Empty(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestParseRowErrorsAreMalformed(t *testing.T) {
	index, err := columnIndex(requiredColumns)
	require.NoError(t, err)

	_, err = parseRow([]string{"t", "x", "abc", "2019", "1", "1", ""}, index, 0)
	assert.ErrorIs(t, err, common.ErrMalformedRow)
}
