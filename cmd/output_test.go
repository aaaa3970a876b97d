// file: cmd/output_test.go
// version: 1.0.0
// guid: d8e0f2a4-b6c8-4d9e-8f0a-1b2c3d4e5f6a

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yschoi/aladin-lookup/internal/metadata"
)

var sampleBook = metadata.Book{
	SourceID:    "27942886",
	Title:       "체 게바라 평전",
	Authors:     []metadata.Author{{Name: "장 코르미에", Role: "지은이"}},
	Series:      "역사 인물 찾기",
	SeriesIndex: 10,
	ISBN:        "9788939205109",
	Rating:      4.6,
	Publisher:   "실천문학사",
	PubDate:     time.Date(2005, 5, 25, 0, 0, 0, 0, time.UTC),
	Tags:        []string{"역사.인물이야기", "혁명"},
	Language:    "kor",
	CoverURL:    "http://image.aladin.co.kr/product/39/20/cover/8939205103_1.jpg",
}

func TestToOutput(t *testing.T) {
	out := toOutput(sampleBook)
	assert.Equal(t, "27942886", out.ID)
	assert.Equal(t, []string{"장 코르미에"}, out.Authors)
	assert.Equal(t, "2005-05-25", out.PubDate)

	// zero pubdate stays empty instead of rendering year 1
	assert.Empty(t, toOutput(metadata.Book{Title: "x"}).PubDate)
}

func TestWriteBooksText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBooks(&buf, []metadata.Book{sampleBook}, "text"))

	got := buf.String()
	assert.Contains(t, got, "Title:     체 게바라 평전")
	assert.Contains(t, got, "Authors:   장 코르미에")
	assert.Contains(t, got, "Series:    역사 인물 찾기 #10")
	assert.Contains(t, got, "ISBN:      9788939205109")
	assert.Contains(t, got, "Published: 2005-05-25")
	assert.Contains(t, got, "Rating:    4.6/5")
	assert.Contains(t, got, "Tags:      역사.인물이야기, 혁명")
}

func TestWriteBooksJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBooks(&buf, []metadata.Book{sampleBook}, "json"))

	var out []bookOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "체 게바라 평전", out[0].Title)
	assert.Equal(t, "9788939205109", out[0].ISBN)
}

func TestWriteBooksYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBooks(&buf, []metadata.Book{sampleBook}, "yaml"))

	var out []bookOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "실천문학사", out[0].Publisher)
}

func TestWriteBooksUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeBooks(&buf, nil, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestWriteBooksMultipleTextRecordsSeparated(t *testing.T) {
	var buf bytes.Buffer
	second := sampleBook
	second.Title = "광장"
	require.NoError(t, writeBooks(&buf, []metadata.Book{sampleBook, second}, "text"))
	assert.Equal(t, 2, strings.Count(buf.String(), "Title:"))
}
