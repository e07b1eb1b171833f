package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"atm-scraper/models"
	"atm-scraper/utils"
)

func sampleRecords() []*models.CanonicalRecord {
	return []*models.CanonicalRecord{
		{Name: "A", Address: models.StructuredAddress{City: "Makati"}, Geocoded: true},
		{Name: "B", Address: models.StructuredAddress{City: "Makati"}, Geocoded: true},
		{Name: "C", Address: models.StructuredAddress{City: "Taguig"}, Geocoded: true},
		{Name: "D", Address: FallbackAddress("somewhere")},
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(utils.NewNopLogger())
	r := svc.Generate(sampleRecords(), PersistResult{Saved: 2, Skipped: 1, Failed: 1})

	assert.Equal(t, 4, r.Processed)
	assert.Equal(t, 2, r.Saved)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.FallbackAddress)
	assert.Equal(t, map[string]int{"Makati": 2, "Taguig": 1}, r.RecordsByCity)
}

func TestSummaryEmptyInput(t *testing.T) {
	svc := NewSummaryService(utils.NewNopLogger())
	r := svc.Generate(nil, PersistResult{})
	assert.Equal(t, 0, r.Processed)
	assert.Empty(t, r.RecordsByCity)
}

func TestSummaryPrint(t *testing.T) {
	svc := NewSummaryService(utils.NewNopLogger())
	r := svc.Generate(sampleRecords(), PersistResult{Saved: 3, Skipped: 1})

	var buf bytes.Buffer
	svc.Print(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Total number of objects: 4")
	assert.Contains(t, out, "Number of objects not saved because it already exists OR raw data is not available: 1")
	assert.Contains(t, out, "Saved              : 3")
	assert.Contains(t, out, "Skipped            : 1")
	assert.Contains(t, out, "Makati")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Makati")), bytes.Index(buf.Bytes(), []byte("Taguig")))
}

func TestSummaryLogsCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewSummaryService(utils.WrapZap(zap.New(core)))

	svc.Generate(sampleRecords(), PersistResult{Saved: 2, Skipped: 1, Failed: 1})

	entries := logs.FilterMessageSnippet("[summary]").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[summary] 4 processed: 2 saved, 1 skipped, 1 failed, 1 fallback addresses", entries[0].Message)
}
