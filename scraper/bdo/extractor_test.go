package bdo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, rows ...testRow) []string {
	t.Helper()
	doc, err := ParseDocument(pageHTML("", rows...))
	require.NoError(t, err)

	var names []string
	for _, it := range DefaultSchema.Extract(doc) {
		names = append(names, it.Name)
	}
	return names
}

func TestExtractCompleteRow(t *testing.T) {
	doc, err := ParseDocument(pageHTML("", testRow{
		name:    "  ATM A ",
		address: "\n 123 Main St \n",
		href:    mapsLink("14.55", "121.02"),
	}))
	require.NoError(t, err)

	items := DefaultSchema.Extract(doc)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "ATM A", it.Name)
	assert.Equal(t, "123 Main St", it.Address)
	assert.Equal(t, "https://maps.example.com/dir?latitude=14.55&longitude=121.02", it.Href)
	require.NotNil(t, it.GeoPoint)
	assert.InDelta(t, 14.55, it.GeoPoint.Lat, 1e-9)
	assert.InDelta(t, 121.02, it.GeoPoint.Lng, 1e-9)
}

func TestExtractDropsIncompleteRows(t *testing.T) {
	ok := mapsLink("14.5", "121.0")

	tests := []struct {
		name string
		row  testRow
	}{
		{"missing title", testRow{address: "a", href: ok, noTitle: true}},
		{"missing body", testRow{name: "n", href: ok, noBody: true}},
		{"missing link", testRow{name: "n", address: "a", noLink: true}},
		{"link without href", testRow{name: "n", address: "a", noHref: true}},
		{"missing latitude", testRow{name: "n", address: "a", href: "https://maps.example.com/dir?longitude=121.0"}},
		{"missing longitude", testRow{name: "n", address: "a", href: "https://maps.example.com/dir?latitude=14.5"}},
		{"empty latitude", testRow{name: "n", address: "a", href: mapsLink("", "121.0")}},
		{"unparseable longitude", testRow{name: "n", address: "a", href: mapsLink("14.5", "east")}},
		{"non-finite latitude", testRow{name: "n", address: "a", href: mapsLink("NaN", "121.0")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, extract(t, tt.row))
		})
	}
}

func TestExtractKeepsOrderAndSkipsBadRows(t *testing.T) {
	names := extract(t,
		testRow{name: "First", address: "a", href: mapsLink("1", "2")},
		testRow{name: "Broken", address: "b", href: "/branch/broken"},
		testRow{name: "Second", address: "c", href: "/branch?latitude=-3.5&longitude=4"},
	)
	assert.Equal(t, []string{"First", "Second"}, names)
}

func TestExtractCustomSchema(t *testing.T) {
	schema := Schema{
		Row:            "li.atm",
		Title:          "h3",
		Body:           "p",
		Link:           "a.map",
		LatitudeParam:  "lat",
		LongitudeParam: "lng",
	}
	doc, err := ParseDocument(`<ul><li class="atm"><h3>Kiosk</h3><p>Mall</p><a class="map" href="/m?lat=10&lng=20">map</a></li></ul>`)
	require.NoError(t, err)

	items := schema.Extract(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "Kiosk", items[0].Name)
	assert.InDelta(t, 20.0, items[0].GeoPoint.Lng, 1e-9)
}
