package gateway

import (
	"testing"

	"content-indexer/domain"
	"content-indexer/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway() *ContentIndexGateway {
	return NewContentIndexGateway(driver.NewMemoryIndexDriver())
}

func entry(uid, contentType, locale, title string) domain.Entry {
	return domain.Entry{
		UID:            uid,
		Title:          title,
		ContentTypeUID: contentType,
		Locale:         locale,
		URL:            "/" + uid,
		CreatedAt:      "2024-01-15T10:00:00Z",
		UpdatedAt:      "2024-01-15T10:00:00Z",
		Fields:         map[string]any{"description": title + " description"},
	}
}

func TestContentIndexGateway_PutReplaces(t *testing.T) {
	g := newGateway()

	g.Put(entry("p1", "product", "en-us", "v1"))
	before := g.Stats().TotalEntries
	g.Put(entry("p1", "product", "en-us", "v2"))

	all := g.All()
	require.Len(t, all, 1)
	assert.Equal(t, "v2", all[0].Title)
	assert.Equal(t, before, g.Stats().TotalEntries)
}

func TestContentIndexGateway_RoundTripsAttributes(t *testing.T) {
	g := newGateway()
	want := entry("p1", "product", "en-us", "Red Sneakers")
	want.PublishedAt = "2024-01-16T00:00:00Z"

	g.Put(want)
	assert.Equal(t, []domain.Entry{want}, g.All())
}

func TestContentIndexGateway_PutCopiesFields(t *testing.T) {
	g := newGateway()
	e := entry("p1", "product", "en-us", "Red")

	g.Put(e)
	e.Fields["description"] = "mutated"

	assert.Equal(t, "Red description", g.All()[0].Fields["description"])
}

func TestContentIndexGateway_Remove(t *testing.T) {
	g := newGateway()
	g.Put(entry("p1", "product", "en-us", "a"))
	g.Put(entry("p2", "product", "en-us", "b"))

	assert.True(t, g.Remove("p1"))
	assert.False(t, g.Remove("p1"))
	assert.False(t, g.Remove("nope"))

	all := g.All()
	require.Len(t, all, 1)
	assert.Equal(t, "p2", all[0].UID)
}

func TestContentIndexGateway_Filters(t *testing.T) {
	g := newGateway()
	g.Put(entry("p1", "product", "en-us", "a"))
	g.Put(entry("a1", "article", "fr-fr", "b"))
	g.Put(entry("p2", "product", "fr-fr", "c"))

	byType := g.ByContentType("product")
	require.Len(t, byType, 2)
	assert.Equal(t, "p1", byType[0].UID)
	assert.Equal(t, "p2", byType[1].UID)

	byLocale := g.ByLocale("fr-fr")
	require.Len(t, byLocale, 2)
	assert.Equal(t, "a1", byLocale[0].UID)
	assert.Equal(t, "p2", byLocale[1].UID)

	assert.Empty(t, g.ByContentType("page"))
	assert.NotNil(t, g.ByLocale("de-de"))
}

func TestContentIndexGateway_StatsAndClear(t *testing.T) {
	g := newGateway()
	assert.Equal(t, domain.EmptyStats(), g.Stats())

	g.Put(entry("p1", "product", "en-us", "a"))
	g.Put(entry("p2", "product", "en-us", "b"))
	g.Put(entry("a1", "article", "", "c"))

	assert.Equal(t, domain.IndexStats{
		TotalEntries: 3,
		ContentTypes: []string{"article", "product"},
		Locales:      []string{"en-us"},
	}, g.Stats())

	assert.Equal(t, 3, g.Clear())
	assert.Equal(t, domain.EmptyStats(), g.Stats())
	assert.Equal(t, 0, g.Clear())
}

func TestContentIndexGateway_SnapshotVersion(t *testing.T) {
	g := newGateway()

	_, v0 := g.Snapshot()
	g.Put(entry("p1", "product", "en-us", "a"))
	entries, v1 := g.Snapshot()

	assert.Len(t, entries, 1)
	assert.Greater(t, v1, v0)

	g.Remove("missing")
	_, v2 := g.Snapshot()
	assert.Equal(t, v1, v2)
}
