package bolt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

func TestNewsletterCreate(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	n := &visiontech.Newsletter{
		Title:   "Issue 1",
		Content: "<style>.a{}</style><p>hello</p>",
	}
	require.NoError(t, ns.Create(n))
	assert.NotZero(t, n.ID)
	assert.False(t, n.Date.IsZero())

	found, err := ns.FindByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Issue 1", found.Title)
	assert.Equal(t, "<style>.a{}</style><p>hello</p>", found.Content)
}

func TestNewsletterFindSortedByDateDesc(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		require.NoError(t, ns.Create(&visiontech.Newsletter{
			Title: title,
			Date:  base.AddDate(0, i, 0),
		}))
	}

	all, err := ns.Find()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Newest", all[0].Title)
	assert.Equal(t, "Middle", all[1].Title)
	assert.Equal(t, "Oldest", all[2].Title)
}

func TestNewsletterFindEmpty(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	all, err := ns.Find()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewsletterUpdatePartial(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	n := &visiontech.Newsletter{
		Title:    "Issue 1",
		Content:  "<style></style><p>body</p>",
		Author:   "Vicky",
		ImageURL: "https://cdn.example.com/cover.png",
	}
	require.NoError(t, ns.Create(n))

	newTitle := "New Title"
	updated, err := ns.Update(n.ID, &visiontech.NewsletterUpdate{Title: &newTitle})
	require.NoError(t, err)

	// Omitted fields stay untouched.
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "<style></style><p>body</p>", updated.Content)
	assert.Equal(t, "Vicky", updated.Author)
	assert.Equal(t, "https://cdn.example.com/cover.png", updated.ImageURL)
}

func TestNewsletterUpdateNotFound(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	title := "x"
	_, err := ns.Update(42, &visiontech.NewsletterUpdate{Title: &title})
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrNotFound, visiontech.ErrorCode(err))
}

func TestNewsletterDelete(t *testing.T) {
	ns := NewNewsletterService(newTestDB(t))

	n := &visiontech.Newsletter{Title: "Issue 1"}
	require.NoError(t, ns.Create(n))

	require.NoError(t, ns.Delete(n.ID))

	_, err := ns.FindByID(n.ID)
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrNotFound, visiontech.ErrorCode(err))

	err = ns.Delete(n.ID)
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrNotFound, visiontech.ErrorCode(err))
}
