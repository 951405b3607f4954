package about

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/roster-admin/internal/admin/content"
)

func TestIndexRendersAboutPage(t *testing.T) {
	t.Parallel()

	page, err := content.NewLibrary().Page("about")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Index(page).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	require.Equal(t, "About Us", doc.Find("h1").Text())
	article := doc.Find(`[data-content-page="about"]`)
	require.Equal(t, 1, article.Length())
	require.Equal(t, 3, article.Find("h2").Length())
	require.Equal(t, 1, article.Find("table").Length())
	require.Equal(t, 0, article.Find("script").Length())
}
