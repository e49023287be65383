package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/top-headlines/internal/models"
	"github.com/DeafMist/top-headlines/internal/render"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return r
}

func renderString(t *testing.T, r *render.Renderer, page string, data render.Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data))
	return buf.String()
}

func TestRenderNameEscapes(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		name string
		want string
	}{
		{name: "Bob", want: "Hello, Bob!"},
		{name: "", want: "Hello, !"},
		{name: `<script>alert("x")</script>`, want: "Hello, &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;!"},
		{name: "Zoë & Ана", want: "Hello, Zoë &amp; Ана!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, r, render.PageName, render.Page{Name: tt.name})
			require.Contains(t, out, tt.want)
			require.NotContains(t, out, "<script>")
		})
	}
}

func TestRenderHeadlines(t *testing.T) {
	r := newRenderer(t)
	out := renderString(t, r, render.PageHeadlines, render.Page{
		Name:      "Bob",
		Headlines: []models.TitleView{{Title: "A"}, {Title: "B & C"}},
	})

	require.Contains(t, out, "Hello Bob!")
	require.Contains(t, out, "<li>A</li>")
	require.Contains(t, out, "<li>B &amp; C</li>")
	require.Less(t, strings.Index(out, "<li>A</li>"), strings.Index(out, "<li>B &amp; C</li>"))
}

func TestRenderLinkAndImages(t *testing.T) {
	r := newRenderer(t)

	link := renderString(t, r, render.PageLink, render.Page{
		Name:      "Bob",
		Headlines: []models.LinkView{{Title: "A", URL: "https://example.com/a"}},
	})
	require.Contains(t, link, `<a href="https://example.com/a">A</a>`)

	images := renderString(t, r, render.PageImages, render.Page{
		Name:      "Bob",
		Headlines: []models.ImageView{{Title: "A", URL: "u1", Thumbnail: "m1"}},
	})
	require.Contains(t, images, `<a href="u1"><img src="m1" alt="">A</a>`)
}

func TestRenderSanitizesUnsafeURL(t *testing.T) {
	r := newRenderer(t)
	out := renderString(t, r, render.PageLink, render.Page{
		Headlines: []models.LinkView{{Title: "A", URL: "javascript:alert(1)"}},
	})
	require.NotContains(t, out, "javascript:")
	require.Contains(t, out, "#ZgotmplZ")
}

func TestRenderEmptyHeadlines(t *testing.T) {
	r := newRenderer(t)
	out := renderString(t, r, render.PageHeadlines, render.Page{Name: "x", Headlines: []models.TitleView{}})
	require.NotContains(t, out, "<li>")
}

func TestRenderUnknownPage(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, "missing.html", render.Page{})
	require.ErrorIs(t, err, render.ErrUnknownPage)
	require.Zero(t, buf.Len())
}

func TestRenderDeterministic(t *testing.T) {
	r := newRenderer(t)
	data := render.Page{Name: "Bob", Headlines: []models.ImageView{{Title: "A", URL: "u1", Thumbnail: "m1"}}}
	require.Equal(t, renderString(t, r, render.PageImages, data), renderString(t, r, render.PageImages, data))
}
