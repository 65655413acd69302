package goquery_test

import (
	"testing"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("one module with one submodule holding the paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Getting Started</h1>
<h2>Installation</h2>
<p>Run the   installer
   and follow the prompts.</p>
</body></html>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "Getting Started", sections[0].Title)
		require.Len(t, sections[0].Submodules, 1)
		assert.Equal(t, "Installation", sections[0].Submodules[0].Title)
		assert.Equal(t, []string{"Run the installer and follow the prompts."}, sections[0].Submodules[0].Content)
	})

	t.Run("drops content before the first module", func(t *testing.T) {
		t.Parallel()

		html := `<p>Preamble</p><h2>Orphan</h2><p>Orphan text</p><h1>API</h1><p>Body</p>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []docmap.Section{{
			Title: "API",
			Submodules: []docmap.Submodule{
				{Title: docmap.FallbackSubmoduleTitle, Content: []string{"Body"}},
			},
		}}, sections)
	})

	t.Run("removes page chrome", func(t *testing.T) {
		t.Parallel()

		html := `<header><h1>Site</h1></header>
<nav><ul><li>Home</li></ul></nav>
<main><h1>Guide</h1><h2>Usage</h2><p>Use it.</p></main>
<aside><p>Sidebar</p></aside>
<footer><p>Copyright</p></footer>
<script>var x = 1;</script>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "Guide", sections[0].Title)
		require.Len(t, sections[0].Submodules, 1)
		assert.Equal(t, []string{"Use it."}, sections[0].Submodules[0].Content)
	})

	t.Run("renders lists as dash items", func(t *testing.T) {
		t.Parallel()

		html := `<h1>CLI</h1><h2>Flags</h2>
<ul><li>--depth <code>n</code></li><li>--max-pages</li><li>  </li></ul>
<ol><li>First</li><li>Second <ul><li>nested</li></ul></li></ol>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, []string{
			"- --depth n\n- --max-pages",
			"- First\n- Second nested",
		}, sections[0].Submodules[0].Content)
	})

	t.Run("h3 annotates the current submodule", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Config</h1><h2>File</h2><h3>Location</h3><p>Home dir.</p>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections[0].Submodules, 1)
		assert.Equal(t, []string{"### Location", "Home dir."}, sections[0].Submodules[0].Content)
	})

	t.Run("h3 without submodule opens one", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Config</h1><h3>Env</h3><p>Vars.</p>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections[0].Submodules, 1)
		assert.Equal(t, "Env", sections[0].Submodules[0].Title)
		assert.Equal(t, []string{"Vars."}, sections[0].Submodules[0].Content)
	})

	t.Run("returns no sections for a page without h1", func(t *testing.T) {
		t.Parallel()

		sections, err := goquery.NewSectionExtractor().Extract(`<h2>Sub</h2><p>text</p>`)

		require.NoError(t, err)
		assert.Empty(t, sections)
	})

	t.Run("separates inline elements with spaces", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Setup</h1><h2>Install</h2>
<p>Run<br>the<code>pip</code>command</p>
<ul><li><a>Linux</a><span>supported</span></li></ul>`

		sections, err := goquery.NewSectionExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, sections, 1)
		require.Len(t, sections[0].Submodules, 1)
		assert.Equal(t, []string{"Run the pip command", "- Linux supported"}, sections[0].Submodules[0].Content)
	})

	t.Run("keeps heading text nodes joined", func(t *testing.T) {
		t.Parallel()

		sections, err := goquery.NewSectionExtractor().Extract(`<h1>Go<b>Lang</b></h1><h2>API <code>v2</code></h2><p>x</p>`)

		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "GoLang", sections[0].Title)
		assert.Equal(t, "API v2", sections[0].Submodules[0].Title)
	})
}
