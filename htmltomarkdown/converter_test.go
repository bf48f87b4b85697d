package htmltomarkdown_test

import (
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements jobsift.Converter at compile time.
var _ jobsift.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Careers</h1><h2>Engineering</h2><p>We are hiring across all levels.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Careers")
		assert.Contains(t, md, "## Engineering")
		assert.Contains(t, md, "We are hiring across all levels.")
	})

	t.Run("keeps job links as markdown links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Apply as <a href="https://example.com/jobs/42">Senior Backend Engineer</a> today.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Senior Backend Engineer](https://example.com/jobs/42)")
	})

	t.Run("converts job lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><a href="/jobs/1">Backend Engineer</a> Remote</li>
<li><a href="/jobs/2">Product Designer</a> Berlin</li>
</ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- [Backend Engineer](/jobs/1)")
		assert.Contains(t, md, "- [Product Designer](/jobs/2)")
	})

	t.Run("converts listing tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Role</th><th>Location</th></tr></thead>
<tbody><tr><td>Data Engineer</td><td>NYC</td></tr><tr><td>SRE</td><td>Remote</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Role")
		assert.Contains(t, md, "Location")
		assert.Contains(t, md, "Data Engineer")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Full-time</strong> and <em>hybrid</em> roles.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Full-time**")
		assert.Contains(t, md, "*hybrid*")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(err))
	})

	t.Run("handles a full careers page fragment", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>Open positions</h1>
<p>Join us. We hire worldwide.</p>
<h2>Engineering</h2>
<ul>
<li><a href="https://boards.greenhouse.io/acme/jobs/1">Staff Engineer</a> Remote, US</li>
<li><a href="https://boards.greenhouse.io/acme/jobs/2">Engineering Manager</a> London</li>
</ul>
<h2>Design</h2>
<ul>
<li><a href="https://boards.greenhouse.io/acme/jobs/3">Brand Designer</a> Berlin</li>
</ul>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Open positions")
		assert.Contains(t, md, "## Engineering")
		assert.Contains(t, md, "[Staff Engineer](https://boards.greenhouse.io/acme/jobs/1)")
		assert.Contains(t, md, "## Design")
		assert.Contains(t, md, "Berlin")
	})
}
