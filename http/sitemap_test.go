package http_test

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	jobsifthttp "github.com/jobsift/jobsift/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// siteHandler serves a fake site from a path -> body map. Missing paths get
// 404.
func siteHandler(pages map[string]string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			nethttp.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}
}

func urlset(urls ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8"?><urlset>`
	for _, u := range urls {
		out += "<url><loc>" + u + "</loc></url>"
	}
	return out + "</urlset>"
}

func TestSitemapDiscoverer_DiscoverSeeds(t *testing.T) {
	t.Parallel()

	t.Run("finds career pages via robots.txt sitemap", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", srv.URL)
			case "/sitemap.xml":
				fmt.Fprint(w, urlset(
					srv.URL+"/about",
					srv.URL+"/careers",
					srv.URL+"/careers/engineering",
					srv.URL+"/blog/post-1",
				))
			default:
				nethttp.NotFound(w, r)
			}
		}))
		defer srv.Close()

		d := jobsifthttp.NewSitemapDiscoverer(srv.Client())
		seeds, err := d.DiscoverSeeds(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/careers", srv.URL + "/careers/engineering"}, seeds)
	})

	t.Run("falls back to /sitemap.xml when robots.txt has no directive", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				fmt.Fprint(w, "User-agent: *\nDisallow: /admin\n")
			case "/sitemap.xml":
				fmt.Fprint(w, urlset(srv.URL+"/jobs"))
			default:
				nethttp.NotFound(w, r)
			}
		}))
		defer srv.Close()

		d := jobsifthttp.NewSitemapDiscoverer(srv.Client())
		seeds, err := d.DiscoverSeeds(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/jobs"}, seeds)
	})

	t.Run("follows sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			switch r.URL.Path {
			case "/sitemap.xml":
				fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex>
					<sitemap><loc>%s/sitemap-pages.xml</loc></sitemap>
					<sitemap><loc>%s/sitemap-jobs.xml</loc></sitemap>
				</sitemapindex>`, srv.URL, srv.URL)
			case "/sitemap-pages.xml":
				fmt.Fprint(w, urlset(srv.URL+"/about", srv.URL+"/contact"))
			case "/sitemap-jobs.xml":
				fmt.Fprint(w, urlset(srv.URL+"/careers", srv.URL+"/careers"))
			default:
				nethttp.NotFound(w, r)
			}
		}))
		defer srv.Close()

		d := jobsifthttp.NewSitemapDiscoverer(srv.Client())
		seeds, err := d.DiscoverSeeds(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		// Duplicate /careers entries collapse to one.
		assert.Equal(t, []string{srv.URL + "/careers"}, seeds)
	})

	t.Run("applies custom keywords", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if r.URL.Path == "/sitemap.xml" {
				fmt.Fprint(w, urlset(srv.URL+"/team", srv.URL+"/careers"))
				return
			}
			nethttp.NotFound(w, r)
		}))
		defer srv.Close()

		d := jobsifthttp.NewSitemapDiscoverer(srv.Client())
		seeds, err := d.DiscoverSeeds(context.Background(), srv.URL, []string{"team"})

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/team"}, seeds)
	})

	t.Run("returns empty slice when the site has no sitemap", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(siteHandler(nil))
		defer srv.Close()

		d := jobsifthttp.NewSitemapDiscoverer(srv.Client())
		seeds, err := d.DiscoverSeeds(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		require.NotNil(t, seeds)
		assert.Empty(t, seeds)
	})

	t.Run("rejects an unparseable site URL", func(t *testing.T) {
		t.Parallel()

		d := jobsifthttp.NewSitemapDiscoverer(nil)
		_, err := d.DiscoverSeeds(context.Background(), "http://[::1", nil)
		require.Error(t, err)
	})
}
