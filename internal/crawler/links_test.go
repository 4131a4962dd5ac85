package crawler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifierInternalLinks(t *testing.T) {
	t.Parallel()

	const baseURL = "https://example.org"

	tests := []struct {
		name  string
		hrefs []string
		want  []string
	}{
		{
			name:  "resolves relative links",
			hrefs: []string{"/about", "team.html"},
			want:  []string{"https://example.org/about", "https://example.org/team.html"},
		},
		{
			name:  "drops external hosts",
			hrefs: []string{"https://other.example.com/page", "/local"},
			want:  []string{"https://example.org/local"},
		},
		{
			name:  "host comparison is case-insensitive",
			hrefs: []string{"https://EXAMPLE.ORG/about"},
			want:  []string{"https://EXAMPLE.ORG/about"},
		},
		{
			name:  "strips query and deduplicates",
			hrefs: []string{"/news?utm_source=a", "/news?utm_source=b", "/news"},
			want:  []string{"https://example.org/news"},
		},
		{
			name:  "rejects fragments and pseudo-schemes",
			hrefs: []string{"#top", "/page#section", "mailto:info@example.org", "tel:+123", "javascript:void(0)"},
			want:  []string{},
		},
		{
			name:  "rejects binary extensions and non-content paths",
			hrefs: []string{"/report.pdf", "/logo.png", "/sitemap.xml", "/wp-admin/options", "/feed", "/login", "/contact"},
			want:  []string{"https://example.org/contact"},
		},
		{
			name:  "excludes the base URL itself",
			hrefs: []string{"https://example.org", "/about"},
			want:  []string{"https://example.org/about"},
		},
		{
			name:  "preserves first-seen order",
			hrefs: []string{"/c", "/a", "/b", "/a"},
			want:  []string{"https://example.org/c", "https://example.org/a", "https://example.org/b"},
		},
	}

	classifier := NewClassifier()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.InternalLinks(baseURL, tt.hrefs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("InternalLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifierInvalidBaseURL(t *testing.T) {
	t.Parallel()

	if got := NewClassifier().InternalLinks("://bad", []string{"/a"}); got != nil {
		t.Errorf("expected nil for unparseable base URL, got %v", got)
	}
}
