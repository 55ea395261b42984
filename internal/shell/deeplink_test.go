package shell

import (
	"context"
	"testing"

	"noticeboard/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestResolveLink(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"noticeboard://listing/42", "PostDetail{listingId:42}"},
		{"noticeboard://listing/42/", "PostDetail{listingId:42}"},
		{"noticeboard://listing/42?ref=share#top", "PostDetail{listingId:42}"},
		{"noticeboard:listing/7", "PostDetail{listingId:7}"},
		{"https://noticeboard.co.zw/listing/1001", "PostDetail{listingId:1001}"},
		{"https://noticeboard.co.zw/en/Listing/9", "PostDetail{listingId:9}"},
		{"listing/12", "PostDetail{listingId:12}"},
		{"  noticeboard://listing/3  ", "PostDetail{listingId:3}"},
		{"noticeboard://listing/%zz/5", "none"},
		{"noticeboard://listing/ 8", "PostDetail{listingId:8}"},
		{"noticeboard://listing/abc", "none"},
		{"noticeboard://listing/0", "none"},
		{"noticeboard://listing/-4", "none"},
		{"noticeboard://listing/+4", "none"},
		{"noticeboard://listing/4.5", "none"},
		{"noticeboard://listing", "none"},
		{"noticeboard://events/42", "none"},
		{"https://noticeboard.co.zw/", "none"},
		{"https://www.noticeboard.co.zw/listing/4", "PostDetail{listingId:4}"},
		{"HTTPS://Noticeboard.CO.ZW/listing/4", "PostDetail{listingId:4}"},
		{"https://evil.example/listing/1", "none"},
		{"https://noticeboard.co.zw.evil.example/listing/1", "none"},
		{"javascript://listing/1", "none"},
		{"otherapp://listing/1", "none"},
		{"https://evil.example/listing/%zz/1", "none"},
		{"", "none"},
		{"not a link at all", "none"},
	}

	cases := make([]testutils.Case, 0, len(tests))
	for _, tt := range tests {
		actual := "none"
		if ov, ok := ResolveLink(tt.input); ok {
			actual = ov.String()
		}
		cases = append(cases, testutils.Case{Input: tt.input, Expected: tt.expected, Actual: actual})
	}
	testutils.PrintTestTable(t, cases)
}

func TestListingLinksRoundTrip(t *testing.T) {
	for _, link := range []string{ListingURL("", 42), ListingDeepLink("", 42)} {
		ov, ok := ResolveLink(link)
		assert.True(t, ok, link)
		assert.Equal(t, PostDetail(42), ov)
	}
	assert.Equal(t, "https://noticeboard.co.zw/listing/42", ListingURL("", 42))
	assert.Equal(t, "nb://listing/5", ListingDeepLink("nb", 5))
}

func TestLinkMatcherUsesConfiguredSchemeAndHost(t *testing.T) {
	m := LinkMatcher{Scheme: "nb", Host: "listings.example.org"}

	for _, link := range []string{"nb://listing/5", "https://listings.example.org/listing/5", "listing/5"} {
		ov, ok := m.Resolve(link)
		assert.True(t, ok, link)
		assert.Equal(t, PostDetail(5), ov, link)
	}
	for _, link := range []string{"noticeboard://listing/5", "https://noticeboard.co.zw/listing/5"} {
		_, ok := m.Resolve(link)
		assert.False(t, ok, link)
	}
}

func TestOrchestratorResolvesWithConfiguredLinks(t *testing.T) {
	o := New(context.Background(), Options{Links: LinkMatcher{Scheme: "nb"}})
	t.Cleanup(o.Stop)

	o.Update(LinkMsg{URL: "noticeboard://listing/5"})
	assert.Nil(t, o.State().Overlay)

	o.Update(LinkMsg{URL: "nb://listing/5"})
	assert.Equal(t, PostDetail(5), *o.State().Overlay)
}
