// Package fixtures provides reusable feed documents for parser and
// pipeline tests. Keeping the XML here eliminates duplication across test
// suites and keeps individual tests focused on behavior.
package fixtures

import (
	"fmt"
	"strings"
)

// MinimalRSS is a minimal valid RSS 2.0 document with a single item.
const MinimalRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <link>http://x</link>
    <item>
      <title>A</title>
      <link>http://x/1</link>
      <pubDate>Tue, 10 Oct 2023 06:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

// MinimalAtom is a minimal valid Atom 1.0 document with a single entry.
const MinimalAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Atom Feed</title>
  <id>urn:feed</id>
  <updated>2023-10-10T06:00:00Z</updated>
  <entry>
    <title>Atom Entry</title>
    <id>urn:entry-1</id>
    <link rel="alternate" href="http://x/atom/1"/>
    <summary>An atom summary</summary>
    <published>2023-10-10T06:00:00Z</published>
  </entry>
</feed>`

// NamespacedRSS exercises the namespaced extraction fallbacks: an item body
// only in content:encoded, a date only in dc:date, and an image only in
// media:thumbnail.
const NamespacedRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
     xmlns:content="http://purl.org/rss/1.0/modules/content/"
     xmlns:dc="http://purl.org/dc/elements/1.1/"
     xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Namespaced Feed</title>
    <link>http://n</link>
    <item>
      <title>Namespaced Item</title>
      <link>http://n/1</link>
      <content:encoded><![CDATA[<p>Encoded &amp; rich <b>body</b></p>]]></content:encoded>
      <dc:date>2023-05-01T10:00:00Z</dc:date>
      <media:thumbnail url="http://n/thumb.jpg" width="120" height="90"/>
    </item>
  </channel>
</rss>`

// EnclosureRSS carries its only image in an enclosure element.
const EnclosureRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Enclosure Feed</title>
    <link>http://e</link>
    <item>
      <title>With Enclosure</title>
      <link>http://e/1</link>
      <description>plain text</description>
      <enclosure url="http://e/photo.jpg" length="1024" type="image/jpeg"/>
    </item>
  </channel>
</rss>`

// InlineImageRSS hides its image inside the description HTML.
const InlineImageRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Inline Image Feed</title>
    <link>http://i</link>
    <item>
      <title>With Inline Image</title>
      <link>http://i/1</link>
      <description><![CDATA[<p>Look: <img src="http://i/pic.png" alt=""/> nice</p>]]></description>
    </item>
  </channel>
</rss>`

// SparseRSS has an item with only a title and link: no description, no
// date, no image.
const SparseRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sparse Feed</title>
    <link>http://s</link>
    <item>
      <title>Bare Item</title>
      <link>http://s/1</link>
    </item>
  </channel>
</rss>`

// MixedValidityRSS contains one usable item between two unusable ones.
const MixedValidityRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Mixed Feed</title>
    <link>http://m</link>
    <item>
      <description>no title, no link</description>
    </item>
    <item>
      <title>Good Item</title>
      <link>http://m/good</link>
    </item>
    <item>
      <title>No Link Here</title>
    </item>
  </channel>
</rss>`

// EmptyRSS is a valid channel with zero items.
const EmptyRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Empty Feed</title>
    <link>http://empty</link>
  </channel>
</rss>`

// NotAFeedXML is well-formed XML that is neither RSS nor Atom.
const NotAFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<inventory><widget id="1"/></inventory>`

// MalformedXML fails XML tokenization.
const MalformedXML = `<?xml version="1.0"?><rss version="2.0"><channel><item><title>broken`

// RSSWithItems builds an RSS document with n sequential items for a host,
// e.g. RSSWithItems("http://a", 3) yields links http://a/0 .. http://a/2.
func RSSWithItems(host string, n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Generated</title>`)
	fmt.Fprintf(&b, "<link>%s</link>", host)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b,
			"<item><title>Item %d</title><link>%s/%d</link><description>Body %d</description><pubDate>Tue, 10 Oct 2023 0%d:00:00 GMT</pubDate></item>",
			i, host, i, i, i%10)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}
