package urlsource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/aleister1102/lhbatch/internal/common"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Locs []string `xml:"loc"`
}

// ParseSitemap extracts the first <loc> of every <url> under <urlset>, trimmed,
// in document order. It also returns how many <url> entries had no <loc>.
func ParseSitemap(data []byte) ([]string, int, error) {
	var set sitemapURLSet
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&set); err != nil {
		return nil, 0, common.WrapError(err, "malformed sitemap")
	}
	if err := expectDocumentEnd(decoder); err != nil {
		return nil, 0, common.WrapError(err, "malformed sitemap")
	}

	urls := make([]string, 0, len(set.URLs))
	skipped := 0
	for _, u := range set.URLs {
		if len(u.Locs) == 0 {
			skipped++
			continue
		}
		urls = append(urls, strings.TrimSpace(u.Locs[0]))
	}
	return urls, skipped, nil
}

// expectDocumentEnd allows only whitespace, comments and processing
// instructions after the root element.
func expectDocumentEnd(decoder *xml.Decoder) error {
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after root element")
			}
		case xml.StartElement:
			return common.NewError("unexpected element <%s> after root element", t.Name.Local)
		}
	}
}
