package extractor

import (
	"github.com/PuerkitoBio/goquery"
)

// adSelector matches advertising slots by class, id, attribute and source.
// Class patterns are kept narrow so "header" or "shadow" do not match.
const adSelector = `.ad, .ads, .advert, .advertisement, [class*="advert"], [class*="ad-slot"], ` +
	`[class*="ad-container"], [class*="sponsored"], [id^="ad-"], [id*="-ad-"], [id*="advert"], ` +
	`[data-ad], [data-ad-slot], [data-ad-unit], ins.adsbygoogle, ` +
	`iframe[src*="ads"], iframe[src*="doubleclick"]`

// contentBlockSelector counts the blocks an ad density is measured against.
const contentBlockSelector = `p, li, blockquote, pre, table, h1, h2, h3, h4, h5, h6`

// advertisementSignals counts ad elements and their density relative to
// content blocks, clamped to [0,1].
func advertisementSignals(doc *goquery.Document) (count int, density float64) {
	count = doc.Find(adSelector).Length()
	blocks := doc.Find(contentBlockSelector).Length()
	density = float64(count) / float64(max(1, blocks))
	if density > 1 {
		density = 1
	}
	return count, density
}
