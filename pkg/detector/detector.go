package detector

import (
	"net/url"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/lexicon"
)

// siteGroup is one compiled keyword group from the lexicon.
type siteGroup struct {
	siteType models.SiteType
	matcher  *ahocorasick.Matcher
}

// Classifier assigns a SiteType from a hostname or from raw text. It is safe
// for concurrent use.
type Classifier struct {
	// Matcher.Match updates per-matcher state; mu serialises it.
	mu     sync.Mutex
	groups []siteGroup
	wire   *ahocorasick.Matcher
}

// NewClassifier compiles the site groups and wire-service names of lex.
// Groups with an unknown site type or no keywords are skipped.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	c := &Classifier{}
	for _, g := range lex.SiteGroups {
		st := models.SiteType(g.SiteType)
		kws := lowerAll(g.Keywords)
		if !st.Valid() || len(kws) == 0 {
			continue
		}
		c.groups = append(c.groups, siteGroup{siteType: st, matcher: ahocorasick.NewStringMatcher(kws)})
	}
	if wire := lowerAll(lex.WireServices); len(wire) > 0 {
		c.wire = ahocorasick.NewStringMatcher(wire)
	}
	return c
}

// ClassifyURL classifies by the hostname of rawURL. Unparsable URLs are
// Unknown.
func (c *Classifier) ClassifyURL(rawURL string) models.SiteType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return models.SiteTypeUnknown
	}
	return c.ClassifyHost(u.Hostname())
}

// ClassifyHost returns the site type of the first group with a keyword
// contained in host.
func (c *Classifier) ClassifyHost(host string) models.SiteType {
	return c.firstMatch(strings.ToLower(host))
}

// ClassifyText applies the same groups as plain keyword containment over
// text, for input with no hostname.
func (c *Classifier) ClassifyText(text string) models.SiteType {
	return c.firstMatch(strings.ToLower(text))
}

// ReclassifyByAuthor upgrades Unknown to News when the author names a known
// wire service or major outlet. Other site types are returned unchanged.
func (c *Classifier) ReclassifyByAuthor(st models.SiteType, author string) models.SiteType {
	if st != models.SiteTypeUnknown || author == "" || c.wire == nil {
		return st
	}
	c.mu.Lock()
	hits := c.wire.Match([]byte(strings.ToLower(author)))
	c.mu.Unlock()
	if len(hits) > 0 {
		return models.SiteTypeNews
	}
	return st
}

func (c *Classifier) firstMatch(lowered string) models.SiteType {
	if lowered == "" {
		return models.SiteTypeUnknown
	}
	in := []byte(lowered)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.groups {
		if len(g.matcher.Match(in)) > 0 {
			return g.siteType
		}
	}
	return models.SiteTypeUnknown
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
