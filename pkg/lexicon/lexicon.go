// Package lexicon holds the named, versioned keyword tables used by the
// extractor, the text metrics and the site-type detector. Tables are passed
// into the functions that use them so tests can substitute alternates.
package lexicon

// DefaultVersion identifies the built-in tables.
const DefaultVersion = "2025.1"

// SiteGroup maps a site type to the keywords that identify it.
type SiteGroup struct {
	SiteType string   `yaml:"site_type"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon is the full set of keyword tables.
type Lexicon struct {
	Version string `yaml:"version"`

	LoadedLanguage      []string `yaml:"loaded_language"`
	OpinionIndicators   []string `yaml:"opinion_indicators"`
	CorrectionsKeywords []string `yaml:"corrections_keywords"`
	OwnershipKeywords   []string `yaml:"ownership_keywords"`
	AuthorBioKeywords   []string `yaml:"author_bio_keywords"`
	GenericAuthors      []string `yaml:"generic_authors"`
	WireServices        []string `yaml:"wire_services"`

	// SiteGroups is ordered; first match wins.
	SiteGroups []SiteGroup `yaml:"site_groups"`
}

// Default returns a fresh copy of the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		Version: DefaultVersion,
		LoadedLanguage: []string{
			"shocking", "outrageous", "disaster", "catastrophic", "devastating",
			"unbelievable", "unprecedented", "scandal", "corrupt", "corruption",
			"miracle", "nightmare", "terrifying", "horrifying", "furious",
			"furor", "slam", "slams", "blast", "blasts",
			"panic", "chaos", "explosive", "outrage", "absolutely",
			"disgrace", "disgraceful", "sweeping", "game-changing", "massive",
			"alarming", "crisis",
		},
		OpinionIndicators: []string{
			"opinion", "editorial", "commentary", "analysis", "perspective",
		},
		CorrectionsKeywords: []string{
			"correction", "corrections", "errata", "erratum", "retraction",
			"clarification", "fact-check", "fact-checking", "editorial-standards",
			"editorial standards",
		},
		OwnershipKeywords: []string{
			"about us", "about-us", "ownership", "owned by", "funding", "funded by",
			"our funders", "who we are", "transparency", "financial-support",
			"supporters", "masthead", "disclosure",
		},
		AuthorBioKeywords: []string{
			"bio", "about the author", "about-the-author",
		},
		GenericAuthors: []string{
			"staff", "staff writer", "staff reporter", "newsroom", "news desk",
			"editorial team", "editorial board", "editors", "editor", "admin",
			"administrator", "web desk", "digital desk", "team", "contributor",
			"guest", "anonymous", "unknown",
		},
		WireServices: []string{
			"associated press", "reuters", "agence france-presse", "afp",
			"bloomberg", "bbc", "cnn", "the new york times", "the washington post",
			"the guardian", "npr",
		},
		SiteGroups: []SiteGroup{
			{SiteType: "Encyclopedia", Keywords: []string{"wikipedia", "britannica", "encyclopedia"}},
			{SiteType: "News", Keywords: []string{
				"news", "bbc", "cnn", "reuters", "apnews", "nytimes", "washingtonpost",
				"theguardian", "npr", "bloomberg", "aljazeera", "foxnews", "nbcnews",
			}},
			{SiteType: "Blog", Keywords: []string{"blog", "medium", "substack", "wordpress", "blogspot", "tumblr"}},
			{SiteType: "Forum", Keywords: []string{"forum", "reddit", "quora", "stackexchange", "stackoverflow", "discourse"}},
			{SiteType: "Science", Keywords: []string{
				"science", "nature", "cell", "plos", "arxiv", "pubmed", "springer", "sciencedirect", "nih.gov",
			}},
		},
	}
}

// Merge overlays non-empty tables from o onto a copy of l.
func (l *Lexicon) Merge(o *Lexicon) *Lexicon {
	out := *l
	if o == nil {
		return &out
	}
	if o.Version != "" {
		out.Version = o.Version
	}
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = append([]string(nil), src...)
		}
	}
	pick(&out.LoadedLanguage, o.LoadedLanguage)
	pick(&out.OpinionIndicators, o.OpinionIndicators)
	pick(&out.CorrectionsKeywords, o.CorrectionsKeywords)
	pick(&out.OwnershipKeywords, o.OwnershipKeywords)
	pick(&out.AuthorBioKeywords, o.AuthorBioKeywords)
	pick(&out.GenericAuthors, o.GenericAuthors)
	pick(&out.WireServices, o.WireServices)
	if len(o.SiteGroups) > 0 {
		out.SiteGroups = append([]SiteGroup(nil), o.SiteGroups...)
	}
	return &out
}
