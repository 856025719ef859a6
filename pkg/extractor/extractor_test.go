package extractor

import (
	"strings"
	"testing"

	"github.com/dtnitsch/veritas/models"
)

func extract(t *testing.T, rawHTML, pageURL string) *Result {
	t.Helper()
	res, err := New(nil).ExtractHTML(rawHTML, pageURL)
	if err != nil {
		t.Fatalf("ExtractHTML() error = %v", err)
	}
	return res
}

func TestAuthorResolution(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "meta beats structured data",
			html: `<html><head><meta name="author" content="Jane Smith">
<script type="application/ld+json">{"@type":"NewsArticle","author":{"name":"Other Author"}}</script>
</head><body><p>Body.</p></body></html>`,
			want: "Jane Smith",
		},
		{
			name: "profile URL in meta is skipped",
			html: `<html><head><meta name="author" content="https://facebook.com/someone">
<meta property="article:author" content="Kim Lee"></head><body><p>Body.</p></body></html>`,
			want: "Kim Lee",
		},
		{
			name: "structured data inside @graph",
			html: `<html><head><script type="application/ld+json">
{"@context":"https://schema.org","@graph":[{"@type":"WebPage","name":"Page"},
{"@type":"NewsArticle","author":[{"@type":"Person","name":"Ana Ruiz"}]}]}
</script></head><body><p>Body.</p></body></html>`,
			want: "Ana Ruiz",
		},
		{
			name: "structured data falls back to publisher",
			html: `<html><head><script type="application/ld+json">
[{"@type":"Article","publisher":{"@type":"Organization","name":"Daily Planet"}}]
</script></head><body><p>Body.</p></body></html>`,
			want: "Daily Planet",
		},
		{
			name: "byline element with leading By",
			html: `<html><body><span class="byline">By   John Doe</span><p>Body.</p></body></html>`,
			want: "John Doe",
		},
		{
			name: "byline in content stops at sentence end",
			html: `<html><body><article><p>By Mary Ann Lee. The council met on Tuesday to vote.</p></article></body></html>`,
			want: "Mary Ann Lee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, tt.html, "https://example.com/a")
			if got := res.AuthorName(); got != tt.want {
				t.Errorf("author = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorAbsent(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "non-article structured data",
			html: `<html><head><script type="application/ld+json">{"@type":"WebSite","author":"Nobody"}</script></head>
<body><p>Plain text.</p></body></html>`,
		},
		{
			name: "malformed structured data",
			html: `<html><head><script type="application/ld+json">{"@type":</script></head><body><p>Plain.</p></body></html>`,
		},
		{
			name: "overlong content byline is rejected",
			html: `<html><body><article><p>Issued by Order Of The Supreme Federal Court Of Appeals today.</p></article></body></html>`,
		},
		{
			name: "single capitalised word after by",
			html: `<html><body><article><p>The band played Stand By Me to close the show.</p></article></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, tt.html, "https://example.com/a")
			if res.Author != nil {
				t.Errorf("author = %q, want absent", *res.Author)
			}
		})
	}
}

func TestGenericAuthor(t *testing.T) {
	res := extract(t, `<html><head><meta name="author" content="Staff"></head><body><p>x</p></body></html>`, "https://example.com/")
	if !res.AuthorIsGeneric {
		t.Error("AuthorIsGeneric = false, want true for \"Staff\"")
	}

	tests := []struct {
		author string
		want   bool
	}{
		{"Staff", true},
		{"Reuters Staff", true},
		{"Editorial Board", true},
		{"Jane Smith", false},
		{"Team Of Investigative Reporters At Large", false},
		{"", false},
	}
	generic := []string{"staff", "editorial board", "team"}
	for _, tt := range tests {
		if got := IsGenericAuthor(tt.author, generic); got != tt.want {
			t.Errorf("IsGenericAuthor(%q) = %v, want %v", tt.author, got, tt.want)
		}
	}
}

func TestPublicationDate(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "article meta",
			html: `<html><head><meta property="article:published_time" content="2024-03-05T10:00:00Z"></head><body><p>x</p></body></html>`,
			want: "2024-03-05T10:00:00Z",
		},
		{
			name: "unparseable meta falls through to time element",
			html: `<html><head><meta property="article:published_time" content="not a date"></head>
<body><time datetime="2024-01-02">Jan 2</time><p>x</p></body></html>`,
			want: "2024-01-02T00:00:00Z",
		},
		{
			name: "inline script timestamp",
			html: `<html><head><script>var meta = {publish_time: "1700000000"};</script></head><body><p>x</p></body></html>`,
			want: "2023-11-14T22:13:20Z",
		},
		{
			name: "out of range timestamp is ignored",
			html: `<html><head><script>var meta = {ct: 0000000001};</script></head><body><p>x</p></body></html>`,
			want: "",
		},
		{
			name: "structured data date via readability",
			html: `<html><head><script type="application/ld+json">
{"@context":"https://schema.org","@type":"NewsArticle","headline":"Rates","datePublished":"2024-02-10T08:00:00Z"}
</script></head><body><article><p>The bank held rates steady on Thursday.</p></article></body></html>`,
			want: "2024-02-10T08:00:00Z",
		},
		{
			name: "absent",
			html: `<html><body><p>No dates here.</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, tt.html, "https://example.com/a")
			got := ""
			if res.PublicationDate != nil {
				got = *res.PublicationDate
			}
			if got != tt.want {
				t.Errorf("publicationDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinkClassification(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		wantExternal int
		wantInternal int
	}{
		{
			name:         "fragment is not counted",
			html:         `<a href="https://example.com/x">x</a><a href="https://other.com/y">y</a><a href="#top">top</a>`,
			wantExternal: 1,
			wantInternal: 1,
		},
		{
			name:         "relative and subdomain links are internal",
			html:         `<a href="/about">a</a><a href="https://www.example.com/b">b</a><a href="https://blog.example.com/c">c</a>`,
			wantExternal: 0,
			wantInternal: 3,
		},
		{
			name:         "mailto tel and javascript are skipped",
			html:         `<a href="mailto:a@b.c">m</a><a href="tel:123">t</a><a href="javascript:void(0)">j</a><a>none</a>`,
			wantExternal: 0,
			wantInternal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, "<html><body>"+tt.html+"</body></html>", "https://example.com/page")
			if res.ExternalLinkCount != tt.wantExternal || res.InternalLinkCount != tt.wantInternal {
				t.Errorf("links = (%d external, %d internal), want (%d, %d)",
					res.ExternalLinkCount, res.InternalLinkCount, tt.wantExternal, tt.wantInternal)
			}
			if res.LinkCount != res.ExternalLinkCount+res.InternalLinkCount {
				t.Errorf("LinkCount = %d, want sum %d", res.LinkCount, res.ExternalLinkCount+res.InternalLinkCount)
			}
		})
	}
}

func TestMainContent(t *testing.T) {
	t.Run("article wins and chrome is dropped", func(t *testing.T) {
		res := extract(t, `<html><body><nav>Home Sports Weather</nav>
<article><h1>Headline</h1><p>Real story text here.</p><script>var x = 1;</script></article>
<footer>Copyright notice</footer></body></html>`, "https://example.com/")
		if res.Content != "Headline Real story text here." {
			t.Errorf("Content = %q", res.Content)
		}
	})

	t.Run("paragraph fallback", func(t *testing.T) {
		res := extract(t, `<html><body><div><p>First para.</p><p>Second para.</p></div></body></html>`, "https://example.com/")
		if res.Content != "First para. Second para." {
			t.Errorf("Content = %q", res.Content)
		}
	})

	t.Run("capped length", func(t *testing.T) {
		long := strings.Repeat("word ", MaxContentLength)
		res := extract(t, "<html><body><article><p>"+long+"</p></article></body></html>", "https://example.com/")
		if n := len([]rune(res.Content)); n > MaxContentLength {
			t.Errorf("len(Content) = %d, want <= %d", n, MaxContentLength)
		}
	})
}

func TestExtractDoesNotMutateDocument(t *testing.T) {
	// Footer links must survive content cleanup for the policy scan.
	res := extract(t, `<html><body><article><p>Story.</p></article>
<footer><a href="/corrections">Corrections</a><a href="/about-us">About Us</a></footer></body></html>`, "https://example.com/")
	if !res.CorrectionsPolicyFound || !res.OwnershipDisclosureFound {
		t.Errorf("policies = (%v, %v), want (true, true)", res.CorrectionsPolicyFound, res.OwnershipDisclosureFound)
	}
	if res.InternalLinkCount != 2 {
		t.Errorf("InternalLinkCount = %d, want 2", res.InternalLinkCount)
	}
}

func TestPolicyLinksAbsent(t *testing.T) {
	res := extract(t, `<html><body><p>Story.</p><a href="/sports">Sports</a></body></html>`, "https://example.com/")
	if res.CorrectionsPolicyFound || res.OwnershipDisclosureFound {
		t.Errorf("policies = (%v, %v), want (false, false)", res.CorrectionsPolicyFound, res.OwnershipDisclosureFound)
	}
}

func TestAuthorBioLink(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"name in anchor text", `<a href="/staff/jane-smith">Jane Smith bio</a>`, true},
		{"author path", `<a href="/author/jsmith">About the author</a>`, true},
		{"slug in href", `<a href="/bio/jane-smith">Read more</a>`, true},
		{"bio keyword without author reference", `<a href="/biology">Biology</a>`, false},
		{"bio inside a longer word on an author path", `<a href="https://example.com/author/jane">Biology section</a>`, false},
		{"hyphenated bio segment", `<a href="https://example.com/people/jane-bio">Profile</a>`, true},
		{"no bio keyword", `<a href="/author/jsmith">Jane Smith</a>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<html><head><meta name="author" content="Jane Smith"></head><body><p>x</p>` + tt.body + `</body></html>`
			res := extract(t, html, "https://example.com/")
			if res.HasAuthorBioLink != tt.want {
				t.Errorf("HasAuthorBioLink = %v, want %v", res.HasAuthorBioLink, tt.want)
			}
		})
	}
}

func TestOpinionSignals(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		wantOpinion bool
		wantLabel   bool
	}{
		{
			name:        "labelled title",
			html:        `<html><head><title>Opinion: Taxes are too high</title></head><body><article><p>In my opinion the policy fails.</p></article></body></html>`,
			wantOpinion: true,
			wantLabel:   true,
		},
		{
			name:        "section meta label",
			html:        `<html><head><title>Taxes</title><meta property="article:section" content="Opinion"></head><body><article><p>This editorial argues otherwise.</p></article></body></html>`,
			wantOpinion: true,
			wantLabel:   true,
		},
		{
			name:        "unlabelled opinion",
			html:        `<html><head><title>Taxes are too high</title></head><body><article><p>Our analysis says the plan fails.</p></article></body></html>`,
			wantOpinion: true,
			wantLabel:   false,
		},
		{
			name:        "straight report",
			html:        `<html><head><title>Council votes</title></head><body><article><p>The council voted on Tuesday.</p></article></body></html>`,
			wantOpinion: false,
			wantLabel:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, tt.html, "https://example.com/")
			if res.IsOpinionOrEditorial != tt.wantOpinion {
				t.Errorf("IsOpinionOrEditorial = %v, want %v", res.IsOpinionOrEditorial, tt.wantOpinion)
			}
			if res.OpinionLabelDetected != tt.wantLabel {
				t.Errorf("OpinionLabelDetected = %v, want %v", res.OpinionLabelDetected, tt.wantLabel)
			}
		})
	}
}

func TestAdvertisementSignals(t *testing.T) {
	res := extract(t, `<html><body>
<div class="ad">buy</div><div id="ad-top">now</div><div class="header">not an ad</div>
<article><p>a</p><p>b</p><p>c</p><p>d</p></article></body></html>`, "https://example.com/")
	if res.AdCount != 2 {
		t.Errorf("AdCount = %d, want 2", res.AdCount)
	}
	if res.AdvertisementDensity != 0.5 {
		t.Errorf("AdvertisementDensity = %v, want 0.5", res.AdvertisementDensity)
	}
	if strings.Contains(res.Content, "buy") {
		t.Errorf("Content includes ad text: %q", res.Content)
	}
}

func TestAdvertisementDensityClamped(t *testing.T) {
	res := extract(t, `<html><body><div class="ad">1</div><div class="ad">2</div><div class="ad">3</div></body></html>`, "https://example.com/")
	if res.AdvertisementDensity != 1 {
		t.Errorf("AdvertisementDensity = %v, want 1", res.AdvertisementDensity)
	}
}

func TestSiteType(t *testing.T) {
	tests := []struct {
		name string
		html string
		url  string
		want models.SiteType
	}{
		{"by host", `<html><body><p>x</p></body></html>`, "https://www.reuters.com/world/x", models.SiteTypeNews},
		{"unknown host", `<html><body><p>x</p></body></html>`, "https://example.com/x", models.SiteTypeUnknown},
		{
			"wire service author",
			`<html><head><meta name="author" content="Associated Press"></head><body><p>x</p></body></html>`,
			"https://example.com/x",
			models.SiteTypeNews,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract(t, tt.html, tt.url).SiteType; got != tt.want {
				t.Errorf("SiteType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleAndHeadings(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title element", `<html><head><title> Big  Day </title></head><body><h1>Other</h1></body></html>`, "Big Day"},
		{"og:title fallback", `<html><head><meta property="og:title" content="OG Title"></head><body></body></html>`, "OG Title"},
		{"h1 fallback", `<html><body><h1>Heading One</h1></body></html>`, "Heading One"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract(t, tt.html, "https://example.com/").Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}

	res := extract(t, `<html><head><title>Wow!!!</title></head><body><h2>Really??</h2></body></html>`, "https://example.com/")
	if res.Headings != "Wow!!! Really??" {
		t.Errorf("Headings = %q", res.Headings)
	}
}

func TestBylineFromText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"By Dr. Ada Byron. Today we look at engines.", "Dr. Ada Byron"},
		{"Written by sam", ""},
		{"The band played Stand By Me for the encore.", ""},
		{"By Dr. Smith. The clinic opened.", "Dr. Smith"},
		{"Nothing to see", ""},
	}
	for _, tt := range tests {
		if got := BylineFromText(tt.text, 500); got != tt.want {
			t.Errorf("BylineFromText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
