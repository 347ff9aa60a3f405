// Package seo builds the crawler-facing documents: sitemap.xml and robots.txt.
package seo

import (
	"encoding/xml"
	"strings"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticPage is a fixed route listed in every sitemap.
type StaticPage struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   string
}

// StaticPages are the public routes that exist regardless of content.
var StaticPages = []StaticPage{
	{Path: "/", ChangeFreq: ChangeFreqWeekly, Priority: "1.0"},
	{Path: "/portfolio", ChangeFreq: ChangeFreqWeekly, Priority: "0.9"},
	{Path: "/resume", ChangeFreq: ChangeFreqMonthly, Priority: "0.7"},
	{Path: "/contact", ChangeFreq: ChangeFreqYearly, Priority: "0.5"},
	{Path: "/blog", ChangeFreq: ChangeFreqMonthly, Priority: "0.3"},
}

// SitemapBuilder accumulates absolute URLs under one site root.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder. A trailing slash on siteURL is dropped.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddStatic adds a fixed route.
func (b *SitemapBuilder) AddStatic(page StaticPage) {
	loc := b.siteURL + page.Path
	if page.Path == "/" {
		loc = b.siteURL
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:        loc,
		ChangeFreq: page.ChangeFreq,
		Priority:   page.Priority,
	})
}

// AddProject adds a project detail page.
func (b *SitemapBuilder) AddProject(slug string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/portfolio/" + slug,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.8",
	})
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap lists the static pages followed by one entry per project slug.
func GenerateSitemap(siteURL string, slugs []string) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	for _, p := range StaticPages {
		builder.AddStatic(p)
	}
	for _, slug := range slugs {
		builder.AddProject(slug)
	}
	return builder.Build()
}
