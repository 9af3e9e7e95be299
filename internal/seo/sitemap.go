// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler documents of the public event pages.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/eventboard/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the sitemap.
const (
	ChangeFreqHourly ChangeFreq = "hourly"
	ChangeFreqDaily  ChangeFreq = "daily"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML for the events list and event pages.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the events list to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqHourly,
		Priority:   "1.0",
	})
}

// AddEvent adds an event page. Events without an id are skipped.
// The start time, when parseable, is reported as the last modification.
func (b *SitemapBuilder) AddEvent(e model.Event) {
	if e.ID == "" {
		return
	}
	u := SitemapURL{
		Loc:        b.siteURL + "/event/" + url.PathEscape(e.ID.String()),
		ChangeFreq: ChangeFreqDaily,
		Priority:   "0.8",
	}
	if start, ok := e.Start(); ok {
		u.LastMod = start.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
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

// GenerateSitemap builds the sitemap of the list page and every event.
func GenerateSitemap(siteURL string, events []model.Event) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()
	for _, e := range events {
		b.AddEvent(e)
	}
	return b.Build()
}
