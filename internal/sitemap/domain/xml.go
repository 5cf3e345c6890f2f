package domain

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the sitemaps.org 0.9 schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr,omitempty"`
	URLs    []urlElement `xml:"url"`
}

type urlElement struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Generate validates entries and serializes them as a sitemap document.
func Generate(entries []Entry) ([]byte, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}

	set := urlSet{Xmlns: Namespace, URLs: make([]urlElement, 0, len(entries))}
	for _, e := range entries {
		el := urlElement{
			Loc:        e.Loc,
			LastMod:    e.LastMod,
			ChangeFreq: string(e.ChangeFreq),
		}
		if e.Priority != nil {
			el.Priority = FormatPriority(*e.Priority)
		}
		set.URLs = append(set.URLs, el)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Parse reads a sitemap document back into entries.
func Parse(data []byte) ([]Entry, error) {
	var set urlSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	entries := make([]Entry, 0, len(set.URLs))
	for i, u := range set.URLs {
		e := Entry{
			Loc:        strings.TrimSpace(u.Loc),
			LastMod:    strings.TrimSpace(u.LastMod),
			ChangeFreq: ChangeFreq(strings.TrimSpace(u.ChangeFreq)),
		}
		if p := strings.TrimSpace(u.Priority); p != "" {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: url %d: priority %q", ErrMalformedXML, i, p)
			}
			e.Priority = &v
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FormatPriority renders p with at least one fractional digit ("0.8", "1.0", "0.25").
func FormatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
