package domain

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// MaxURLs is the sitemaps.org limit for a single sitemap file.
const MaxURLs = 50000

// ChangeFreq is a crawl hint.
type ChangeFreq string

const (
	ChangeAlways  ChangeFreq = "always"
	ChangeHourly  ChangeFreq = "hourly"
	ChangeDaily   ChangeFreq = "daily"
	ChangeWeekly  ChangeFreq = "weekly"
	ChangeMonthly ChangeFreq = "monthly"
	ChangeYearly  ChangeFreq = "yearly"
	ChangeNever   ChangeFreq = "never"
)

var validChangeFreqs = map[ChangeFreq]bool{
	ChangeAlways: true, ChangeHourly: true, ChangeDaily: true, ChangeWeekly: true,
	ChangeMonthly: true, ChangeYearly: true, ChangeNever: true,
}

var (
	ErrNoURLs          = errors.New("no valid URLs found")
	ErrTooManyURLs     = fmt.Errorf("a sitemap may list at most %d URLs", MaxURLs)
	ErrSitemapNotFound = errors.New("sitemap not found")
	ErrMalformedXML    = errors.New("malformed sitemap XML")
)

// Entry is one <url> of a sitemap. Empty optional fields are omitted.
type Entry struct {
	Loc        string     `json:"loc" yaml:"loc"`
	LastMod    string     `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `json:"changefreq,omitempty" yaml:"changefreq,omitempty"`
	Priority   *float64   `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Defaults are applied to entries that leave a field empty.
type Defaults struct {
	LastMod    string     `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `json:"changefreq,omitempty" yaml:"changefreq,omitempty"`
	Priority   *float64   `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Apply fills the empty fields of e from d.
func (d Defaults) Apply(e Entry) Entry {
	if e.LastMod == "" {
		e.LastMod = d.LastMod
	}
	if e.ChangeFreq == "" {
		e.ChangeFreq = d.ChangeFreq
	}
	if e.Priority == nil && d.Priority != nil {
		p := *d.Priority
		e.Priority = &p
	}
	return e
}

// EntryError describes why one entry was rejected.
type EntryError struct {
	Index  int    `json:"index"`
	Loc    string `json:"loc"`
	Reason string `json:"reason"`
}

// BatchError rejects a whole batch and lists every invalid entry.
type BatchError struct {
	Entries []EntryError `json:"entries"`
}

func (e *BatchError) Error() string {
	if len(e.Entries) == 1 {
		x := e.Entries[0]
		return fmt.Sprintf("invalid entry %d (%s): %s", x.Index, x.Loc, x.Reason)
	}
	return fmt.Sprintf("%d invalid entries", len(e.Entries))
}

// Validate checks every entry and returns a *BatchError listing all
// failures, or ErrNoURLs / ErrTooManyURLs for batch-level problems.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoURLs
	}
	if len(entries) > MaxURLs {
		return ErrTooManyURLs
	}

	seen := make(map[string]int, len(entries))
	var bad []EntryError
	for i, e := range entries {
		reason := validateEntry(e)
		if reason == "" {
			if first, dup := seen[e.Loc]; dup {
				reason = fmt.Sprintf("duplicate of entry %d", first)
			} else {
				seen[e.Loc] = i
			}
		}
		if reason != "" {
			bad = append(bad, EntryError{Index: i, Loc: e.Loc, Reason: reason})
		}
	}

	if len(bad) > 0 {
		return &BatchError{Entries: bad}
	}
	return nil
}

func validateEntry(e Entry) string {
	if err := ValidateLoc(e.Loc); err != nil {
		return err.Error()
	}
	if e.LastMod != "" && !validLastMod(e.LastMod) {
		return "lastmod must be YYYY-MM-DD or an RFC 3339 timestamp"
	}
	if e.ChangeFreq != "" && !validChangeFreqs[e.ChangeFreq] {
		return fmt.Sprintf("changefreq %q is not one of always, hourly, daily, weekly, monthly, yearly, never", e.ChangeFreq)
	}
	if p := e.Priority; p != nil && (math.IsNaN(*p) || *p < 0 || *p > 1) {
		return "priority must be between 0.0 and 1.0"
	}
	return ""
}

// ValidateLoc reports whether loc is a well-formed absolute http(s) URL.
func ValidateLoc(loc string) error {
	if strings.TrimSpace(loc) == "" {
		return errors.New("invalid URL: empty")
	}
	if loc != strings.TrimSpace(loc) || strings.ContainsAny(loc, " \t\r\n") {
		return errors.New("invalid URL: contains whitespace")
	}
	u, err := url.Parse(loc)
	if err != nil {
		return errors.New("invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("invalid URL: scheme must be http or https")
	}
	if u.Host == "" || u.Hostname() == "" {
		return errors.New("invalid URL: missing host")
	}
	return nil
}

func validLastMod(s string) bool {
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
