// Package document builds an accessibility outline of an HTML page: its
// title and language, the heading structure, images, links, form controls
// and landmarks, plus the problems found along the way.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrEmptyDocument is returned for input with no markup at all.
var ErrEmptyDocument = errors.New("document is empty")

// Heading is one h1-h6 element.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Image is one img element. Decorative images carry an empty alt.
type Image struct {
	Src        string `json:"src"`
	Alt        string `json:"alt"`
	HasAlt     bool   `json:"has_alt"`
	Decorative bool   `json:"decorative"`
}

// Link is one a element with an href.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Landmark is a region a screen reader can jump to.
type Landmark struct {
	Role  string `json:"role"`
	Label string `json:"label,omitempty"`
}

// Control is a form control that needs an accessible name.
type Control struct {
	Tag      string `json:"tag"`
	Type     string `json:"type,omitempty"`
	Name     string `json:"name,omitempty"`
	Labelled bool   `json:"labelled"`
}

// Issue codes.
const (
	IssueMissingTitle = "missing_title"
	IssueMissingLang  = "missing_lang"
	IssueNoH1         = "no_h1"
	IssueMultipleH1   = "multiple_h1"
	IssueHeadingSkip  = "heading_skip"
	IssueEmptyHeading = "empty_heading"
	IssueMissingAlt   = "missing_alt"
	IssueEmptyLink    = "empty_link"
	IssueUnlabelled   = "unlabelled_control"
	IssueMissingMain  = "missing_main"
)

// Issue is one accessibility problem.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Outline is the result of Analyze.
type Outline struct {
	Title     string     `json:"title"`
	Lang      string     `json:"lang"`
	Headings  []Heading  `json:"headings"`
	Images    []Image    `json:"images"`
	Links     []Link     `json:"links"`
	Controls  []Control  `json:"controls"`
	Landmarks []Landmark `json:"landmarks"`
	Issues    []Issue    `json:"issues"`
}

var landmarkTags = map[atom.Atom]string{
	atom.Header: "banner",
	atom.Nav:    "navigation",
	atom.Main:   "main",
	atom.Footer: "contentinfo",
	atom.Aside:  "complementary",
}

var landmarkRoles = map[string]bool{
	"banner": true, "navigation": true, "main": true, "contentinfo": true,
	"complementary": true, "region": true, "search": true, "form": true,
}

// Analyze parses r as HTML and returns its outline.
func Analyze(r io.Reader) (*Outline, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if !hasElements(doc) {
		return nil, ErrEmptyDocument
	}

	out := &Outline{
		Headings:  []Heading{},
		Images:    []Image{},
		Links:     []Link{},
		Controls:  []Control{},
		Landmarks: []Landmark{},
		Issues:    []Issue{},
	}
	labelFor := map[string]bool{}
	collectLabels(doc, labelFor)
	walk(doc, out, labelFor, false)
	out.check()
	return out, nil
}

func walk(n *html.Node, out *Outline, labelFor map[string]bool, inLabel bool) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Html:
			out.Lang = strings.TrimSpace(attr(n, "lang"))
		case atom.Title:
			if out.Title == "" {
				out.Title = text(n)
			}
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			out.Headings = append(out.Headings, Heading{Level: int(n.Data[1] - '0'), Text: accessibleText(n)})
		case atom.Img:
			alt, ok := attrOK(n, "alt")
			out.Images = append(out.Images, Image{
				Src:        attr(n, "src"),
				Alt:        alt,
				HasAlt:     ok,
				Decorative: (ok && strings.TrimSpace(alt) == "") || attr(n, "role") == "presentation",
			})
		case atom.A:
			if href, ok := attrOK(n, "href"); ok {
				out.Links = append(out.Links, Link{Href: href, Text: accessibleText(n)})
			}
		case atom.Label:
			inLabel = true
		case atom.Input, atom.Select, atom.Textarea:
			if c, ok := control(n, labelFor, inLabel); ok {
				out.Controls = append(out.Controls, c)
			}
		}

		if lm, ok := landmark(n); ok {
			out.Landmarks = append(out.Landmarks, lm)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, out, labelFor, inLabel)
	}
}

func (o *Outline) check() {
	if o.Title == "" {
		o.add(IssueMissingTitle, "Page has no <title>")
	}
	if o.Lang == "" {
		o.add(IssueMissingLang, "The <html> element has no lang attribute")
	}

	h1 := 0
	prev := 0
	for _, h := range o.Headings {
		if h.Level == 1 {
			h1++
		}
		if h.Text == "" {
			o.add(IssueEmptyHeading, fmt.Sprintf("Empty h%d", h.Level))
		}
		if prev > 0 && h.Level > prev+1 {
			o.add(IssueHeadingSkip, fmt.Sprintf("Heading level skips from h%d to h%d at %q", prev, h.Level, h.Text))
		}
		prev = h.Level
	}
	switch {
	case h1 == 0:
		o.add(IssueNoH1, "Page has no h1")
	case h1 > 1:
		o.add(IssueMultipleH1, fmt.Sprintf("Page has %d h1 elements", h1))
	}

	for _, img := range o.Images {
		if !img.HasAlt {
			o.add(IssueMissingAlt, fmt.Sprintf("Image %q has no alt attribute", img.Src))
		}
	}
	for _, l := range o.Links {
		if l.Text == "" {
			o.add(IssueEmptyLink, fmt.Sprintf("Link to %q has no accessible text", l.Href))
		}
	}
	for _, c := range o.Controls {
		if !c.Labelled {
			o.add(IssueUnlabelled, fmt.Sprintf("Form %s %q has no label", c.Tag, c.Name))
		}
	}

	hasMain := false
	for _, lm := range o.Landmarks {
		if lm.Role == "main" {
			hasMain = true
			break
		}
	}
	if !hasMain {
		o.add(IssueMissingMain, "Page has no main landmark")
	}
}

func (o *Outline) add(code, msg string) {
	o.Issues = append(o.Issues, Issue{Code: code, Message: msg})
}

func landmark(n *html.Node) (Landmark, bool) {
	label := strings.TrimSpace(attr(n, "aria-label"))
	if role := strings.TrimSpace(attr(n, "role")); role != "" {
		if landmarkRoles[role] {
			return Landmark{Role: role, Label: label}, true
		}
		return Landmark{}, false
	}
	if role, ok := landmarkTags[n.DataAtom]; ok {
		return Landmark{Role: role, Label: label}, true
	}
	// section and form only count as landmarks when named.
	if (n.DataAtom == atom.Section || n.DataAtom == atom.Form) && (label != "" || attr(n, "aria-labelledby") != "") {
		role := "region"
		if n.DataAtom == atom.Form {
			role = "form"
		}
		return Landmark{Role: role, Label: label}, true
	}
	return Landmark{}, false
}

func control(n *html.Node, labelFor map[string]bool, inLabel bool) (Control, bool) {
	typ := strings.ToLower(attr(n, "type"))
	if n.DataAtom == atom.Input {
		switch typ {
		case "hidden", "submit", "reset", "button", "image":
			return Control{}, false
		}
	}
	labelled := inLabel ||
		labelFor[attr(n, "id")] && attr(n, "id") != "" ||
		strings.TrimSpace(attr(n, "aria-label")) != "" ||
		strings.TrimSpace(attr(n, "aria-labelledby")) != "" ||
		strings.TrimSpace(attr(n, "title")) != ""
	return Control{Tag: n.Data, Type: typ, Name: attr(n, "name"), Labelled: labelled}, true
}

func collectLabels(n *html.Node, into map[string]bool) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Label {
		if id := attr(n, "for"); id != "" {
			into[id] = true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLabels(c, into)
	}
}

func hasElements(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			// html.Parse always synthesizes html/head/body; look for content.
			if c.DataAtom != atom.Html && c.DataAtom != atom.Head && c.DataAtom != atom.Body {
				return true
			}
			if len(c.Attr) > 0 || hasElements(c) {
				return true
			}
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// accessibleText approximates the accessible name of n: aria-label wins,
// otherwise visible text plus the alt text of nested images.
func accessibleText(n *html.Node) string {
	if l := strings.TrimSpace(attr(n, "aria-label")); l != "" {
		return l
	}
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && n.DataAtom == atom.Img:
			b.WriteString(attr(n, "alt"))
			b.WriteByte(' ')
		case n.Type == html.ElementNode && attr(n, "aria-hidden") == "true":
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
