package structureddata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ErrUnknownType is returned for an @type outside the catalog.
var ErrUnknownType = errors.New("unsupported schema type")

// Document is a JSON-LD object ready to be serialized.
type Document map[string]any

// ValidationError lists what is wrong with the fields given for Type.
type ValidationError struct {
	Type    string   `json:"type"`
	Missing []string `json:"missing,omitempty"`
	Unknown []string `json:"unknown,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown fields: "+strings.Join(e.Unknown, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(parts, "; "))
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Unknown) == 0 && len(e.Invalid) == 0
}

// expander turns a shorthand field value into its schema.org property.
// It returns the property name to emit and the expanded value.
type expander func(v any) (string, any, error)

var expanders = map[string]map[string]expander{
	"Article": {
		"author":    typedOrName("author", "Person"),
		"publisher": typedOrName("publisher", "Organization"),
	},
	"HowTo":          {"steps": steps("step")},
	"Recipe":         {"recipeInstructions": steps("recipeInstructions"), "author": typedOrName("author", "Person")},
	"FAQPage":        {"questions": faq},
	"BreadcrumbList": {"items": breadcrumbs},
	"WebSite":        {"searchUrl": searchAction},
	"LocalBusiness":  {"address": typedOr("address", "PostalAddress", "streetAddress")},
	"Event": {
		"location":  typedOrName("location", "Place"),
		"organizer": typedOrName("organizer", "Organization"),
	},
	"Product": {
		"brand":  typedOrName("brand", "Brand"),
		"offers": typedOr("offers", "Offer", "price"),
	},
	"Person": {"worksFor": typedOrName("worksFor", "Organization")},
}

// Build validates fields against typ and returns the JSON-LD document.
func Build(typ string, fields map[string]any) (Document, error) {
	spec, ok := Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}

	verr := &ValidationError{Type: typ}
	for _, f := range spec.Required {
		if isBlank(fields[f]) {
			verr.Missing = append(verr.Missing, f)
		}
	}
	for f := range fields {
		if !spec.allows(f) {
			verr.Unknown = append(verr.Unknown, f)
		}
	}
	sort.Strings(verr.Unknown)
	if !verr.empty() {
		return nil, verr
	}

	doc := Document{"@context": Context, "@type": typ}
	for f, v := range fields {
		if isBlank(v) {
			continue
		}
		if exp, ok := expanders[typ][f]; ok {
			name, out, err := exp(v)
			if err != nil {
				verr.Invalid = append(verr.Invalid, fmt.Sprintf("%s (%v)", f, err))
				continue
			}
			doc[name] = out
			continue
		}
		doc[f] = v
	}
	if !verr.empty() {
		sort.Strings(verr.Invalid)
		return nil, verr
	}
	return doc, nil
}

// JSON renders doc as indented JSON. HTML-significant characters are escaped
// so the output is safe inside a script element.
func (d Document) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Script wraps doc in a JSON-LD script element.
func Script(d Document) (string, error) {
	body, err := d.JSON()
	if err != nil {
		return "", err
	}
	return `<script type="application/ld+json">` + "\n" + string(body) + "\n</script>", nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func typedOrName(prop, typ string) expander {
	return typedOr(prop, typ, "name")
}

// typedOr expands a string into {"@type": typ, key: s} and stamps @type onto
// objects that lack one.
func typedOr(prop, typ, key string) expander {
	return func(v any) (string, any, error) {
		switch t := v.(type) {
		case string:
			return prop, map[string]any{"@type": typ, key: t}, nil
		case map[string]any:
			out := make(map[string]any, len(t)+1)
			for k, val := range t {
				out[k] = val
			}
			if _, ok := out["@type"]; !ok {
				out["@type"] = typ
			}
			return prop, out, nil
		case []any:
			items := make([]any, 0, len(t))
			for i, item := range t {
				_, x, err := typedOr(prop, typ, key)(item)
				if err != nil {
					return "", nil, fmt.Errorf("item %d: %w", i, err)
				}
				items = append(items, x)
			}
			return prop, items, nil
		}
		return "", nil, fmt.Errorf("expected text or object, got %T", v)
	}
}

func steps(prop string) expander {
	return func(v any) (string, any, error) {
		list, ok := v.([]any)
		if !ok {
			return "", nil, errors.New("expected a list of steps")
		}
		out := make([]any, 0, len(list))
		for i, item := range list {
			switch t := item.(type) {
			case string:
				out = append(out, map[string]any{"@type": "HowToStep", "text": t})
			case map[string]any:
				if isBlank(t["text"]) {
					return "", nil, fmt.Errorf("step %d has no text", i+1)
				}
				step := map[string]any{"@type": "HowToStep", "text": t["text"]}
				if !isBlank(t["name"]) {
					step["name"] = t["name"]
				}
				out = append(out, step)
			default:
				return "", nil, fmt.Errorf("step %d: expected text or object", i+1)
			}
		}
		return prop, out, nil
	}
}

func faq(v any) (string, any, error) {
	list, ok := v.([]any)
	if !ok {
		return "", nil, errors.New("expected a list of question/answer pairs")
	}
	out := make([]any, 0, len(list))
	for i, item := range list {
		qa, ok := item.(map[string]any)
		if !ok || isBlank(qa["question"]) || isBlank(qa["answer"]) {
			return "", nil, fmt.Errorf("item %d needs question and answer", i+1)
		}
		out = append(out, map[string]any{
			"@type": "Question",
			"name":  qa["question"],
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  qa["answer"],
			},
		})
	}
	return "mainEntity", out, nil
}

func breadcrumbs(v any) (string, any, error) {
	list, ok := v.([]any)
	if !ok {
		return "", nil, errors.New("expected a list of breadcrumb items")
	}
	out := make([]any, 0, len(list))
	for i, item := range list {
		bc, ok := item.(map[string]any)
		if !ok || isBlank(bc["name"]) {
			return "", nil, fmt.Errorf("item %d needs a name", i+1)
		}
		li := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     bc["name"],
		}
		if !isBlank(bc["url"]) {
			li["item"] = bc["url"]
		}
		out = append(out, li)
	}
	return "itemListElement", out, nil
}

// searchAction expands a URL template containing {search_term_string}.
func searchAction(v any) (string, any, error) {
	tmpl, ok := v.(string)
	if !ok || !strings.Contains(tmpl, "{search_term_string}") {
		return "", nil, errors.New("expected a URL template containing {search_term_string}")
	}
	return "potentialAction", map[string]any{
		"@type":       "SearchAction",
		"target":      tmpl,
		"query-input": "required name=search_term_string",
	}, nil
}
