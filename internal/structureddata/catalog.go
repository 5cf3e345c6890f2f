// Package structureddata builds schema.org JSON-LD blocks from flat field
// maps. Each supported type declares its required and optional fields; a few
// fields accept shorthand values that are expanded into the nested shapes
// schema.org expects.
package structureddata

import "sort"

// Context is the @context of every generated document.
const Context = "https://schema.org"

// TypeSpec describes the fields accepted for one @type.
type TypeSpec struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    []string `json:"required"`
	Optional    []string `json:"optional"`
}

func (s TypeSpec) allows(field string) bool {
	for _, f := range s.Required {
		if f == field {
			return true
		}
	}
	for _, f := range s.Optional {
		if f == field {
			return true
		}
	}
	return false
}

var catalog = map[string]TypeSpec{
	"Article": {
		Description: "News, blog or guide article",
		Required:    []string{"headline", "author", "datePublished"},
		Optional:    []string{"description", "image", "dateModified", "publisher", "url"},
	},
	"HowTo": {
		Description: "Step by step instructions",
		Required:    []string{"name", "steps"},
		Optional:    []string{"description", "image", "totalTime", "supply", "tool"},
	},
	"Organization": {
		Description: "Company or organization",
		Required:    []string{"name", "url"},
		Optional:    []string{"logo", "description", "email", "telephone", "sameAs"},
	},
	"Product": {
		Description: "Product offered for sale",
		Required:    []string{"name"},
		Optional:    []string{"description", "image", "brand", "sku", "offers"},
	},
	"FAQPage": {
		Description: "Page of frequently asked questions",
		Required:    []string{"questions"},
	},
	"BreadcrumbList": {
		Description: "Breadcrumb trail to the current page",
		Required:    []string{"items"},
	},
	"WebSite": {
		Description: "Web site with optional site search",
		Required:    []string{"name", "url"},
		Optional:    []string{"description", "searchUrl"},
	},
	"LocalBusiness": {
		Description: "Physical business location",
		Required:    []string{"name", "address"},
		Optional:    []string{"telephone", "url", "image", "openingHours", "priceRange"},
	},
	"Person": {
		Description: "Individual person",
		Required:    []string{"name"},
		Optional:    []string{"url", "image", "jobTitle", "worksFor", "sameAs"},
	},
	"Event": {
		Description: "Scheduled event",
		Required:    []string{"name", "startDate", "location"},
		Optional:    []string{"endDate", "description", "image", "eventStatus", "organizer"},
	},
	"Recipe": {
		Description: "Cooking recipe",
		Required:    []string{"name", "recipeIngredient", "recipeInstructions"},
		Optional:    []string{"description", "image", "author", "prepTime", "cookTime", "totalTime", "recipeYield"},
	},
	"VideoObject": {
		Description: "Video",
		Required:    []string{"name", "description", "thumbnailUrl", "uploadDate"},
		Optional:    []string{"contentUrl", "embedUrl", "duration"},
	},
}

// Lookup returns the spec for typ.
func Lookup(typ string) (TypeSpec, bool) {
	s, ok := catalog[typ]
	if !ok {
		return TypeSpec{}, false
	}
	s.Type = typ
	return s, true
}

// Types returns every supported type sorted by name.
func Types() []TypeSpec {
	out := make([]TypeSpec, 0, len(catalog))
	for name := range catalog {
		s, _ := Lookup(name)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
