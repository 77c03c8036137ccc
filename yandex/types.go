package yandex

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the endpoint template, "{version}" is substituted at request time
	BaseURL = "https://geocode-maps.yandex.ru/{version}/"
	// DefaultVersion of the geocoder HTTP API
	DefaultVersion = "1.x"

	versionPlaceholder = "{version}"
)

// Toponym kinds accepted by the kind parameter (reverse geocoding only).
// The value is forwarded unchecked.
const (
	KindHouse    = "house"
	KindStreet   = "street"
	KindMetro    = "metro"
	KindDistrict = "district"
	KindLocality = "locality"
)

// Response languages. The value is forwarded unchecked.
const (
	LangRU = "ru-RU" // default
	LangUA = "uk-UA"
	LangBY = "be-BY"
	LangUS = "en-US"
	LangBR = "en-BR"
	LangTR = "tr-TR" // Turkey map only
)

// Default filter values applied by Clear.
const (
	DefaultLang   = LangRU
	DefaultFormat = "json"
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Query parameter names.
const (
	ParamAPIKey    = "apikey"
	ParamLang      = "lang"
	ParamFormat    = "format"
	ParamLimit     = "results"
	ParamOffset    = "skip"
	ParamGeocode   = "geocode"
	ParamSpan      = "spn"
	ParamCenter    = "ll"
	ParamAreaLimit = "rspn"
	ParamKind      = "kind"
)

// Point is a coordinate in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// String formats the point as "lon,lat" in fixed notation
func (p Point) String() string {
	return formatPair(p.Lon, p.Lat)
}

func formatPair(a, b float64) string {
	return strconv.FormatFloat(a, 'f', 6, 64) + "," + strconv.FormatFloat(b, 'f', 6, 64)
}

// Filters maps query parameter names to string or int values.
type Filters map[string]any

// Clone returns an independent copy
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Values serializes the filters as query parameters.
func (f Filters) Values() url.Values {
	values := make(url.Values, len(f))
	for k, v := range f {
		switch val := v.(type) {
		case string:
			values.Set(k, val)
		case int:
			values.Set(k, strconv.Itoa(val))
		}
	}
	return values
}

// Request describes one outbound geocoding request.
type Request struct {
	URI   string
	Query url.Values
}

// String renders the full request URL
func (r Request) String() string {
	if len(r.Query) == 0 {
		return r.URI
	}
	return r.URI + "?" + r.Query.Encode()
}

func expandURI(template, version string) string {
	return strings.ReplaceAll(template, versionPlaceholder, version)
}
