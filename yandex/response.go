package yandex

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Response wraps a successfully classified geocoder payload.
type Response struct {
	raw  map[string]any
	body []byte
	doc  document
}

// GeoObject is one toponym found by the geocoder.
type GeoObject struct {
	Name        string
	Description string
	Kind        string
	Precision   string
	Text        string // full formatted address
	CountryCode string
	PostalCode  string
	Components  []AddressComponent
	Point       Point
	LowerCorner Point
	UpperCorner Point
}

// AddressComponent is a part of a structured address.
type AddressComponent struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// Component returns the name of the first address component of the given
// kind, or "" when there is none.
func (g GeoObject) Component(kind string) string {
	for _, c := range g.Components {
		if strings.EqualFold(c.Kind, kind) {
			return c.Name
		}
	}
	return ""
}

// newResponse always returns a Response. The error reports a payload whose
// shape does not fit the typed view; Raw and Body stay available.
func newResponse(raw map[string]any, body []byte) (*Response, error) {
	r := &Response{raw: raw, body: body}
	if err := json.Unmarshal(body, &r.doc); err != nil {
		return r, err
	}
	return r, nil
}

// Raw returns the decoded payload.
func (r *Response) Raw() map[string]any {
	return r.raw
}

// Body returns the payload bytes as received.
func (r *Response) Body() []byte {
	return r.body
}

// Request returns the query as echoed back by the geocoder.
func (r *Response) Request() string {
	return r.meta().Request
}

// Found returns the total number of matching objects.
func (r *Response) Found() int {
	return int(r.meta().Found)
}

// Results returns the limit the geocoder applied.
func (r *Response) Results() int {
	return int(r.meta().Results)
}

// Skip returns the offset the geocoder applied.
func (r *Response) Skip() int {
	return int(r.meta().Skip)
}

// GeoObjects returns the objects on this page in geocoder order.
func (r *Response) GeoObjects() []GeoObject {
	members := r.doc.Response.Collection.FeatureMember
	objects := make([]GeoObject, 0, len(members))
	for _, m := range members {
		objects = append(objects, m.GeoObject.toGeoObject())
	}
	return objects
}

// First returns the best match, false when nothing was found.
func (r *Response) First() (GeoObject, bool) {
	members := r.doc.Response.Collection.FeatureMember
	if len(members) == 0 {
		return GeoObject{}, false
	}
	return members[0].GeoObject.toGeoObject(), true
}

func (r *Response) meta() responseMeta {
	return r.doc.Response.Collection.MetaDataProperty.Meta
}

// Geocoder JSON payload.

type document struct {
	Response struct {
		Collection struct {
			MetaDataProperty struct {
				Meta responseMeta `json:"GeocoderResponseMetaData"`
			} `json:"metaDataProperty"`
			FeatureMember []struct {
				GeoObject geoObject `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type responseMeta struct {
	Request string  `json:"request"`
	Found   flexInt `json:"found"`
	Results flexInt `json:"results"`
	Skip    flexInt `json:"skip"`
}

type geoObject struct {
	MetaDataProperty struct {
		Meta struct {
			Kind      string `json:"kind"`
			Text      string `json:"text"`
			Precision string `json:"precision"`
			Address   struct {
				CountryCode string             `json:"country_code"`
				PostalCode  string             `json:"postal_code"`
				Formatted   string             `json:"formatted"`
				Components  []AddressComponent `json:"Components"`
			} `json:"Address"`
		} `json:"GeocoderMetaData"`
	} `json:"metaDataProperty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BoundedBy   struct {
		Envelope struct {
			LowerCorner string `json:"lowerCorner"`
			UpperCorner string `json:"upperCorner"`
		} `json:"Envelope"`
	} `json:"boundedBy"`
	Point struct {
		Pos string `json:"pos"`
	} `json:"Point"`
}

func (g geoObject) toGeoObject() GeoObject {
	meta := g.MetaDataProperty.Meta
	text := meta.Text
	if text == "" {
		text = meta.Address.Formatted
	}
	return GeoObject{
		Name:        g.Name,
		Description: g.Description,
		Kind:        meta.Kind,
		Precision:   meta.Precision,
		Text:        text,
		CountryCode: meta.Address.CountryCode,
		PostalCode:  meta.Address.PostalCode,
		Components:  meta.Address.Components,
		Point:       parsePos(g.Point.Pos),
		LowerCorner: parsePos(g.BoundedBy.Envelope.LowerCorner),
		UpperCorner: parsePos(g.BoundedBy.Envelope.UpperCorner),
	}
}

// parsePos parses a space separated "lon lat" pair.
func parsePos(pos string) Point {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return Point{}
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}
	}
	return Point{Lon: lon, Lat: lat}
}

// flexInt accepts both JSON numbers and numeric strings; the geocoder sends
// its counters as strings. Anything else reads as 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, _ := strconv.Atoi(s)
	*f = flexInt(n)
	return nil
}
