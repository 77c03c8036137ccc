package yandex

// SetAPIKey sets the API key. Clear restores the key given to NewClient.
func (c *Client) SetAPIKey(key string) *Client {
	c.filters[ParamAPIKey] = key
	return c
}

// SetLang sets the preferred response language, see the Lang constants.
func (c *Client) SetLang(lang string) *Client {
	c.filters[ParamLang] = lang
	return c
}

// SetFormat selects the response format: xml when true, json otherwise.
func (c *Client) SetFormat(xml bool) *Client {
	if xml {
		c.filters[ParamFormat] = "xml"
	} else {
		c.filters[ParamFormat] = "json"
	}
	return c
}

// SetOffset sets how many objects to skip from the start of the result list.
func (c *Client) SetOffset(offset int) *Client {
	c.filters[ParamOffset] = offset
	return c
}

// SetLimit sets the maximum number of returned objects (default 10).
func (c *Client) SetLimit(limit int) *Client {
	c.filters[ParamLimit] = limit
	return c
}

// SetPoint geocodes by coordinates. It replaces any query set with SetQuery.
func (c *Client) SetPoint(lon, lat float64) *Client {
	c.filters[ParamGeocode] = formatPair(lon, lat)
	return c
}

// SetQuery geocodes by a free-form address or coordinate string. It replaces
// any point set with SetPoint.
func (c *Client) SetQuery(query string) *Client {
	c.filters[ParamGeocode] = query
	return c
}

// SetArea sets the search area span in degrees. When center is not nil the
// area center is set as well; otherwise a previously set center is kept.
func (c *Client) SetArea(lengthLng, lengthLat float64, center *Point) *Client {
	c.filters[ParamSpan] = formatPair(lengthLng, lengthLat)
	if center != nil {
		c.filters[ParamCenter] = center.String()
	}
	return c
}

// UseAreaLimit restricts results to the area given by SetArea.
func (c *Client) UseAreaLimit(restrict bool) *Client {
	if restrict {
		c.filters[ParamAreaLimit] = 1
	} else {
		c.filters[ParamAreaLimit] = 0
	}
	return c
}

// SetKind sets the toponym kind, see the Kind constants.
func (c *Client) SetKind(kind string) *Client {
	c.filters[ParamKind] = kind
	return c
}

// Clear resets the filters to their defaults and drops the held response.
func (c *Client) Clear() *Client {
	c.filters = make(Filters, 5)
	c.SetAPIKey(c.apiKey).
		SetLang(DefaultLang).
		SetFormat(false).
		SetOffset(DefaultOffset).
		SetLimit(DefaultLimit)
	c.response = nil
	return c
}
