package query

import (
	"encoding/json"

	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
)

// convertGeometry rewrites WKB byte values of the configured geometry
// columns into GeoJSON-shaped mappings, in place on the result's rows.
// Values that are not bytes or do not parse as WKB are left untouched, in
// line with the decode engine's tolerance policy.
func convertGeometry(res *Result, columns map[string]bool) {
	for _, row := range res.Rows {
		for name := range columns {
			raw, ok := row[name].([]byte)
			if !ok {
				continue
			}
			if geo := GeoJSONValue(raw); geo != nil {
				row[name] = geo
			}
		}
	}
}

// GeoJSONValue decodes WKB into a GeoJSON geometry mapping
// ({"type": ..., "coordinates": ...}). Returns nil if the bytes are not
// valid WKB.
func GeoJSONValue(raw []byte) map[string]any {
	g, err := wkb.Unmarshal(raw)
	if err != nil {
		return nil
	}
	data, err := json.Marshal(geojson.NewGeometry(g))
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
