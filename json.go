package geobin

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	geom "github.com/twpayne/go-geom"
)

// ParseJSON parses a GeoJSON geometry, Feature or FeatureCollection and
// returns it encoded. Features contribute their geometry, and a
// FeatureCollection becomes a geometry collection.
func ParseJSON(json string) (Geometry, error) {
	if !gjson.Valid(json) {
		return Geometry{}, errors.New("geobin: invalid json")
	}
	g, err := geomFromJSON(gjson.Parse(json))
	if err != nil {
		return Geometry{}, err
	}
	return FromGeom(g)
}

func geomFromJSON(obj gjson.Result) (geom.T, error) {
	coords := obj.Get("coordinates")
	switch typ := obj.Get("type").String(); typ {
	case "Point":
		c := coordFromJSON(coords)
		if len(c) < 2 {
			return nil, errors.Wrap(ErrUnsupportedGeometry, "point without coordinates")
		}
		return geom.NewPoint(geom.XY).SetCoords(c)
	case "MultiPoint":
		return geom.NewMultiPoint(geom.XY).SetCoords(coordsFromJSON1(coords))
	case "LineString":
		return geom.NewLineString(geom.XY).SetCoords(coordsFromJSON1(coords))
	case "MultiLineString":
		return geom.NewMultiLineString(geom.XY).SetCoords(coordsFromJSON2(coords))
	case "Polygon":
		return geom.NewPolygon(geom.XY).SetCoords(coordsFromJSON2(coords))
	case "MultiPolygon":
		return geom.NewMultiPolygon(geom.XY).SetCoords(coordsFromJSON3(coords))
	case "GeometryCollection":
		return collectionFromJSON(obj.Get("geometries"), func(m gjson.Result) gjson.Result { return m })
	case "Feature":
		g := obj.Get("geometry")
		if !g.IsObject() {
			return nil, errors.Wrap(ErrUnsupportedGeometry, "feature without geometry")
		}
		return geomFromJSON(g)
	case "FeatureCollection":
		return collectionFromJSON(obj.Get("features"), func(m gjson.Result) gjson.Result { return m.Get("geometry") })
	default:
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "geojson type %q", typ)
	}
}

// collectionFromJSON builds a collection from members, skipping members
// for which pick returns no object.
func collectionFromJSON(members gjson.Result, pick func(gjson.Result) gjson.Result) (geom.T, error) {
	gc := geom.NewGeometryCollection()
	var err error
	members.ForEach(func(_, m gjson.Result) bool {
		obj := pick(m)
		if !obj.IsObject() {
			return true
		}
		var g geom.T
		if g, err = geomFromJSON(obj); err != nil {
			return false
		}
		err = gc.Push(g)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return gc, nil
}

// coordFromJSON keeps the first two values of a position.
func coordFromJSON(coords gjson.Result) geom.Coord {
	c := make(geom.Coord, 0, 2)
	coords.ForEach(func(_, val gjson.Result) bool {
		c = append(c, val.Float())
		return len(c) < 2
	})
	return c
}

func coordsFromJSON1(coords gjson.Result) []geom.Coord {
	var vals []geom.Coord
	coords.ForEach(func(_, val gjson.Result) bool {
		vals = append(vals, coordFromJSON(val))
		return true
	})
	return vals
}

func coordsFromJSON2(coords gjson.Result) [][]geom.Coord {
	var vals [][]geom.Coord
	coords.ForEach(func(_, val gjson.Result) bool {
		vals = append(vals, coordsFromJSON1(val))
		return true
	})
	return vals
}

func coordsFromJSON3(coords gjson.Result) [][][]geom.Coord {
	var vals [][][]geom.Coord
	coords.ForEach(func(_, val gjson.Result) bool {
		vals = append(vals, coordsFromJSON2(val))
		return true
	})
	return vals
}

// String returns the geometry as GeoJSON.
func (g Geometry) String() string {
	return g.JSON()
}

// JSON returns the geometry as GeoJSON.
func (g Geometry) JSON() string {
	return string(g.AppendJSON(nil))
}

// AppendJSON appends the geometry as GeoJSON to json. Every type but the
// point carries its bounding box. A collection is written as the three
// multi geometries it holds.
func (g Geometry) AppendJSON(json []byte) []byte {
	if len(g.data) == 0 {
		return append(json, "null"...)
	}
	switch g.typ {
	case TypePoint:
		json = append(json, `{"type":"Point","coordinates":`...)
		json = appendJSONCoord(json, g.point().Coord())
		return append(json, '}')
	case TypeMultiPoint:
		mp := g.multiPoint()
		json = append(json, `{"type":"MultiPoint","coordinates":`...)
		json = appendJSONCoords(json, mp.coords)
		json = appendJSONBBox(json, mp.bbox)
	case TypeLineString:
		l := g.lineString()
		json = append(json, `{"type":"LineString","coordinates":`...)
		json = appendJSONCoords(json, l.coords)
		json = appendJSONBBox(json, l.bbox)
	case TypeMultiLineString:
		ml := g.multiLineString()
		json = append(json, `{"type":"MultiLineString","coordinates":[`...)
		ml.ForEach(func(i int, l LineString) bool {
			if i > 0 {
				json = append(json, ',')
			}
			json = appendJSONCoords(json, l.coords)
			return true
		})
		json = append(json, ']')
		json = appendJSONBBox(json, ml.bbox)
	case TypePolygon:
		p := g.polygon()
		json = append(json, `{"type":"Polygon","coordinates":`...)
		json = appendJSONRings(json, p)
		json = appendJSONBBox(json, p.bbox)
	case TypeMultiPolygon:
		mp := g.multiPolygon()
		json = append(json, `{"type":"MultiPolygon","coordinates":[`...)
		mp.ForEach(func(i int, p Polygon) bool {
			if i > 0 {
				json = append(json, ',')
			}
			json = appendJSONRings(json, p)
			return true
		})
		json = append(json, ']')
		json = appendJSONBBox(json, mp.bbox)
	default:
		c := g.collection()
		json = append(json, `{"type":"GeometryCollection","geometries":[`...)
		json = c.points.Geometry().AppendJSON(json)
		json = append(json, ',')
		json = c.lines.Geometry().AppendJSON(json)
		json = append(json, ',')
		json = c.polygons.Geometry().AppendJSON(json)
		json = append(json, ']')
		json = appendJSONBBox(json, c.bbox)
	}
	return append(json, '}')
}

func appendJSONFloat(json []byte, f float64) []byte {
	return strconv.AppendFloat(json, f, 'f', -1, 64)
}

func appendJSONCoord(json []byte, c Coord) []byte {
	json = append(json, '[')
	json = appendJSONFloat(json, c.X())
	json = append(json, ',')
	json = appendJSONFloat(json, c.Y())
	return append(json, ']')
}

func appendJSONCoords(json []byte, cs Coords) []byte {
	json = append(json, '[')
	cs.ForEach(func(i int, c Coord) bool {
		if i > 0 {
			json = append(json, ',')
		}
		json = appendJSONCoord(json, c)
		return true
	})
	return append(json, ']')
}

// appendJSONRings writes the rings of a polygon, none when it is empty.
func appendJSONRings(json []byte, p Polygon) []byte {
	if p.IsEmpty() {
		return append(json, "[]"...)
	}
	json = append(json, '[')
	json = appendJSONCoords(json, p.ring)
	return append(json, ']')
}

func appendJSONBBox(json []byte, b BoundingBox) []byte {
	json = append(json, `,"bbox":[`...)
	json = appendJSONFloat(json, b.Min().X())
	json = append(json, ',')
	json = appendJSONFloat(json, b.Min().Y())
	json = append(json, ',')
	json = appendJSONFloat(json, b.Max().X())
	json = append(json, ',')
	json = appendJSONFloat(json, b.Max().Y())
	return append(json, ']')
}
