package provider

import (
	"math"
	"strings"
	"unicode"
)

// suburbCoords anchors distance filtering and sorting. Seeded with the
// suburbs the marketplace launched in.
var suburbCoords = map[string][2]float64{
	"Surry Hills":   {-33.8889, 151.2111},
	"Newtown":       {-33.8981, 151.1742},
	"Redfern":       {-33.8928, 151.2040},
	"Sunshine West": {-37.7919, 144.8164},
	"Mountain View": {37.3861, -122.0839},
}

// resolveOrigin picks the reference point for distance computations:
// explicit coordinates win, then the suburb anchor table. Unknown suburbs
// yield no origin, which disables distance annotation and filtering.
func resolveOrigin(suburb string, lat, lng *float64) (float64, float64, bool) {
	if lat != nil && lng != nil {
		return *lat, *lng, true
	}
	if suburb != "" {
		if c, ok := suburbCoords[titleWords(suburb)]; ok {
			return c[0], c[1], true
		}
	}
	return 0, 0, false
}

func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	const r = 6371.0
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return r * c
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
