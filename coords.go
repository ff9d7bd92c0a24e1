package swifttoo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRA converts a right ascension string to decimal degrees. Sexagesimal
// values ("23 59 59.9", "23:59:59.9") are read as hours; plain numbers as
// degrees. The result is normalized into [0, 360).
func ParseRA(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("empty right ascension")
	}
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return normalizeRA(value), nil
	}
	hours, err := parseSexagesimal(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse right ascension %q: %w", raw, err)
	}
	return normalizeRA(hours * 15), nil
}

// ParseDec converts a declination string to decimal degrees. Sexagesimal
// values are read as degrees, arcminutes, arcseconds.
func ParseDec(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("empty declination")
	}
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if value < -90 || value > 90 {
			return 0, fmt.Errorf("declination %g out of range", value)
		}
		return value, nil
	}
	degrees, err := parseSexagesimal(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse declination %q: %w", raw, err)
	}
	if degrees < -90 || degrees > 90 {
		return 0, fmt.Errorf("declination %g out of range", degrees)
	}
	return degrees, nil
}

func parseSexagesimal(raw string) (float64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ':'
	})
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("expected 2 or 3 components, got %d", len(fields))
	}

	sign := 1.0
	first := fields[0]
	if strings.HasPrefix(first, "-") {
		sign = -1
		first = first[1:]
	} else if strings.HasPrefix(first, "+") {
		first = first[1:]
	}

	parts := make([]float64, 3)
	for i, field := range append([]string{first}, fields[1:]...) {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, fmt.Errorf("bad component %q", field)
		}
		if value < 0 {
			return 0, fmt.Errorf("negative component %q after sign", field)
		}
		parts[i] = value
	}

	return sign * (parts[0] + parts[1]/60 + parts[2]/3600), nil
}

func normalizeRA(ra float64) float64 {
	ra = math.Mod(ra, 360)
	if ra < 0 {
		ra += 360
	}
	return ra
}

// J2000 orientation of the galactic frame: north galactic pole and the
// position angle of the north celestial pole.
const (
	galacticPoleRA  = 192.85948
	galacticPoleDec = 27.12825
	galacticNodeLon = 122.93192
)

// GalacticToEquatorial converts galactic longitude and latitude (degrees)
// into J2000 equatorial coordinates.
func GalacticToEquatorial(l, b float64) Coords {
	lRad := radians(l)
	bRad := radians(b)
	poleDec := radians(galacticPoleDec)
	node := radians(galacticNodeLon)

	sinDec := math.Sin(bRad)*math.Sin(poleDec) +
		math.Cos(bRad)*math.Cos(poleDec)*math.Cos(node-lRad)
	dec := math.Asin(sinDec)

	y := math.Cos(bRad) * math.Sin(node-lRad)
	x := math.Sin(bRad)*math.Cos(poleDec) -
		math.Cos(bRad)*math.Sin(poleDec)*math.Cos(node-lRad)
	ra := radians(galacticPoleRA) + math.Atan2(y, x)

	return Coords{
		RA:  normalizeRA(degrees(ra)),
		Dec: degrees(dec),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
