package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// VehicleSlug derives the canonical slug for a vehicle from year, make,
// model and the last 6 characters of the VIN.
func VehicleSlug(year int, make, model, vin string) string {
	base := Slugify(fmt.Sprintf("%d %s %s", year, make, model))
	if suffix := vinSuffix(vin); suffix != "" {
		return base + "-" + suffix
	}
	return base
}

// TitleSlug derives the slug used by the bulk importer and webhook: the
// listing title slugified, suffixed with the stock number.
func TitleSlug(title, stockNumber string) string {
	base := Slugify(title)
	if stockNumber == "" {
		return base
	}
	return base + "-" + Slugify(stockNumber)
}

func vinSuffix(vin string) string {
	vin = strings.ToLower(strings.TrimSpace(vin))
	if vin == "" {
		return ""
	}
	if len(vin) > 6 {
		vin = vin[len(vin)-6:]
	}
	return vin
}
