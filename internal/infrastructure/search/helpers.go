package search

import "sort"

// Amenity names are walked in sorted order so matched_fields is stable.
func sortedAmenityNames(amenities map[string]bool) []string {
	names := make([]string, 0, len(amenities))
	for name := range amenities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
