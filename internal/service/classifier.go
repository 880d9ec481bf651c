package service

import "strings"

// healthcareTypes are the place type fragments that qualify a candidate as a healthcare provider.
var healthcareTypes = []string{"health", "hospital", "pharmacy", "dentist"}

// IsHealthcarePlace reports whether any of the place types contains a healthcare type fragment.
// Matching is by substring, so "dentist_office" qualifies through "dentist".
func IsHealthcarePlace(types []string) bool {
	for _, t := range types {
		for _, h := range healthcareTypes {
			if strings.Contains(t, h) {
				return true
			}
		}
	}
	return false
}
