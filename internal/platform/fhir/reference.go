package fhir

import "strings"

// FormatReference builds a relative reference like "Patient/123".
func FormatReference(resourceType, id string) string {
	return resourceType + "/" + id
}

// ReferenceID extracts the id segment from a reference string. Handles
// relative ("Patient/123") and absolute ("https://.../Patient/123") forms.
func ReferenceID(ref string) string {
	if ref == "" {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}
