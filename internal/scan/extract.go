package scan

import "strings"

// transactionMarker is the path marker embedded in profile QR payloads.
const transactionMarker = "/trash-transaction/"

// ExtractIdentifier pulls the subject identifier out of a decoded QR
// payload. URL payloads carry the identifier after the transaction marker,
// or failing that as the final path segment; bare payloads are used
// verbatim.
func ExtractIdentifier(raw string) string {
	if idx := strings.LastIndex(raw, transactionMarker); idx >= 0 {
		return trimSegment(raw[idx+len(transactionMarker):])
	}
	if strings.Contains(raw, "/") {
		return lastSegment(raw)
	}
	return raw
}

func trimSegment(s string) string {
	if strings.Contains(s, "/") {
		return lastSegment(s)
	}
	return s
}

func lastSegment(s string) string {
	parts := strings.Split(s, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return s
}
