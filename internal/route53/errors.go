package route53

import "fmt"

// ZoneNotFoundError indicates no hosted zone exactly matches a zone name.
type ZoneNotFoundError struct {
	Zone string
}

// Error implements the error interface.
func (e *ZoneNotFoundError) Error() string {
	return fmt.Sprintf("no hosted zone found for %q", e.Zone)
}

// NewZoneNotFoundError creates a new ZoneNotFoundError.
func NewZoneNotFoundError(zone string) *ZoneNotFoundError {
	return &ZoneNotFoundError{Zone: zone}
}
