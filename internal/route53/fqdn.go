package route53

import "strings"

// FQDN joins a record name and zone into the fully qualified, dot-terminated
// form the change API expects. A name that already carries the zone suffix,
// or is the zone apex itself, passes through with only the dot appended.
func FQDN(name, zone string) string {
	name = strings.TrimSuffix(name, ".")
	zone = strings.TrimSuffix(zone, ".")
	if name == zone || strings.HasSuffix(name, "."+zone) {
		return name + "."
	}
	return name + "." + zone + "."
}

// insertQuotes wraps a TXT value in double quotes if they are missing.
func insertQuotes(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value
	}
	return "\"" + value + "\""
}
