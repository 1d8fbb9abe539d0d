package dns

import "fmt"

// Row is one validated line of a records CSV. Line is 1-based with the
// header on line 1, matching what editors show.
type Row struct {
	Line  int
	Env   string
	Zone  string
	Type  RecordType
	Name  string
	Value string
	TTL   int64
}

// Render returns a one-line human readable form of the row.
func (r Row) Render() string {
	return fmt.Sprintf("[%s] %s in %s -> %s (ttl %d)", r.Type, r.Name, r.Zone, r.Value, r.TTL)
}
