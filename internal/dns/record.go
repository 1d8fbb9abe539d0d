package dns

import (
	"fmt"
	"strings"
)

// RecordType identifies a DNS record set type.
type RecordType string

const (
	TypeA     RecordType = "A"
	TypeAAAA  RecordType = "AAAA"
	TypeCNAME RecordType = "CNAME"
	TypeMX    RecordType = "MX"
	TypeNS    RecordType = "NS"
	TypePTR   RecordType = "PTR"
	TypeSOA   RecordType = "SOA"
	TypeSRV   RecordType = "SRV"
	TypeTXT   RecordType = "TXT"
)

// ParseRecordType folds case and rejects anything outside the supported set.
func ParseRecordType(s string) (RecordType, error) {
	switch t := RecordType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeA, TypeAAAA, TypeCNAME, TypeMX, TypeNS, TypePTR, TypeSOA, TypeSRV, TypeTXT:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported record type %q", s)
	}
}

// IsTXT reports whether values of this type need quoting on the wire.
func (t RecordType) IsTXT() bool {
	return t == TypeTXT
}
