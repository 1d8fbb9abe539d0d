package route53

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/jordangarrison/aws-tools/internal/dns"
)

// changeBatch builds the single-change UPSERT batch for a row.
func changeBatch(row dns.Row) *types.ChangeBatch {
	return &types.ChangeBatch{
		Changes: []types.Change{
			{
				Action:            types.ChangeActionUpsert,
				ResourceRecordSet: recordSet(row),
			},
		},
	}
}

// recordSet maps a row onto the wire shape the change API expects.
func recordSet(row dns.Row) *types.ResourceRecordSet {
	value := row.Value
	if row.Type.IsTXT() {
		value = insertQuotes(value)
	}
	return &types.ResourceRecordSet{
		Name: aws.String(FQDN(row.Name, row.Zone)),
		Type: types.RRType(row.Type),
		TTL:  aws.Int64(row.TTL),
		ResourceRecords: []types.ResourceRecord{
			{Value: aws.String(value)},
		},
	}
}
