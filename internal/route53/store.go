package route53

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/rs/zerolog"

	"github.com/jordangarrison/aws-tools/internal/dns"
)

// recordsClient is the part of the Route 53 API the store uses.
type recordsClient interface {
	ListHostedZonesByName(ctx context.Context, params *route53.ListHostedZonesByNameInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error)
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Store upserts record sets into hosted zones.
type Store struct {
	client recordsClient
	logger zerolog.Logger
	zones  map[string]string
}

// NewStore creates a Store backed by the given Route 53 client.
func NewStore(client recordsClient, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With().Str("component", "route53").Logger(),
		zones:  make(map[string]string),
	}
}

// ResolveZone returns the hosted zone ID for a zone name, caching lookups
// so a file full of rows in the same zone costs one API call. The listing
// starts at the requested name, so the first result must match it exactly
// or the zone does not exist.
func (s *Store) ResolveZone(ctx context.Context, zone string) (string, error) {
	zone = strings.TrimSuffix(zone, ".")
	if id, ok := s.zones[zone]; ok {
		return id, nil
	}

	out, err := s.client.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName: aws.String(zone),
	})
	if err != nil {
		return "", fmt.Errorf("error listing hosted zones for %s: %w", zone, err)
	}
	if len(out.HostedZones) == 0 || aws.ToString(out.HostedZones[0].Name) != zone+"." {
		return "", NewZoneNotFoundError(zone)
	}

	// The API returns IDs as "/hostedzone/Z...", keep just the ID part.
	id := strings.TrimPrefix(aws.ToString(out.HostedZones[0].Id), "/hostedzone/")
	s.zones[zone] = id
	s.logger.Debug().Str("zone", zone).Str("zone_id", id).Msg("Resolved hosted zone")
	return id, nil
}

// Upsert submits a single UPSERT change for the row against its hosted zone.
func (s *Store) Upsert(ctx context.Context, zoneID string, row dns.Row) error {
	out, err := s.client.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch:  changeBatch(row),
	})
	if err != nil {
		return fmt.Errorf("error upserting %s record %s: %w", row.Type, FQDN(row.Name, row.Zone), err)
	}
	if out.ChangeInfo != nil {
		s.logger.Debug().
			Str("change_id", aws.ToString(out.ChangeInfo.Id)).
			Str("status", string(out.ChangeInfo.Status)).
			Msgf("Submitted change for %s", FQDN(row.Name, row.Zone))
	}
	return nil
}
