package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// StatusOK reports whether the instance currently passes both the instance
// and the system status check.
func (s *Service) StatusOK(ctx context.Context, instanceID string) (bool, error) {
	out, err := s.client.DescribeInstanceStatus(ctx, &ec2.DescribeInstanceStatusInput{
		InstanceIds:         []string{instanceID},
		IncludeAllInstances: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("error checking status of instance %s: %w", instanceID, err)
	}
	if len(out.InstanceStatuses) == 0 {
		return false, nil
	}

	status := out.InstanceStatuses[0]
	return summaryOK(status.InstanceStatus) && summaryOK(status.SystemStatus), nil
}

func summaryOK(summary *types.InstanceStatusSummary) bool {
	return summary != nil && summary.Status == types.SummaryStatusOk
}
