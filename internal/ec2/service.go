package ec2

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// resolvableStates are the lifecycle states a Name tag lookup considers.
// Terminated instances keep their tags around for a while and would
// otherwise shadow their replacement.
var resolvableStates = []string{"pending", "running", "stopping", "stopped"}

// instancesClient is the part of the EC2 API the service uses.
type instancesClient interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	RebootInstances(ctx context.Context, params *ec2.RebootInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error)
	DescribeInstanceStatus(ctx context.Context, params *ec2.DescribeInstanceStatusInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error)
}

// Instance is the slice of instance state the reboot flow cares about.
type Instance struct {
	ID    string
	Name  string
	State string
	Type  string
	AZ    string
}

// Service looks up and reboots instances.
type Service struct {
	client instancesClient
	logger zerolog.Logger
}

// NewService creates a Service backed by the given EC2 client.
func NewService(client instancesClient, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger.With().Str("component", "ec2").Logger(),
	}
}

// ResolveName finds the single instance whose Name tag matches name.
// Zero matches and multiple matches are both errors, a reboot must never
// guess its target.
func (s *Service) ResolveName(ctx context.Context, name string) (string, error) {
	out, err := s.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:Name"), Values: []string{name}},
			{Name: aws.String("instance-state-name"), Values: resolvableStates},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error searching for instances named %q: %w", name, err)
	}

	var ids []string
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			ids = append(ids, aws.ToString(instance.InstanceId))
		}
	}
	if len(ids) == 0 {
		return "", NewInstanceNotFoundError(name)
	}
	if len(ids) > 1 {
		return "", NewAmbiguousNameError(name, ids)
	}

	s.logger.Debug().Str("name", name).Str("instance_id", ids[0]).Msg("Resolved instance by Name tag")
	return ids[0], nil
}

// Describe fetches the current state of one instance.
func (s *Service) Describe(ctx context.Context, instanceID string) (*Instance, error) {
	out, err := s.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		if isInstanceNotFound(err) {
			return nil, NewInstanceNotFoundError(instanceID)
		}
		return nil, fmt.Errorf("error describing instance %s: %w", instanceID, err)
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return nil, NewInstanceNotFoundError(instanceID)
	}

	raw := out.Reservations[0].Instances[0]
	instance := &Instance{
		ID:   aws.ToString(raw.InstanceId),
		Name: tagValue(raw.Tags, "Name"),
		Type: string(raw.InstanceType),
	}
	if raw.State != nil {
		instance.State = string(raw.State.Name)
	}
	if raw.Placement != nil {
		instance.AZ = aws.ToString(raw.Placement.AvailabilityZone)
	}
	return instance, nil
}

// Reboot asks EC2 to reboot the instance.
func (s *Service) Reboot(ctx context.Context, instanceID string) error {
	out, err := s.client.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		if isInstanceNotFound(err) {
			return NewInstanceNotFoundError(instanceID)
		}
		return fmt.Errorf("error rebooting instance %s: %w", instanceID, err)
	}

	if requestID, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		s.logger.Debug().Str("request_id", requestID).Msg("Reboot request accepted")
	}
	return nil
}

// isInstanceNotFound reports whether an API error means the instance ID does
// not exist. EC2 has no modeled exception types, the code string is all the
// SDK surfaces.
func isInstanceNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return code == "InvalidInstanceID.NotFound" || code == "InvalidInstanceID.Malformed"
}

func tagValue(tags []types.Tag, key string) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == key {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}
