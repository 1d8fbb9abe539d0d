package ec2

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstancesClient struct {
	describeOut *ec2.DescribeInstancesOutput
	describeErr error
	describeIn  []*ec2.DescribeInstancesInput
	rebootErr   error
	rebootIn    []*ec2.RebootInstancesInput
	statusOut   *ec2.DescribeInstanceStatusOutput
	statusErr   error
	statusIn    []*ec2.DescribeInstanceStatusInput
}

func (f *fakeInstancesClient) DescribeInstances(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeIn = append(f.describeIn, params)
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if f.describeOut != nil {
		return f.describeOut, nil
	}
	return &ec2.DescribeInstancesOutput{}, nil
}

func (f *fakeInstancesClient) RebootInstances(_ context.Context, params *ec2.RebootInstancesInput, _ ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error) {
	f.rebootIn = append(f.rebootIn, params)
	if f.rebootErr != nil {
		return nil, f.rebootErr
	}
	return &ec2.RebootInstancesOutput{}, nil
}

func (f *fakeInstancesClient) DescribeInstanceStatus(_ context.Context, params *ec2.DescribeInstanceStatusInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error) {
	f.statusIn = append(f.statusIn, params)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.statusOut != nil {
		return f.statusOut, nil
	}
	return &ec2.DescribeInstanceStatusOutput{}, nil
}

func reservations(ids ...string) []types.Reservation {
	var out []types.Reservation
	for _, id := range ids {
		out = append(out, types.Reservation{
			Instances: []types.Instance{{InstanceId: aws.String(id)}},
		})
	}
	return out
}

func TestResolveName(t *testing.T) {
	client := &fakeInstancesClient{
		describeOut: &ec2.DescribeInstancesOutput{Reservations: reservations("i-0abc123")},
	}
	service := NewService(client, zerolog.Nop())

	id, err := service.ResolveName(context.Background(), "web-server")
	require.NoError(t, err)
	assert.Equal(t, "i-0abc123", id)

	require.Len(t, client.describeIn, 1)
	filters := client.describeIn[0].Filters
	require.Len(t, filters, 2)
	assert.Equal(t, "tag:Name", aws.ToString(filters[0].Name))
	assert.Equal(t, []string{"web-server"}, filters[0].Values)
	assert.Equal(t, "instance-state-name", aws.ToString(filters[1].Name))
	assert.Equal(t, []string{"pending", "running", "stopping", "stopped"}, filters[1].Values)
}

func TestResolveNameNotFound(t *testing.T) {
	client := &fakeInstancesClient{}
	service := NewService(client, zerolog.Nop())

	_, err := service.ResolveName(context.Background(), "web-server")
	var notFound *InstanceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "web-server", notFound.Target)
}

func TestResolveNameAmbiguous(t *testing.T) {
	client := &fakeInstancesClient{
		describeOut: &ec2.DescribeInstancesOutput{Reservations: reservations("i-0abc123", "i-0def456")},
	}
	service := NewService(client, zerolog.Nop())

	_, err := service.ResolveName(context.Background(), "web-server")
	var ambiguous *AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"i-0abc123", "i-0def456"}, ambiguous.IDs)
	assert.Contains(t, ambiguous.Error(), "--instance-id")
}

func TestDescribe(t *testing.T) {
	client := &fakeInstancesClient{
		describeOut: &ec2.DescribeInstancesOutput{
			Reservations: []types.Reservation{{
				Instances: []types.Instance{{
					InstanceId:   aws.String("i-0abc123"),
					InstanceType: types.InstanceTypeT3Micro,
					State:        &types.InstanceState{Name: types.InstanceStateNameRunning},
					Placement:    &types.Placement{AvailabilityZone: aws.String("us-west-2a")},
					Tags: []types.Tag{
						{Key: aws.String("Env"), Value: aws.String("prod")},
						{Key: aws.String("Name"), Value: aws.String("web-server")},
					},
				}},
			}},
		},
	}
	service := NewService(client, zerolog.Nop())

	instance, err := service.Describe(context.Background(), "i-0abc123")
	require.NoError(t, err)
	assert.Equal(t, &Instance{
		ID:    "i-0abc123",
		Name:  "web-server",
		State: "running",
		Type:  "t3.micro",
		AZ:    "us-west-2a",
	}, instance)
}

func TestDescribeUnknownID(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeInstancesClient
	}{
		{"API not found code", &fakeInstancesClient{
			describeErr: &smithy.GenericAPIError{Code: "InvalidInstanceID.NotFound", Message: "does not exist"},
		}},
		{"malformed ID code", &fakeInstancesClient{
			describeErr: &smithy.GenericAPIError{Code: "InvalidInstanceID.Malformed", Message: "invalid id"},
		}},
		{"empty reservations", &fakeInstancesClient{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.client, zerolog.Nop())

			_, err := service.Describe(context.Background(), "i-0missing")
			var notFound *InstanceNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, "i-0missing", notFound.Target)
		})
	}
}

func TestDescribeOtherAPIError(t *testing.T) {
	client := &fakeInstancesClient{describeErr: errors.New("access denied")}
	service := NewService(client, zerolog.Nop())

	_, err := service.Describe(context.Background(), "i-0abc123")
	assert.ErrorContains(t, err, "access denied")
	var notFound *InstanceNotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestReboot(t *testing.T) {
	client := &fakeInstancesClient{}
	service := NewService(client, zerolog.Nop())

	require.NoError(t, service.Reboot(context.Background(), "i-0abc123"))
	require.Len(t, client.rebootIn, 1)
	assert.Equal(t, []string{"i-0abc123"}, client.rebootIn[0].InstanceIds)
}

func TestRebootError(t *testing.T) {
	client := &fakeInstancesClient{rebootErr: errors.New("unauthorized")}
	service := NewService(client, zerolog.Nop())

	err := service.Reboot(context.Background(), "i-0abc123")
	assert.ErrorContains(t, err, "unauthorized")
}

func statusOutput(instance, system types.SummaryStatus) *ec2.DescribeInstanceStatusOutput {
	return &ec2.DescribeInstanceStatusOutput{
		InstanceStatuses: []types.InstanceStatus{{
			InstanceId:     aws.String("i-0abc123"),
			InstanceStatus: &types.InstanceStatusSummary{Status: instance},
			SystemStatus:   &types.InstanceStatusSummary{Status: system},
		}},
	}
}

func TestStatusOK(t *testing.T) {
	tests := []struct {
		name string
		out  *ec2.DescribeInstanceStatusOutput
		want bool
	}{
		{"both checks pass", statusOutput(types.SummaryStatusOk, types.SummaryStatusOk), true},
		{"instance check still initializing", statusOutput(types.SummaryStatusInitializing, types.SummaryStatusOk), false},
		{"system check impaired", statusOutput(types.SummaryStatusOk, types.SummaryStatusImpaired), false},
		{"no status rows yet", &ec2.DescribeInstanceStatusOutput{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeInstancesClient{statusOut: tt.out}
			service := NewService(client, zerolog.Nop())

			ok, err := service.StatusOK(context.Background(), "i-0abc123")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			require.Len(t, client.statusIn, 1)
			assert.True(t, aws.ToBool(client.statusIn[0].IncludeAllInstances))
		})
	}
}

func TestStatusOKError(t *testing.T) {
	client := &fakeInstancesClient{statusErr: errors.New("throttled")}
	service := NewService(client, zerolog.Nop())

	_, err := service.StatusOK(context.Background(), "i-0abc123")
	assert.ErrorContains(t, err, "throttled")
}
