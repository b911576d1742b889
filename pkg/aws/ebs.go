package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/sirupsen/logrus"

	"github.com/cloudjanitor/janitor/internal/models"
	"github.com/cloudjanitor/janitor/pkg/utils"
)

// EBSClient struct for EBS volume queries
type EBSClient struct {
	client ec2.DescribeVolumesAPIClient
	pricer Pricer
	region string
}

// NewEBSClient creates a new EBSClient using the standard credential chain
func NewEBSClient(region string) (*EBSClient, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return &EBSClient{
		client: ec2.NewFromConfig(cfg),
		pricer: defaultPricer{},
		region: region,
	}, nil
}

// newEBSClient wires an explicit API client and pricer, used by tests
func newEBSClient(client ec2.DescribeVolumesAPIClient, pricer Pricer, region string) *EBSClient {
	return &EBSClient{client: client, pricer: pricer, region: region}
}

// GetUnattachedVolumes returns all EBS volumes in the available state.
// The status filter is applied server-side and pagination is followed
// until the API reports no more pages, so large accounts are never
// truncated.
func (c *EBSClient) GetUnattachedVolumes(ctx context.Context) ([]models.VolumeInfo, error) {
	// Filter only volumes in 'available' state (unattached volumes)
	filter := types.Filter{
		Name:   aws.String("status"),
		Values: []string{"available"},
	}

	input := &ec2.DescribeVolumesInput{
		Filters: []types.Filter{filter},
	}

	volumes := []models.VolumeInfo{}

	paginator := ec2.NewDescribeVolumesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EBS volumes: %w", err)
		}

		for _, volume := range page.Volumes {
			if volume.VolumeId == nil || volume.Size == nil {
				logrus.WithField("region", c.region).
					Warn("Skipping EBS volume with missing id or size")
				continue
			}

			// The filter above already restricts to available volumes;
			// the state check stays as a guard for the invariant.
			if volume.State != types.VolumeStateAvailable {
				continue
			}

			volumeType := string(volume.VolumeType)
			volumeSizeGB := int(*volume.Size)
			monthlyCost, pricingSource := c.pricer.EBSMonthlyCost(volumeType, volumeSizeGB, c.region)

			volumeInfo := models.VolumeInfo{
				VolumeID:             *volume.VolumeId,
				Name:                 utils.GetName(volume.Tags),
				Size:                 volumeSizeGB,
				VolumeType:           volumeType,
				State:                string(volume.State),
				Region:               c.region,
				AvailabilityZone:     utils.SafeDeref(volume.AvailabilityZone),
				EstimatedMonthlyCost: monthlyCost,
				PricingSource:        pricingSource,
			}
			if volume.CreateTime != nil {
				volumeInfo.CreateTime = *volume.CreateTime
			}

			volumes = append(volumes, volumeInfo)
		}
	}

	return volumes, nil
}
