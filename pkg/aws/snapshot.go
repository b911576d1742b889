package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/sirupsen/logrus"

	"github.com/cloudjanitor/janitor/internal/models"
	"github.com/cloudjanitor/janitor/pkg/utils"
)

// SnapshotClient struct for EBS snapshot queries
type SnapshotClient struct {
	client ec2.DescribeSnapshotsAPIClient
	pricer Pricer
	region string
	now    func() time.Time
}

// NewSnapshotClient creates a new SnapshotClient using the standard credential chain
func NewSnapshotClient(region string) (*SnapshotClient, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return &SnapshotClient{
		client: ec2.NewFromConfig(cfg),
		pricer: defaultPricer{},
		region: region,
		now:    time.Now,
	}, nil
}

// newSnapshotClient wires an explicit API client, pricer and clock, used by tests
func newSnapshotClient(client ec2.DescribeSnapshotsAPIClient, pricer Pricer, region string, now func() time.Time) *SnapshotClient {
	return &SnapshotClient{client: client, pricer: pricer, region: region, now: now}
}

// GetSnapshotsOlderThan returns all self-owned snapshots whose age is
// strictly greater than the given number of days. A snapshot exactly at
// the threshold is not reported. Start times and the cutoff are both
// UTC so the comparison cannot drift with the local zone. Pagination is
// followed until the API reports no more pages.
func (c *SnapshotClient) GetSnapshotsOlderThan(ctx context.Context, days int) ([]models.SnapshotInfo, error) {
	now := c.now().UTC()
	cutoff := now.AddDate(0, 0, -days)

	input := &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	}

	snapshots := []models.SnapshotInfo{}

	paginator := ec2.NewDescribeSnapshotsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EBS snapshots: %w", err)
		}

		for _, snapshot := range page.Snapshots {
			if snapshot.SnapshotId == nil || snapshot.StartTime == nil {
				logrus.WithField("region", c.region).
					Warn("Skipping snapshot with missing id or start time")
				continue
			}

			startTime := snapshot.StartTime.UTC()
			if !startTime.Before(cutoff) {
				continue
			}

			var volumeSizeGB int
			if snapshot.VolumeSize != nil {
				volumeSizeGB = int(*snapshot.VolumeSize)
			}
			monthlyCost, pricingSource := c.pricer.SnapshotMonthlyCost(volumeSizeGB, c.region)

			snapshots = append(snapshots, models.SnapshotInfo{
				SnapshotID:           *snapshot.SnapshotId,
				Description:          utils.SafeDeref(snapshot.Description),
				VolumeSize:           volumeSizeGB,
				StartTime:            startTime,
				AgeDays:              utils.AgeInDays(startTime, now),
				Region:               c.region,
				EstimatedMonthlyCost: monthlyCost,
				PricingSource:        pricingSource,
			})
		}
	}

	return snapshots, nil
}
