package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshotTestNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

// fakeSnapshotsClient serves canned DescribeSnapshots pages to the paginator
type fakeSnapshotsClient struct {
	pages []*ec2.DescribeSnapshotsOutput
	err   error
	calls int
}

func (f *fakeSnapshotsClient) DescribeSnapshots(ctx context.Context, input *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func testSnapshot(id string, startTime time.Time, sizeGB int32, description string) types.Snapshot {
	return types.Snapshot{
		SnapshotId:  aws.String(id),
		StartTime:   &startTime,
		VolumeSize:  aws.Int32(sizeGB),
		Description: aws.String(description),
	}
}

func snapshotClientWith(pages []*ec2.DescribeSnapshotsOutput) *SnapshotClient {
	return newSnapshotClient(&fakeSnapshotsClient{pages: pages}, stubPricer{}, "us-east-1",
		func() time.Time { return snapshotTestNow })
}

func TestGetSnapshotsOlderThan_StrictThreshold(t *testing.T) {
	pages := []*ec2.DescribeSnapshotsOutput{
		{Snapshots: []types.Snapshot{
			testSnapshot("snap-91d", snapshotTestNow.AddDate(0, 0, -91), 8, "old backup"),
			testSnapshot("snap-90d", snapshotTestNow.AddDate(0, 0, -90), 8, "exactly at threshold"),
			testSnapshot("snap-10d", snapshotTestNow.AddDate(0, 0, -10), 8, "recent backup"),
		}},
	}

	snapshots, err := snapshotClientWith(pages).GetSnapshotsOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "snap-91d", snapshots[0].SnapshotID)
	assert.Equal(t, 91, snapshots[0].AgeDays)
	assert.Equal(t, 8, snapshots[0].VolumeSize)
}

func TestGetSnapshotsOlderThan_ZeroDaysReportsAnyPositiveAge(t *testing.T) {
	pages := []*ec2.DescribeSnapshotsOutput{
		{Snapshots: []types.Snapshot{
			testSnapshot("snap-1h", snapshotTestNow.Add(-time.Hour), 8, ""),
		}},
	}

	snapshots, err := snapshotClientWith(pages).GetSnapshotsOlderThan(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "snap-1h", snapshots[0].SnapshotID)
	assert.Equal(t, 0, snapshots[0].AgeDays)
}

func TestGetSnapshotsOlderThan_NormalizesTimezones(t *testing.T) {
	// Same instant as 91 days before now, but expressed in a +09:00 zone.
	seoul := time.FixedZone("KST", 9*60*60)
	startTime := snapshotTestNow.AddDate(0, 0, -91).In(seoul)

	pages := []*ec2.DescribeSnapshotsOutput{
		{Snapshots: []types.Snapshot{testSnapshot("snap-kst", startTime, 8, "")}},
	}

	snapshots, err := snapshotClientWith(pages).GetSnapshotsOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 91, snapshots[0].AgeDays)
}

func TestGetSnapshotsOlderThan_FollowsPagination(t *testing.T) {
	pages := []*ec2.DescribeSnapshotsOutput{
		{
			Snapshots: []types.Snapshot{testSnapshot("snap-1", snapshotTestNow.AddDate(0, 0, -100), 8, "")},
			NextToken: aws.String("page-2"),
		},
		{
			Snapshots: []types.Snapshot{testSnapshot("snap-2", snapshotTestNow.AddDate(0, 0, -200), 16, "")},
		},
	}

	snapshots, err := snapshotClientWith(pages).GetSnapshotsOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
}

func TestGetSnapshotsOlderThan_SkipsMalformedRecords(t *testing.T) {
	malformed := testSnapshot("snap-bad", snapshotTestNow.AddDate(0, 0, -100), 8, "")
	malformed.StartTime = nil

	pages := []*ec2.DescribeSnapshotsOutput{
		{Snapshots: []types.Snapshot{
			malformed,
			testSnapshot("snap-1", snapshotTestNow.AddDate(0, 0, -100), 8, ""),
		}},
	}

	snapshots, err := snapshotClientWith(pages).GetSnapshotsOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "snap-1", snapshots[0].SnapshotID)
}

func TestGetSnapshotsOlderThan_PropagatesAPIError(t *testing.T) {
	client := newSnapshotClient(&fakeSnapshotsClient{err: errors.New("RequestExpired")},
		stubPricer{}, "us-east-1", func() time.Time { return snapshotTestNow })

	_, err := client.GetSnapshotsOlderThan(context.Background(), 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error querying EBS snapshots")
}
