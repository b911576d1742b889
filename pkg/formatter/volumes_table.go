package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/cloudjanitor/janitor/internal/models"
)

// PrintVolumesTable prints a formatted table of unattached EBS volumes
func PrintVolumesTable(w io.Writer, volumes []models.VolumeInfo) {
	if len(volumes) == 0 {
		return
	}

	// Sort volumes by estimated monthly cost (highest first)
	sort.Slice(volumes, func(i, j int) bool {
		return volumes[i].EstimatedMonthlyCost > volumes[j].EstimatedMonthlyCost
	})

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tVOLUME ID\tTYPE\tSIZE\tAZ\tCREATED\tMONTHLY COST\tPRICING")

	for _, volume := range volumes {
		created := "N/A"
		if !volume.CreateTime.IsZero() {
			created = humanize.Time(volume.CreateTime)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d GB\t%s\t%s\t%s\t%s\n",
			displayName(volume.Name),
			volume.VolumeID,
			volume.VolumeType,
			volume.Size,
			volume.AvailabilityZone,
			created,
			FormatMonthlyCost(volume.EstimatedMonthlyCost, volume.PricingSource),
			volume.PricingSource,
		)
	}

	printVolumeTotals(tw, volumes)

	tw.Flush()
}

// printVolumeTotals prints the summary information at the bottom of the table
func printVolumeTotals(tw *tabwriter.Writer, volumes []models.VolumeInfo) {
	totalSize := 0
	var totalCost float64

	for _, volume := range volumes {
		totalSize += volume.Size
		totalCost += volume.EstimatedMonthlyCost
	}

	fmt.Fprintf(tw, "Total:\t\t\t%d GB\t\t\t$%.2f\t\n", totalSize, totalCost)
}

// PrintVolumesSummary displays per volume type summary information
func PrintVolumesSummary(w io.Writer, volumes []models.VolumeInfo) {
	if len(volumes) == 0 {
		return
	}

	// Group by volume type
	volumeTypes := make(map[string]struct {
		count int
		size  int
		cost  float64
	})

	for _, volume := range volumes {
		typeInfo := volumeTypes[volume.VolumeType]
		typeInfo.count++
		typeInfo.size += volume.Size
		typeInfo.cost += volume.EstimatedMonthlyCost
		volumeTypes[volume.VolumeType] = typeInfo
	}

	fmt.Fprintln(w, "\n## Unattached EBS Volumes Summary")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "VOLUME TYPE\tCOUNT\tTOTAL SIZE\tMONTHLY COST")

	// Sort volume types for consistent output
	types := make([]string, 0, len(volumeTypes))
	for volumeType := range volumeTypes {
		types = append(types, volumeType)
	}
	sort.Strings(types)

	for _, volumeType := range types {
		info := volumeTypes[volumeType]
		fmt.Fprintf(tw, "%s\t%d\t%d GB\t$%.2f\n",
			volumeType,
			info.count,
			info.size,
			info.cost,
		)
	}

	tw.Flush()
}
