package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/cloudjanitor/janitor/internal/models"
)

// PrintSnapshotsTable prints a formatted table of aged EBS snapshots
func PrintSnapshotsTable(w io.Writer, snapshots []models.SnapshotInfo) {
	if len(snapshots) == 0 {
		return
	}

	// Sort snapshots by age (oldest first)
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].StartTime.Before(snapshots[j].StartTime)
	})

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "SNAPSHOT ID\tSIZE\tAGE\tCREATED\tMONTHLY COST\tPRICING\tDESCRIPTION")

	for _, snapshot := range snapshots {
		description := snapshot.Description
		if description == "" {
			description = "N/A"
		}
		description = TruncateToWidth(description, MAX_DESCRIPTION_WIDTH)

		fmt.Fprintf(tw, "%s\t%d GB\t%dd\t%s\t%s\t%s\t%s\n",
			snapshot.SnapshotID,
			snapshot.VolumeSize,
			snapshot.AgeDays,
			humanize.Time(snapshot.StartTime),
			FormatMonthlyCost(snapshot.EstimatedMonthlyCost, snapshot.PricingSource),
			snapshot.PricingSource,
			description,
		)
	}

	printSnapshotTotals(tw, snapshots)

	tw.Flush()
}

// printSnapshotTotals prints the summary information at the bottom of the table
func printSnapshotTotals(tw *tabwriter.Writer, snapshots []models.SnapshotInfo) {
	totalSize := 0
	var totalCost float64

	for _, snapshot := range snapshots {
		totalSize += snapshot.VolumeSize
		totalCost += snapshot.EstimatedMonthlyCost
	}

	fmt.Fprintf(tw, "Total:\t%d GB\t\t\t$%.2f\t\t\n", totalSize, totalCost)
}
