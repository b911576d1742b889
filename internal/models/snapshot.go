package models

import "time"

// SnapshotInfo represents an EBS snapshot older than the configured threshold
type SnapshotInfo struct {
	SnapshotID           string
	Description          string
	VolumeSize           int
	StartTime            time.Time
	AgeDays              int
	Region               string
	EstimatedMonthlyCost float64
	PricingSource        string // "API", "Cache", or "Default"
}
