package models

import "time"

// VolumeInfo represents an unattached EBS volume finding
type VolumeInfo struct {
	VolumeID             string
	Name                 string
	Size                 int
	VolumeType           string
	State                string
	Region               string
	AvailabilityZone     string
	CreateTime           time.Time
	EstimatedMonthlyCost float64
	PricingSource        string // "API", "Cache", or "Default"
}
