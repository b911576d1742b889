package aws

import (
	"github.com/cloudjanitor/janitor/pkg/pricing"
)

// Pricer estimates monthly storage cost for findings. The second return
// value names the pricing source ("API", "Cache", "Default" or "N/A").
type Pricer interface {
	EBSMonthlyCost(volumeType string, sizeGB int, region string) (float64, string)
	SnapshotMonthlyCost(sizeGB int, region string) (float64, string)
}

// defaultPricer delegates to the pricing package (Pricing API with
// cache and hardcoded fallbacks).
type defaultPricer struct{}

func (defaultPricer) EBSMonthlyCost(volumeType string, sizeGB int, region string) (float64, string) {
	return pricing.CalculateEBSMonthlyCostWithSource(volumeType, sizeGB, region)
}

func (defaultPricer) SnapshotMonthlyCost(sizeGB int, region string) (float64, string) {
	return pricing.CalculateSnapshotMonthlyCostWithSource(sizeGB, region)
}
