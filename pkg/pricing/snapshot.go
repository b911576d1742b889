package pricing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// CalculateSnapshotMonthlyCostWithSource calculates the monthly storage cost
// of an EBS snapshot and returns the pricing source. Snapshot storage is
// billed per GB-month of the source volume size (an upper bound, since
// snapshots are incremental).
func CalculateSnapshotMonthlyCostWithSource(sizeGB int, region string) (float64, string) {
	// Initialize pricing client if not already done
	PricingInitOnce.Do(InitPricingClient)

	cacheKey := fmt.Sprintf("snapshot:%s", region)

	// Check cache first
	SnapshotPricingCacheLock.RLock()
	if price, found := SnapshotPricingCache[cacheKey]; found {
		SnapshotPricingCacheLock.RUnlock()
		UpdateCacheHitStats("Snapshot", region)
		return float64(sizeGB) * price, string(PricingSourceCache)
	}
	SnapshotPricingCacheLock.RUnlock()

	// Try to get price from AWS API
	if PricingClient != nil {
		price, err := getSnapshotPriceFromAPI(region)
		if err == nil {
			UpdateAPISuccessStats("Snapshot", region)

			SnapshotPricingCacheLock.Lock()
			SnapshotPricingCache[cacheKey] = price
			SnapshotPricingCacheLock.Unlock()

			return float64(sizeGB) * price, string(PricingSourceAPI)
		}

		// Log the error but continue to use fallback pricing
		log.Printf("Error getting snapshot price from API: %v for region %s.", err, region)
	}

	UpdateAPIFailureStats("Snapshot", region)

	if price, ok := fallbackSnapshotPrice(region); ok {
		return float64(sizeGB) * price, string(PricingSourceDefault)
	}

	return 0, string(PricingSourceNA)
}

// fallbackSnapshotPrice returns the hardcoded per GB-month snapshot storage
// price, falling back to the us-east-1 rate
func fallbackSnapshotPrice(region string) (float64, bool) {
	if price, ok := DefaultSnapshotPrices[region]; ok {
		return price, true
	}
	if price, ok := DefaultSnapshotPrices["us-east-1"]; ok {
		return price, true
	}
	return 0, false
}

// getSnapshotPriceFromAPI retrieves EBS snapshot storage pricing from the AWS Pricing API
func getSnapshotPriceFromAPI(region string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage Snapshot"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(GetRegionDescriptiveName(region)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
	}

	pricingProducts, err := GetPricingProducts(ctx, "AmazonEC2", filters, "Snapshot", "EBS snapshot storage", region)
	if err != nil {
		return 0, err
	}

	// Take the first product with a usable GB-month price dimension
	for _, product := range pricingProducts {
		price, err := ExtractStoragePrice(product)
		if err == nil {
			return price, nil
		}
	}

	return 0, fmt.Errorf("no snapshot storage price found in region %s", region)
}
