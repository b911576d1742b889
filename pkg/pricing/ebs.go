package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// CalculateEBSMonthlyCostWithSource calculates the monthly cost of an EBS volume and returns the pricing source
func CalculateEBSMonthlyCostWithSource(volumeType string, sizeGB int, region string) (float64, string) {
	// Initialize pricing client if not already done
	PricingInitOnce.Do(InitPricingClient)

	cacheKey := fmt.Sprintf("ebs:%s:%s", volumeType, region)

	// Check cache first
	EBSPricingCacheLock.RLock()
	if price, found := EBSPricingCache[cacheKey]; found {
		EBSPricingCacheLock.RUnlock()
		UpdateCacheHitStats("EBS", region)
		return float64(sizeGB) * price, string(PricingSourceCache)
	}
	EBSPricingCacheLock.RUnlock()

	// Try to get price from AWS API
	if PricingClient != nil {
		price, err := getEBSPriceFromAPI(volumeType, region)
		if err == nil {
			UpdateAPISuccessStats("EBS", region)

			EBSPricingCacheLock.Lock()
			EBSPricingCache[cacheKey] = price
			EBSPricingCacheLock.Unlock()

			return float64(sizeGB) * price, string(PricingSourceAPI)
		}

		// Log the error but continue to use fallback pricing
		log.Printf("Error getting EBS price from API: %v for %s in %s.", err, volumeType, region)
	}

	UpdateAPIFailureStats("EBS", region)

	if price, ok := fallbackEBSPrice(volumeType, region); ok {
		return float64(sizeGB) * price, string(PricingSourceDefault)
	}

	return 0, string(PricingSourceNA)
}

// fallbackEBSPrice returns the hardcoded per GB-month price for a volume
// type, falling back to gp2 and then to us-east-1 rates
func fallbackEBSPrice(volumeType, region string) (float64, bool) {
	regionPrices, found := DefaultEBSPrices[region]
	if !found {
		regionPrices, found = DefaultEBSPrices["us-east-1"]
		if !found {
			return 0, false
		}
	}

	if price, ok := regionPrices[volumeType]; ok {
		return price, true
	}
	if price, ok := regionPrices["gp2"]; ok {
		return price, true
	}
	return 0, false
}

// getEBSPriceFromAPI retrieves EBS volume pricing from the AWS Pricing API
func getEBSPriceFromAPI(volumeType, region string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	volumeTypeValue := mapVolumeTypeToAPIValue(volumeType)

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("volumeType"),
			Value: aws.String(volumeTypeValue),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(GetRegionDescriptiveName(region)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
	}

	pricingProducts, err := GetPricingProducts(ctx, "AmazonEC2", filters, "EBS", volumeType, region)
	if err != nil {
		return 0, err
	}

	// Find exact match for the volume type
	for _, product := range pricingProducts {
		var priceData map[string]interface{}
		if err := json.Unmarshal([]byte(product), &priceData); err != nil {
			continue
		}

		productAttrs, ok := priceData["product"].(map[string]interface{})
		if !ok {
			continue
		}

		attributes, ok := productAttrs["attributes"].(map[string]interface{})
		if !ok {
			continue
		}

		// Check exact volume type (gp2, gp3, etc.)
		if volApiName, ok := attributes["volumeApiName"].(string); ok && volApiName == volumeType {
			return ExtractStoragePrice(product)
		}
	}

	return 0, fmt.Errorf("no exact match found for EBS volume type %s in region %s", volumeType, region)
}

// mapVolumeTypeToAPIValue maps EBS volume types to their API filter values
func mapVolumeTypeToAPIValue(volumeType string) string {
	switch volumeType {
	case "gp2", "gp3":
		return "General Purpose"
	case "io1", "io2":
		return "Provisioned IOPS"
	case "st1":
		return "Throughput Optimized HDD"
	case "sc1":
		return "Cold HDD"
	case "standard":
		return "Magnetic"
	default:
		return "General Purpose"
	}
}
