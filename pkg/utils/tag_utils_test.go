package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestGetName(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Team"), Value: aws.String("payments")},
		{Key: aws.String("Name"), Value: aws.String("orphaned-data")},
	}

	assert.Equal(t, "orphaned-data", GetName(tags))
	assert.Equal(t, "payments", GetTagValue(tags, "Team"))
	assert.Equal(t, "", GetTagValue(tags, "Missing"))
	assert.Equal(t, "", GetName(nil))
}

func TestGetTagValue_NilValue(t *testing.T) {
	tags := []types.Tag{{Key: aws.String("Name")}}
	assert.Equal(t, "", GetTagValue(tags, "Name"))
}
