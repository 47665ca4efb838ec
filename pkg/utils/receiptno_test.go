package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReceiptNo(t *testing.T) {
	no := GenerateReceiptNo("RCP")

	assert.True(t, strings.HasPrefix(no, "RCP"))
	assert.Len(t, no, len("RCP")+6)
	for _, r := range no[len("RCP"):] {
		assert.True(t, r >= '0' && r <= '9', "suffix must be numeric")
	}
}

func TestGenerateReceiptNoCustomPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateReceiptNo("LBS"), "LBS"))
}
