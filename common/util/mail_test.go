package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryProblems(t *testing.T) {
	assert.Empty(t, summaryProblems(nil))

	short := []string{"Row 2: missing recipient name", "Row 5: invalid issue date"}
	assert.Equal(t, short, summaryProblems(short))

	var long []string
	for i := 0; i < 25; i++ {
		long = append(long, fmt.Sprintf("Row %d: issuance quota exhausted", i+2))
	}
	trimmed := summaryProblems(long)
	assert.Len(t, trimmed, maxSummaryProblems+1)
	assert.Equal(t, long[:maxSummaryProblems], trimmed[:maxSummaryProblems])
	assert.Equal(t, "and 15 more", trimmed[maxSummaryProblems])
}
