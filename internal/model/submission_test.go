package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidInspectionType(t *testing.T) {
	for _, it := range InspectionTypes {
		assert.True(t, ValidInspectionType(string(it)), string(it))
	}
	assert.False(t, ValidInspectionType(""))
	assert.False(t, ValidInspectionType("Pool Inspection"))
	assert.False(t, ValidInspectionType("wind mitigation"))
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState("FL"))
	assert.True(t, ValidState("WY"))
	assert.False(t, ValidState("fl"))
	assert.False(t, ValidState("ZZ"))
	assert.False(t, ValidState(""))
	assert.Len(t, USStates, 50)
}
