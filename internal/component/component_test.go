package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactSet(t *testing.T) {
	artifacts := map[string]map[string]string{
		"classes": {
			"OrderService.cls": "public class OrderService {}",
			"Invoice.cls":      "public class Invoice {}",
		},
		"triggers": {
			"OrderTrigger.trigger": "trigger OrderTrigger on Order__c (before insert) {}",
		},
	}

	comps, err := ParseArtifactSet(artifacts)
	require.NoError(t, err)
	require.Len(t, comps, 3)

	// Stable order: by type, then name.
	assert.Equal(t, Descriptor{ApexClass, "Invoice", "public class Invoice {}"}, comps[0])
	assert.Equal(t, "OrderService", comps[1].Name)
	assert.Equal(t, ApexTrigger, comps[2].Type)
	assert.Equal(t, "OrderTrigger", comps[2].Name)
}

func TestParseArtifactSetRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		artifacts map[string]map[string]string
	}{
		{
			name:      "unknown group",
			artifacts: map[string]map[string]string{"flows": {"X.flow": ""}},
		},
		{
			name:      "wrong suffix for group",
			artifacts: map[string]map[string]string{"classes": {"X.trigger": ""}},
		},
		{
			name:      "empty component name",
			artifacts: map[string]map[string]string{"classes": {".cls": ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArtifactSet(tt.artifacts)
			assert.Error(t, err)
		})
	}
}

func TestParseArtifactSetEmpty(t *testing.T) {
	comps, err := ParseArtifactSet(nil)
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestTypeSuffix(t *testing.T) {
	assert.Equal(t, ".cls", ApexClass.Suffix())
	assert.Equal(t, ".trigger", ApexTrigger.Suffix())
	assert.Equal(t, "", Type("Flow").Suffix())
}
