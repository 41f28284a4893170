package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	providers := []Provider{
		{ID: 1, Name: "Acme Supply"},
		{ID: 2, Name: "Globex"},
	}

	assert.Equal(t, "Globex", ResolveName(providers, 2))
}

func TestResolveNameFallsBackToRawID(t *testing.T) {
	assert.Equal(t, "3", ResolveName(nil, 3))
	assert.Equal(t, "9", ResolveName([]Provider{{ID: 1, Name: "Acme"}}, 9))
}
