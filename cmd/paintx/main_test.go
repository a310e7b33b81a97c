package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

func TestInitialQuery(t *testing.T) {
	q, err := initialQuery("")
	require.NoError(t, err)
	assert.True(t, q.Equal(domain.DefaultQuery()))

	q, err = initialQuery("https://paintx.art/?search=birch&status=sold")
	require.NoError(t, err)
	assert.Equal(t, "birch", q.Text)
	assert.Equal(t, domain.StatusSold, q.Status)

	_, err = initialQuery("%zz")
	assert.Error(t, err)
}
