package planet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMass(t *testing.T) {
	mass, err := Mass(" Jupiter ")
	require.NoError(t, err)
	assert.Equal(t, 1.898e27, mass)

	_, err = Mass("pluto")
	assert.ErrorIs(t, err, ErrUnknownPlanet)
	assert.Len(t, Names(), 8)
}

func TestToolCall(t *testing.T) {
	out, err := New().Call(context.Background(), `{"planet":"Mars"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"planet":"mars","mass_kg":6.39e23}`, out)
}
