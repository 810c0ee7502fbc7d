package config

import (
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsWellFormedModel(t *testing.T) {
	// Arrange
	m := &Model{
		Spectra: []*Spectrum{{
			Model: "mssm",
			Scale: 91.1876,
			Run:   []float64{1e15, 91.1876},
			Params: []*Param{
				{Key: "g1", Tag: accessor.Dimensionless, Value: 0.46},
				{Key: "mq2", Tag: accessor.MassSquared, Matrix: [][]float64{{1, 0}, {0, 1}}},
			},
		}},
		Bootstrap: &Bootstrap{Transport: TransportLocal},
	}

	// Act
	err := m.Validate()

	// Assert
	require.NoError(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	// Arrange
	m := &Model{
		Spectra: []*Spectrum{{
			Source: "a.hcl:3",
			Scale:  -1,
			Run:    []float64{0},
			Params: []*Param{{Key: "mq2", Tag: accessor.MassSquared, Matrix: [][]float64{{1, 0}, {0}}}},
		}},
		Bootstrap: &Bootstrap{Transport: "carrier-pigeon"},
	}

	// Act
	err := m.Validate()

	// Assert
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "at a.hcl:3")
	assert.Contains(t, msg, "model name is required")
	assert.Contains(t, msg, "scale must be a positive finite number")
	assert.Contains(t, msg, "run[0]")
	assert.Contains(t, msg, "mass2.mq2 row 2 has 1 columns, want 2")
	assert.Contains(t, msg, `unknown transport "carrier-pigeon"`)
}

func TestValidate_SocketIORequiresURLAndJob(t *testing.T) {
	// Arrange
	m := &Model{Bootstrap: &Bootstrap{Transport: TransportSocketIO}}

	// Act
	err := m.Validate()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires url")
	assert.Contains(t, err.Error(), "requires job")
}

func TestMerge_AppendsAndReplacesBootstrap(t *testing.T) {
	// Arrange
	a := &Model{Spectra: []*Spectrum{{Model: "mssm"}}, Bootstrap: &Bootstrap{Transport: TransportLocal}}
	b := &Model{Spectra: []*Spectrum{{Model: "qedqcd"}}, Bootstrap: &Bootstrap{Transport: TransportSocketIO}}

	// Act
	a.Merge(b)
	a.Merge(nil)

	// Assert
	require.Len(t, a.Spectra, 2)
	assert.Equal(t, "qedqcd", a.Spectra[1].Model)
	assert.Equal(t, TransportSocketIO, a.Bootstrap.Transport)
}
