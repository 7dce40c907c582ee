package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allMarkers = []DiseaseMarker{MarkerPositive, MarkerNegative, MarkerNotTested}

func TestMarkerCompatibility_Symmetric(t *testing.T) {
	for _, a := range allMarkers {
		for _, b := range allMarkers {
			assert.Equal(t, a.IsCompatibleWith(b), b.IsCompatibleWith(a),
				"compatibility must be symmetric for %s / %s", a, b)
		}
	}
}

func TestMarkerCompatibility_NotTestedIsUniversal(t *testing.T) {
	for _, m := range allMarkers {
		assert.True(t, MarkerNotTested.IsCompatibleWith(m))
		assert.True(t, m.IsCompatibleWith(MarkerNotTested))
	}
}

func TestMarkerCompatibility_OnlyTestedDisagreementConflicts(t *testing.T) {
	conflicts := 0
	for _, a := range allMarkers {
		for _, b := range allMarkers {
			if !a.IsCompatibleWith(b) {
				conflicts++
				assert.NotEqual(t, MarkerNotTested, a)
				assert.NotEqual(t, MarkerNotTested, b)
				assert.NotEqual(t, a, b)
			}
		}
	}
	// positive/negative in both orders
	assert.Equal(t, 2, conflicts)
}

func TestDiseaseStatusCompatibility_BothMarkersMustMatch(t *testing.T) {
	fivPositive := DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}
	fivNegative := DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative}
	untested := UntestedDiseaseStatus()

	assert.False(t, fivPositive.IsCompatibleWith(fivNegative), "fiv disagreement must conflict")
	assert.False(t, fivNegative.IsCompatibleWith(fivPositive))
	assert.True(t, fivPositive.IsCompatibleWith(fivPositive))
	assert.True(t, untested.IsCompatibleWith(fivPositive))
	assert.True(t, untested.IsCompatibleWith(fivNegative))
}

func TestDiseaseStatusCompatibility_SymmetricOverAllPairs(t *testing.T) {
	statuses := make([]DiseaseStatus, 0, 9)
	for _, fiv := range allMarkers {
		for _, felv := range allMarkers {
			statuses = append(statuses, DiseaseStatus{Fiv: fiv, Felv: felv})
		}
	}

	for _, a := range statuses {
		for _, b := range statuses {
			assert.Equal(t, a.IsCompatibleWith(b), b.IsCompatibleWith(a),
				"asymmetric result for %s vs %s", a, b)
		}
	}
}

func TestDiseaseStatus_DerivedFlags(t *testing.T) {
	tests := []struct {
		name      string
		status    DiseaseStatus
		hasFiv    bool
		hasFelv   bool
		hasAny    bool
		safeToMix bool
	}{
		{"both negative", DiseaseStatus{MarkerNegative, MarkerNegative}, false, false, false, true},
		{"untested", UntestedDiseaseStatus(), false, false, false, true},
		{"fiv positive", DiseaseStatus{MarkerPositive, MarkerNegative}, true, false, true, false},
		{"felv positive", DiseaseStatus{MarkerNegative, MarkerPositive}, false, true, true, false},
		{"both positive", DiseaseStatus{MarkerPositive, MarkerPositive}, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasFiv, tt.status.HasFiv())
			assert.Equal(t, tt.hasFelv, tt.status.HasFelv())
			assert.Equal(t, tt.hasAny, tt.status.HasAnyInfectiousDisease())
			assert.Equal(t, tt.safeToMix, tt.status.IsSafeToMixWithOtherCats())
		})
	}
}

func TestNewDiseaseStatus_RejectsUnknownMarkers(t *testing.T) {
	_, err := NewDiseaseStatus("maybe", MarkerNegative)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDiseaseMarker))

	_, err = NewDiseaseStatus(MarkerNegative, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDiseaseMarker))

	status, err := NewDiseaseStatus(MarkerPositive, MarkerNotTested)
	require.NoError(t, err)
	assert.Equal(t, MarkerPositive, status.Fiv)
	assert.Equal(t, MarkerNotTested, status.Felv)
}
