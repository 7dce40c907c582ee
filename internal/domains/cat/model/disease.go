package model

import (
	"fmt"
)

// =====================================================
// DISEASE MARKERS
// =====================================================

// DiseaseMarker is the test result for a single infectious disease.
type DiseaseMarker string

const (
	MarkerPositive  DiseaseMarker = "positive"
	MarkerNegative  DiseaseMarker = "negative"
	MarkerNotTested DiseaseMarker = "not_tested"
)

func (m DiseaseMarker) IsValid() bool {
	switch m {
	case MarkerPositive, MarkerNegative, MarkerNotTested:
		return true
	}
	return false
}

// IsCompatibleWith reports whether two test results allow cohabitation.
// An untested marker is compatible with anything; a conflict needs two
// known results that disagree.
func (m DiseaseMarker) IsCompatibleWith(other DiseaseMarker) bool {
	if m == MarkerNotTested || other == MarkerNotTested {
		return true
	}
	return m == other
}

// =====================================================
// DISEASE STATUS
// =====================================================

// DiseaseStatus holds a cat's FIV and FeLV test results.
type DiseaseStatus struct {
	Fiv  DiseaseMarker `json:"fiv" db:"fiv"`
	Felv DiseaseMarker `json:"felv" db:"felv"`
}

// NewDiseaseStatus validates both markers and builds the value object.
func NewDiseaseStatus(fiv, felv DiseaseMarker) (DiseaseStatus, error) {
	if !fiv.IsValid() {
		return DiseaseStatus{}, NewInvalidDiseaseMarkerError("fiv", string(fiv))
	}
	if !felv.IsValid() {
		return DiseaseStatus{}, NewInvalidDiseaseMarkerError("felv", string(felv))
	}
	return DiseaseStatus{Fiv: fiv, Felv: felv}, nil
}

// UntestedDiseaseStatus is the default status for a newly registered cat.
func UntestedDiseaseStatus() DiseaseStatus {
	return DiseaseStatus{Fiv: MarkerNotTested, Felv: MarkerNotTested}
}

// IsCompatibleWith reports whether two cats can share an announcement.
// Both markers must be compatible; the relation is symmetric.
func (d DiseaseStatus) IsCompatibleWith(other DiseaseStatus) bool {
	return d.Fiv.IsCompatibleWith(other.Fiv) && d.Felv.IsCompatibleWith(other.Felv)
}

// HasFiv reports a confirmed positive FIV test.
func (d DiseaseStatus) HasFiv() bool {
	return d.Fiv == MarkerPositive
}

// HasFelv reports a confirmed positive FeLV test.
func (d DiseaseStatus) HasFelv() bool {
	return d.Felv == MarkerPositive
}

// HasAnyInfectiousDisease reports a confirmed positive on either marker.
func (d DiseaseStatus) HasAnyInfectiousDisease() bool {
	return d.HasFiv() || d.HasFelv()
}

// IsSafeToMixWithOtherCats reports that neither marker is a declared positive.
func (d DiseaseStatus) IsSafeToMixWithOtherCats() bool {
	return !d.HasAnyInfectiousDisease()
}

func (d DiseaseStatus) String() string {
	return fmt.Sprintf("fiv=%s felv=%s", d.Fiv, d.Felv)
}
