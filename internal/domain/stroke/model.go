// Package stroke exposes the stroke case-finding reports consumed by the
// provincial fast-track registry: discharged inpatients and outpatient
// encounters carrying a cerebrovascular diagnosis (ICD-10 I60 to I69).
package stroke

import "errors"

// IPDRequest lists stroke inpatients discharged on one day.
type IPDRequest struct {
	HospCode string `json:"hospcode"`
	DchDate  string `json:"dchdate"`
}

func (r IPDRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.DchDate == "" {
		return errors.New("dchdate is required")
	}
	return nil
}

// OPDRequest lists stroke outpatient encounters on one service date.
type OPDRequest struct {
	HospCode string `json:"hospcode"`
	VstDate  string `json:"vstdate"`
}

func (r OPDRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.VstDate == "" {
		return errors.New("vstdate is required")
	}
	return nil
}
