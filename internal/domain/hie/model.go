// Package hie exposes the health information exchange endpoints: patient
// demographics, service history, visit detail, and admission detail. Every
// request carries the hospital code and patient citizen id in the body and is
// authorized by the platform gate before any query runs.
package hie

import "errors"

// PatientRequest looks a patient up by citizen id.
type PatientRequest struct {
	HospCode string `json:"hospcode"`
	CID      string `json:"cid"`
}

func (r PatientRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.CID == "" {
		return errors.New("cid is required")
	}
	return nil
}

// ServiceRequest lists outpatient encounters from a start date up to today.
type ServiceRequest struct {
	HospCode string `json:"hospcode"`
	CID      string `json:"cid"`
	HN       string `json:"hn"`
	VstDate  string `json:"vstdate"`
}

func (r ServiceRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.CID == "" {
		return errors.New("cid is required")
	}
	if r.HN == "" {
		return errors.New("hn is required")
	}
	if r.VstDate == "" {
		return errors.New("vstdate is required")
	}
	return nil
}

// VisitRequest fetches one encounter with its clinical sub-resources.
type VisitRequest struct {
	HospCode string `json:"hospcode"`
	CID      string `json:"cid"`
	HN       string `json:"hn"`
	VN       string `json:"vn"`
	VstDate  string `json:"vstdate"`
}

func (r VisitRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.CID == "" {
		return errors.New("cid is required")
	}
	if r.HN == "" {
		return errors.New("hn is required")
	}
	if r.VN == "" {
		return errors.New("vn is required")
	}
	if r.VstDate == "" {
		return errors.New("vstdate is required")
	}
	return nil
}

// AdmitRequest fetches one inpatient stay: the originating encounter plus the
// admission record and ward procedures.
type AdmitRequest struct {
	HospCode string `json:"hospcode"`
	CID      string `json:"cid"`
	HN       string `json:"hn"`
	VN       string `json:"vn"`
	AN       string `json:"an"`
	VstDate  string `json:"vstdate"`
}

func (r AdmitRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.CID == "" {
		return errors.New("cid is required")
	}
	if r.HN == "" {
		return errors.New("hn is required")
	}
	if r.VN == "" {
		return errors.New("vn is required")
	}
	if r.AN == "" {
		return errors.New("an is required")
	}
	if r.VstDate == "" {
		return errors.New("vstdate is required")
	}
	return nil
}
