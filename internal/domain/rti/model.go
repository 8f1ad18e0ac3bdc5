// Package rti exposes the road traffic injury reports: emergency accident
// registrations and the surveyed accident-prone locations. Both read from
// database views maintained alongside the hospital information system, so the
// column set is owned by the view definitions rather than base tables.
package rti

import "errors"

// AccidentRequest lists accident registrations on one service date.
type AccidentRequest struct {
	HospCode string `json:"hospcode"`
	VstDate  string `json:"vstdate"`
}

func (r AccidentRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	if r.VstDate == "" {
		return errors.New("vstdate is required")
	}
	return nil
}

// PlaceRequest lists every surveyed accident-prone location.
type PlaceRequest struct {
	HospCode string `json:"hospcode"`
}

func (r PlaceRequest) Validate() error {
	if r.HospCode == "" {
		return errors.New("hospcode is required")
	}
	return nil
}
