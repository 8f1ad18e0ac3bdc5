package rti

import "github.com/hie/agent/internal/platform/shape"

// The accident view keeps the national 43-folder field names, which are
// upper case and quoted; local enrichment columns are lower case.

const sqlAccident = `
	SELECT * FROM v_rti_accident
	WHERE vstdate = $1
	ORDER BY "DATETIME_SERV" DESC`

var accidentPlan = shape.Plan{
	shape.Str("HOSPCODE"),
	shape.Str("PID"),
	shape.Str("SEQ"),
	shape.DateTime("DATETIME_SERV"),
	shape.DateTime("DATETIME_AE"),
	shape.Str("AETYPE"),
	shape.Str("AEPLACE"),
	shape.Str("TYPEIN_AE"),
	shape.Str("TRAFFIC"),
	shape.Str("VEHICLE"),
	shape.Str("ALCOHOL"),
	shape.Str("NACROTIC_DRUG"),
	shape.Str("BELT"),
	shape.Str("HELMET"),
	shape.Str("AIRWAY"),
	shape.Str("STOPBLEED"),
	shape.Str("SPLINT"),
	shape.Str("FLUID"),
	shape.Str("URGENCY"),
	shape.Str("COMA_EYE"),
	shape.Str("COMA_SPEAK"),
	shape.Str("COMA_MOVEMENT"),
	shape.DateTime("D_UPDATE"),
	shape.Str("CID"),
	shape.Str("HOSPCODE9"),
	shape.Str("accident_stdcode"),
	shape.Str("pt_name"),
	shape.Str("hn"),
	shape.Str("an"),
	shape.Str("referhos"),
	shape.Str("dead_in"),
	shape.Str("dead_before"),
	shape.Str("place_other"),
}

const sqlPlace = `
	SELECT * FROM v_rti_place
	ORDER BY accident_stdcode ASC`

var placePlan = shape.Plan{
	shape.Str("accident_stdcode"),
	shape.Str("accident_place_type_name"),
	shape.Str("latitude"),
	shape.Str("longitude"),
	shape.Str("tamboncode"),
	shape.Str("ampurcode"),
	shape.Str("road"),
	shape.Str("export_code"),
}
