package hie

import "github.com/hie/agent/internal/platform/shape"

// The schema mirrors the hospital information system tables replicated into
// the reporting database. Colliding column names across joins are aliased in
// the SQL (hn_0, vn_0, an_0, vstdate_0, vsttime_0) so the field plans never
// depend on join order. TIME columns are rendered to text in SQL because the
// consumers expect HH:MM:SS strings, not durations.

const sqlPatient = `
	SELECT p.cid, p.hn, p.pname, p.fname, p.lname, p.birthday, p.hometel, p.sex,
	       concat(p.addrpart, ' ', p.road) AS address, p.moopart AS moo,
	       t3.name AS tambon, t2.name AS ampur, t1.name AS changwat
	FROM patient p
	LEFT OUTER JOIN thaiaddress t1 ON t1.chwpart = p.chwpart AND t1.amppart = '00' AND t1.tmbpart = '00'
	LEFT OUTER JOIN thaiaddress t2 ON t2.chwpart = p.chwpart AND t2.amppart = p.amppart AND t2.tmbpart = '00'
	LEFT OUTER JOIN thaiaddress t3 ON t3.chwpart = p.chwpart AND t3.amppart = p.amppart AND t3.tmbpart = p.tmbpart
	WHERE p.cid = $1`

var patientPlan = shape.Plan{
	shape.Str("cid"),
	shape.Str("pname"),
	shape.Str("fname"),
	shape.Str("lname"),
	shape.Str("hn"),
	shape.StrFrom("tel", "hometel"),
	shape.StrFrom("gender", "sex"),
	shape.Date("birthday"),
	shape.Str("address"),
	shape.Str("moo"),
	shape.Str("tambon"),
	shape.Str("ampur"),
	shape.Str("changwat"),
}

const sqlService = `
	SELECT p.hn, o.vn, o.an, o.vstdate, to_char(o.vsttime, 'HH24:MI:SS') AS vsttime,
	       i.tname, pt.name AS cname, o.pttypeno, i.name AS iname, i.code3,
	       v.paid_money, d.name AS dname
	FROM patient p
	LEFT JOIN ovst o ON p.hn = o.hn
	LEFT JOIN pttype pt ON o.pttype = pt.pttype
	LEFT JOIN vn_stat v ON o.vn = v.vn
	LEFT JOIN icd101 i ON v.pdx = i.code
	LEFT JOIN doctor d ON o.doctor = d.code
	WHERE p.cid = $1 AND p.hn = $2 AND o.vstdate BETWEEN $3 AND CURRENT_DATE
	ORDER BY o.vstdate DESC, o.vsttime DESC`

var servicePlan = shape.Plan{
	shape.Str("hn"),
	shape.Str("vn"),
	shape.Str("an"),
	shape.Date("vstdate"),
	shape.Str("vsttime"),
	shape.Str("code3"),
	shape.Str("tname"),
	shape.Str("iname"),
	shape.Str("cname"),
	shape.Str("dname"),
}

// Visit and admit share the same primary query: the encounter joined with the
// triage screen, payer, principal diagnosis, physician, specialty and next
// appointment.
const sqlEncounter = `
	SELECT p.hn AS hn_0, p.cid,
	       concat(p.pname, ' ', p.fname, ' ', p.lname) AS nm,
	       p.birthday,
	       (EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM p.birthday)) AS birthday_year,
	       (SELECT hospitalname FROM opdconfig LIMIT 1) AS so,
	       o.vn AS vn_0, o.an AS an_0, o.vstdate AS vstdate_0,
	       to_char(o.vsttime, 'HH24:MI:SS') AS vsttime_0,
	       i.tname, pt.name AS cname, o.pttypeno, i.name AS iname, i.code3,
	       v.paid_money, d.name AS dname,
	       pn.name AS pnname, ost.name AS novstost, ist.name AS novstist,
	       a.nextdate, sc.*
	FROM patient p
	LEFT JOIN ovst o ON p.hn = o.hn
	LEFT JOIN opdscreen sc ON sc.vn = o.vn
	LEFT JOIN pttype pt ON o.pttype = pt.pttype
	LEFT JOIN vn_stat v ON o.vn = v.vn
	LEFT JOIN icd101 i ON v.pdx = i.code
	LEFT JOIN doctor d ON o.doctor = d.code
	LEFT JOIN spclty pn ON v.spclty = pn.spclty
	LEFT JOIN ovstist ist ON o.ovstist = ist.ovstist
	LEFT JOIN ovstost ost ON o.ovstost = ost.ovstost
	LEFT OUTER JOIN oapp a ON a.vn = o.vn
	WHERE o.vn = $1 AND p.hn = $2`

var encounterPlan = shape.Plan{
	shape.Str("cid"),
	shape.StrFrom("hn", "hn_0"),
	shape.StrFrom("vn", "vn_0"),
	shape.StrFrom("an", "an_0"),
	shape.DateFrom("vstdate", "vstdate_0"),
	shape.StrFrom("vsttime", "vsttime_0"),
	shape.Str("code3"),
	shape.Str("tname"),
	shape.Str("iname"),
	shape.Str("cname"),
	shape.Str("dname"),
	shape.Str("pttypeno"),
	shape.Date("birthday"),
	shape.Str("so"),
	shape.Str("pnname"),
	shape.Str("novstist"),
	shape.Str("novstost"),
	shape.Num("bw"),
	shape.Num("height"),
	shape.Num("temperature"),
	shape.Num("bps"),
	shape.Num("bpd"),
	shape.Num("rr"),
	shape.Num("pulse"),
	shape.Num("bmi"),
	shape.Num("fbs"),
	shape.Str("cc"),
	shape.Str("hpi"),
	shape.Str("fh"),
	shape.Str("pmh"),
	shape.Str("pe"),
	shape.Str("pe_ga"),
	shape.Str("pe_ga_text"),
	shape.Str("pe_heent"),
	shape.Str("pe_heent_text"),
	shape.Str("pe_heart"),
	shape.Str("pe_heart_text"),
	shape.Str("pe_lung"),
	shape.Str("pe_lung_text"),
	shape.Str("pe_ab"),
	shape.Str("pe_ab_text"),
}

// Secondary diagnoses of the encounter. diagtype '1' is the principal
// diagnosis, already carried on the primary row.
const sqlVisitDiagnosis = `
	SELECT i.code3, i.tname, i.name AS iname
	FROM ovst o
	INNER JOIN ovstdiag ov ON o.vn = ov.vn
	INNER JOIN icd101 i ON ov.icd10 = i.code
	WHERE o.vn = $1 AND ov.diagtype <> '1'`

const sqlAdmitDiagnosis = `
	SELECT i.code3, i.tname, i.name AS iname
	FROM ovst o
	INNER JOIN ovstdiag ov ON o.vn = ov.vn
	INNER JOIN icd101 i ON ov.icd10 = i.code
	INNER JOIN pttype pt ON o.pttype = pt.pttype
	INNER JOIN vn_stat v ON o.vn = v.vn
	WHERE o.vn = $1 AND ov.diagtype <> '1'
	ORDER BY o.vstdate, o.vsttime`

var diagnosisPlan = shape.Plan{
	shape.Str("code3"),
	shape.Str("tname"),
	shape.Str("iname"),
}

const sqlVisitDrug = `
	SELECT b.name, b.strength, a.qty, a.sum_price, d.shortlist
	FROM opitemrece a
	INNER JOIN s_drugitems b ON a.icode = b.icode
	LEFT OUTER JOIN drugusage d ON d.drugusage = a.drugusage
	WHERE a.vn = $1`

const sqlAdmitDrug = `
	SELECT b.name, b.strength, a.qty, a.sum_price, d.shortlist
	FROM opitemrece a
	INNER JOIN s_drugitems b ON a.icode = b.icode
	LEFT OUTER JOIN drugusage d ON d.drugusage = a.drugusage
	WHERE a.vn = $1 OR a.an = $2`

var drugPlan = shape.Plan{
	shape.Str("name"),
	shape.Str("strength"),
	shape.Str("shortlist"),
	shape.Num("qty"),
	shape.Num("sum_price"),
}

// Results whose item name suggests HIV serology or an interpretation line are
// masked; disclosure requires the patient's consent and never happens over
// this exchange.
const sqlLab = `
	SELECT l.lab_items_code, i.lab_items_name, i.lab_items_normal_value,
	       CASE WHEN i.lab_items_name NOT ILIKE '%hiv%'
	             AND i.lab_items_name NOT ILIKE '%interpretation%'
	            THEN l.lab_order_result ELSE 'ปกปิด' END AS lab_order_result
	FROM lab_head h
	INNER JOIN lab_order l ON h.lab_order_number = l.lab_order_number
	INNER JOIN lab_items i ON i.lab_items_code = l.lab_items_code
	WHERE h.vn = $1
	ORDER BY h.order_date DESC`

var labPlan = shape.Plan{
	shape.Str("lab_items_code"),
	shape.Str("lab_items_name"),
	shape.Str("lab_order_result"),
	shape.Str("lab_items_normal_value"),
}

const sqlAllergy = `
	SELECT oa.agent, oa.symptom, oa.report_date, oa.department
	FROM opd_allergy oa
	WHERE oa.hn = $1`

var allergyPlan = shape.Plan{
	shape.Date("report_date"),
	shape.Str("agent"),
	shape.Str("symptom"),
	shape.Str("department"),
}

const sqlProcedureER = `
	SELECT ero.er_oper_code, ero.oper_qty, ero.oper_cost,
	       eoc.name AS er_oper_name, d.name AS doctor_name
	FROM er_regist_oper ero
	LEFT OUTER JOIN er_oper_code eoc ON eoc.er_oper_code = ero.er_oper_code
	LEFT OUTER JOIN doctor d ON d.code = ero.doctor
	WHERE ero.vn = $1
	ORDER BY ero.rec_no ASC`

var procedureERPlan = shape.Plan{
	shape.Str("er_oper_code"),
	shape.Str("er_oper_name"),
	shape.Num("oper_qty"),
	shape.Num("oper_cost"),
}

const sqlProcedureOPD = `
	SELECT dot.er_oper_code, dot.price,
	       eoc.name AS opd_oper_name, d.name AS doctor_name
	FROM doctor_operation dot
	LEFT OUTER JOIN er_oper_code eoc ON eoc.er_oper_code = dot.er_oper_code
	LEFT OUTER JOIN doctor d ON d.code = dot.doctor
	WHERE dot.vn = $1`

var procedureOPDPlan = shape.Plan{
	shape.StrFrom("opd_oper_code", "er_oper_code"),
	shape.Str("opd_oper_name"),
	shape.Num("price"),
}

const sqlAdmission = `
	SELECT a.an, i.regdate, a.admday, i.prediag, i.dchdate,
	       to_char(i.dchtime, 'HH24:MI:SS') AS dchtime,
	       d1.name AS dname1, d2.name AS dname2, pt.name AS pname,
	       w.name AS wname, ip.name AS ipname, dc.name AS dcname, ds.name AS dsname
	FROM an_stat a
	INNER JOIN ipt i ON i.an = a.an
	LEFT JOIN doctor d1 ON i.admdoctor = d1.code
	LEFT JOIN doctor d2 ON i.dch_doctor = d2.code
	LEFT JOIN pttype pt ON i.pttype = pt.pttype
	LEFT JOIN ward w ON i.ward = w.ward
	LEFT JOIN ipt_spclty ip ON i.ipt_spclty = ip.ipt_spclty
	LEFT JOIN dchtype dc ON i.dchtype = dc.dchtype
	LEFT JOIN dchstts ds ON i.dchstts = ds.dchstts
	WHERE a.vn = $1`

var admissionPlan = shape.Plan{
	shape.Str("an"),
	shape.Date("regdate"),
	shape.Str("dchtime"),
	shape.Str("wname"),
	shape.Str("admday"),
	shape.Str("dname1"),
	shape.Str("pname"),
	shape.Str("ipname"),
	shape.Str("prediag"),
	shape.Date("dchdate"),
	shape.Str("dname2"),
	shape.Str("dcname"),
	shape.Str("dsname"),
}

const sqlProcedureAN = `
	SELECT ino.ref_date, ino.oper_qty, ino.total_price,
	       ioc.name AS oper_name, d.name AS doctor_name
	FROM ipt_nurse_oper ino
	LEFT OUTER JOIN ipt_oper_code ioc ON ioc.ipt_oper_code = ino.ipt_oper_code
	LEFT OUTER JOIN doctor d ON d.code = ino.doctor
	WHERE ino.an = $1
	ORDER BY ino.ref_date ASC`

var procedureANPlan = shape.Plan{
	shape.Date("ref_date"),
	shape.Str("oper_name"),
	shape.Num("oper_qty"),
	shape.Num("total_price"),
}
