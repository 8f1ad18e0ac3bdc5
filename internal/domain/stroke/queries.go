package stroke

import "github.com/hie/agent/internal/platform/shape"

// Both reports restrict to cerebrovascular ICD-10 codes and to dispensed
// drug items (icode prefix '1'), and collapse the dispensed items into one
// pipe-separated drug_name column per encounter.

const sqlIPD = `
	SELECT o.hcode AS hospcode, o.vstdate, p.cid, o.hn, o.vn,
	       p.pname, p.fname, p.lname, o.an, p.sex, p.nationality, p.birthday,
	       id.icd10, i.regdate, id.modify_datetime::date AS dxdate, i.dchdate,
	       d.name AS status,
	       concat(p.addrpart, ' ', p.road) AS address, p.moopart AS moo,
	       t3.name AS tambon, t2.name AS ampur, t1.name AS changwat,
	       p.tmbpart, p.amppart AS ampart, p.chwpart,
	       p.hometel AS phone, p.informtel AS relation_phone, p.informname AS relation_name,
	       string_agg(di.sticker_short_name, '|') AS drug_name
	FROM ovst o
	INNER JOIN ipt i ON i.an = o.an
	LEFT JOIN opitemrece r ON r.an = o.an
	LEFT JOIN drugitems di ON di.icode = r.icode
	LEFT JOIN iptdiag id ON id.an = i.an
	LEFT JOIN patient p ON p.hn = i.hn
	LEFT JOIN dchtype d ON d.dchtype = i.dchtype
	LEFT JOIN thaiaddress t1 ON t1.chwpart = p.chwpart AND t1.amppart = '00' AND t1.tmbpart = '00'
	LEFT JOIN thaiaddress t2 ON t2.chwpart = p.chwpart AND t2.amppart = p.amppart AND t2.tmbpart = '00'
	LEFT JOIN thaiaddress t3 ON t3.chwpart = p.chwpart AND t3.amppart = p.amppart AND t3.tmbpart = p.tmbpart
	WHERE i.dchdate = $1
	  AND i.dchdate IS NOT NULL
	  AND id.icd10 BETWEEN 'I60' AND 'I69'
	  AND r.icode LIKE '1%'
	GROUP BY o.vn, o.hcode, o.vstdate, p.cid, o.hn, p.pname, p.fname, p.lname,
	         o.an, p.sex, p.nationality, p.birthday, id.icd10, i.regdate,
	         id.modify_datetime, i.dchdate, d.name, p.addrpart, p.road, p.moopart,
	         t3.name, t2.name, t1.name, p.tmbpart, p.amppart, p.chwpart,
	         p.hometel, p.informtel, p.informname`

var ipdPlan = shape.Plan{
	shape.Str("hospcode"),
	shape.Str("cid"),
	shape.Str("hn"),
	shape.Str("an"),
	shape.Str("pname"),
	shape.Str("fname"),
	shape.Str("lname"),
	shape.Str("sex"),
	shape.StrFrom("nation", "nationality"),
	shape.Date("birthday"),
	shape.Str("icd10"),
	shape.Date("vstdate"),
	shape.Date("regdate"),
	shape.Date("dxdate"),
	shape.Date("dchdate"),
	shape.Str("status"),
	shape.Str("address"),
	shape.Str("moo"),
	shape.Str("tambon"),
	shape.Str("ampur"),
	shape.Str("changwat"),
	shape.Str("tmbpart"),
	shape.Str("ampart"),
	shape.Str("chwpart"),
	shape.Str("phone"),
	shape.Str("relation_phone"),
	shape.Str("relation_name"),
	shape.Str("drug_name"),
}

// Outpatient cases exclude encounters that ended in an admission; for those
// the IPD report is authoritative.
const sqlOPD = `
	SELECT o.hcode AS hospcode, o.vstdate, p.cid, o.hn, o.vn,
	       p.pname, p.fname, p.lname, p.sex, p.nationality, p.birthday,
	       id.icd10, id.vstdate AS dxdate, o.vstdate AS dchdate,
	       d.name AS status,
	       concat(p.addrpart, ' ', p.road) AS address, p.moopart AS moo,
	       t3.name AS tambon, t2.name AS ampur, t1.name AS changwat,
	       p.tmbpart, p.amppart AS ampart, p.chwpart,
	       p.hometel AS phone, p.informtel AS relation_phone, p.informname AS relation_name,
	       string_agg(di.sticker_short_name, '|') AS drug_name
	FROM ovst o
	LEFT JOIN opitemrece r ON r.vn = o.vn
	LEFT JOIN drugitems di ON di.icode = r.icode
	LEFT JOIN ovstdiag id ON id.vn = o.vn
	LEFT JOIN patient p ON p.hn = o.hn
	LEFT JOIN ovstost d ON d.ovstost = o.ovstost
	LEFT JOIN thaiaddress t1 ON t1.chwpart = p.chwpart AND t1.amppart = '00' AND t1.tmbpart = '00'
	LEFT JOIN thaiaddress t2 ON t2.chwpart = p.chwpart AND t2.amppart = p.amppart AND t2.tmbpart = '00'
	LEFT JOIN thaiaddress t3 ON t3.chwpart = p.chwpart AND t3.amppart = p.amppart AND t3.tmbpart = p.tmbpart
	WHERE o.vstdate = $1
	  AND id.icd10 BETWEEN 'I60' AND 'I69'
	  AND r.icode LIKE '1%'
	  AND o.an IS NULL
	GROUP BY o.vn, o.hcode, o.vstdate, p.cid, o.hn, p.pname, p.fname, p.lname,
	         p.sex, p.nationality, p.birthday, id.icd10, id.vstdate, d.name,
	         p.addrpart, p.road, p.moopart, t3.name, t2.name, t1.name,
	         p.tmbpart, p.amppart, p.chwpart, p.hometel, p.informtel, p.informname`

var opdPlan = shape.Plan{
	shape.Str("hospcode"),
	shape.Str("cid"),
	shape.Str("hn"),
	shape.Str("vn"),
	shape.Str("pname"),
	shape.Str("fname"),
	shape.Str("lname"),
	shape.Str("sex"),
	shape.StrFrom("nation", "nationality"),
	shape.Date("birthday"),
	shape.Str("icd10"),
	shape.Date("vstdate"),
	shape.Date("dxdate"),
	shape.Date("dchdate"),
	shape.Str("status"),
	shape.Str("address"),
	shape.Str("moo"),
	shape.Str("tambon"),
	shape.Str("ampur"),
	shape.Str("changwat"),
	shape.Str("tmbpart"),
	shape.Str("ampart"),
	shape.Str("chwpart"),
	shape.Str("phone"),
	shape.Str("relation_phone"),
	shape.Str("relation_name"),
	shape.Str("drug_name"),
}
