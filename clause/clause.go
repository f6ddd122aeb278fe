// Package clause scores retrieved chunks against known policy clause
// families and filters out chunks unlikely to answer the question.
package clause

import (
	"regexp"

	"github.com/lavesh00/HackRx-6/query"
)

// family is a recognizable kind of policy clause. Weight reflects how
// decisive a match is: rare, high-precision clauses score above common ones.
type family struct {
	name     string
	weight   float64
	patterns []*regexp.Regexp
}

func fam(name string, weight float64, patterns ...string) family {
	f := family{name: name, weight: weight}
	for _, p := range patterns {
		f.patterns = append(f.patterns, regexp.MustCompile(p))
	}
	return f
}

var (
	famAirAmbulance = fam("air_ambulance", 1.5,
		`(?i)air[\s\-]*ambulance`,
		`(?i)aerial (?:evacuation|transport)`,
		`(?i)\bairlift(?:ed|ing)?\b`,
	)
	famWellMother = fam("well_mother", 1.4,
		`(?i)well[\s\-]*mother`,
		`(?i)mother care (?:cover|expenses)`,
	)
	famWellBaby = fam("well_baby", 1.4,
		`(?i)well[\s\-]*baby`,
		`(?i)new\s*born baby (?:cover|expenses)`,
	)
	famRegulatory = fam("regulatory", 1.3,
		`(?i)\birdai\b`,
		`(?i)insurance regulatory and development authority`,
		`(?i)regulations?,? \d{4}`,
	)
	famDistanceTravel = fam("distance_travel", 1.3,
		`(?i)\d+\s*(?:km|kilometers?|kilometres?)\b`,
		`(?i)distance (?:limit|of|covered)`,
		`(?i)nearest (?:hospital|medical facility)`,
	)
	famProportionate = fam("proportionate_payment", 1.2,
		`(?i)proportionate(?:ly)?(?: deduction| payment)?`,
		`(?i)pro[\s\-]*rata`,
	)
	famWaitingPeriod = fam("waiting_period", 1.1,
		`(?i)waiting period`,
		`(?i)\bmoratorium\b`,
		`(?i)continuous(?:ly)? covered for`,
	)
	famGracePeriod = fam("grace_period", 1.1,
		`(?i)grace period`,
		`(?i)days of grace`,
	)
	famMaternity = fam("maternity", 1.1,
		`(?i)\bmaternity\b`,
		`(?i)\bpregnancy\b`,
		`(?i)\bchildbirth\b`,
		`(?i)lawful medical termination`,
	)
	famPreExisting = fam("pre_existing", 1.1,
		`(?i)pre[\s\-]*existing disease`,
		`(?i)\bped\b`,
	)
	famExclusion = fam("exclusion_general", 1.0,
		`(?i)shall not (?:be liable|cover|pay)`,
		`(?i)\bnot covered\b`,
		`(?i)\bexcluded?\b`,
		`(?i)permanent exclusions?`,
	)
	famRoomRent = fam("room_rent", 1.0,
		`(?i)room rent`,
		`(?i)room (?:and boarding|charges)`,
		`(?i)accommodation charges`,
	)
	famICU = fam("icu_charges", 1.0,
		`(?i)\bicu\b`,
		`(?i)intensive care unit`,
	)
	famSumInsured = fam("sum_insured", 1.0,
		`(?i)sum insured`,
		`(?i)sum assured`,
	)
	famCoPayment = fam("co_payment", 1.0,
		`(?i)co[\s\-]*pay(?:ment)?`,
		`(?i)cost shar(?:e|ing)`,
	)
	famDeductible = fam("deductible", 1.0,
		`(?i)\bdeductible\b`,
		`(?i)\bexcess\b`,
	)
	famCataract = fam("cataract", 1.0,
		`(?i)\bcataract\b`,
		`(?i)intra[\s\-]*ocular lens`,
	)
	famAyush = fam("ayush", 1.0,
		`(?i)\bayush\b`,
		`(?i)\bayurved(?:a|ic)?\b`,
		`(?i)\bhomeopath(?:y|ic)?\b`,
		`(?i)\bunani\b`,
		`(?i)\bsiddha\b`,
	)
	famDayCare = fam("day_care", 1.0,
		`(?i)day[\s\-]*care (?:procedure|treatment)s?`,
	)
	famOrganDonor = fam("organ_donor", 1.0,
		`(?i)organ donor`,
		`(?i)donor expenses`,
		`(?i)harvesting (?:of )?the organ`,
	)
	famRoadAmbulance = fam("road_ambulance", 1.0,
		`(?i)road ambulance`,
		`(?i)ambulance (?:charges|expenses|services)`,
	)
	famHealthCheck = fam("health_checkup", 1.0,
		`(?i)health check[\s\-]*up`,
		`(?i)preventive health`,
	)
	famNoClaimBonus = fam("no_claim_bonus", 1.0,
		`(?i)no[\s\-]*claim (?:bonus|discount)`,
		`(?i)cumulative bonus`,
	)
	famDefinition = fam("definitions", 1.0,
		`(?i)\bshall mean\b`,
		`(?i)\bmeans\b`,
		`(?i)defined as`,
	)
	famUIN = fam("uin", 1.0,
		`(?i)\buin\b`,
		`(?i)unique identification number`,
		`\b[A-Z]{3,}[0-9]{2,}[A-Z0-9]*\b`,
	)
	famTableBenefit = fam("table_benefits", 1.0,
		`(?i)=== table ===`,
		`(?i)schedule of benefits`,
		`(?i)\bplan [abc]\b`,
		`(?i)\bzone [123]\b`,
	)
	famClaimProcedure = fam("claim_procedure", 1.0,
		`(?i)claim (?:intimation|settlement|procedure|documents)`,
		`(?i)discharge summary`,
	)
	famRenewal = fam("renewal", 1.0,
		`(?i)renew(?:al|able)`,
		`(?i)lifelong`,
	)
	famHospitalization = fam("hospitalization", 1.0,
		`(?i)hospitali[sz]ation`,
		`(?i)in[\s\-]*patient (?:care|treatment)`,
		`(?i)\bhospital\b`,
	)
	famModernTreatment = fam("modern_treatment", 1.0,
		`(?i)robotic surg(?:ery|eries)`,
		`(?i)modern treatment`,
		`(?i)advanced technolog(?:y|ies)`,
	)
	famDomiciliary = fam("domiciliary", 1.0,
		`(?i)\bdomiciliary\b`,
	)
	famRestoration = fam("restoration", 1.0,
		`(?i)restor(?:e|ation) of (?:the )?sum insured`,
		`(?i)\brecharge\b`,
	)
)

// typeFamilies maps each question type to the clause families whose presence
// in a chunk suggests it answers that kind of question. Families repeat
// across types; matches are deduplicated per chunk.
var typeFamilies = map[query.Type][]family{
	query.TypeNumerical: {
		famRoomRent, famICU, famSumInsured, famCoPayment,
		famDeductible, famProportionate,
	},
	query.TypeUIN:          {famUIN, famRegulatory},
	query.TypeAirAmbulance: {famAirAmbulance, famDistanceTravel, famRoadAmbulance},
	query.TypeMaternity:    {famMaternity, famWellMother, famWellBaby},
	query.TypeWaiting:      {famWaitingPeriod, famPreExisting},
	query.TypeGrace:        {famGracePeriod, famRenewal},
	query.TypeExclusion:    {famExclusion, famPreExisting, famCataract},
	query.TypeDefinition:   {famDefinition, famHospitalization},
	query.TypeTable:        {famTableBenefit, famSumInsured},
	query.TypeCoverage: {
		famDayCare, famOrganDonor, famAyush, famHealthCheck,
		famModernTreatment, famDomiciliary, famRestoration,
		famHospitalization, famRoadAmbulance,
	},
	query.TypeGeneral: {
		famClaimProcedure, famRenewal, famNoClaimBonus, famRegulatory,
	},
}

// contextSet holds the softer contextual vocabulary for a question type,
// scored separately from the high-precision clause patterns.
type contextSet struct {
	weight   float64
	keywords []string
}

var typeContext = map[query.Type]contextSet{
	query.TypeNumerical: {1.0, []string{
		"limit", "maximum", "percent", "amount", "per day", "upto", "up to",
	}},
	query.TypeUIN: {1.3, []string{
		"irdai", "product", "registered", "license",
	}},
	query.TypeAirAmbulance: {1.5, []string{
		"emergency", "transport", "evacuation", "nearest hospital", "licensed",
	}},
	query.TypeMaternity: {1.4, []string{
		"pregnancy", "delivery", "newborn", "confinement", "caesarean",
	}},
	query.TypeWaiting: {1.1, []string{
		"months", "continuous coverage", "inception", "first policy",
	}},
	query.TypeGrace: {1.1, []string{
		"premium", "renewal", "due date", "days", "break in policy",
	}},
	query.TypeExclusion: {1.0, []string{
		"shall not", "excluded", "unless", "except", "not payable",
	}},
	query.TypeDefinition: {1.0, []string{
		"means", "shall mean", "defined", "refers to",
	}},
	query.TypeTable: {1.0, []string{
		"plan", "zone", "schedule", "benefit", "row",
	}},
	query.TypeCoverage: {1.0, []string{
		"covered", "payable", "benefit", "eligible", "indemnify",
	}},
	query.TypeGeneral: {1.0, []string{
		"policy", "insured", "company", "terms",
	}},
}

// regulatoryPatterns flag text citing regulators, statutes, or numbered
// clauses. Such chunks are kept even when other signals are weak.
var regulatoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\birdai\b`),
	regexp.MustCompile(`(?i)insurance regulatory`),
	regexp.MustCompile(`(?i)regulations?,? \d{4}`),
	regexp.MustCompile(`(?i)\bact,? \d{4}`),
	regexp.MustCompile(`(?i)guidelines?\b`),
	regexp.MustCompile(`(?i)\bcircular\b`),
	regexp.MustCompile(`(?i)\bclause \d+`),
	regexp.MustCompile(`(?i)\bsection \d+`),
}

// insuranceHighTerms and insuranceMediumTerms feed the vocabulary component
// of the confidence score: chunks dense in policy language rank above
// boilerplate.
var insuranceHighTerms = []string{
	"sum insured", "waiting period", "grace period", "pre-existing",
	"co-payment", "room rent", "maternity", "air ambulance", "exclusion",
	"sub-limit", "uin", "deductible",
}

var insuranceMediumTerms = []string{
	"hospital", "coverage", "benefit", "claim", "premium", "treatment",
	"surgery", "icu", "ambulance", "renewal", "insured", "policy",
}
