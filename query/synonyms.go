package query

// synonymMap substitutes policy vocabulary with the alternate phrasings that
// appear in the documents themselves.
var synonymMap = map[string][]string{
	"grace period":     {"premium payment grace", "renewal grace", "days of grace"},
	"waiting period":   {"exclusion period", "moratorium period", "cooling period"},
	"pre-existing":     {"pre-existing disease", "PED", "prior condition"},
	"maternity":        {"pregnancy", "childbirth", "delivery"},
	"newborn":          {"new born baby", "well-baby", "infant"},
	"air ambulance":    {"air-ambulance", "aerial evacuation", "emergency air transport"},
	"exclusion":        {"not covered", "non-payable", "limitation"},
	"coverage":         {"benefit", "cover", "protection"},
	"covered":          {"payable", "eligible", "included"},
	"sum insured":      {"coverage amount", "policy limit", "insured amount"},
	"co-payment":       {"copay", "cost sharing", "co-pay"},
	"deductible":       {"excess", "threshold amount"},
	"claim":            {"reimbursement", "settlement", "claim request"},
	"hospital":         {"medical institution", "healthcare facility", "nursing home"},
	"hospitalization":  {"inpatient treatment", "admission", "in-patient care"},
	"room rent":        {"room charges", "accommodation charges", "boarding expenses"},
	"icu":              {"intensive care unit", "critical care"},
	"premium":          {"policy payment", "installment"},
	"uin":              {"unique identification number", "product code"},
	"cataract":         {"eye surgery", "lens replacement"},
	"ayush":            {"ayurveda", "homeopathy", "alternative treatment"},
	"day care":         {"day-care procedure", "daycare treatment"},
	"health check":     {"preventive check-up", "medical examination"},
	"organ donor":      {"donor expenses", "transplant donor"},
	"ambulance":        {"emergency transport", "patient transport"},
	"renewal":          {"policy renewal", "continuation"},
	"discount":         {"no-claim bonus", "cumulative bonus", "NCD"},
	"policyholder":     {"insured person", "policy holder", "member"},
	"doctor":           {"medical practitioner", "physician"},
	"treatment":        {"procedure", "therapy", "medical care"},
	"modern treatment": {"advanced procedure", "robotic surgery"},
}

// numberWords maps spelled-out numbers to digits; both directions generate
// variants because documents are inconsistent about which form they use.
var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	"twelve": "12", "fifteen": "15", "eighteen": "18", "twenty": "20",
	"twenty-four": "24", "twenty four": "24", "thirty": "30",
	"thirty-six": "36", "thirty six": "36", "forty-eight": "48",
	"forty eight": "48", "sixty": "60", "ninety": "90",
	"one hundred twenty": "120", "one hundred fifty": "150",
}

// semanticMap emits related concepts as standalone variants when a concept
// word appears in the question.
var semanticMap = map[string][]string{
	"maximum":   {"limit", "ceiling", "cap", "upper bound", "highest"},
	"minimum":   {"floor", "lowest", "base", "starting"},
	"period":    {"duration", "time", "term", "span", "interval"},
	"coverage":  {"protection", "benefits", "indemnity", "compensation"},
	"treatment": {"care", "therapy", "service", "medical attention"},
	"expenses":  {"costs", "charges", "fees", "payments", "bills"},
}

// highValueTerms strongly indicate a variant will retrieve decisive policy
// text; mediumValueTerms are weaker but still useful signals.
var highValueTerms = []string{
	"uin", "air ambulance", "well-baby", "well-mother", "maternity",
	"waiting period", "grace period", "pre-existing", "sum insured",
	"co-payment", "room rent", "exclusion", "sub-limit",
}

var mediumValueTerms = []string{
	"hospital", "coverage", "benefit", "claim", "premium", "treatment",
	"surgery", "icu", "ambulance", "deductible", "renewal", "discount",
}

// expansionRule rewrites a question shape into targeted retrieval phrasings.
// $1 carries the captured subject through to each template.
type expansionRule struct {
	pattern   string
	templates []string
}

var expansionRules = []expansionRule{
	{`what is the grace period[^?]*`, []string{
		"grace period premium payment",
		"grace period renewal days",
	}},
	{`what is the waiting period for ([\w\s-]+)`, []string{
		"waiting period $1",
		"$1 waiting period months",
	}},
	{`does (?:this |the )?policy cover ([\w\s-]+)`, []string{
		"$1 coverage",
		"$1 covered benefit",
		"$1 exclusion",
	}},
	{`is ([\w\s-]+) covered`, []string{
		"$1 coverage benefit",
		"$1 exclusion not covered",
	}},
	{`what (?:is|are) the (?:conditions?|requirements?) for ([\w\s-]+)`, []string{
		"$1 conditions eligibility",
		"$1 requirements criteria",
	}},
	{`how much (?:is|will|does) ([\w\s-]+)`, []string{
		"$1 amount limit",
		"$1 sum insured percentage",
	}},
	{`what is the (?:limit|maximum) (?:for|on) ([\w\s-]+)`, []string{
		"$1 limit maximum",
		"$1 sub-limit amount",
	}},
	{`define[s]? ([\w\s-]+)`, []string{
		"$1 definition means",
		"$1 defined as",
	}},
	{`what does ([\w\s-]+) mean`, []string{
		"$1 definition",
		"$1 means shall mean",
	}},
	{`(?:what is|tell me) the uin`, []string{
		"UIN unique identification number",
		"product UIN IRDAI",
	}},
	{`(?:any|what) (?:discount|bonus)[^?]*`, []string{
		"no-claim bonus discount",
		"cumulative bonus renewal",
	}},
	{`how (?:do|can) i (?:file|make|submit) a claim`, []string{
		"claim intimation procedure",
		"claim submission documents",
	}},
	{`(?:what|which) documents[^?]*claim`, []string{
		"claim documents required",
		"discharge summary medical certificate",
	}},
	{`(?:is there|what about) (?:a |an )?co-?pay(?:ment)?[^?]*`, []string{
		"co-payment percentage share",
		"co-payment applicable claims",
	}},
	{`what is the distance limit[^?]*`, []string{
		"distance km limit transport",
		"air ambulance distance kilometers",
	}},
	{`(?:when|how) (?:is|does) the policy renew[^?]*`, []string{
		"policy renewal conditions",
		"renewal premium grace",
	}},
	{`what (?:happens|applies) (?:if|when) ([\w\s-]+)`, []string{
		"$1 consequence condition",
		"$1 policy terms",
	}},
	{`(?:room rent|icu) (?:limit|charges?)[^?]*`, []string{
		"room rent limit percentage sum insured",
		"ICU charges limit per day",
	}},
	{`(?:maternity|pregnancy)[^?]*(?:covered|benefit)[^?]*`, []string{
		"maternity benefit waiting period",
		"well-mother well-baby expenses",
	}},
	{`organ donor[^?]*`, []string{
		"organ donor medical expenses",
		"donor hospitalization harvesting",
	}},
}
