package normalizer

// termRules canonicalizes insurance terminology: hyphenation, spelled-out
// numbers, percentage and currency formats, product identifiers, and the
// recurring policy vocabulary. Order matters; more specific patterns come
// before the generic ones they would otherwise shadow.
var termRules = compileRules([][2]string{
	// Hyphenation and spacing of compound terms
	{`pre[\s\-]*existing\s*disease`, "pre-existing disease"},
	{`pre[\s\-]*existing\s*condition`, "pre-existing condition"},
	{`pre[\s\-]*existing`, "pre-existing"},
	{`co[\s\-]*pay(?:ment)?`, "co-payment"},
	{`in[\s\-]*patient`, "inpatient"},
	{`out[\s\-]*patient`, "outpatient"},
	{`post[\s\-]*hospitalisation`, "post-hospitalisation"},
	{`pre[\s\-]*hospitalisation`, "pre-hospitalisation"},
	{`sub[\s\-]*limit`, "sub-limit"},
	{`no[\s\-]*claim`, "no-claim"},
	{`claim[\s\-]*free`, "claim-free"},
	{`well[\s\-]*mother`, "well-mother"},
	{`well[\s\-]*baby`, "well-baby"},
	{`air[\s\-]*ambulance`, "air-ambulance"},
	{`day[\s\-]*care`, "day-care"},
	{`home[\s\-]*care`, "home-care"},
	{`health[\s\-]*check`, "health-check"},

	// Common policy phrases
	{`sum\s*insured`, "Sum Insured"},
	{`policy\s*period`, "Policy Period"},
	{`policy\s*year`, "Policy Year"},
	{`waiting\s*period`, "waiting period"},
	{`grace\s*period`, "grace period"},
	{`exclusion\s*period`, "exclusion period"},
	{`cooling\s*period`, "cooling period"},
	{`claim\s*period`, "claim period"},
	{`benefit\s*period`, "benefit period"},
	{`coverage\s*period`, "coverage period"},

	// Medical facilities and roles
	{`intensive\s*care\s*unit`, "Intensive Care Unit"},
	{`operation\s*theatre`, "Operation Theatre"},
	{`emergency\s*room`, "Emergency Room"},
	{`medical\s*practitioner`, "Medical Practitioner"},
	{`qualified\s*doctor`, "Qualified Doctor"},
	{`registered\s*nurse`, "Registered Nurse"},
	{`nursing\s*staff`, "Nursing Staff"},
	{`medical\s*facility`, "Medical Facility"},
	{`healthcare\s*facility`, "Healthcare Facility"},

	// Time periods: digits normalized, words converted to digits
	{`(\d+)\s*years?\b`, "$1 years"},
	{`(\d+)\s*months?\b`, "$1 months"},
	{`(\d+)\s*days?\b`, "$1 days"},
	{`(\d+)\s*hours?\b`, "$1 hours"},
	{`thirty[\s\-]*six\s*months?`, "36 months"},
	{`twenty[\s\-]*four\s*months?`, "24 months"},
	{`eighteen\s*months?`, "18 months"},
	{`twelve\s*months?`, "12 months"},
	{`thirty\s*days?`, "30 days"},
	{`sixty\s*days?`, "60 days"},
	{`ninety\s*days?`, "90 days"},
	{`one\s*hundred\s*eighty\s*days?`, "180 days"},

	// Percentages
	{`(\d+)\s*%`, "$1%"},
	{`(\d+)\s*percent`, "$1%"},
	{`(\d+)\s*per\s*cent`, "$1%"},
	{`one\s*percent`, "1%"},
	{`two\s*percent`, "2%"},
	{`five\s*percent`, "5%"},
	{`ten\s*percent`, "10%"},
	{`twenty\s*percent`, "20%"},
	{`fifty\s*percent`, "50%"},

	// Currency and amounts
	{`rupees?\s*(\d+)`, "Rs. $1"},
	{`rs\.?\s*(\d+)`, "Rs. $1"},
	{`inr\s*(\d+)`, "INR $1"},
	{`(\d+)\s*lakhs?\b`, "$1 lakhs"},
	{`(\d+)\s*crores?\b`, "$1 crores"},
	{`one\s*lakh`, "1 lakh"},
	{`two\s*lakhs?`, "2 lakhs"},
	{`five\s*lakhs?`, "5 lakhs"},
	{`ten\s*lakhs?`, "10 lakhs"},
	{`twenty\s*lakhs?`, "20 lakhs"},
	{`fifty\s*lakhs?`, "50 lakhs"},
	{`one\s*crore`, "1 crore"},

	// Distances
	{`(\d+)\s*km\b`, "$1 km"},
	{`(\d+)\s*kilometers?\b`, "$1 kilometers"},
	{`(\d+)\s*kilometres?\b`, "$1 kilometres"},
	{`one\s*hundred\s*fifty\s*km`, "150 km"},
	{`three\s*hundred\s*km`, "300 km"},

	// Hospital bed requirements
	{`(\d+)\s*beds?\b`, "$1 beds"},
	{`ten\s*beds?`, "10 beds"},
	{`fifteen\s*beds?`, "15 beds"},
	{`twenty\s*beds?`, "20 beds"},
	{`minimum\s*(\d+)\s*beds?`, "minimum $1 beds"},

	// Product identifiers
	{`UIN[\s:]*([A-Z0-9]+)`, "UIN: $1"},
	{`unique\s*identification\s*number`, "UIN"},
	{`product\s*identification`, "Product Identification"},

	// Zone, tier, and plan references
	{`zone[\s]*([IVX123])\b`, "Zone $1"},
	{`tier[\s]*([123])\b`, "Tier $1"},
	{`plan[\s]*([ABC123])\b`, "Plan $1"},

	// Medical specialties split across line or word breaks
	{`cardio\s*vascular`, "cardiovascular"},
	{`gastro\s*enterology`, "gastroenterology"},
	{`ortho\s*pedic`, "orthopedic"},
	{`gynec\s*ology`, "gynecology"},
	{`obstet\s*rics`, "obstetrics"},
	{`ophthal\s*mology`, "ophthalmology"},

	// AYUSH terms
	{`ayur\s*veda`, "Ayurveda"},
	{`naturo\s*pathy`, "Naturopathy"},
	{`homeo\s*pathy`, "Homeopathy"},
	{`alternative\s*medicine`, "Alternative Medicine"},
	{`traditional\s*medicine`, "Traditional Medicine"},

	// Treatments
	{`chemo\s*therapy`, "chemotherapy"},
	{`radio\s*therapy`, "radiotherapy"},
	{`physio\s*therapy`, "physiotherapy"},
	{`immuno\s*therapy`, "immunotherapy"},
	{`gene\s*therapy`, "gene therapy"},
	{`stem\s*cell\s*therapy`, "stem cell therapy"},

	// Surgical procedures
	{`laparo\s*scopic`, "laparoscopic"},
	{`endo\s*scopic`, "endoscopic"},
	{`arthro\s*scopic`, "arthroscopic"},
	{`key\s*hole\s*surgery`, "keyhole surgery"},
	{`minimally\s*invasive`, "minimally invasive"},
	{`day[\s\-]*care\s*surgery`, "day care surgery"},

	// Benefit mechanics
	{`cash\s*less`, "cashless"},
	{`re\s*imbursement`, "reimbursement"},
	{`network\s*hospital`, "network hospital"},
	{`panel\s*hospital`, "panel hospital"},
	{`empaneled\s*hospital`, "empaneled hospital"},
	{`preferred\s*provider`, "preferred provider"},

	// Exclusion vocabulary
	{`not\s*covered`, "not covered"},
	{`non[\s\-]*covered`, "non-covered"},
	{`non[\s\-]*payable`, "non-payable"},
	{`in\s*eligible`, "ineligible"},
	{`dis\s*allowed`, "disallowed"},

	// Waiting-period specifics
	{`continuous\s*coverage`, "continuous coverage"},
	{`first\s*policy\s*inception`, "first policy inception"},
	{`policy\s*inception`, "policy inception"},

	// Claims vocabulary
	{`claim\s*settlement`, "claim settlement"},
	{`claim\s*processing`, "claim processing"},
	{`claim\s*notification`, "claim notification"},
	{`claim\s*intimation`, "claim intimation"},
	{`third\s*party\s*administrator`, "Third Party Administrator"},
	{`\btpa\b`, "TPA"},

	// Regulatory vocabulary
	{`\birdai\b`, "IRDAI"},
	{`\birda\b`, "IRDA"},
	{`insurance\s*regulatory`, "Insurance Regulatory"},
	{`competent\s*authority`, "competent authority"},
	{`government\s*authority`, "government authority"},
	{`licensing\s*authority`, "licensing authority"},

	// Family and insured-person vocabulary
	{`family\s*member`, "family member"},
	{`dependent\s*member`, "dependent member"},
	{`principal\s*insured`, "principal insured"},
	{`primary\s*insured`, "primary insured"},
	{`policy\s*holder`, "policyholder"},

	// Accident and disability vocabulary
	{`road\s*traffic\s*accident`, "road traffic accident"},
	{`motor\s*accident`, "motor accident"},
	{`accidental\s*injury`, "accidental injury"},
	{`accidental\s*death`, "accidental death"},
	{`permanent\s*disability`, "permanent disability"},
	{`temporary\s*disability`, "temporary disability"},

	// Emergency vocabulary
	{`emergency\s*treatment`, "emergency treatment"},
	{`urgent\s*care`, "urgent care"},
	{`critical\s*care`, "critical care"},
	{`life\s*saving`, "life-saving"},
	{`medically\s*necessary`, "medically necessary"},

	// Documentation vocabulary
	{`discharge\s*summary`, "discharge summary"},
	{`medical\s*certificate`, "medical certificate"},
	{`doctor\s*certificate`, "doctor certificate"},
	{`fitness\s*certificate`, "fitness certificate"},
	{`medical\s*report`, "medical report"},
	{`investigation\s*report`, "investigation report"},
	{`pathology\s*report`, "pathology report"},
	{`radiology\s*report`, "radiology report"},
})
