// Package eval measures answer quality against policy QA datasets with
// known expected facts.
package eval

// TestCase defines a single evaluation question.
type TestCase struct {
	Question      string   `json:"question"`
	ExpectedFacts []string `json:"expected_facts"` // Facts that should appear in the answer
	Category      string   `json:"category"`       // grace, waiting, maternity, numerical, ...
}

// Dataset is a collection of test cases evaluated against one document.
type Dataset struct {
	Name        string     `json:"name"`
	DocumentURL string     `json:"document_url"`
	Tests       []TestCase `json:"tests"`
}

// PolicyDataset returns the standard health-policy question set. The
// expected facts match the National Parivar Mediclaim Plus policy wording;
// point DocumentURL at that document before running.
func PolicyDataset(documentURL string) Dataset {
	return Dataset{
		Name:        "Health Policy QA",
		DocumentURL: documentURL,
		Tests: []TestCase{
			{
				Question:      "What is the grace period for premium payment?",
				ExpectedFacts: []string{"grace period", "thirty days"},
				Category:      "grace",
			},
			{
				Question:      "What is the waiting period for pre-existing diseases?",
				ExpectedFacts: []string{"36 months", "continuous coverage"},
				Category:      "waiting",
			},
			{
				Question:      "Does this policy cover maternity expenses, and what are the conditions?",
				ExpectedFacts: []string{"maternity", "24 months", "two deliveries"},
				Category:      "maternity",
			},
			{
				Question:      "What is the waiting period for cataract surgery?",
				ExpectedFacts: []string{"cataract", "two years"},
				Category:      "waiting",
			},
			{
				Question:      "Are the medical expenses for an organ donor covered under this policy?",
				ExpectedFacts: []string{"organ donor", "covered"},
				Category:      "coverage",
			},
			{
				Question:      "What is the No Claim Discount offered in this policy?",
				ExpectedFacts: []string{"5%", "no claim"},
				Category:      "numerical",
			},
			{
				Question:      "Is there a benefit for preventive health check-ups?",
				ExpectedFacts: []string{"health check", "two continuous policy years"},
				Category:      "coverage",
			},
			{
				Question:      "How does the policy define a Hospital?",
				ExpectedFacts: []string{"10 inpatient beds", "qualified nursing staff"},
				Category:      "definition",
			},
			{
				Question:      "What is the extent of coverage for AYUSH treatments?",
				ExpectedFacts: []string{"ayush", "sum insured"},
				Category:      "coverage",
			},
			{
				Question:      "Are there any sub-limits on room rent and ICU charges for Plan A?",
				ExpectedFacts: []string{"1%", "2%", "sum insured"},
				Category:      "table",
			},
		},
	}
}
