package normalizer

// structureRules injects structural markers into cleaned text so the chunker
// can split at section boundaries and the retrieval layer can recognize
// tables and clauses. Runs after terminology normalization.
var structureRules = compileRules([][2]string{
	// Section headers: standalone all-caps lines and numbered sections
	{`\n([A-Z][A-Z\s]{10,})\n`, "\n\nSECTION: $1\n\n"},
	{`\nSECTION\s*(\d+)[\.\:]?\s*([A-Z][A-Za-z\s]+)\n`, "\n\nSECTION $1: $2\n\n"},

	// Subsection headers
	{`\n(\d+\.\d+\s+[A-Z][a-zA-Z\s]+)\n`, "\n\nSUBSECTION: $1\n\n"},
	{`\n([A-Z]\.\s*[A-Z][a-zA-Z\s]+)\n`, "\n\nSUBSECTION: $1\n\n"},

	// Clause numbering
	{`\n(\d+\.\s+)`, "\n\nCLAUSE $1"},
	{`\n(\d+\.\d+\.\s+)`, "\n\nSUB-CLAUSE $1"},

	// List items
	{`\n([a-z]\)\s+)`, "\n\nSUB-CLAUSE $1"},
	{`\n([iv]+\)\s+)`, "\n\nSUB-CLAUSE $1"},

	// Benefits, exclusions, and condition blocks
	{`\nBENEFITS?\s*:?\s*\n`, "\n\nBENEFITS SECTION:\n\n"},
	{`\nEXCLUSIONS?\s*:?\s*\n`, "\n\nEXCLUSIONS SECTION:\n\n"},
	{`\nLIMITATIONS?\s*:?\s*\n`, "\n\nLIMITATIONS SECTION:\n\n"},
	{`\nCONDITIONS?\s*:?\s*\n`, "\n\nCONDITIONS SECTION:\n\n"},

	// Definitions
	{`\nDEFINITIONS?\s*:?\s*\n`, "\n\nDEFINITIONS SECTION:\n\n"},
	{`\nGLOSSARY\s*:?\s*\n`, "\n\nGLOSSARY SECTION:\n\n"},

	// Tables and schedules
	{`\nTABLE\s*(\d+)?\s*:?\s*([^\n]*)\n`, "\n\nTABLE $1: $2\n\n"},
	{`\nSCHEDULE\s*(\d+)?\s*:?\s*([^\n]*)\n`, "\n\nSCHEDULE $1: $2\n\n"},

	// Notices
	{`\nIMPORTANT\s*:?\s*\n`, "\n\nIMPORTANT NOTICE:\n\n"},
	{`\nNOTE\s*:?\s*\n`, "\n\nNOTE:\n\n"},
	{`\nWARNING\s*:?\s*\n`, "\n\nWARNING:\n\n"},
})
