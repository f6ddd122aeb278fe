// Package query classifies policy questions and expands them into retrieval
// variants.
package query

// Type labels the kind of question being asked, which selects prompt
// templates, generation settings, and context sizing downstream.
type Type string

const (
	TypeGeneral      Type = "general"
	TypeNumerical    Type = "numerical"
	TypeUIN          Type = "uin"
	TypeAirAmbulance Type = "air_ambulance"
	TypeMaternity    Type = "maternity_well_baby"
	TypeWaiting      Type = "waiting_period"
	TypeGrace        Type = "grace_period"
	TypeExclusion    Type = "exclusion"
	TypeDefinition   Type = "definition"
	TypeTable        Type = "table_benefits"
	TypeCoverage     Type = "coverage"
)

// tiePriority orders types from most to least specific. When pattern votes
// tie, the more specific type wins.
var tiePriority = []Type{
	TypeNumerical,
	TypeUIN,
	TypeAirAmbulance,
	TypeMaternity,
	TypeWaiting,
	TypeGrace,
	TypeExclusion,
	TypeDefinition,
	TypeTable,
	TypeCoverage,
	TypeGeneral,
}
