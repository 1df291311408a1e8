package domain

// Well-known resource kinds. Deployments configure the full recognized set;
// these are the kinds core logic refers to by name.
const (
	ResourceRations  = "rations"
	ResourceMaterial = "material"
	ResourceTokens   = "tokens" // shop currency
)

// RationsPerRest is consumed from the character inventory on every
// transition to Resting.
const RationsPerRest = 1

// MaxTransferAmount caps a single transfer or purchase request.
const MaxTransferAmount = 10000

// Attribute fields editable via the set-attribute operation.
const (
	AttrClass       = "class"
	AttrSpecies     = "species"
	AttrBackground  = "background"
	AttrLevel       = "level"
	AttrDescription = "description"
)

// EditableAttributes is the allow-list for set-attribute.
var EditableAttributes = []string{AttrClass, AttrSpecies, AttrBackground, AttrLevel, AttrDescription}
