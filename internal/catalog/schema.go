package catalog

// EntryDefinition models the JSON contract for technician-authored catalog
// entries. It is shared with the schema generator so we can produce a
// machine-readable document for validation and editor tooling.
type EntryDefinition struct {
	Rack     string  `json:"rack" jsonschema:"title=Rack coordinate,pattern=^[A-H][0-9]{1,2}$,description=Rack slot holding the tip box"`
	TipType  string  `json:"tipType" jsonschema:"title=Tip type,description=Manufacturer tip family"`
	VolumeUL float64 `json:"volumeUl" jsonschema:"title=Volume,description=Nominal tip volume in microliters"`
	Filtered bool    `json:"filtered,omitempty" jsonschema:"description=Whether the tips carry aerosol filters"`
	Notes    string  `json:"notes,omitempty" jsonschema:"description=Free-form technician notes"`
}

// FileDefinitions represents the contents of a catalog import file. The
// schema models the canonical array format technicians author.
type FileDefinitions []EntryDefinition
