package fhir

import "encoding/json"

// Resource shapes for every type the admin gateway works with. Only the
// fields the mapping layer touches are modeled; the resource server owns the
// full schema.

type Patient struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id,omitempty"`
	Meta         *Meta          `json:"meta,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Active       *bool          `json:"active,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
	Address      []Address      `json:"address,omitempty"`
	Extension    []Extension    `json:"extension,omitempty"`
}

func (p *Patient) ResourceName() string { return "Patient" }
func (p *Patient) ResourceID() string   { return p.ID }
func (p *Patient) ResourceMeta() *Meta  { return p.Meta }

type Encounter struct {
	ResourceType    string            `json:"resourceType"`
	ID              string            `json:"id,omitempty"`
	Meta            *Meta             `json:"meta,omitempty"`
	Identifier      []Identifier      `json:"identifier,omitempty"`
	Status          string            `json:"status,omitempty"`
	Class           *Coding           `json:"class,omitempty"`
	Type            []CodeableConcept `json:"type,omitempty"`
	Subject         *Reference        `json:"subject,omitempty"`
	Period          *Period           `json:"period,omitempty"`
	ServiceProvider *Reference        `json:"serviceProvider,omitempty"`
	Extension       []Extension       `json:"extension,omitempty"`
}

func (e *Encounter) ResourceName() string { return "Encounter" }
func (e *Encounter) ResourceID() string   { return e.ID }
func (e *Encounter) ResourceMeta() *Meta  { return e.Meta }

// CoverageCost models Coverage.costToBeneficiary; the gateway stores the
// copay percentage in valueQuantity with unit "%".
type CoverageCost struct {
	Type          *CodeableConcept `json:"type,omitempty"`
	ValueQuantity *Quantity        `json:"valueQuantity,omitempty"`
}

type Coverage struct {
	ResourceType      string           `json:"resourceType"`
	ID                string           `json:"id,omitempty"`
	Meta              *Meta            `json:"meta,omitempty"`
	Status            string           `json:"status,omitempty"`
	Type              *CodeableConcept `json:"type,omitempty"`
	SubscriberID      string           `json:"subscriberId,omitempty"`
	Beneficiary       *Reference       `json:"beneficiary,omitempty"`
	Order             *int             `json:"order,omitempty"`
	Payor             []Reference      `json:"payor,omitempty"`
	Period            *Period          `json:"period,omitempty"`
	CostToBeneficiary []CoverageCost   `json:"costToBeneficiary,omitempty"`
	Extension         []Extension      `json:"extension,omitempty"`
}

func (c *Coverage) ResourceName() string { return "Coverage" }
func (c *Coverage) ResourceID() string   { return c.ID }
func (c *Coverage) ResourceMeta() *Meta  { return c.Meta }

type ConceptDesignation struct {
	Language string `json:"language,omitempty"`
	Value    string `json:"value,omitempty"`
}

type ConceptProperty struct {
	Code         string `json:"code"`
	ValueString  string `json:"valueString,omitempty"`
	ValueBoolean *bool  `json:"valueBoolean,omitempty"`
}

// Concept is one reference-data row inside a CodeSystem container.
type Concept struct {
	Code        string               `json:"code"`
	Display     string               `json:"display,omitempty"`
	Designation []ConceptDesignation `json:"designation,omitempty"`
	Property    []ConceptProperty    `json:"property,omitempty"`
}

type CodeSystem struct {
	ResourceType string    `json:"resourceType"`
	ID           string    `json:"id,omitempty"`
	Meta         *Meta     `json:"meta,omitempty"`
	URL          string    `json:"url,omitempty"`
	Name         string    `json:"name,omitempty"`
	Status       string    `json:"status,omitempty"`
	Content      string    `json:"content,omitempty"`
	Concept      []Concept `json:"concept,omitempty"`
}

func (cs *CodeSystem) ResourceName() string { return "CodeSystem" }
func (cs *CodeSystem) ResourceID() string   { return cs.ID }
func (cs *CodeSystem) ResourceMeta() *Meta  { return cs.Meta }

type Organization struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Identifier   []Identifier      `json:"identifier,omitempty"`
	Active       *bool             `json:"active,omitempty"`
	Type         []CodeableConcept `json:"type,omitempty"`
	Name         string            `json:"name,omitempty"`
	PartOf       *Reference        `json:"partOf,omitempty"`
	Extension    []Extension       `json:"extension,omitempty"`
}

func (o *Organization) ResourceName() string { return "Organization" }
func (o *Organization) ResourceID() string   { return o.ID }
func (o *Organization) ResourceMeta() *Meta  { return o.Meta }

type Location struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id,omitempty"`
	Meta         *Meta       `json:"meta,omitempty"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Status       string      `json:"status,omitempty"`
	Name         string      `json:"name,omitempty"`
	Extension    []Extension `json:"extension,omitempty"`
}

func (l *Location) ResourceName() string { return "Location" }
func (l *Location) ResourceID() string   { return l.ID }
func (l *Location) ResourceMeta() *Meta  { return l.Meta }

type QuantitativeDetails struct {
	Unit *CodeableConcept `json:"unit,omitempty"`
}

type ObservationDefinition struct {
	ResourceType        string               `json:"resourceType"`
	ID                  string               `json:"id,omitempty"`
	Meta                *Meta                `json:"meta,omitempty"`
	Identifier          []Identifier         `json:"identifier,omitempty"`
	Status              string               `json:"status,omitempty"`
	Code                *CodeableConcept     `json:"code,omitempty"`
	QuantitativeDetails *QuantitativeDetails `json:"quantitativeDetails,omitempty"`
	Extension           []Extension          `json:"extension,omitempty"`
}

func (od *ObservationDefinition) ResourceName() string { return "ObservationDefinition" }
func (od *ObservationDefinition) ResourceID() string   { return od.ID }
func (od *ObservationDefinition) ResourceMeta() *Meta  { return od.Meta }

// Bundle is a FHIR search result. Entries keep their raw JSON so a single
// search can carry mixed resource types (_include).
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

type resourceEnvelope struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// EntryResourceType returns the resourceType of a raw bundle entry, or "".
func EntryResourceType(raw json.RawMessage) string {
	var env resourceEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.ResourceType
}

// EntryResourceID returns the id of a raw bundle entry, or "".
func EntryResourceID(raw json.RawMessage) string {
	var env resourceEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.ID
}

// ResourcesOf returns the raw entries of the bundle whose resourceType
// matches. Entry order is preserved.
func (b *Bundle) ResourcesOf(resourceType string) []json.RawMessage {
	var out []json.RawMessage
	for _, e := range b.Entry {
		if e.Resource == nil {
			continue
		}
		if EntryResourceType(e.Resource) == resourceType {
			out = append(out, e.Resource)
		}
	}
	return out
}
