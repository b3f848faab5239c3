package terminology

import (
	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/pkg/fhirmodels"
)

// Concept property codes. Each auxiliary form field lives in a property[]
// entry keyed by one of these, with a fixed value type.
const (
	PropActive       = "active"
	PropAbbreviation = "abbreviation"
	PropSymbol       = "symbol"
	PropCategory     = "category"
	PropSpecialty    = "specialty"
	PropCanPrescribe = "can-prescribe"
	PropCanOperate   = "can-operate"
)

// UnitFormValues is the flat DTO for one measurement unit row.
type UnitFormValues struct {
	Code   string `json:"code"`
	NameKa string `json:"nameKa"`
	NameEn string `json:"nameEn,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Active bool   `json:"active"`
}

// AdminRouteFormValues is the flat DTO for one administration route row.
type AdminRouteFormValues struct {
	Code         string `json:"code"`
	NameKa       string `json:"nameKa"`
	NameEn       string `json:"nameEn,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Active       bool   `json:"active"`
}

// OperatorTypeFormValues is the flat DTO for one operator type row.
type OperatorTypeFormValues struct {
	Code         string `json:"code"`
	NameKa       string `json:"nameKa"`
	NameEn       string `json:"nameEn,omitempty"`
	Category     string `json:"category,omitempty"`
	Specialty    string `json:"specialty,omitempty"`
	CanPrescribe bool   `json:"canPrescribe"`
	CanOperate   bool   `json:"canOperate"`
	Active       bool   `json:"active"`
}

// designationValue returns the localized display for lang, falling back to
// the concept's display.
func designationValue(c fhir.Concept, lang string) string {
	for _, d := range c.Designation {
		if d.Language == lang {
			return d.Value
		}
	}
	return c.Display
}

func setDesignation(c *fhir.Concept, lang, value string) {
	if value == "" {
		return
	}
	for i := range c.Designation {
		if c.Designation[i].Language == lang {
			c.Designation[i].Value = value
			return
		}
	}
	c.Designation = append(c.Designation, fhir.ConceptDesignation{Language: lang, Value: value})
}

func propertyString(c fhir.Concept, code string) string {
	for _, p := range c.Property {
		if p.Code == code {
			return p.ValueString
		}
	}
	return ""
}

// propertyBool returns the boolean property value; a missing property
// defaults to def (an absent "active" means the concept is active).
func propertyBool(c fhir.Concept, code string, def bool) bool {
	for _, p := range c.Property {
		if p.Code == code {
			if p.ValueBoolean == nil {
				return def
			}
			return *p.ValueBoolean
		}
	}
	return def
}

func setPropertyString(c *fhir.Concept, code, value string) {
	if value == "" {
		return
	}
	for i := range c.Property {
		if c.Property[i].Code == code {
			c.Property[i].ValueString = value
			return
		}
	}
	c.Property = append(c.Property, fhir.ConceptProperty{Code: code, ValueString: value})
}

func setPropertyBool(c *fhir.Concept, code string, value bool) {
	v := value
	for i := range c.Property {
		if c.Property[i].Code == code {
			c.Property[i].ValueBoolean = &v
			c.Property[i].ValueString = ""
			return
		}
	}
	c.Property = append(c.Property, fhir.ConceptProperty{Code: code, ValueBoolean: &v})
}

// conceptActive reports the soft-delete state of a concept.
func conceptActive(c fhir.Concept) bool {
	return propertyBool(c, PropActive, true)
}

func conceptDisplay(nameEn, nameKa string) string {
	if nameEn != "" {
		return nameEn
	}
	return nameKa
}

// -- Unit conversion --

func UnitToConcept(v UnitFormValues) fhir.Concept {
	c := fhir.Concept{Code: v.Code, Display: conceptDisplay(v.NameEn, v.NameKa)}
	setDesignation(&c, fhirmodels.LangGeorgian, v.NameKa)
	setDesignation(&c, fhirmodels.LangEnglish, v.NameEn)
	setPropertyString(&c, PropSymbol, v.Symbol)
	setPropertyBool(&c, PropActive, v.Active)
	return c
}

func ConceptToUnit(c fhir.Concept) UnitFormValues {
	return UnitFormValues{
		Code:   c.Code,
		NameKa: designationValue(c, fhirmodels.LangGeorgian),
		NameEn: designationValue(c, fhirmodels.LangEnglish),
		Symbol: propertyString(c, PropSymbol),
		Active: conceptActive(c),
	}
}

// -- Administration route conversion --

func AdminRouteToConcept(v AdminRouteFormValues) fhir.Concept {
	c := fhir.Concept{Code: v.Code, Display: conceptDisplay(v.NameEn, v.NameKa)}
	setDesignation(&c, fhirmodels.LangGeorgian, v.NameKa)
	setDesignation(&c, fhirmodels.LangEnglish, v.NameEn)
	setPropertyString(&c, PropAbbreviation, v.Abbreviation)
	setPropertyBool(&c, PropActive, v.Active)
	return c
}

func ConceptToAdminRoute(c fhir.Concept) AdminRouteFormValues {
	return AdminRouteFormValues{
		Code:         c.Code,
		NameKa:       designationValue(c, fhirmodels.LangGeorgian),
		NameEn:       designationValue(c, fhirmodels.LangEnglish),
		Abbreviation: propertyString(c, PropAbbreviation),
		Active:       conceptActive(c),
	}
}

// -- Operator type conversion --

func OperatorTypeToConcept(v OperatorTypeFormValues) fhir.Concept {
	c := fhir.Concept{Code: v.Code, Display: conceptDisplay(v.NameEn, v.NameKa)}
	setDesignation(&c, fhirmodels.LangGeorgian, v.NameKa)
	setDesignation(&c, fhirmodels.LangEnglish, v.NameEn)
	setPropertyString(&c, PropCategory, v.Category)
	setPropertyString(&c, PropSpecialty, v.Specialty)
	setPropertyBool(&c, PropCanPrescribe, v.CanPrescribe)
	setPropertyBool(&c, PropCanOperate, v.CanOperate)
	setPropertyBool(&c, PropActive, v.Active)
	return c
}

func ConceptToOperatorType(c fhir.Concept) OperatorTypeFormValues {
	return OperatorTypeFormValues{
		Code:         c.Code,
		NameKa:       designationValue(c, fhirmodels.LangGeorgian),
		NameEn:       designationValue(c, fhirmodels.LangEnglish),
		Category:     propertyString(c, PropCategory),
		Specialty:    propertyString(c, PropSpecialty),
		CanPrescribe: propertyBool(c, PropCanPrescribe, false),
		CanOperate:   propertyBool(c, PropCanOperate, false),
		Active:       conceptActive(c),
	}
}
