package storage

import "time"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// CurrentSchemaVersion is the record shape written by this service.
const CurrentSchemaVersion = 3

type Role struct {
	ID         string  `json:"id" yaml:"id"`
	Label      string  `json:"label" yaml:"label"`
	HourlyRate float64 `json:"hourlyRate" yaml:"hourly_rate"`
}

// RoleAllocation is one role's weekly time commitment inside a stage.
// Gain is a percentage reduction of Baseline hours.
type RoleAllocation struct {
	RoleID   string  `json:"roleId" yaml:"role_id"`
	Baseline float64 `json:"baseline" yaml:"baseline"`
	Gain     float64 `json:"gain" yaml:"gain"`
}

type SoftBenefit struct {
	Type      string  `json:"type" yaml:"type"`
	Label     string  `json:"label" yaml:"label"`
	ImpactPct float64 `json:"impactPct" yaml:"impact_pct"`
	Rationale string  `json:"rationale" yaml:"rationale"`
}

type Stage struct {
	ID              string           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Workflow        string           `json:"workflow" yaml:"workflow"`
	Assumptions     string           `json:"assumptions" yaml:"assumptions"`
	Rationale       string           `json:"rationale" yaml:"rationale"`
	RoleAllocations []RoleAllocation `json:"roleAllocations" yaml:"role_allocations"`
	PeopleAffected  int              `json:"peopleAffected" yaml:"people_affected"`
	SoftBenefits    []SoftBenefit    `json:"softBenefits,omitempty" yaml:"soft_benefits,omitempty"`
}

type Assumptions struct {
	Roles            []Role   `json:"roles" yaml:"roles"`
	HoursPerWeek     float64  `json:"hoursPerWeek" yaml:"hours_per_week"`
	LoadedMultiplier float64  `json:"loadedMultiplier" yaml:"loaded_multiplier"`
	AnnualToolCost   float64  `json:"annualToolCost" yaml:"annual_tool_cost"`
	Currency         Currency `json:"currency" yaml:"currency"`
}

// RoleByID returns the role with the given id, or false when it is not present.
func (a Assumptions) RoleByID(id string) (Role, bool) {
	for _, r := range a.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

type WizardState struct {
	CurrentStep int  `json:"currentStep"`
	IsComplete  bool `json:"isComplete"`
}

type Calculator struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	SchemaVersion int          `json:"schemaVersion"`
	Assumptions   Assumptions  `json:"assumptions"`
	Stages        []Stage      `json:"stages"`
	WizardState   *WizardState `json:"wizardState,omitempty"`
}

// StageIndex returns the position of the stage with the given id or -1.
func (c *Calculator) StageIndex(id string) int {
	for i, s := range c.Stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CalculatorInfo is the list view of a calculator.
type CalculatorInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StageCount int       `json:"stageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
