package migrate

import (
	"time"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

// v1 records modelled exactly two roles as flat fields.
type v1Assumptions struct {
	RoleALabel       string           `json:"roleALabel"`
	RoleBLabel       string           `json:"roleBLabel"`
	RateA            float64          `json:"rateA"`
	RateB            float64          `json:"rateB"`
	HoursPerWeek     float64          `json:"hoursPerWeek"`
	LoadedMultiplier float64          `json:"loadedMultiplier"`
	AnnualToolCost   float64          `json:"annualToolCost"`
	Currency         storage.Currency `json:"currency"`
}

type v1Stage struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BaselineA      float64 `json:"baselineA"`
	BaselineB      float64 `json:"baselineB"`
	GainA          float64 `json:"gainA"`
	GainB          float64 `json:"gainB"`
	Assumptions    string  `json:"assumptions"`
	Rationale      string  `json:"rationale"`
	PeopleAffected int     `json:"peopleAffected"`
	Workflow       string  `json:"workflow"`
}

type v1Calculator struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Assumptions v1Assumptions `json:"assumptions"`
	Stages      []v1Stage     `json:"stages"`
}

func (m *Migrator) upgradeV1(rec v1Calculator) v2Calculator {
	roleA := storage.Role{ID: m.newID(), Label: rec.Assumptions.RoleALabel, HourlyRate: rec.Assumptions.RateA}
	roleB := storage.Role{ID: m.newID(), Label: rec.Assumptions.RoleBLabel, HourlyRate: rec.Assumptions.RateB}

	stages := make([]storage.Stage, 0, len(rec.Stages))
	for _, s := range rec.Stages {
		stages = append(stages, storage.Stage{
			ID:          s.ID,
			Name:        s.Name,
			Workflow:    s.Workflow,
			Assumptions: s.Assumptions,
			Rationale:   s.Rationale,
			RoleAllocations: []storage.RoleAllocation{
				{RoleID: roleA.ID, Baseline: s.BaselineA, Gain: s.GainA},
				{RoleID: roleB.ID, Baseline: s.BaselineB, Gain: s.GainB},
			},
			PeopleAffected: s.PeopleAffected,
		})
	}

	return v2Calculator{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Assumptions: storage.Assumptions{
			Roles:            []storage.Role{roleA, roleB},
			HoursPerWeek:     rec.Assumptions.HoursPerWeek,
			LoadedMultiplier: rec.Assumptions.LoadedMultiplier,
			AnnualToolCost:   rec.Assumptions.AnnualToolCost,
			Currency:         rec.Assumptions.Currency,
		},
		Stages: stages,
	}
}
