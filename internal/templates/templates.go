package templates

import (
	"time"

	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const (
	defaultHoursPerWeek     = 40
	defaultLoadedMultiplier = 1.3
	defaultAnnualToolCost   = 50000
)

type Template struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Assumptions storage.Assumptions `json:"assumptions" yaml:"assumptions"`
	Stages      []storage.Stage     `json:"stages" yaml:"stages"`
}

type alloc struct {
	baseline, gain float64
}

type stageSpec struct {
	name, assumptions, rationale, workflow string
	people                                 int
	allocs                                 []alloc
}

func build(name, description string, roles []storage.Role, specs []stageSpec) Template {
	stages := make([]storage.Stage, 0, len(specs))
	for i, s := range specs {
		allocations := make([]storage.RoleAllocation, len(s.allocs))
		for j, a := range s.allocs {
			allocations[j] = storage.RoleAllocation{RoleID: roles[j].ID, Baseline: a.baseline, Gain: a.gain}
		}
		stages = append(stages, storage.Stage{
			ID:              roles[0].ID + "-stage-" + itoa(i+1),
			Name:            s.name,
			Workflow:        s.workflow,
			Assumptions:     s.assumptions,
			Rationale:       s.rationale,
			RoleAllocations: allocations,
			PeopleAffected:  s.people,
		})
	}

	return Template{
		Name:        name,
		Description: description,
		Assumptions: storage.Assumptions{
			Roles:            roles,
			HoursPerWeek:     defaultHoursPerWeek,
			LoadedMultiplier: defaultLoadedMultiplier,
			AnnualToolCost:   defaultAnnualToolCost,
			Currency:         storage.CurrencyUSD,
		},
		Stages: stages,
	}
}

// instantiate copies t with fresh ids; allocations follow their roles to the new ids.
func (t Template) instantiate(now time.Time) *storage.Calculator {
	roleIDs := make(map[string]string, len(t.Assumptions.Roles))
	roles := make([]storage.Role, len(t.Assumptions.Roles))
	for i, r := range t.Assumptions.Roles {
		id := uuid.NewString()
		roleIDs[r.ID] = id
		roles[i] = storage.Role{ID: id, Label: r.Label, HourlyRate: r.HourlyRate}
	}

	stages := make([]storage.Stage, len(t.Stages))
	for i, s := range t.Stages {
		allocations := make([]storage.RoleAllocation, len(s.RoleAllocations))
		for j, a := range s.RoleAllocations {
			roleID, ok := roleIDs[a.RoleID]
			if !ok {
				roleID = a.RoleID
			}
			allocations[j] = storage.RoleAllocation{RoleID: roleID, Baseline: a.Baseline, Gain: a.Gain}
		}
		s.ID = uuid.NewString()
		s.RoleAllocations = allocations
		s.SoftBenefits = append([]storage.SoftBenefit(nil), s.SoftBenefits...)
		stages[i] = s
	}

	assumptions := t.Assumptions
	assumptions.Roles = roles

	return &storage.Calculator{
		ID:            uuid.NewString(),
		Name:          t.Name + " Calculator",
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: storage.CurrentSchemaVersion,
		Assumptions:   assumptions,
		Stages:        stages,
	}
}

func defaultRoles() []storage.Role {
	return []storage.Role{
		{ID: uuid.NewString(), Label: "Senior Staff", HourlyRate: 150},
		{ID: uuid.NewString(), Label: "Junior Staff", HourlyRate: 75},
	}
}

func defaultAssumptions(roles []storage.Role) storage.Assumptions {
	return storage.Assumptions{
		Roles:            roles,
		HoursPerWeek:     defaultHoursPerWeek,
		LoadedMultiplier: defaultLoadedMultiplier,
		AnnualToolCost:   defaultAnnualToolCost,
		Currency:         storage.CurrencyUSD,
	}
}

// NewBlank returns a calculator with two default roles and a single stage.
func NewBlank(now time.Time) *storage.Calculator {
	roles := defaultRoles()
	return &storage.Calculator{
		ID:            uuid.NewString(),
		Name:          "New Calculator",
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: storage.CurrentSchemaVersion,
		Assumptions:   defaultAssumptions(roles),
		Stages:        []storage.Stage{NewStage(1, roles)},
	}
}

// NewWizard returns a calculator with no stages positioned at the first wizard step.
func NewWizard(now time.Time) *storage.Calculator {
	return &storage.Calculator{
		ID:            uuid.NewString(),
		Name:          "New Calculator",
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: storage.CurrentSchemaVersion,
		Assumptions:   defaultAssumptions(defaultRoles()),
		Stages:        []storage.Stage{},
		WizardState:   &storage.WizardState{CurrentStep: 1},
	}
}

// NewStage builds the default "Stage n". The first role gets 10h at 30%, the
// second 15h at 25%; further roles are not allocated.
func NewStage(n int, roles []storage.Role) storage.Stage {
	defaults := []storage.RoleAllocation{{Baseline: 10, Gain: 30}, {Baseline: 15, Gain: 25}}

	allocations := make([]storage.RoleAllocation, 0, len(defaults))
	for i, r := range roles {
		if i >= len(defaults) {
			break
		}
		a := defaults[i]
		a.RoleID = r.ID
		allocations = append(allocations, a)
	}

	return storage.Stage{
		ID:              uuid.NewString(),
		Name:            "Stage " + itoa(n),
		RoleAllocations: allocations,
		PeopleAffected:  3,
	}
}
