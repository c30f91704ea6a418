package calculator

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

func (s *Service) Rename(ctx context.Context, id, name string) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.Rename", id, func(c *storage.Calculator) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return invalid("name is required")
		}
		c.Name = name
		return nil
	})
}

func (s *Service) UpdateAssumptions(ctx context.Context, id string, a storage.Assumptions) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.UpdateAssumptions", id, func(c *storage.Calculator) error {
		if err := ValidateAssumptions(&a); err != nil {
			return err
		}
		c.Assumptions = a
		return nil
	})
}

func (s *Service) UpdateWizard(ctx context.Context, id string, state storage.WizardState) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.UpdateWizard", id, func(c *storage.Calculator) error {
		if state.CurrentStep < 1 {
			return invalid("currentStep must be at least 1")
		}
		c.WizardState = &state
		return nil
	})
}

// AddStage appends stage, or the default "Stage n" when stage is nil.
func (s *Service) AddStage(ctx context.Context, id string, stage *storage.Stage) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.AddStage", id, func(c *storage.Calculator) error {
		if stage == nil {
			c.Stages = append(c.Stages, templates.NewStage(len(c.Stages)+1, c.Assumptions.Roles))
			return nil
		}

		st := *stage
		st.ID = ""
		st.RoleAllocations = append([]storage.RoleAllocation{}, st.RoleAllocations...)
		if err := ValidateStage(&st); err != nil {
			return err
		}
		c.Stages = append(c.Stages, st)
		return nil
	})
}

func (s *Service) UpdateStage(ctx context.Context, id string, stage storage.Stage) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.UpdateStage", id, func(c *storage.Calculator) error {
		idx := c.StageIndex(stage.ID)
		if stage.ID == "" || idx < 0 {
			return ErrStageNotFound
		}
		if err := ValidateStage(&stage); err != nil {
			return err
		}
		c.Stages[idx] = stage
		return nil
	})
}

func (s *Service) RemoveStage(ctx context.Context, id, stageID string) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.RemoveStage", id, func(c *storage.Calculator) error {
		idx := c.StageIndex(stageID)
		if idx < 0 {
			return ErrStageNotFound
		}
		c.Stages = append(c.Stages[:idx], c.Stages[idx+1:]...)
		return nil
	})
}

// ReorderStages moves the stage at index from to index to.
func (s *Service) ReorderStages(ctx context.Context, id string, from, to int) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.ReorderStages", id, func(c *storage.Calculator) error {
		n := len(c.Stages)
		if from < 0 || from >= n || to < 0 || to >= n {
			return invalid("stage index out of range")
		}

		moved := c.Stages[from]
		c.Stages = append(c.Stages[:from], c.Stages[from+1:]...)
		c.Stages = append(c.Stages[:to], append([]storage.Stage{moved}, c.Stages[to:]...)...)
		return nil
	})
}

func (s *Service) AddRole(ctx context.Context, id string, role storage.Role) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.AddRole", id, func(c *storage.Calculator) error {
		role.ID = uuid.NewString()
		if err := validateRole(&role); err != nil {
			return err
		}
		if role.Label == "" {
			role.Label = "New Role"
		}
		c.Assumptions.Roles = append(c.Assumptions.Roles, role)
		return nil
	})
}

// RemoveRole deletes the role and every allocation that references it. The last
// remaining role cannot be removed.
func (s *Service) RemoveRole(ctx context.Context, id, roleID string) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.RemoveRole", id, func(c *storage.Calculator) error {
		idx := -1
		for i, r := range c.Assumptions.Roles {
			if r.ID == roleID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrRoleNotFound
		}
		if len(c.Assumptions.Roles) == 1 {
			return ErrLastRole
		}

		c.Assumptions.Roles = append(c.Assumptions.Roles[:idx], c.Assumptions.Roles[idx+1:]...)
		for i := range c.Stages {
			kept := c.Stages[i].RoleAllocations[:0]
			for _, a := range c.Stages[i].RoleAllocations {
				if a.RoleID != roleID {
					kept = append(kept, a)
				}
			}
			c.Stages[i].RoleAllocations = kept
		}
		return nil
	})
}

// AppendStages adds generated stages after validating them like manual input.
func (s *Service) AppendStages(ctx context.Context, id string, stages []storage.Stage) (*storage.Calculator, error) {
	return s.update(ctx, "service.calculator.AppendStages", id, func(c *storage.Calculator) error {
		for _, st := range stages {
			st.RoleAllocations = append([]storage.RoleAllocation{}, st.RoleAllocations...)
			if err := ValidateStage(&st); err != nil {
				return err
			}
			if c.StageIndex(st.ID) >= 0 {
				st.ID = uuid.NewString()
			}
			c.Stages = append(c.Stages, st)
		}
		return nil
	})
}
