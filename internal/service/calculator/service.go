// Package calculator owns the calculator lifecycle: creation from templates,
// edits to assumptions, stages and roles, and evaluation through the roi engine.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/migrate"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

var (
	ErrLastRole      = errors.New("a calculator needs at least one role")
	ErrStageNotFound = errors.New("stage not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrInvalidInput  = errors.New("invalid input")
)

type Kind string

const (
	KindBlank    Kind = "blank"
	KindWizard   Kind = "wizard"
	KindTemplate Kind = "template"
)

type Repository interface {
	InsertCalculator(ctx context.Context, calc *storage.Calculator) error
	SaveCalculator(ctx context.Context, calc *storage.Calculator) error
	GetCalculator(ctx context.Context, id string) (*storage.Calculator, error)
	ListCalculators(ctx context.Context) ([]storage.CalculatorInfo, error)
	DeleteCalculator(ctx context.Context, id string) error
	GetWhiteLabelSettings(ctx context.Context) (storage.WhiteLabelSettings, error)
	SaveWhiteLabelSettings(ctx context.Context, settings storage.WhiteLabelSettings) error
}

type Service struct {
	log     *slog.Logger
	repo    Repository
	catalog *templates.Catalog
	engine  config.Engine
	now     func() time.Time
}

func New(log *slog.Logger, repo Repository, catalog *templates.Catalog, engine config.Engine) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		catalog: catalog,
		engine:  engine,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Templates() []templates.Template {
	return s.catalog.List()
}

func (s *Service) Create(ctx context.Context, kind Kind, templateIdx int) (*storage.Calculator, error) {
	const op = "service.calculator.Create"

	var calc *storage.Calculator
	switch kind {
	case KindBlank, "":
		calc = templates.NewBlank(s.now())
	case KindWizard:
		calc = templates.NewWizard(s.now())
	case KindTemplate:
		var err error
		calc, err = s.catalog.Instantiate(templateIdx, s.now())
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidInput, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w: unknown kind %q", op, ErrInvalidInput, kind)
	}
	// catalog entries can come from a user-supplied file
	if err := validateCalculator(calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.InsertCalculator(ctx, calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

// Import accepts a calculator record of any known schema version, upgrades it and
// stores it under a fresh id.
func (s *Service) Import(ctx context.Context, raw []byte) (*storage.Calculator, error) {
	const op = "service.calculator.Import"

	calc, err := migrate.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidInput, err)
	}
	if err := validateCalculator(calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	calc.ID = uuid.NewString()
	calc.UpdatedAt = now
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = now
	}

	if err := s.repo.InsertCalculator(ctx, calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*storage.Calculator, error) {
	const op = "service.calculator.Get"

	calc, err := s.repo.GetCalculator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return calc, nil
}

func (s *Service) List(ctx context.Context) ([]storage.CalculatorInfo, error) {
	const op = "service.calculator.List"

	infos, err := s.repo.ListCalculators(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return infos, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service.calculator.Delete"

	if err := s.repo.DeleteCalculator(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Duplicate stores a copy under a new id named "<name> (Copy)". Stage and role ids
// are kept; they only need to be unique within one calculator.
func (s *Service) Duplicate(ctx context.Context, id string) (*storage.Calculator, error) {
	const op = "service.calculator.Duplicate"

	src, err := s.repo.GetCalculator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	dup := clone(src)
	dup.ID = uuid.NewString()
	dup.Name = src.Name + " (Copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.repo.InsertCalculator(ctx, dup); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dup, nil
}

// Save replaces a stored calculator with calc. CreatedAt is preserved.
func (s *Service) Save(ctx context.Context, calc *storage.Calculator) (*storage.Calculator, error) {
	const op = "service.calculator.Save"

	current, err := s.repo.GetCalculator(ctx, calc.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateCalculator(calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	calc.CreatedAt = current.CreatedAt
	calc.UpdatedAt = s.now()

	if err := s.repo.SaveCalculator(ctx, calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

// update loads the calculator, applies fn and persists the result with a new UpdatedAt.
func (s *Service) update(ctx context.Context, op, id string, fn func(c *storage.Calculator) error) (*storage.Calculator, error) {
	calc, err := s.repo.GetCalculator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	calc.UpdatedAt = s.now()

	if err := s.repo.SaveCalculator(ctx, calc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

func clone(c *storage.Calculator) *storage.Calculator {
	out := *c
	out.Assumptions.Roles = append([]storage.Role{}, c.Assumptions.Roles...)
	out.Stages = make([]storage.Stage, len(c.Stages))
	for i, st := range c.Stages {
		st.RoleAllocations = append([]storage.RoleAllocation{}, st.RoleAllocations...)
		if st.SoftBenefits != nil {
			st.SoftBenefits = append([]storage.SoftBenefit{}, st.SoftBenefits...)
		}
		out.Stages[i] = st
	}
	if c.WizardState != nil {
		ws := *c.WizardState
		out.WizardState = &ws
	}
	return &out
}
