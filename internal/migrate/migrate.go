// Package migrate upgrades persisted calculator records to the current schema.
//
// Every stored record is decoded into the struct of the version it was written
// with and then walked through the upgrade chain v1 -> v2 -> v3. Storage
// implementations call Decode on load and Encode on save; the calculation engine
// only ever sees current-version records.
package migrate

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	ErrMalformedRecord    = errors.New("malformed calculator record")
)

const (
	defaultLoadedMultiplier = 1.3
	defaultHoursPerWeek     = 40
)

type Migrator struct {
	newID func() string
}

func New() *Migrator {
	return &Migrator{newID: uuid.NewString}
}

// NewWithIDs is used where role ids minted during the v1 upgrade must be predictable.
func NewWithIDs(newID func() string) *Migrator {
	return &Migrator{newID: newID}
}

var defaultMigrator = New()

func Decode(raw []byte) (*storage.Calculator, error) {
	return defaultMigrator.Decode(raw)
}

func Encode(calc *storage.Calculator) ([]byte, error) {
	return defaultMigrator.Encode(calc)
}

type versionProbe struct {
	SchemaVersion *int `json:"schemaVersion"`
	Assumptions   struct {
		RoleALabel *string  `json:"roleALabel"`
		RateA      *float64 `json:"rateA"`
	} `json:"assumptions"`
}

// DetectVersion reports the schema version a raw record was written with.
// Records without a version tag are v1 if they carry the two fixed roles, else v2.
func DetectVersion(raw []byte) (int, error) {
	const op = "migrate.DetectVersion"

	var probe versionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, ErrMalformedRecord, err)
	}

	if probe.SchemaVersion != nil {
		return *probe.SchemaVersion, nil
	}
	if probe.Assumptions.RoleALabel != nil || probe.Assumptions.RateA != nil {
		return 1, nil
	}
	return 2, nil
}

func (m *Migrator) Decode(raw []byte) (*storage.Calculator, error) {
	const op = "migrate.Decode"

	version, err := DetectVersion(raw)
	if err != nil {
		return nil, err
	}

	var calc storage.Calculator
	switch version {
	case 1:
		var rec v1Calculator
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%s: v1: %w: %v", op, ErrMalformedRecord, err)
		}
		calc = upgradeV2(m.upgradeV1(rec))
	case 2:
		var rec v2Calculator
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%s: v2: %w: %v", op, ErrMalformedRecord, err)
		}
		calc = upgradeV2(rec)
	case storage.CurrentSchemaVersion:
		if err := json.Unmarshal(raw, &calc); err != nil {
			return nil, fmt.Errorf("%s: v3: %w: %v", op, ErrMalformedRecord, err)
		}
		fillDefaults(&calc)
	default:
		return nil, fmt.Errorf("%s: %w: %d", op, ErrUnsupportedVersion, version)
	}

	return &calc, nil
}

// Encode always writes the current schema version.
func (m *Migrator) Encode(calc *storage.Calculator) ([]byte, error) {
	const op = "migrate.Encode"

	out := *calc
	out.SchemaVersion = storage.CurrentSchemaVersion

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

type v2Calculator struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Assumptions storage.Assumptions `json:"assumptions"`
	Stages      []storage.Stage     `json:"stages"`
}

func upgradeV2(rec v2Calculator) storage.Calculator {
	calc := storage.Calculator{
		ID:            rec.ID,
		Name:          rec.Name,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		SchemaVersion: storage.CurrentSchemaVersion,
		Assumptions:   rec.Assumptions,
		Stages:        rec.Stages,
	}
	fillDefaults(&calc)
	return calc
}

func fillDefaults(calc *storage.Calculator) {
	calc.SchemaVersion = storage.CurrentSchemaVersion

	a := &calc.Assumptions
	if a.LoadedMultiplier <= 0 {
		a.LoadedMultiplier = defaultLoadedMultiplier
	}
	if a.HoursPerWeek <= 0 {
		a.HoursPerWeek = defaultHoursPerWeek
	}
	if a.Currency == "" {
		a.Currency = storage.CurrencyUSD
	}
	if a.Roles == nil {
		a.Roles = []storage.Role{}
	}

	if calc.Stages == nil {
		calc.Stages = []storage.Stage{}
	}
	for i := range calc.Stages {
		s := &calc.Stages[i]
		if s.RoleAllocations == nil {
			s.RoleAllocations = []storage.RoleAllocation{}
		}
		if s.PeopleAffected < 1 {
			s.PeopleAffected = 1
		}
	}
}
