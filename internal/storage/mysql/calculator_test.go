package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

func fixtureCalculator(name string, updated time.Time) *storage.Calculator {
	role := storage.Role{ID: uuid.NewString(), Label: "Analyst", HourlyRate: 90}
	return &storage.Calculator{
		ID:            uuid.NewString(),
		Name:          name,
		CreatedAt:     updated.Add(-time.Hour),
		UpdatedAt:     updated,
		SchemaVersion: storage.CurrentSchemaVersion,
		Assumptions: storage.Assumptions{
			Roles:            []storage.Role{role},
			HoursPerWeek:     40,
			LoadedMultiplier: 1.3,
			AnnualToolCost:   20000,
			Currency:         storage.CurrencyGBP,
		},
		Stages: []storage.Stage{{
			ID:              uuid.NewString(),
			Name:            "Intake",
			RoleAllocations: []storage.RoleAllocation{{RoleID: role.ID, Baseline: 10, Gain: 40}},
			PeopleAffected:  2,
		}},
	}
}

func TestInsertAndGetCalculator(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	calc := fixtureCalculator("Intake review", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.InsertCalculator(ctx, calc))

	got, err := s.GetCalculator(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, calc.Name, got.Name)
	assert.Equal(t, calc.Assumptions, got.Assumptions)
	assert.Equal(t, calc.Stages, got.Stages)

	err = s.InsertCalculator(ctx, calc)
	assert.ErrorIs(t, err, storage.ErrCalculatorExists)
}

func TestSaveCalculator_Upserts(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	calc := fixtureCalculator("Draft", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveCalculator(ctx, calc))

	calc.Name = "Final"
	calc.Stages = append(calc.Stages, storage.Stage{ID: uuid.NewString(), Name: "Review", RoleAllocations: []storage.RoleAllocation{}, PeopleAffected: 1})
	calc.UpdatedAt = calc.UpdatedAt.Add(time.Hour)
	require.NoError(t, s.SaveCalculator(ctx, calc))

	infos, err := s.ListCalculators(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Final", infos[0].Name)
	assert.Equal(t, 2, infos[0].StageCount)
}

func TestListCalculators_NewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older := fixtureCalculator("Older", base)
	newer := fixtureCalculator("Newer", base.Add(24*time.Hour))
	require.NoError(t, s.InsertCalculator(ctx, older))
	require.NoError(t, s.InsertCalculator(ctx, newer))

	infos, err := s.ListCalculators(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, newer.ID, infos[0].ID)
	assert.Equal(t, older.ID, infos[1].ID)
}

func TestDeleteCalculator(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	calc := fixtureCalculator("Doomed", time.Now().UTC())
	require.NoError(t, s.InsertCalculator(ctx, calc))

	require.NoError(t, s.DeleteCalculator(ctx, calc.ID))

	_, err := s.GetCalculator(ctx, calc.ID)
	assert.ErrorIs(t, err, storage.ErrCalculatorNotFound)

	err = s.DeleteCalculator(ctx, calc.ID)
	assert.ErrorIs(t, err, storage.ErrCalculatorNotFound)
}

func TestGetCalculator_UpgradesLegacyDocument(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	legacy := `{"id":"legacy-1","name":"Old","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z",
		"assumptions":{"roleALabel":"Lead","roleBLabel":"Member","rateA":150,"rateB":85,"hoursPerWeek":40,"loadedMultiplier":1.3,"annualToolCost":1000},
		"stages":[{"id":"s1","name":"Stage","baselineA":10,"gainA":50,"baselineB":5,"gainB":20,"peopleAffected":2}]}`
	_, err := testDB.Exec(`
		INSERT INTO vc_calculators (id, name, schema_version, stage_count, document, created_at, updated_at)
		VALUES (?, ?, 1, 1, ?, ?, ?)`, "legacy-1", "Old", legacy, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)

	calc, err := s.GetCalculator(ctx, "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, storage.CurrentSchemaVersion, calc.SchemaVersion)
	require.Len(t, calc.Assumptions.Roles, 2)
	require.Len(t, calc.Stages[0].RoleAllocations, 2)
}

func TestWhiteLabelSettings(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetWhiteLabelSettings(ctx)
	assert.ErrorIs(t, err, storage.ErrSettingsNotFound)

	want := storage.WhiteLabelSettings{CompanyName: "Acme", PrimaryColor: "#111111", AccentColor: "#222222"}
	require.NoError(t, s.SaveWhiteLabelSettings(ctx, want))
	require.NoError(t, s.SaveWhiteLabelSettings(ctx, want))

	got, err := s.GetWhiteLabelSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
