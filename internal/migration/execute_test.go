package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

func TestExecute_AllSucceed(t *testing.T) {
	products := newFakeClient()
	reg := platform.NewRegistry()
	reg.Register("products", products)

	plan := Plan(&models.OrphanReport{
		Kinds: []string{"products"},
		Candidates: map[string][]models.Resource{
			"products": {res("prod_1", "Widget", "ten_1", "usr_1")},
		},
	}, "ten_2")

	units, err := Execute(context.Background(), reg, plan, discardLog)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, models.UnitMigrated, units[0].Status)
	require.NotEmpty(t, units[0].DestinationID)
	require.Empty(t, units[0].FailureReason)
}

func TestExecute_PayloadRewritesTenantIdentity(t *testing.T) {
	products := newFakeClient()
	reg := platform.NewRegistry()
	reg.Register("products", products)

	source := res("prod_1", "Widget", "ten_1", "usr_1")
	source["price"] = 900
	plan := Plan(&models.OrphanReport{
		Kinds:      []string{"products"},
		Candidates: map[string][]models.Resource{"products": {source}},
	}, "ten_2")

	_, err := Execute(context.Background(), reg, plan, discardLog)
	require.NoError(t, err)

	require.Len(t, products.resources, 1)
	created := products.resources[0]
	require.Equal(t, "ten_2", created.TenantID())
	require.Equal(t, "prod_1", created.MigratedFrom())
	require.Equal(t, 900, created["price"])
	require.Equal(t, "usr_1", created.OwnerUserID())
	require.NotEqual(t, "prod_1", created.ID(), "destination assigns a new id")
	require.NotContains(t, created, "created_at")
	require.NotContains(t, created, "updated_at")
}

func TestExecute_SingleFailureDoesNotAbortBatch(t *testing.T) {
	products := newFakeClient()
	products.failCreates = map[string]error{"Gadget": errors.New("503 service unavailable")}
	reg := platform.NewRegistry()
	reg.Register("products", products)

	plan := Plan(&models.OrphanReport{
		Kinds: []string{"products"},
		Candidates: map[string][]models.Resource{
			"products": {
				res("prod_1", "Widget", "ten_1", "usr_1"),
				res("prod_2", "Gadget", "ten_1", "usr_1"),
				res("prod_3", "Doohickey", "ten_1", "usr_1"),
			},
		},
	}, "ten_2")

	units, err := Execute(context.Background(), reg, plan, discardLog)
	require.NoError(t, err)
	require.Len(t, units, 3, "remaining units processed after a failure")

	require.Equal(t, models.UnitMigrated, units[0].Status)
	require.Equal(t, models.UnitFailed, units[1].Status)
	require.Contains(t, units[1].FailureReason, "503")
	require.Empty(t, units[1].DestinationID)
	require.Equal(t, models.UnitMigrated, units[2].Status)
}

func TestExecute_UnregisteredKindFailsBeforeAnyCreate(t *testing.T) {
	products := newFakeClient()
	reg := platform.NewRegistry()
	reg.Register("products", products)

	plan := Plan(&models.OrphanReport{
		Kinds: []string{"products", "invoices"},
		Candidates: map[string][]models.Resource{
			"products": {res("prod_1", "Widget", "ten_1", "usr_1")},
			"invoices": {res("inv_1", "Invoice", "ten_1", "usr_1")},
		},
	}, "ten_2")

	_, err := Execute(context.Background(), reg, plan, discardLog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invoices")
	require.Zero(t, products.createCalls, "configuration errors fail before any unit is attempted")
}

func TestExecute_CancelledRunLeavesUnitsPending(t *testing.T) {
	products := newFakeClient()
	reg := platform.NewRegistry()
	reg.Register("products", products)

	plan := Plan(&models.OrphanReport{
		Kinds: []string{"products"},
		Candidates: map[string][]models.Resource{
			"products": {res("prod_1", "Widget", "ten_1", "usr_1")},
		},
	}, "ten_2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units, err := Execute(ctx, reg, plan, discardLog)
	require.NoError(t, err)
	require.Empty(t, units, "a cancelled run reports only completed attempts")
	require.Equal(t, models.UnitPending, plan.Units[0].Status)
	require.Zero(t, products.createCalls)
}
