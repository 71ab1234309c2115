//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"shootbook/internal/infra"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/queries"
	"shootbook/tests/common/builder"
	"shootbook/tests/common/fake"
	queriesmock "shootbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPolicyQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	uow := fake.NewUoW(nil)
	q := queries.NewPolicyQueries(fake.Views{U: uow})
	p := builder.NewPolicyBuilder().AsModerate().WithFee(5, 0).AsDefault().BuildDomain()
	uow.PutPolicy(p)

	t.Run("success", func(t *testing.T) {
		view, err := q.GetByID(ctx, p.ID())

		require.NoError(t, err)
		assert.Equal(t, p.ID(), view.ID)
		assert.Equal(t, "moderate", view.PolicyType)
		assert.True(t, view.IsDefault)
		assert.Len(t, view.RefundRules, 3)
		assert.InDelta(t, 5.0, view.FeePercentage, 0.001)
	})

	t.Run("error: unknown policy", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrPolicyNotFound))
	})
}

func TestPolicyQueries_ListByProvider(t *testing.T) {
	ctx := context.Background()
	uow := fake.NewUoW(nil)
	q := queries.NewPolicyQueries(fake.Views{U: uow})
	providerID := uuid.New()
	active := builder.NewPolicyBuilder().WithProviderID(providerID).BuildDomain()
	retired := builder.NewPolicyBuilder().WithProviderID(providerID).AsInactive().BuildDomain()
	other := builder.NewPolicyBuilder().BuildDomain()
	uow.PutPolicy(active)
	uow.PutPolicy(retired)
	uow.PutPolicy(other)

	testCases := []struct {
		name            string
		includeInactive bool
		want            []uuid.UUID
	}{
		{name: "success: active only", want: []uuid.UUID{active.ID()}},
		{name: "success: include inactive", includeInactive: true, want: []uuid.UUID{active.ID(), retired.ID()}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := q.ListByProvider(ctx, providerID, tc.includeInactive)

			require.NoError(t, err)
			got := make([]uuid.UUID, len(rows))
			for i, r := range rows {
				got[i] = r.ID
				assert.Equal(t, providerID, r.ProviderID)
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}

	t.Run("success: provider without policies", func(t *testing.T) {
		rows, err := q.ListByProvider(ctx, uuid.New(), true)

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("error: repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := queriesmock.NewMockPolicyViewRepo(ctrl)
		repo.EXPECT().FindByProvider(gomock.Any(), providerID, false).
			Return(nil, infra.WrapRepoErr("failed to list policies", errors.New("timeout")))

		_, err := queries.NewPolicyQueries(repo).ListByProvider(ctx, providerID, false)

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func TestPolicyQueries_Templates(t *testing.T) {
	q := queries.NewPolicyQueries(fake.Views{U: fake.NewUoW(nil)})

	tpls, err := q.Templates(context.Background())

	require.NoError(t, err)
	require.Len(t, tpls, 3)
	byType := map[string]*queries.TemplateView{}
	for _, tpl := range tpls {
		byType[tpl.PolicyType] = tpl
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Description)
	}
	require.Contains(t, byType, "flexible")
	require.Contains(t, byType, "moderate")
	require.Contains(t, byType, "strict")
	assert.Len(t, byType["moderate"].RefundRules, 3)
	assert.Empty(t, byType["strict"].RefundRules)
}
