package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailscout/profile_go_server/internal/model"
	"github.com/mailscout/profile_go_server/internal/testutil"
)

func TestProfileRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	expiry := time.Now().Add(7 * 24 * time.Hour)
	profile := &model.Profile{
		ID:            "auth0|u1",
		Email:         "jo@x.com",
		FullName:      "jo",
		Plan:          "free",
		CreditsFind:   25,
		CreditsVerify: 25,
		PlanExpiry:    &expiry,
	}

	require.NoError(t, repo.Create(profile))
	assert.False(t, profile.CreatedAt.IsZero())
}

func TestProfileRepository_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	testutil.TestProfile(t, db, testutil.WithID("auth0|dup"))

	err := repo.Create(&model.Profile{ID: "auth0|dup", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProfileRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	created := testutil.TestProfile(t, db)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Email, found.Email)
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	_, err := repo.GetByID("auth0|missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	profile := testutil.TestProfile(t, db)

	err := repo.UpdateFields(profile.ID, map[string]interface{}{"full_name": "Corrected Name"})
	require.NoError(t, err)

	updated, err := repo.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corrected Name", updated.FullName)
}

func TestProfileRepository_UpdateFields_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	err := repo.UpdateFields("auth0|missing", map[string]interface{}{"full_name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepository_ConsumeCredit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	profile := testutil.TestProfile(t, db, testutil.WithCredits(1, 25))

	// 第一次扣减成功
	consumed, err := repo.ConsumeCredit(profile.ID, "credits_find")
	require.NoError(t, err)
	assert.True(t, consumed)

	// 余额归零后扣减失败，且不会变成负数
	consumed, err = repo.ConsumeCredit(profile.ID, "credits_find")
	require.NoError(t, err)
	assert.False(t, consumed)

	updated, err := repo.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CreditsFind)
	assert.Equal(t, 25, updated.CreditsVerify)
}

func TestProfileRepository_RefundCredit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	profile := testutil.TestProfile(t, db, testutil.WithCredits(5, 5))

	require.NoError(t, repo.RefundCredit(profile.ID, "credits_verify"))

	updated, err := repo.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.CreditsVerify)
}

func TestProfileRepository_ListExpiredPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	// 已到期的付费档案
	expired := testutil.TestProfile(t, db,
		testutil.WithPlan("pro", 100, 100),
		testutil.WithPlanExpiry(time.Now().Add(-time.Hour)),
	)
	// 未到期的付费档案
	testutil.TestProfile(t, db,
		testutil.WithPlan("starter", 100, 100),
		testutil.WithPlanExpiry(time.Now().Add(time.Hour)),
	)
	// 免费档案即使过了到期时间也不在扫描范围内
	testutil.TestProfile(t, db,
		testutil.WithPlanExpiry(time.Now().Add(-time.Hour)),
	)

	got, err := repo.ListExpiredPlans(time.Now())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expired.ID, got[0].ID)
}

func TestProfileRepository_CountByPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	testutil.TestProfile(t, db, testutil.WithCredits(10, 20))
	testutil.TestProfile(t, db, testutil.WithCredits(5, 5))
	testutil.TestProfile(t, db, testutil.WithPlan("pro", 100, 200))

	totals, err := repo.CountByPlan()
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byPlan := map[string]PlanTotals{}
	for _, tt := range totals {
		byPlan[tt.Plan] = tt
	}
	assert.Equal(t, int64(2), byPlan["free"].Count)
	assert.Equal(t, int64(15), byPlan["free"].CreditsFind)
	assert.Equal(t, int64(25), byPlan["free"].CreditsVerify)
	assert.Equal(t, int64(1), byPlan["pro"].Count)
}

func TestProfileRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProfileRepository(db)

	for i := 0; i < 3; i++ {
		testutil.TestProfile(t, db)
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
