package services

import (
	"sync"
	"testing"
	"time"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// todaysChecklist pins the clock and creates a checklist for the pinned day
// so the edit window is open.
func todaysChecklist(t *testing.T, userID uint) *models.Checklist {
	t.Helper()
	now := time.Date(2025, 6, 19, 10, 0, 0, 0, time.Local)
	pinClock(t, now)
	cl, _, err := GetOrCreateForLocalDay(userID, now)
	require.NoError(t, err)
	return cl
}

func reloadChecklist(t *testing.T, id uint) models.Checklist {
	t.Helper()
	var cl models.Checklist
	require.NoError(t, config.DB.First(&cl, id).Error)
	return cl
}

func TestCreateRegret_UpdatesScore(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	regret, err := CreateRegret(user.ID, cl.ID, "skipped the gym")
	require.NoError(t, err)
	assert.False(t, regret.Success)
	assert.Equal(t, cl.ID, regret.ChecklistID)

	// One regret, zero resolved: everything is still outstanding.
	assert.Equal(t, 1.0, reloadChecklist(t, cl.ID).Score)
}

func TestCreateRegret_OwnershipMasked(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	cl := todaysChecklist(t, alice.ID)

	_, err := CreateRegret(bob.ID, cl.ID, "not mine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRegretSuccess_ScoreThirds(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	var regrets []*models.Regret
	for _, d := range []string{"slept in", "skipped lunch", "doomscrolled"} {
		r, err := CreateRegret(user.ID, cl.ID, d)
		require.NoError(t, err)
		regrets = append(regrets, r)
	}

	updated, err := UpdateRegretSuccess(user.ID, cl.ID, regrets[0].ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Success)

	// 2 of 3 still unresolved.
	assert.Equal(t, 0.6667, reloadChecklist(t, cl.ID).Score)

	_, err = UpdateRegretSuccess(user.ID, cl.ID, regrets[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 0.3333, reloadChecklist(t, cl.ID).Score)

	_, err = UpdateRegretSuccess(user.ID, cl.ID, regrets[2].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloadChecklist(t, cl.ID).Score)
}

func TestUpdateRegretSuccess_IllegalTransitions(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	regret, err := CreateRegret(user.ID, cl.ID, "skipped the gym")
	require.NoError(t, err)

	// false→false is not a legal write.
	_, err = UpdateRegretSuccess(user.ID, cl.ID, regret.ID, false)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = UpdateRegretSuccess(user.ID, cl.ID, regret.ID, true)
	require.NoError(t, err)

	// No undo, and no re-resolving either.
	_, err = UpdateRegretSuccess(user.ID, cl.ID, regret.ID, false)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	_, err = UpdateRegretSuccess(user.ID, cl.ID, regret.ID, true)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateRegretSuccess_ConcurrentSingleWinner(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	regret, err := CreateRegret(user.ID, cl.ID, "skipped the gym")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := UpdateRegretSuccess(user.ID, cl.ID, regret.ID, true)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var accepted, rejected int
	for err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, ErrIllegalTransition)
			rejected++
		}
	}
	assert.Equal(t, 1, accepted, "the transition must land exactly once")
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0.0, reloadChecklist(t, cl.ID).Score)
}

func TestUpdateRegretSuccess_StaleEditWindow(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	regret, err := CreateRegret(user.ID, cl.ID, "skipped the gym")
	require.NoError(t, err)

	// Two days later the window is shut regardless of timezone wobble.
	pinClock(t, time.Date(2025, 6, 21, 10, 0, 0, 0, time.Local))
	_, err = UpdateRegretSuccess(user.ID, cl.ID, regret.ID, true)
	assert.ErrorIs(t, err, ErrStaleEditWindow)

	assert.Equal(t, 1.0, reloadChecklist(t, cl.ID).Score, "score must not move on a rejected edit")
}

func TestUpdateRegretSuccess_UnknownRegret(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	_, err := UpdateRegretSuccess(user.ID, cl.ID, 4242, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompletedChecklistFreezesScore(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	regrets := make([]*models.Regret, 0, 2)
	for _, d := range []string{"one", "two"} {
		r, err := CreateRegret(user.ID, cl.ID, d)
		require.NoError(t, err)
		regrets = append(regrets, r)
	}
	require.Equal(t, 1.0, reloadChecklist(t, cl.ID).Score)

	_, err := CompleteChecklist(user.ID, cl.ID)
	require.NoError(t, err)

	// Resolving after completion still flips the regret, but the score is frozen.
	_, err = UpdateRegretSuccess(user.ID, cl.ID, regrets[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1.0, reloadChecklist(t, cl.ID).Score)
}

func TestRecalculateScore_EmptyRegretSet(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	require.NoError(t, config.DB.Model(&models.Checklist{}).Where("id = ?", cl.ID).
		UpdateColumn("score", 0.4242).Error)

	// No regrets: recomputation is skipped, no division by zero, score untouched.
	require.NoError(t, recalculateScore(config.DB, cl.ID))
	assert.Equal(t, 0.4242, reloadChecklist(t, cl.ID).Score)
}

func TestListRegrets(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	cl := todaysChecklist(t, user.ID)

	for _, d := range []string{"one", "two"} {
		_, err := CreateRegret(user.ID, cl.ID, d)
		require.NoError(t, err)
	}

	got, err := ListRegrets(user.ID, cl.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ListRegrets(createTestUser(t, "bob").ID, cl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
