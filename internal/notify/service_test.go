package notify

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/FrancoGW/fit-app/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func TestGymProvisioned(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notices", `.*gym_provisioned.*`).SetVal(1)

	svc := NewWithClient(db, "noreply@fitapp.com", "FitApp")

	err := svc.GymProvisioned(ctx, "owner@irongym.com", "Iron Gym", "irongym", "gympass1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLicenseGranted(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notices", `.*license_granted.*`).SetVal(1)

	svc := NewWithClient(db, "noreply@fitapp.com", "FitApp")

	end := time.Now().AddDate(0, 0, 30)
	err := svc.LicenseGranted(ctx, "owner@irongym.com", "Iron Gym", "monthly", end)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLicenseRevoked(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notices", `.*license_revoked.*`).SetVal(1)

	svc := NewWithClient(db, "noreply@fitapp.com", "FitApp")

	err := svc.LicenseRevoked(ctx, "owner@irongym.com", "Iron Gym")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueFailureSurfaces(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notices", `.*`).SetErr(errors.New("redis down"))

	svc := NewWithClient(db, "noreply@fitapp.com", "FitApp")

	err := svc.LicenseRevoked(ctx, "owner@irongym.com", "Iron Gym")
	assert.Error(t, err)
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("notices").SetVal(7)

	svc := NewWithClient(db, "noreply@fitapp.com", "FitApp")

	assert.Equal(t, int64(7), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
