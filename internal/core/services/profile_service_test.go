package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/adapters/guest"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *tickingClock
	store    *guest.Store
	sessions portssvc.SessionSvcFacade
	service  portssvc.ProfileSvcFacade
	ownerID  string
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = &tickingClock{now: time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC), step: time.Minute}
	suite.store = guest.NewStore(guest.NewMemoryStorage())
	suite.sessions = services.NewSessionService(suite.store, services.WithClock(suite.clock.Now))
	suite.service = services.NewProfileService(suite.store, services.WithClock(suite.clock.Now))
	suite.ownerID = domain.GuestOwnerPrefix + uuid.NewString()
}

func (suite *ProfileServiceTestSuite) playSession(at time.Time, inCents, outCents int64) {
	suite.clock.now = at
	session, err := suite.sessions.CreateSession(suite.ctx, suite.ownerID, dto.CreateSessionRequest{})
	suite.Require().NoError(err)
	for typ, cents := range map[domain.TransactionType]int64{domain.CashIn: inCents, domain.CashOut: outCents} {
		if cents == 0 {
			continue
		}
		_, err := suite.sessions.RecordTransaction(suite.ctx, suite.ownerID, session.SessionID, dto.RecordTransactionRequest{
			Type:        string(typ),
			AmountCents: &cents,
		})
		suite.Require().NoError(err)
	}
}

func (suite *ProfileServiceTestSuite) TestGetProfile_Empty() {
	profile, err := suite.service.GetProfile(suite.ctx, suite.ownerID, time.UTC)

	suite.Require().NoError(err)
	suite.Equal(domain.Totals{}, profile.AllTimeTotals)
	suite.Empty(profile.DailyTotals)
	suite.Nil(profile.GlobalBudgetCents)
	suite.Nil(profile.BudgetRemainingCents)
	suite.Zero(profile.TotalLossCents)
}

func (suite *ProfileServiceTestSuite) TestGetProfile_TotalsAndDailyHistory() {
	suite.playSession(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), 10000, 2500)
	suite.playSession(time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC), 5000, 9000)

	profile, err := suite.service.GetProfile(suite.ctx, suite.ownerID, time.UTC)

	suite.Require().NoError(err)
	suite.Equal(domain.Totals{InCents: 15000, OutCents: 11500, NetCents: -3500}, profile.AllTimeTotals)
	suite.Equal(int64(3500), profile.TotalLossCents)
	suite.Require().Len(profile.DailyTotals, 2)
	suite.Equal("2025-03-02", profile.DailyTotals[0].DateKey)
	suite.Equal(int64(4000), profile.DailyTotals[0].NetCents)
	suite.Equal("2025-03-01", profile.DailyTotals[1].DateKey)
	suite.Equal(int64(-7500), profile.DailyTotals[1].NetCents)
}

func (suite *ProfileServiceTestSuite) TestGetProfile_WithGlobalBudget() {
	suite.playSession(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), 8000, 3000)
	_, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{Budget: strPtr("$200")})
	suite.Require().NoError(err)

	profile, err := suite.service.GetProfile(suite.ctx, suite.ownerID, time.UTC)

	suite.Require().NoError(err)
	suite.Equal(int64Ptr(20000), profile.GlobalBudgetCents)
	suite.Equal(int64Ptr(15000), profile.BudgetRemainingCents)
}

func (suite *ProfileServiceTestSuite) TestGetProfile_LossNeverNegative() {
	suite.playSession(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), 1000, 6000)
	_, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{BudgetCents: int64Ptr(5000)})
	suite.Require().NoError(err)

	profile, err := suite.service.GetProfile(suite.ctx, suite.ownerID, time.UTC)

	suite.Require().NoError(err)
	suite.Zero(profile.TotalLossCents)
	suite.Equal(int64Ptr(5000), profile.BudgetRemainingCents)
}

func (suite *ProfileServiceTestSuite) TestSetGlobalBudget_SetAndClear() {
	settings, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{BudgetCents: int64Ptr(50000)})
	suite.Require().NoError(err)
	suite.Require().NotNil(settings)
	suite.Equal(int64Ptr(50000), settings.GlobalBudgetCents)

	stored, err := suite.store.FindSettings(suite.ctx, suite.ownerID)
	suite.Require().NoError(err)
	suite.Equal(int64Ptr(50000), stored.GlobalBudgetCents)

	cleared, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{})
	suite.Require().NoError(err)
	suite.Nil(cleared)

	_, err = suite.store.FindSettings(suite.ctx, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProfileServiceTestSuite) TestSetGlobalBudget_Invalid() {
	settings, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{BudgetCents: int64Ptr(-100)})

	suite.Nil(settings)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestResetAccount() {
	suite.playSession(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), 4000, 0)
	_, err := suite.service.SetGlobalBudget(suite.ctx, suite.ownerID, dto.UpdateBudgetRequest{BudgetCents: int64Ptr(10000)})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.ResetAccount(suite.ctx, suite.ownerID))

	sessions, err := suite.sessions.ListSessions(suite.ctx, suite.ownerID)
	suite.Require().NoError(err)
	suite.Empty(sessions)
	profile, err := suite.service.GetProfile(suite.ctx, suite.ownerID, time.UTC)
	suite.Require().NoError(err)
	suite.Nil(profile.GlobalBudgetCents)
	suite.Equal(domain.Totals{}, profile.AllTimeTotals)
}

func (suite *ProfileServiceTestSuite) TestGetProfile_StoreFailure() {
	svc := services.NewProfileService(failingStore{LedgerStore: suite.store, err: assert.AnError})

	profile, err := svc.GetProfile(suite.ctx, suite.ownerID, time.UTC)

	suite.Nil(profile)
	suite.ErrorIs(err, assert.AnError)
}

func TestProfileService(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
