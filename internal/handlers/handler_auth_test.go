package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
	portssvc "github.com/404twillCODE/Casino-Session-Tracker/internal/core/ports/services"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/dto"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

func testUser(id string) *domain.User {
	return &domain.User{
		UserID:       id,
		Email:        "jane@example.com",
		Name:         "Jane",
		AuthProvider: domain.ProviderLocal,
	}
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := testUser(suite.userID)
	expiresAt := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
	suite.mockUser.On("AuthenticateUser", mock.Anything, "jane@example.com", "correct-horse").Return(user, nil).Once()
	suite.mockToken.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt.token", expiresAt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"email":"jane@example.com","password":"correct-horse"}`, false, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("signed.jwt.token", resp.Token)
	suite.True(expiresAt.Equal(resp.ExpiresAt))
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "jane@example.com", "wrong-password").
		Return(nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"email":"jane@example.com","password":"wrong-password"}`, false, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateAccessToken")
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	cfg := *suite.cfg
	cfg.LoginRateLimit = "1-M"
	router := gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(router, &cfg, &portssvc.ServiceContainer{}))

	serve := func() int {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	suite.Equal(http.StatusBadRequest, serve())
	suite.Equal(http.StatusTooManyRequests, serve())
}

func (suite *HandlerTestSuite) TestRegister_Success() {
	req := dto.CreateUserRequest{Email: "jane@example.com", Password: "correct-horse", Name: "Jane"}
	suite.mockUser.On("CreateUser", mock.Anything, req).Return(testUser(suite.userID), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", `{"email":"jane@example.com","password":"correct-horse","name":"Jane"}`, false, nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal(suite.userID, resp.UserID)
	suite.Equal("local", resp.AuthProvider)
}

func (suite *HandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUser.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", `{"email":"jane@example.com","password":"correct-horse","name":"Jane"}`, false, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRegister_InvalidInput() {
	w := suite.do(http.MethodPost, "/api/v1/auth/register", `{"email":"not-an-email","password":"short","name":"Jane"}`, false, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "CreateUser")
}

func (suite *HandlerTestSuite) TestLogout() {
	w := suite.do(http.MethodPost, "/api/v1/auth/logout", "", false, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestMe_Success() {
	suite.mockUser.On("GetUserByID", mock.Anything, suite.userID).Return(testUser(suite.userID), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/me", "", true, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal("jane@example.com", resp.Email)
}

func (suite *HandlerTestSuite) TestMe_UserGone() {
	suite.mockUser.On("GetUserByID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/me", "", true, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGoogleLoginURL() {
	suite.mockGoogle.On("GenerateStateString", mock.Anything).Return("state-123", nil).Once()
	suite.mockGoogle.On("GetGoogleLoginURL", mock.Anything, "state-123").Return("https://accounts.google.com/o/oauth2/auth?state=state-123").Once()

	w := suite.do(http.MethodGet, "/api/v1/auth/google/login", "", false, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp handlers.GoogleLoginURLResponse
	suite.decode(w, &resp)
	suite.Equal("state-123", resp.State)
	suite.Contains(resp.URL, "state=state-123")
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode_UserInfoFallback() {
	token := &oauth2.Token{AccessToken: "google-access-token"}
	user := testUser(suite.userID)
	user.AuthProvider = domain.ProviderGoogle
	expiresAt := time.Now().Add(time.Hour)

	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(token, nil).Once()
	suite.mockGoogle.On("GetUserInfo", mock.Anything, token).
		Return(&domain.GoogleUserInfo{ID: "g-123", Email: "jane@example.com", Name: "Jane", VerifiedEmail: true}, nil).Once()
	suite.mockUser.On("CreateOAuthUser", mock.Anything, "Jane", "jane@example.com", domain.ProviderGoogle, "g-123").Return(user, nil).Once()
	suite.mockToken.On("GenerateAccessToken", mock.Anything, user).Return("app.jwt", expiresAt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code":"auth-code"}`, false, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("app.jwt", resp.Token)
	suite.mockGoogle.AssertNotCalled(suite.T(), "ValidateGoogleIDToken")
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode_MissingCode() {
	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", `{}`, false, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGoogle.AssertNotCalled(suite.T(), "ExchangeCodeForToken")
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode_InvalidGrant() {
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "stale-code").
		Return(nil, errors.New("oauth2: \"invalid_grant\" \"Bad Request\"")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code":"stale-code"}`, false, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode_EmailTakenByLocalAccount() {
	token := &oauth2.Token{AccessToken: "google-access-token"}
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(token, nil).Once()
	suite.mockGoogle.On("GetUserInfo", mock.Anything, token).
		Return(&domain.GoogleUserInfo{ID: "g-123", Email: "jane@example.com", Name: "Jane"}, nil).Once()
	suite.mockUser.On("CreateOAuthUser", mock.Anything, "Jane", "jane@example.com", domain.ProviderGoogle, "g-123").
		Return(nil, apperrors.NewAppError(http.StatusConflict, "Email is registered with a password", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code":"auth-code"}`, false, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateAccessToken")
}
