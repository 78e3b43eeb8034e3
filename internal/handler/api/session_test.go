//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"rental-pos/internal/domain/user"
	"rental-pos/internal/handler/api"
	resdto "rental-pos/internal/handler/dto/response"
	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"
	"rental-pos/tests/common/builder"
	"rental-pos/tests/common/httptest"
	"rental-pos/tests/common/testutil"
	commandsmock "rental-pos/tests/mock/commands"
	queriesmock "rental-pos/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	mockQueries  *queriesmock.MockSessionQueries
	handler      *api.SessionHandler
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.handler = api.NewSessionHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleOperator)
		c.Next()
	}

	s.router.POST("/sessions", authMiddleware, s.handler.Start)
	s.router.GET("/sessions", authMiddleware, s.handler.List)
	s.router.GET("/sessions/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/sessions/:id", authMiddleware, s.handler.Update)
	s.router.POST("/sessions/:id/rate", authMiddleware, s.handler.OverrideRate)
	s.router.POST("/sessions/:id/charges", authMiddleware, s.handler.AddCharge)
	s.router.POST("/sessions/:id/finalize", authMiddleware, s.handler.Finalize)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

// ================================================================================
// TestStart
// ================================================================================

func (s *SessionHandlerTestSuite) TestStart() {
	url := "/sessions"

	b := builder.NewSessionBuilder()
	reqBody := b.BuildStartRequestDTO()
	expectedResult := &commands.StartSessionResult{
		SessionID: uuid.New(),
		StartTime: b.StartTime,
		RateCents: b.RateCents,
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Start(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.StartSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(expectedResult.SessionID.String(), response.SessionID)
		s.Equal(expectedResult.RateCents, response.RateCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing room", mutate: testutil.Field("room", nil)},
			{name: "missing customer name", mutate: testutil.Field("customer_name", nil)},
			{name: "missing zone key", mutate: testutil.Field("zone_key", nil)},
			{name: "missing item id", mutate: testutil.Field("item_id", nil)},
			{name: "malformed item id", mutate: testutil.Field("item_id", "not-a-uuid")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown item", commandsError: commands.ErrItemNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Zone item not found"},
			{name: "occupied room", commandsError: commands.ErrRoomOccupied, expectedStatus: http.StatusConflict, expectedMsg: "active session"},
			{name: "invalid session data", commandsError: commands.ErrInvalidSession, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "Invalid session data"},
			{name: "internal error", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Start session failed"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Start(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *SessionHandlerTestSuite) TestGet() {
	returnView := builder.NewSessionBuilder().BuildView()
	url := "/sessions/" + returnView.ID.String()

	s.Run("success: returns 200 OK with SessionResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID.String(), response.ID)
		s.Equal(returnView.AccruedCents, response.AccruedCents)
		s.Equal("100.00", response.Accrued)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing session", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, queries.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *SessionHandlerTestSuite) TestList() {
	item := &queries.SessionListItem{
		ID:           uuid.New(),
		Room:         "R1",
		CustomerName: "Somchai",
		ItemLabel:    "Karaoke Room A",
		Status:       "active",
		StartTime:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AccruedCents: 12500,
	}

	s.Run("success: default lists active sessions", func() {
		s.mockQueries.EXPECT().ListActive(gomock.Any()).
			Return([]*queries.SessionListItem{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions", nil, "bearer-token")

		var response []*resdto.SessionListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal("125.00", response[0].Accrued)
	})

	s.Run("success: room filter delegates to ListByRoom", func() {
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), "R1").
			Return([]*queries.SessionListItem{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?room=R1", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: closed filter passes the range through", func() {
		s.mockQueries.EXPECT().ListClosed(gomock.Any(), gomock.Any()).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?status=closed&from=1767225600", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for malformed range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?status=closed&from=yesterday", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid range")
	})
}

// ================================================================================
// TestOverrideRate / TestAddCharge
// ================================================================================

func (s *SessionHandlerTestSuite) TestOverrideRate() {
	id := uuid.New()
	url := "/sessions/" + id.String() + "/rate"
	reqBody := map[string]any{"rate_per_hour_cents": 15000}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().OverrideRate(gomock.Any(), id, int64(15000)).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 400 Bad Request for negative rate", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"rate_per_hour_cents": -1}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 Conflict on closed session", func() {
		s.mockCommands.EXPECT().OverrideRate(gomock.Any(), id, int64(15000)).
			Return(commands.ErrSessionClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Session already closed")
	})
}

func (s *SessionHandlerTestSuite) TestAddCharge() {
	id := uuid.New()
	url := "/sessions/" + id.String() + "/charges"
	reqBody := map[string]any{"product_id": uuid.New().String(), "quantity": 2}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().AddCharge(gomock.Any(), id, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 400 Bad Request for zero quantity", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("quantity", 0))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 Not Found for unknown product", func() {
		s.mockCommands.EXPECT().AddCharge(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})
}

// ================================================================================
// TestFinalize
// ================================================================================

func (s *SessionHandlerTestSuite) TestFinalize() {
	id := uuid.New()
	url := "/sessions/" + id.String() + "/finalize"
	endTime := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

	s.Run("success: returns the frozen total", func() {
		s.mockCommands.EXPECT().Finalize(gomock.Any(), id).
			Return(&commands.FinalizeResult{SessionID: id, EndTime: endTime, TotalCents: 12500}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.FinalizeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(12500), response.TotalCents)
		s.Equal("125.00", response.Total)
	})

	s.Run("error: 409 Conflict on second finalize", func() {
		s.mockCommands.EXPECT().Finalize(gomock.Any(), id).
			Return(nil, commands.ErrSessionClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Session already closed")
	})

	s.Run("error: 404 Not Found for unknown session", func() {
		s.mockCommands.EXPECT().Finalize(gomock.Any(), id).
			Return(nil, commands.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})
}
