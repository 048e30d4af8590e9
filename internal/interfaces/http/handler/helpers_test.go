package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/infrastructure/auth"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var (
	testVerifier = auth.NewVerifier(config.JWTConfig{Secret: "handler-test-secret-0123456789abcdef", Issuer: "leadcrm"})
	testPaging   = Paging{DefaultPageSize: 1000, MaxPageSize: 5000}
)

type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

func newTestEngine(h routeRegistrar) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1", middleware.Authenticate(testVerifier))
	h.RegisterRoutes(api)
	return r
}

type session struct {
	userID    uuid.UUID
	advisorID uuid.UUID
	token     string
}

func newSession(t *testing.T, department string, advisorID uuid.UUID) session {
	t.Helper()
	s := session{userID: uuid.New(), advisorID: advisorID}
	claims := auth.Claims{UserID: s.userID.String(), Department: department}
	if advisorID != uuid.Nil {
		claims.AdvisorID = advisorID.String()
	}
	token, err := testVerifier.Sign(claims, time.Hour)
	require.NoError(t, err)
	s.token = token
	return s
}

func adminSession(t *testing.T) session {
	return newSession(t, "Admin", uuid.Nil)
}

func perform(r http.Handler, s session, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
