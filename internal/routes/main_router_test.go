// Файл: internal/routes/main_router_test.go
package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"service-tracker/internal/repositories"
	"service-tracker/internal/services"
	"service-tracker/pkg/config"
	"service-tracker/pkg/constants"
	"service-tracker/pkg/service"
	"service-tracker/pkg/utils"
	"service-tracker/pkg/validation"
	appwebsocket "service-tracker/pkg/websocket"
)

var suiteNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// RouterTestSuite поднимает весь API поверх хранилища в памяти.
type RouterTestSuite struct {
	suite.Suite
	Echo   *echo.Echo
	Store  *repositories.MemoryStore
	cancel context.CancelFunc
}

func newTestServer(t *testing.T, store repositories.StoreInterface, pinHash string) (*echo.Echo, context.CancelFunc) {
	t.Helper()
	nopLogger := zap.NewNop()

	e := echo.New()
	e.Validator = validation.New()

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		JWT:    config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour},
		Auth:   config.AuthConfig{PinHash: pinHash},
	}

	workspace := services.NewWorkspace(
		repositories.NewServiceRecordRepository(store, nopLogger),
		repositories.NewNoteRepository(store, nopLogger),
		repositories.NewMissingPartRepository(store, nopLogger),
		nil, time.UTC, nopLogger,
	)
	workspace.SetClock(func() time.Time { return suiteNow })
	require.NoError(t, workspace.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	hub := appwebsocket.NewHub(nopLogger)
	go hub.Run(ctx)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	InitRouter(e, store, workspace, hub, jwtSvc, nil, cfg, nopLogger)
	return e, cancel
}

func (suite *RouterTestSuite) SetupTest() {
	suite.Store = repositories.NewMemoryStore()
	suite.Echo, suite.cancel = newTestServer(suite.T(), suite.Store, "")
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.cancel()
}

func (suite *RouterTestSuite) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func (suite *RouterTestSuite) TestHealthAndState() {
	rec, env := suite.do(http.MethodGet, "/api/health", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(env.Status)

	rec, env = suite.do(http.MethodGet, "/api/state", "")
	suite.Equal(http.StatusOK, rec.Code)
	var st services.WorkspaceStatus
	suite.Require().NoError(json.Unmarshal(env.Body, &st))
	suite.Equal(services.StateReady, st.State)
}

func (suite *RouterTestSuite) TestServiceLifecycle() {
	var id string

	suite.Run("1_Create", func() {
		rec, env := suite.do(http.MethodPost, "/api/services",
			`{"customerPhone":"0532 123 45 67","address":"Kadıköy, ekran","cost":1000,"expenses":400}`)
		suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var body map[string]any
		suite.Require().NoError(json.Unmarshal(env.Body, &body))
		id = body["id"].(string)
		suite.NotEmpty(id)
		suite.Equal("05321234567", body["customerPhone"])
		suite.Equal("ongoing", body["status"])

		breakdown := body["breakdown"].(map[string]any)
		suite.Equal(float64(600), breakdown["netProfit"])
		suite.Equal(float64(180), breakdown["profitShare"])
		suite.Equal(float64(420), breakdown["remaining"])
	})

	suite.Run("2_Patch", func() {
		rec, env := suite.do(http.MethodPatch, "/api/services/"+id, `{"status":"completed"}`)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var body map[string]any
		suite.Require().NoError(json.Unmarshal(env.Body, &body))
		suite.Equal("completed", body["status"])
		suite.Equal("Kadıköy, ekran", body["address"])
	})

	suite.Run("3_List", func() {
		rec, env := suite.do(http.MethodGet, "/api/services?search="+url.QueryEscape("KADIKÖY"), "")
		suite.Require().Equal(http.StatusOK, rec.Code)
		var list []map[string]any
		suite.Require().NoError(json.Unmarshal(env.Body, &list))
		suite.Len(list, 1)

		_, env = suite.do(http.MethodGet, "/api/services?status=ongoing", "")
		suite.Require().NoError(json.Unmarshal(env.Body, &list))
		suite.Empty(list)
	})

	suite.Run("4_Delete", func() {
		rec, _ := suite.do(http.MethodDelete, "/api/services/"+id, "")
		suite.Equal(http.StatusOK, rec.Code)

		rec, env := suite.do(http.MethodGet, "/api/services/"+id, "")
		suite.Equal(http.StatusNotFound, rec.Code)
		suite.False(env.Status)
	})
}

func (suite *RouterTestSuite) TestCreateService_ValidationFails() {
	rec, env := suite.do(http.MethodPost, "/api/services", `{"status":"lost","color":"purple","cost":-5}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.False(env.Status)

	rec, _ = suite.do(http.MethodPost, "/api/services", `{"cost":`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestReorder() {
	ids := make([]string, 0, 3)
	for _, addr := range []string{"a", "b", "c"} {
		_, env := suite.do(http.MethodPost, "/api/services", `{"address":"`+addr+`"}`)
		var body map[string]any
		suite.Require().NoError(json.Unmarshal(env.Body, &body))
		ids = append(ids, body["id"].(string))
	}

	payload, _ := json.Marshal(map[string]any{"ids": []string{ids[2], ids[0]}, "mode": "report"})
	rec, env := suite.do(http.MethodPost, "/api/services/reorder", string(payload))
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var list []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Body, &list))
	suite.Require().Len(list, 3)
	suite.Equal(ids[2], list[0]["id"])
	suite.Equal(ids[0], list[1]["id"])
	suite.Equal(ids[1], list[2]["id"])

	rec, _ = suite.do(http.MethodPost, "/api/services/reorder", `{"ids":["ghost"]}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestNotesAndMissingParts() {
	rec, env := suite.do(http.MethodPost, "/api/notes", `{"title":"Tedarikçi","content":"ara"}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var note map[string]any
	suite.Require().NoError(json.Unmarshal(env.Body, &note))
	suite.Equal("2024-03-15", note["date"])

	rec, _ = suite.do(http.MethodPost, "/api/notes", `{"content":"başlıksız"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = suite.do(http.MethodPost, "/api/missing-parts", `{"name":"şarj soketi"}`)
	suite.Equal(http.StatusCreated, rec.Code)

	rec, env = suite.do(http.MethodDelete, "/api/missing-parts/0", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[]`, string(env.Body))

	rec, _ = suite.do(http.MethodDelete, "/api/missing-parts/abc", "")
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) seedServices() {
	require.NoError(suite.T(), suite.Store.Set(context.Background(), constants.StoreKeyServices, []byte(`[
		{"id":"1","address":"Beşiktaş","cost":1000,"expenses":400,"status":"completed","createdAt":"2024-03-02T10:00:00.000Z"},
		{"id":"2","address":"Avcılar","cost":500,"expenses":100,"status":"completed","createdAt":"2024-03-05T10:00:00.000Z"},
		{"id":"3","cost":300,"status":"ongoing","createdAt":"2024-03-06T10:00:00.000Z"}
	]`)))
	rec, _ := suite.do(http.MethodPost, "/api/reload", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
}

func (suite *RouterTestSuite) TestDashboard() {
	suite.seedServices()

	rec, env := suite.do(http.MethodGet, "/api/dashboard", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var stats map[string]any
	suite.Require().NoError(json.Unmarshal(env.Body, &stats))
	suite.Equal(float64(3), stats["totalServices"])
	suite.Equal(float64(1800), stats["totalRevenue"])
	suite.Equal("%30", stats["profitShareLabel"])
}

func (suite *RouterTestSuite) TestReportJSONAndXLSX() {
	suite.seedServices()

	rec, env := suite.do(http.MethodGet, "/api/reports?year=2024&month=3&sort=address&dir=asc", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		Rows []struct {
			Record struct {
				ID string `json:"id"`
			} `json:"record"`
		} `json:"rows"`
		Monthly struct {
			Count     int     `json:"count"`
			NetProfit float64 `json:"netProfit"`
		} `json:"monthly"`
	}
	suite.Require().NoError(json.Unmarshal(env.Body, &report))
	suite.Require().Len(report.Rows, 2)
	suite.Equal("2", report.Rows[0].Record.ID)
	suite.Equal(2, report.Monthly.Count)
	suite.Equal(float64(1000), report.Monthly.NetProfit)

	rec, _ = suite.do(http.MethodGet, "/api/reports?sort=colour", "")
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = suite.do(http.MethodGet, "/api/reports?year=2024&month=3&format=xlsx", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Header().Get(echo.HeaderContentDisposition), "rapor_2024_03.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows("Rapor")
	suite.Require().NoError(err)
	suite.Len(rows, 3)
	suite.Equal("Kâr Payı (%30)", rows[0][7])
}

func (suite *RouterTestSuite) TestBackupExportImport() {
	suite.seedServices()

	rec := httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/backup/export", nil))
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Header().Get(echo.HeaderContentDisposition), services.BackupFileName)
	exported := rec.Body.Bytes()

	before, _, err := suite.Store.Get(context.Background(), constants.StoreKeyServices)
	suite.Require().NoError(err)
	rec, _ = suite.do(http.MethodPost, "/api/backup/import", `{"services": [`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	after, _, err := suite.Store.Get(context.Background(), constants.StoreKeyServices)
	suite.Require().NoError(err)
	suite.Equal(before, after)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", services.BackupFileName)
	suite.Require().NoError(err)
	_, _ = part.Write(exported)
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/backup/import", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec = httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, req)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	var result map[string]any
	suite.Require().NoError(json.Unmarshal(env.Body, &result))
	suite.Equal(float64(3), result["services"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestAuthEnabled(t *testing.T) {
	hash, err := utils.HashPassword("2468")
	require.NoError(t, err)
	e, cancel := newTestServer(t, repositories.NewMemoryStore(), hash)
	defer cancel()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"pin":"2468"}`))
	login.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var token struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &token))

	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
