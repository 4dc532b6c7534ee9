package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/api/http/handlers"
	"github.com/proftafla/exam-service/internal/domain"
	"github.com/proftafla/exam-service/internal/observability"
	"github.com/proftafla/exam-service/internal/persistence"
	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

type stubExamService struct {
	groups   []domain.ExamGroup
	summary  domain.StatsSummary
	statsErr error
	cleared  bool
}

func (s *stubExamService) Departments() []domain.Department {
	return domain.Departments()
}

func (s *stubExamService) GetTests(_ context.Context, slug string) ([]domain.ExamGroup, error) {
	if _, ok := domain.DepartmentBySlug(slug); !ok {
		return nil, apperrors.NewNotFound("department", map[string]any{"slug": slug})
	}
	return s.groups, nil
}

func (s *stubExamService) DepartmentStats(ctx context.Context, slug string) (domain.StatsSummary, error) {
	if _, err := s.GetTests(ctx, slug); err != nil {
		return domain.StatsSummary{}, err
	}
	return s.summary, nil
}

func (s *stubExamService) GetStats(context.Context) (domain.StatsSummary, error) {
	if s.statsErr != nil {
		return domain.StatsSummary{}, s.statsErr
	}
	return s.summary, nil
}

func (s *stubExamService) ClearCache(context.Context) (bool, error) {
	s.cleared = true
	return true, nil
}

func newTestApp(t *testing.T, svc handlers.ExamService) (*fiber.App, *observability.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("proftafla-service", "test", &persistence.Redis{Client: client}),
		Exams:   handlers.NewExamsHandler(svc),
		Metrics: handlers.NewMetricsHandler(metrics),
	})
	return app, metrics
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, map[string]any) {
	t.Helper()
	res, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), string(body))
	return res.StatusCode, decoded
}

func TestListDepartments(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{})

	status, body := doRequest(t, app, fiber.MethodGet, "/departments")
	require.Equal(t, fiber.StatusOK, status)

	items := body["data"].([]any)
	require.Len(t, items, 5)
	first := items[0].(map[string]any)
	require.Equal(t, "felagsvisindasvid", first["slug"])
	require.Equal(t, "/departments/felagsvisindasvid/tests", first["tests"])
}

func TestGetTestsRoute(t *testing.T) {
	svc := &stubExamService{groups: []domain.ExamGroup{{
		Heading: "Hugvísindi",
		Tests: []domain.ExamRecord{
			{Course: "ÍSL101G", Students: domain.Students(42)},
			{Course: "ÍSL102G", Students: domain.NaNStudents()},
		},
	}}}
	app, _ := newTestApp(t, svc)

	status, body := doRequest(t, app, fiber.MethodGet, "/departments/hugvisindasvid/tests")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	require.Equal(t, "hugvisindasvid", data["department"].(map[string]any)["slug"])
	tests := data["groups"].([]any)[0].(map[string]any)["tests"].([]any)
	require.Equal(t, 42.0, tests[0].(map[string]any)["students"])
	require.Nil(t, tests[1].(map[string]any)["students"])
}

func TestUnknownDepartmentIs404(t *testing.T) {
	app, metrics := newTestApp(t, &stubExamService{})

	status, body := doRequest(t, app, fiber.MethodGet, "/departments/laeknadeild/tests")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, apperrors.CodeNotFound, body["error"].(map[string]any)["code"])

	status, _ = doRequest(t, app, fiber.MethodGet, "/departments/laeknadeild/stats")
	require.Equal(t, fiber.StatusNotFound, status)

	require.Equal(t, int64(1), metrics.Snapshot().Errors["/departments/laeknadeild/tests|GET|NOT_FOUND"])
}

func TestUnknownRouteIs404(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{})

	status, body := doRequest(t, app, fiber.MethodGet, "/nowhere")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, apperrors.CodeNotFound, body["error"].(map[string]any)["code"])
}

func TestFiberClientErrorIsValidationFailure(t *testing.T) {
	domainErr := toDomainError(fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"))

	require.Equal(t, apperrors.CodeValidation, domainErr.Code)
	require.Equal(t, fiber.StatusMethodNotAllowed, domainErr.HTTPStatus)
	require.Equal(t, "Method Not Allowed", domainErr.Message)

	require.Equal(t, apperrors.CodeInternal, toDomainError(fiber.ErrServiceUnavailable).Code)
}

func TestGetStatsRoute(t *testing.T) {
	svc := &stubExamService{summary: domain.StatsSummary{Min: 10, Max: 30, NumTests: 3, NumStudents: 60, AverageStudents: 20}}
	app, _ := newTestApp(t, svc)

	status, body := doRequest(t, app, fiber.MethodGet, "/stats")
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	require.Equal(t, 10.0, data["min"])
	require.Equal(t, 30.0, data["max"])
	require.Equal(t, 3.0, data["numTests"])
	require.Equal(t, 60.0, data["numStudents"])
	require.Equal(t, 20.0, data["averageStudents"])
}

func TestGetStatsNaNAverage(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{summary: domain.StatsSummary{AverageStudents: math.NaN()}})

	status, body := doRequest(t, app, fiber.MethodGet, "/stats")
	require.Equal(t, fiber.StatusOK, status)
	require.Nil(t, body["data"].(map[string]any)["averageStudents"])
}

func TestGetStatsUpstreamFailure(t *testing.T) {
	svc := &stubExamService{statsErr: apperrors.NewUpstreamError("unexpected upstream status", map[string]any{"status": 503}, nil)}
	app, _ := newTestApp(t, svc)

	status, body := doRequest(t, app, fiber.MethodGet, "/stats")
	require.Equal(t, fiber.StatusBadGateway, status)
	require.Equal(t, apperrors.CodeUpstream, body["error"].(map[string]any)["code"])
	require.Nil(t, body["data"])
}

func TestGetStatsUnexpectedError(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{statsErr: errors.New("boom")})

	status, body := doRequest(t, app, fiber.MethodGet, "/stats")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, apperrors.CodeInternal, body["error"].(map[string]any)["code"])
}

func TestClearCacheRoute(t *testing.T) {
	svc := &stubExamService{}
	app, _ := newTestApp(t, svc)

	status, body := doRequest(t, app, fiber.MethodDelete, "/cache")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, body["data"].(map[string]any)["cleared"])
	require.True(t, svc.cleared)
}

func TestHealthRoutes(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{})

	status, body := doRequest(t, app, fiber.MethodGet, "/health/live")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "alive", body["status"])

	status, body = doRequest(t, app, fiber.MethodGet, "/health/ready")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "ready", body["status"])
}

func TestRequestIDHeader(t *testing.T) {
	app, _ := newTestApp(t, &stubExamService{})

	req := httptest.NewRequest(fiber.MethodGet, "/health/live", nil)
	req.Header.Set(observability.RequestIDHeader, "abc-123")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", res.Header.Get(observability.RequestIDHeader))

	res, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	require.NotEmpty(t, res.Header.Get(observability.RequestIDHeader))
}
