package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/proftafla/exam-service/internal/api/dto"
	"github.com/proftafla/exam-service/internal/domain"
	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

// ExamService is the subset of service.ExamService the handler needs.
type ExamService interface {
	Departments() []domain.Department
	GetTests(ctx context.Context, slug string) ([]domain.ExamGroup, error)
	DepartmentStats(ctx context.Context, slug string) (domain.StatsSummary, error)
	GetStats(ctx context.Context) (domain.StatsSummary, error)
	ClearCache(ctx context.Context) (bool, error)
}

// ExamsHandler serves department exam schedules and statistics.
type ExamsHandler struct {
	service ExamService
}

// NewExamsHandler constructs handler.
func NewExamsHandler(examService ExamService) *ExamsHandler {
	return &ExamsHandler{service: examService}
}

// ListDepartments GET /departments.
func (h *ExamsHandler) ListDepartments(c *fiber.Ctx) error {
	depts := h.service.Departments()
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, dept := range depts {
		items = append(items, dto.NewDepartmentResponse(dept))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTests GET /departments/:slug/tests.
func (h *ExamsHandler) GetTests(c *fiber.Ctx) error {
	slug := c.Params("slug")
	dept, ok := domain.DepartmentBySlug(slug)
	if !ok {
		return apperrors.NewNotFound("department", map[string]any{"slug": slug})
	}
	groups, err := h.service.GetTests(c.UserContext(), slug)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DepartmentTestsResponse{
		Department: dto.NewDepartmentResponse(dept),
		Groups:     groups,
	}})
}

// GetDepartmentStats GET /departments/:slug/stats.
func (h *ExamsHandler) GetDepartmentStats(c *fiber.Ctx) error {
	summary, err := h.service.DepartmentStats(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// GetStats GET /stats.
func (h *ExamsHandler) GetStats(c *fiber.Ctx) error {
	summary, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// ClearCache DELETE /cache.
func (h *ExamsHandler) ClearCache(c *fiber.Ctx) error {
	cleared, err := h.service.ClearCache(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ClearCacheResponse{Cleared: cleared}})
}
