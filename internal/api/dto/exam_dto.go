package dto

import "github.com/proftafla/exam-service/internal/domain"

// DepartmentResponse describes one department in listings.
type DepartmentResponse struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	ID    int    `json:"id"`
	Tests string `json:"tests"`
	Stats string `json:"stats"`
}

// DepartmentTestsResponse is the payload of GET /departments/:slug/tests.
type DepartmentTestsResponse struct {
	Department DepartmentResponse `json:"department"`
	Groups     []domain.ExamGroup `json:"groups"`
}

// ClearCacheResponse is the payload of DELETE /cache.
type ClearCacheResponse struct {
	Cleared bool `json:"cleared"`
}

// NewDepartmentResponse links a department to its sub-resources.
func NewDepartmentResponse(dept domain.Department) DepartmentResponse {
	return DepartmentResponse{
		Name:  dept.Name,
		Slug:  dept.Slug,
		ID:    dept.ID,
		Tests: "/departments/" + dept.Slug + "/tests",
		Stats: "/departments/" + dept.Slug + "/stats",
	}
}
