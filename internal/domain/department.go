package domain

// Department represents one academic division ("svið") whose exam schedule is published upstream.
type Department struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	ID   int    `json:"id"`
}

var departments = []Department{
	{Name: "Félagsvísindasvið", Slug: "felagsvisindasvid", ID: 1},
	{Name: "Heilbrigðisvísindasvið", Slug: "heilbrigdisvisindasvid", ID: 2},
	{Name: "Hugvísindasvið", Slug: "hugvisindasvid", ID: 3},
	{Name: "Menntavísindasvið", Slug: "menntavisindasvid", ID: 4},
	{Name: "Verkfræði- og náttúruvísindasvið", Slug: "verkfraedi-og-natturuvisindasvid", ID: 5},
}

// Departments returns a copy of the static registry.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// DepartmentBySlug looks up a registry entry by slug.
func DepartmentBySlug(slug string) (Department, bool) {
	for _, dept := range departments {
		if dept.Slug == slug {
			return dept, true
		}
	}
	return Department{}, false
}
