package session

import "github.com/Shanthi551/telecom-data-plan/internal/domain/model"

// Page names a dashboard view a role may open.
type Page string

const (
	PageHome            Page = "home"
	PagePlans           Page = "plans"
	PageRecommend       Page = "recommend"
	PagePurchases       Page = "purchases"
	PageCustomers       Page = "customers"
	PageLogins          Page = "logins"
	PagePurchasesReport Page = "purchases-report"
	PagePopularPlans    Page = "popular-plans"
	PageRevenue         Page = "revenue"
	PageUsers           Page = "users"
	PageRoles           Page = "roles"
)

var pagesByRole = map[model.Role][]Page{
	model.RoleCustomer: {PageHome, PagePlans, PageRecommend, PagePurchases},
	model.RoleAnalyst:  {PageHome, PageCustomers, PageLogins, PagePurchasesReport, PagePopularPlans, PageRevenue},
	model.RoleAdmin:    {PageHome, PageUsers, PageRoles},
}

// Pages lists the views available to role in menu order. Unknown roles get none.
func Pages(role model.Role) []Page {
	pages := pagesByRole[role]
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// CanOpen reports whether role's menu contains page.
func CanOpen(role model.Role, page Page) bool {
	for _, p := range pagesByRole[role] {
		if p == page {
			return true
		}
	}
	return false
}
