// Package adminapi exposes the storefront REST surface: catalog CRUD
// with search/filter/sort/pagination, contact intake, site-image slots,
// the team roster, and operator login.
package adminapi

// InitRouter registers every API route on the web server. Call after
// webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerContactRoutes()
	registerImageRoutes()
	registerTeamRoutes()
}
