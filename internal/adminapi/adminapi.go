// Package adminapi holds the HTTP handlers of the catalog API.
package adminapi

// Init registers every route on the global webserver.
func Init() {
	registerAuthRoutes()
	registerDenominationRoutes()
	registerTypeRoutes()
	registerProductRoutes()
	registerStorageRoutes()
}
