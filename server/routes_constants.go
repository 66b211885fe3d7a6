package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Session lifecycle
	RouteSession = "/onboarding/session"

	// Step navigation
	RouteSteps   = "/onboarding/steps/{step}"
	RouteAdvance = "/onboarding/advance"
	RouteRetreat = "/onboarding/retreat"
	RouteGoto    = "/onboarding/goto/{step}"

	// Collection pipeline
	RouteCollect = "/onboarding/collect"

	// Branding
	RouteLogoDiscover = "/onboarding/logo/discover"
	RouteLogoUpload   = "/onboarding/logo"

	// Finalization
	RouteComplete = "/onboarding/complete"
	RouteExport   = "/onboarding/export"
	RouteFinalize = "/onboarding/finalize"
)
