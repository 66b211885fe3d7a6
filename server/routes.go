package server

func (s *Server) initRoutes() {
	// Session lifecycle
	s.RegisterRouteHandler("POST "+RouteSession, ChainMiddleware(s.CreateSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSession, ChainMiddleware(s.GetSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteSession, ChainMiddleware(s.ClearSessionHandler(), s.APIMiddleware()...))

	// Step navigation
	s.RegisterRouteHandler("PATCH "+RouteSteps, ChainMiddleware(s.UpdateStepHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdvance, ChainMiddleware(s.AdvanceHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRetreat, ChainMiddleware(s.RetreatHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteGoto, ChainMiddleware(s.GotoHandler(), s.APIMiddleware()...))

	// Collection pipeline (streams NDJSON progress)
	s.RegisterRouteHandler("POST "+RouteCollect, ChainMiddleware(s.CollectHandler(), s.APIMiddleware()...))

	// Branding
	s.RegisterRouteHandler("POST "+RouteLogoDiscover, ChainMiddleware(s.LogoDiscoverHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogoUpload, ChainMiddleware(s.LogoUploadHandler(), s.APIMiddleware()...))

	// Finalization
	s.RegisterRouteHandler("POST "+RouteComplete, ChainMiddleware(s.CompleteHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteExport, ChainMiddleware(s.ExportHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteFinalize, ChainMiddleware(s.FinalizeHandler(), s.APIMiddleware()...))
}
