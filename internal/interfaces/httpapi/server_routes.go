package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDocsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
}

func registerFormationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formation-templates", handler.ListFormationTemplates)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/teams/{teamID}/formation", handler.GetTeamFormation)
	mux.HandleFunc("PUT /v1/teams/{teamID}/formation", handler.SaveTeamFormation)
	// Accepts the {formation_type, positions: {slot: player}} shape of older editors.
	mux.HandleFunc("POST /v1/teams/{teamID}/formation/legacy", handler.ImportLegacyFormation)
}

func registerEditorRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/teams/{teamID}/editor-sessions", handler.OpenEditorSession)
	mux.HandleFunc("GET /v1/editor-sessions/{sessionID}", handler.GetEditorSession)
	mux.HandleFunc("PUT /v1/editor-sessions/{sessionID}/template", handler.SetEditorTemplate)
	mux.HandleFunc("PUT /v1/editor-sessions/{sessionID}/positions/{positionID}", handler.AssignEditorPosition)
	mux.HandleFunc("DELETE /v1/editor-sessions/{sessionID}/positions/{positionID}", handler.RemoveEditorPosition)
	mux.HandleFunc("POST /v1/editor-sessions/{sessionID}/save", handler.SaveEditorSession)
	mux.HandleFunc("DELETE /v1/editor-sessions/{sessionID}", handler.CloseEditorSession)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/formations/audit", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFormationAudit)))
	mux.Handle("DELETE /v1/internal/teams/{teamID}/players/{playerID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RemoveTeamPlayer)))
}
