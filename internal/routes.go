package internal

import (
	"langtrack/internal/controllers"
	"langtrack/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, sessionController *controllers.SessionController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/command", http.HandlerFunc(apiController.Command))
	routers.Get("/api/tallies", http.HandlerFunc(apiController.GetTallies))
	routers.Get("/api/videolog", http.HandlerFunc(apiController.GetVideoLog))
	routers.Get("/api/settings", http.HandlerFunc(apiController.GetSettings))
	routers.Get("/api/channels", http.HandlerFunc(apiController.GetChannels))

	routers.Get("/session", http.HandlerFunc(sessionController.Context))
	routers.Post("/session/navigate", http.HandlerFunc(sessionController.Navigate))
	routers.Post("/session/playback", http.HandlerFunc(sessionController.Playback))
	routers.Post("/session/replaced", http.HandlerFunc(sessionController.Replaced))
	routers.Post("/session/signals", http.HandlerFunc(sessionController.Signals))
	return routers
}
