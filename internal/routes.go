package internal

import (
	"net/http"

	"mindd/internal/controllers"
	"mindd/internal/providers"
	"mindd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/login", http.HandlerFunc(apiController.ApplyLogin))
	routers.Post("/mood", http.HandlerFunc(apiController.MoodCheckout))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Post("/plans", http.HandlerFunc(apiController.CreatePlan))
	routers.Get("/plans/list", http.HandlerFunc(apiController.ListPlans))
	routers.Post("/users", http.HandlerFunc(apiController.CreateUser))
	routers.Post("/content", http.HandlerFunc(apiController.CreateContent))
	return routers
}
