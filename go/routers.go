// Package vetserver exposes the vet office backend over HTTP with gin.
package vetserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	OwnerAPI  OwnerAPI
	PetAPI    PetAPI
	RecordAPI RecordAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) }},
		{"SearchOwners", http.MethodGet, "/v1/owners/search", handleFunctions.OwnerAPI.SearchOwners},
		{"CreateOwner", http.MethodPost, "/v1/owners", handleFunctions.OwnerAPI.CreateOwner},
		{"GetOwner", http.MethodGet, "/v1/owners/:ownerId", handleFunctions.OwnerAPI.GetOwner},
		{"ListPets", http.MethodGet, "/v1/pets", handleFunctions.PetAPI.ListPets},
		{"AddPet", http.MethodPost, "/v1/pets", handleFunctions.PetAPI.AddPet},
		{"GetPetById", http.MethodGet, "/v1/pets/:petId", handleFunctions.PetAPI.GetPetById},
		{"UpdatePet", http.MethodPut, "/v1/pets/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/v1/pets/:petId", handleFunctions.PetAPI.DeletePet},
		{"SubmitRecord", http.MethodPost, "/v1/records", handleFunctions.RecordAPI.SubmitRecord},
		{"ListRecords", http.MethodGet, "/v1/records", handleFunctions.RecordAPI.ListRecords},
		{"GetRecord", http.MethodGet, "/v1/records/:recordId", handleFunctions.RecordAPI.GetRecord},
	}
}
