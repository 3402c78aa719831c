// Package dto contains the request and response shapes of the HTTP API.
//
// Requests carry gin binding tags evaluated by go-playground/validator; the custom
// tags they use are installed by RegisterValidations. Responses are projections of
// domain entities and never expose them directly.
package dto
