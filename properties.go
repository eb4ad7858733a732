package veilmail

import (
	"context"
	"net/http"
	"time"
)

// PropertyType is the value type of a contact property.
type PropertyType string

const (
	PropertyTypeString  PropertyType = "string"
	PropertyTypeNumber  PropertyType = "number"
	PropertyTypeBoolean PropertyType = "boolean"
	PropertyTypeDate    PropertyType = "date"
)

// Property is a custom field definition for subscribers.
type Property struct {
	ID           string       `json:"id"`
	Key          string       `json:"key"`
	Name         string       `json:"name"`
	Type         PropertyType `json:"type"`
	DefaultValue any          `json:"defaultValue,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PropertyParams creates or updates a property. Key and Type cannot change
// after creation.
type PropertyParams struct {
	Key          string       `json:"key,omitempty"`
	Name         string       `json:"name,omitempty"`
	Type         PropertyType `json:"type,omitempty"`
	DefaultValue any          `json:"defaultValue,omitempty"`
}

// PropertiesService manages subscriber property definitions.
type PropertiesService service

// Create defines a property.
func (s *PropertiesService) Create(ctx context.Context, params *PropertyParams) (*Property, error) {
	return call[Property](ctx, s.api, http.MethodPost, "/v1/properties", params)
}

// List returns one page of properties.
func (s *PropertiesService) List(ctx context.Context, params *ListParams) (*Page[Property], error) {
	return list[Property](ctx, s.api, "/v1/properties", params)
}

// Get retrieves a property by ID.
func (s *PropertiesService) Get(ctx context.Context, id string) (*Property, error) {
	return callResource[Property](ctx, s.api, http.MethodGet, pathf("/v1/properties/%s", id), "property", id, nil)
}

// Update changes a property's display name or default.
func (s *PropertiesService) Update(ctx context.Context, id string, params *PropertyParams) (*Property, error) {
	return callResource[Property](ctx, s.api, http.MethodPatch, pathf("/v1/properties/%s", id), "property", id, params)
}

// Delete removes a property definition.
func (s *PropertiesService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/properties/%s", id), "property", id)
}
