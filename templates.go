package veilmail

import (
	"context"
	"net/http"
	"time"

	"github.com/Resonia-Health/veilmail-go/internal/api"
)

// VariableType is the declared type of a template variable.
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeNumber  VariableType = "number"
	VariableTypeBoolean VariableType = "boolean"
	VariableTypeDate    VariableType = "date"
	VariableTypeURL     VariableType = "url"
)

// TemplateVariable declares a placeholder a template expects.
type TemplateVariable struct {
	Name         string       `json:"name"`
	Type         VariableType `json:"type,omitempty"`
	Required     bool         `json:"required,omitempty"`
	DefaultValue any          `json:"defaultValue,omitempty"`
	Description  string       `json:"description,omitempty"`
}

// Template is a reusable email template.
type Template struct {
	ID          string
	Name        string
	Description string
	Subject     string
	HTML        string
	Text        string
	Category    string
	Variables   []TemplateVariable
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// templateDTO is the wire shape of a template. The API calls the variable
// list variablesSchema.
type templateDTO struct {
	ID              string             `json:"id,omitempty"`
	Name            string             `json:"name,omitempty"`
	Description     string             `json:"description,omitempty"`
	Subject         string             `json:"subject,omitempty"`
	HTML            string             `json:"html,omitempty"`
	Text            string             `json:"text,omitempty"`
	Category        string             `json:"category,omitempty"`
	VariablesSchema []TemplateVariable `json:"variablesSchema,omitempty"`
	Version         int                `json:"version,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// templateFromDTO converts an API DTO to a public Template.
func templateFromDTO(dto *templateDTO) *Template {
	if dto == nil {
		return nil
	}
	return &Template{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Subject:     dto.Subject,
		HTML:        dto.HTML,
		Text:        dto.Text,
		Category:    dto.Category,
		Variables:   dto.VariablesSchema,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

// TemplateParams creates or updates a template. On update, empty fields are
// left unchanged.
type TemplateParams struct {
	Name        string
	Description string
	Subject     string
	HTML        string
	Text        string
	Category    string
	Variables   []TemplateVariable
}

// templateParamsBody is the wire shape of TemplateParams.
type templateParamsBody struct {
	Name            string             `json:"name,omitempty"`
	Description     string             `json:"description,omitempty"`
	Subject         string             `json:"subject,omitempty"`
	HTML            string             `json:"html,omitempty"`
	Text            string             `json:"text,omitempty"`
	Category        string             `json:"category,omitempty"`
	VariablesSchema []TemplateVariable `json:"variablesSchema,omitempty"`
}

func (p *TemplateParams) toBody() *templateParamsBody {
	if p == nil {
		return &templateParamsBody{}
	}
	return &templateParamsBody{
		Name:            p.Name,
		Description:     p.Description,
		Subject:         p.Subject,
		HTML:            p.HTML,
		Text:            p.Text,
		Category:        p.Category,
		VariablesSchema: p.Variables,
	}
}

// ListTemplatesParams filters a template listing.
type ListTemplatesParams struct {
	ListParams
	Category string `url:"category,omitempty"`
	Search   string `url:"search,omitempty"`
}

// RenderedTemplate is a template with variables substituted.
type RenderedTemplate struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

// TemplatesService manages email templates.
type TemplatesService struct {
	api *api.Client

	// Editing exposes the collaborative editing endpoints.
	Editing *TemplateEditingService
}

// Create creates a template.
func (s *TemplatesService) Create(ctx context.Context, params *TemplateParams) (*Template, error) {
	dto, err := call[templateDTO](ctx, s.api, http.MethodPost, "/v1/templates", params.toBody())
	if err != nil {
		return nil, err
	}
	return templateFromDTO(dto), nil
}

// List returns one page of templates.
func (s *TemplatesService) List(ctx context.Context, params *ListTemplatesParams) (*Page[Template], error) {
	page, err := list[templateDTO](ctx, s.api, "/v1/templates", params)
	if err != nil {
		return nil, err
	}
	out := &Page[Template]{
		Data:       make([]Template, 0, len(page.Data)),
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	}
	for i := range page.Data {
		out.Data = append(out.Data, *templateFromDTO(&page.Data[i]))
	}
	return out, nil
}

// Get retrieves a template by ID.
func (s *TemplatesService) Get(ctx context.Context, id string) (*Template, error) {
	dto, err := callResource[templateDTO](ctx, s.api, http.MethodGet, pathf("/v1/templates/%s", id), "template", id, nil)
	if err != nil {
		return nil, err
	}
	return templateFromDTO(dto), nil
}

// Update changes a template.
func (s *TemplatesService) Update(ctx context.Context, id string, params *TemplateParams) (*Template, error) {
	dto, err := callResource[templateDTO](ctx, s.api, http.MethodPatch, pathf("/v1/templates/%s", id), "template", id, params.toBody())
	if err != nil {
		return nil, err
	}
	return templateFromDTO(dto), nil
}

// Delete removes a template.
func (s *TemplatesService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/templates/%s", id), "template", id)
}

// Render substitutes variables into a template without sending it.
func (s *TemplatesService) Render(ctx context.Context, id string, variables map[string]any) (*RenderedTemplate, error) {
	body := struct {
		Variables map[string]any `json:"variables,omitempty"`
	}{Variables: variables}
	return callResource[RenderedTemplate](ctx, s.api, http.MethodPost, pathf("/v1/templates/%s/render", id), "template", id, body)
}

// Preview returns the template's rendered HTML as served by the preview
// endpoint, using the declared default values.
func (s *TemplatesService) Preview(ctx context.Context, id string) (string, error) {
	var html string
	if err := s.api.Do(ctx, http.MethodGet, pathf("/v1/templates/%s/preview", id), nil, &html,
		api.WithHeader("Accept", "text/html")); err != nil {
		return "", wrapNotFound(err, "template", id)
	}
	return html, nil
}
