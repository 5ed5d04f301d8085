package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización (tenant).
type CreateOrganizationRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Domain string `json:"domain" validate:"omitempty,fqdn"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationListResponse listado paginado de organizaciones.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
