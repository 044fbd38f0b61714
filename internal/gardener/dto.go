// AngelaMos | 2026
// dto.go

package gardener

import (
	"time"
)

type UpdateGardenerRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=gardener admin"`
}

type GardenerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToResponse(g *Gardener) GardenerResponse {
	return GardenerResponse{
		ID:        g.ID,
		Email:     g.Email,
		Name:      g.Name,
		Role:      g.Role,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func ToResponseList(gardeners []Gardener) []GardenerResponse {
	out := make([]GardenerResponse, 0, len(gardeners))
	for i := range gardeners {
		out = append(out, ToResponse(&gardeners[i]))
	}
	return out
}
