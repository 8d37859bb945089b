package dto

import (
	"salon/internal/domains/status/model"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"strings"
)

type CreateStatusRequest struct {
	StatusCode  string `json:"status_code" validate:"required,max=50"`
	StatusName  string `json:"status_name" validate:"required,max=100"`
	Active      *bool  `json:"active"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// ToModel stores the code in its canonical spelling so lookups by code are exact.
func (c *CreateStatusRequest) ToModel(user string) model.StatusOption {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.StatusOption{
		StatusCode:  string(model.CodeOf(c.StatusCode)),
		StatusName:  strings.TrimSpace(c.StatusName),
		Active:      active,
		Description: c.Description,
		Metadata:    gModel.NewMetadata(user),
	}
}

type UpdateStatusRequest struct {
	StatusName  string `db:"status_name" json:"status_name" validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=255"`
	Active      *bool  `json:"active"`
}

type StatusResponse struct {
	StatusCode  string `json:"status_code"`
	StatusName  string `json:"status_name"`
	Active      bool   `json:"active"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	gDto.Metadata
}

func (r *StatusResponse) FromModel(option model.StatusOption, normalizer *model.Normalizer) {
	r.StatusCode = option.StatusCode
	r.StatusName = option.StatusName
	r.Active = option.Active
	r.Description = option.Description
	r.Badge = normalizer.Badge(option.StatusCode)
	r.Metadata.FromModel(option.Metadata)
}

type GetStatusesResponse struct {
	Statuses []StatusResponse `json:"statuses"`
}

func (r *GetStatusesResponse) FromModels(options []model.StatusOption, normalizer *model.Normalizer) {
	r.Statuses = make([]StatusResponse, len(options))
	for i, option := range options {
		r.Statuses[i].FromModel(option, normalizer)
	}
}

// StatusOption is the compact form used by filter controls.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Badge string `json:"badge"`
}

func FromOptions(options []model.StatusOption, normalizer *model.Normalizer) []StatusOption {
	res := make([]StatusOption, len(options))
	for i, option := range options {
		res[i] = StatusOption{
			Value: option.StatusCode,
			Label: option.StatusName,
			Badge: normalizer.Badge(option.StatusCode),
		}
	}

	return res
}
