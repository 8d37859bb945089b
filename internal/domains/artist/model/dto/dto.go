package dto

import (
	"salon/internal/domains/artist/model"
	"salon/internal/pipeline"
	"salon/shared"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"strings"
)

type CreateArtistRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name"  validate:"omitempty,max=100"`
	EmpCode   string  `json:"emp_code"   validate:"required,max=50"`
	GroupName string  `json:"group_name" validate:"omitempty,max=100"`
	UserID    *string `json:"user_id"    validate:"omitempty,uuid"`
}

func (c *CreateArtistRequest) ToModel(user string) model.Artist {
	return model.Artist{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		EmpCode:   strings.TrimSpace(c.EmpCode),
		Active:    true,
		GroupName: c.GroupName,
		UserID:    c.UserID,
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpdateArtistRequest struct {
	FirstName string  `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	LastName  string  `db:"last_name"  json:"last_name"  validate:"omitempty,max=100"`
	EmpCode   string  `db:"emp_code"   json:"emp_code"   validate:"omitempty,max=50"`
	GroupName string  `db:"group_name" json:"group_name" validate:"omitempty,max=100"`
	UserID    *string `db:"user_id"    json:"user_id"    validate:"omitempty,uuid"`
	Active    *bool   `json:"active"`
}

type ArtistResponse struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DisplayName string  `json:"display_name"`
	EmpCode     string  `json:"emp_code"`
	Active      bool    `json:"active"`
	GroupName   string  `json:"group_name"`
	UserID      *string `json:"user_id"`
	gDto.Metadata
}

func (r *ArtistResponse) FromModel(artist model.Artist) {
	r.ID = artist.ID
	r.FirstName = artist.FirstName
	r.LastName = artist.LastName
	r.DisplayName = pipeline.DisplayName(ToPipeline(artist))
	r.EmpCode = artist.EmpCode
	r.Active = artist.Active
	r.GroupName = artist.GroupName
	r.UserID = artist.UserID
	r.Metadata.FromModel(artist.Metadata)
}

type GetArtistsResponse struct {
	Artists   []ArtistResponse `json:"artists"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetArtistsResponse) FromModels(models []model.Artist, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Artists = make([]ArtistResponse, len(models))
	for i, m := range models {
		r.Artists[i].FromModel(m)
	}
}

func ToPipeline(artist model.Artist) pipeline.Artist {
	return pipeline.Artist{
		ID:        artist.ID,
		FirstName: artist.FirstName,
		LastName:  artist.LastName,
		EmpCode:   artist.EmpCode,
		Active:    artist.Active,
		Group:     artist.GroupName,
	}
}
