package artist

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/artist/model"
	"salon/internal/domains/artist/model/dto"
	"salon/internal/domains/artist/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Handler serves the artist roster used for booking assignment and the artist filter options.
type Handler struct {
	service service.Artist
	otel    otel.Otel
}

func New(service service.Artist, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/artists", func(r chi.Router) {
		r.Post("/", handler.CreateArtist)
		r.Get("/", handler.GetArtists)
		r.Get("/{id}", handler.GetArtistByID)
		r.Patch("/{id}", handler.UpdateArtist)
		r.Delete("/{id}", handler.DeleteArtist)
	})
}

// CreateArtist handles the creation of a new artist.
// @Summary Create a new artist
// @Tags Artist
// @Accept json
// @Produce json
// @Param request body dto.CreateArtistRequest true "Create Artist Request"
// @Success 201 {object} response.Message "Artist created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/artists [post]
// @Security BearerAuth
func (handler *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateArtist")
	defer scope.End()

	var req dto.CreateArtistRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid artist body")

		return
	}

	if err := handler.service.Create(ctx, shared.ActorFromContext(ctx), req); err != nil {
		response.Fail(w, r, scope, err, "failed to create artist")

		return
	}

	response.WithMessage(w, http.StatusCreated, "Artist created")
}

// GetArtists retrieves artists with optional filtering and pagination.
// @Summary Get all artists
// @Tags Artist
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by first name"
// @Param group_name query string false "Filter by group"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetArtistsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/artists [get]
// @Security BearerAuth
func (handler *Handler) GetArtists(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArtists")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.And()
	filterGroup.AddIfPresent(model.FieldFirstName, gDto.FilterOperatorLike, query.Get("name"), model.TableName)
	filterGroup.AddIfPresent(model.FieldGroupName, gDto.FilterOperatorEq, query.Get(model.FieldGroupName), model.TableName)
	filterGroup.AddIfPresent(model.FieldActive, gDto.FilterOperatorEq, shared.ConvertStringToBool(query.Get(model.FieldActive)), model.TableName)

	artists, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get artists")

		return
	}

	response.WithJSON(w, http.StatusOK, artists)
}

// GetArtistByID retrieves an artist by ID.
// @Summary Get an artist by ID
// @Tags Artist
// @Produce json
// @Param id path int true "Artist ID"
// @Success 200 {object} response.Data[dto.ArtistResponse]
// @Failure 404 {object} response.Error
// @Router /v1/artists/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetArtistByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArtistByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	artist, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get artist by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, artist)
}

// UpdateArtist updates an existing artist.
// @Summary Update an artist
// @Tags Artist
// @Accept json
// @Produce json
// @Param id path int true "Artist ID"
// @Param request body dto.UpdateArtistRequest true "Update Artist Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/artists/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateArtist")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	var req dto.UpdateArtistRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid artist body")

		return
	}

	if err := handler.service.Update(ctx, shared.ActorFromContext(ctx), req, id); err != nil {
		response.Fail(w, r, scope, err, "failed to update artist")

		return
	}

	response.WithMessage(w, http.StatusOK, "Artist updated")
}

// DeleteArtist deletes an artist.
// @Summary Delete an artist
// @Tags Artist
// @Produce json
// @Param id path int true "Artist ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/artists/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteArtist")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, r, scope, err, "failed to delete artist")

		return
	}

	response.WithMessage(w, http.StatusOK, "Artist deleted")
}
