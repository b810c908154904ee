package catalog

import (
	"agenda/infras/otel"
	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/model/dto"
	"agenda/internal/domains/catalog/service"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const formImage = "image"

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeactivateService)
	})
}

// CreateService handles the creation of a new catalog service.
// @Summary Create a service
// @Description Professionals create services they offer. Admins must pass professional_id.
// @Tags Service
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Service name"
// @Param description formData string false "Description"
// @Param price formData number false "Price"
// @Param duration_minutes formData integer true "Duration in minutes"
// @Param category_id formData string false "Category ID"
// @Param professional_id formData string false "Owning professional (admins only)"
// @Param active formData boolean false "Active"
// @Param image formData file false "Service image"
// @Success 201 {object} response.Data[dto.ServiceResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		response.Fail(writer, scope, failure.BadRequest(err), "failed to parse multipart form")

		return
	}

	req := dto.CreateServiceRequest{
		Name:           request.FormValue(model.FieldName),
		Description:    request.FormValue(model.FieldDescription),
		ProfessionalID: request.FormValue(model.FieldProfessionalID),
		Active:         shared.ConvertStringToBool(request.FormValue(model.FieldActive)),
	}

	if categoryID := request.FormValue(model.FieldCategoryID); categoryID != "" {
		req.CategoryID = &categoryID
	}

	if price, err := shared.ConvertStringToFloat(request.FormValue(model.FieldPrice)); err == nil {
		req.Price = price
	}

	if duration, err := shared.ConvertStringToInt(request.FormValue(model.FieldDurationMinutes)); err == nil {
		req.DurationMinutes = duration
	}

	file, fileHeader, err := request.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(writer, scope, err, "failed to create service")

		return
	}

	scope.AddEvent("Service created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetServices lists the catalog.
// @Summary List services
// @Description Lists active services. A professional passing mine=true sees all of their own services.
// @Tags Service
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param professional_id query string false "Filter by professional"
// @Param category_id query string false "Filter by category"
// @Param search query string false "Search by name"
// @Param mine query boolean false "Only my services"
// @Success 200 {object} response.Data[dto.GetServicesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	req := dto.GetServicesRequest{
		ProfessionalID: query.Get(model.FieldProfessionalID),
		CategoryID:     query.Get(model.FieldCategoryID),
		Search:         query.Get(constant.RequestParamSearch),
	}

	if mine := shared.ConvertStringToBool(query.Get(constant.RequestParamMine)); mine != nil {
		req.Mine = *mine
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.Fail(w, scope, err, "invalid request")

		return
	}

	services, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		response.Fail(w, scope, err, "failed to get services")

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID retrieves a service by its ID.
// @Summary Get a service
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[dto.ServiceResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, scope, err, "failed to get service by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateService updates a service owned by the caller.
// @Summary Update a service
// @Tags Service
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service ID"
// @Param name formData string false "Service name"
// @Param description formData string false "Description"
// @Param price formData number false "Price"
// @Param duration_minutes formData integer false "Duration in minutes"
// @Param category_id formData string false "Category ID"
// @Param active formData boolean false "Active"
// @Param image formData file false "Service image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		response.Fail(w, scope, failure.BadRequest(err), "failed to parse multipart form")

		return
	}

	req := dto.UpdateServiceRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if categoryID := r.FormValue(model.FieldCategoryID); categoryID != "" {
		req.CategoryID = &categoryID
	}

	if price, err := shared.ConvertStringToFloat(r.FormValue(model.FieldPrice)); err == nil {
		req.Price = &price
	}

	if duration, err := shared.ConvertStringToInt(r.FormValue(model.FieldDurationMinutes)); err == nil {
		req.DurationMinutes = &duration
	}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.Fail(w, scope, err, "failed to validate request")

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "failed to update service")

		return
	}

	scope.AddEvent("Service updated successfully")

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}

// DeactivateService removes a service from the catalog without deleting it.
// @Summary Deactivate a service
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateService")
	defer scope.End()

	if err := handler.service.Deactivate(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.Fail(w, scope, err, "failed to deactivate service")

		return
	}

	scope.AddEvent("Service deactivated successfully")

	response.WithMessage(w, http.StatusOK, "Service deactivated successfully")
}
