package category

import (
	"agenda/infras/otel"
	"agenda/internal/domains/category/model/dto"
	"agenda/internal/domains/category/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Category
	otel    otel.Otel
}

func New(service service.Category, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/categories", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCategory)
		routerGroup.Get("/", handler.GetCategories)
		routerGroup.Get("/{id}", handler.GetCategoryByID)
		routerGroup.Patch("/{id}", handler.UpdateCategory)
		routerGroup.Delete("/{id}", handler.DeleteCategory)
	})
}

// CreateCategory handles the creation of a new category.
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} response.Data[dto.CategoryResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(writer, scope, err, "failed to create category")

		return
	}

	scope.AddEvent("Category created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCategories lists categories.
// @Summary Get all categories
// @Tags Category
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/categories [get]
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	categories, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestParamSearch))
	if err != nil {
		response.Fail(w, scope, err, "failed to get categories")

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetCategoryByID retrieves a category by its ID.
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Data[dto.CategoryResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/{id} [get]
func (handler *Handler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryByID")
	defer scope.End()

	category, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, scope, err, "failed to get category by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, category)
}

// UpdateCategory updates a category by its ID.
// @Summary Update a category
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	req := dto.UpdateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.Fail(w, scope, err, "failed to update category")

		return
	}

	scope.AddEvent("Category updated successfully")

	response.WithMessage(w, http.StatusOK, "Category updated successfully")
}

// DeleteCategory deletes a category that no service uses.
// @Summary Delete a category
// @Tags Category
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.Fail(w, scope, err, "failed to delete category")

		return
	}

	scope.AddEvent("Category deleted successfully")

	response.WithMessage(w, http.StatusOK, "Category deleted successfully")
}
