package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/internal/http/validation"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/internal/shared/slug"
	"github.com/Marat1506/apple-admin/pkg/view"
)

type CategoriesHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewCategoriesHandler(f *flash.Codec, r *render.Renderer) *CategoriesHandler {
	return &CategoriesHandler{Flash: f, Render: r}
}

func (h *CategoriesHandler) List(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	page := view.CategoriesPage{Base: basePage(c, "Categories", "categories")}

	cats, err := cl.ListCategories(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load categories from the storefront.")
		h.Render.HTML(c, http.StatusOK, "categories_list", page)
		return
	}

	for _, cat := range cats {
		page.Rows = append(page.Rows, view.CategoryRow{
			ID:    cat.ID,
			Name:  cat.Name,
			Slug:  cat.Slug,
			Image: assetURL(cl.BaseURL(), cat.ImageURL),
		})
	}

	h.Render.HTML(c, http.StatusOK, "categories_list", page)
}

func (h *CategoriesHandler) NewForm(c *gin.Context) {
	page := view.CategoryFormPage{
		Base:  basePage(c, "New category", "categories"),
		IsNew: true,
		Form:  emptyCategoryForm(),
	}
	h.Render.HTML(c, http.StatusOK, "category_form", page)
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	form, errs := parseCategoryForm(c)
	if len(errs) > 0 {
		page := view.CategoryFormPage{
			Base:   basePage(c, "New category", "categories"),
			IsNew:  true,
			Form:   form,
			Errors: errs,
		}
		h.Render.HTML(c, http.StatusBadRequest, "category_form", page)
		return
	}

	if _, err := cl.CreateCategory(c.Request.Context(), categoryFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.CategoryFormPage{
			Base:   basePage(c, "New category", "categories"),
			IsNew:  true,
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the category.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "category_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/categories", view.FlashSuccess, "Category created.")
}

func (h *CategoriesHandler) EditForm(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	cat, err := cl.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such category."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/categories", view.FlashError, "Could not load the category.")
		return
	}

	page := view.CategoryFormPage{
		Base: basePage(c, "Edit category", "categories"),
		Form: formFromCategory(cat),
	}
	h.Render.HTML(c, http.StatusOK, "category_form", page)
}

func (h *CategoriesHandler) Update(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form, errs := parseCategoryForm(c)
	form.ID = id
	if len(errs) > 0 {
		page := view.CategoryFormPage{
			Base:   basePage(c, "Edit category", "categories"),
			Form:   form,
			Errors: errs,
		}
		h.Render.HTML(c, http.StatusBadRequest, "category_form", page)
		return
	}

	if _, err := cl.UpdateCategory(c.Request.Context(), id, categoryFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.CategoryFormPage{
			Base:   basePage(c, "Edit category", "categories"),
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the changes.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "category_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/categories", view.FlashSuccess, "Category updated.")
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	if c.PostForm("confirm") != "1" {
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	if err := cl.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/categories", view.FlashError,
			apiMessage(err, "Could not delete the category."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/categories", view.FlashSuccess, "Category deleted.")
}

type categoryInput struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	ImageURL    string `form:"image_url"`
}

func parseCategoryForm(c *gin.Context) (view.CategoryForm, validation.FieldErrors) {
	var in categoryInput
	bindErr := c.ShouldBind(&in)

	f := view.CategoryForm{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	f.Slug = slug.FromName(f.Name)

	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.TranslationFields{
			Lang:        lang,
			Name:        strings.TrimSpace(c.PostForm("name_" + lang)),
			Description: strings.TrimSpace(c.PostForm("description_" + lang)),
		})
	}

	if bindErr != nil {
		return f, validation.FromBindError(bindErr, &in)
	}
	return f, nil
}

func categoryFromForm(f view.CategoryForm) *api.Category {
	cat := &api.Category{
		ID:           f.ID,
		Name:         f.Name,
		Slug:         slug.FromName(f.Name),
		Description:  f.Description,
		ImageURL:     f.ImageURL,
		Translations: map[string]api.Translation{},
	}
	for _, t := range f.Translations {
		if t.Name == "" && t.Description == "" {
			continue
		}
		cat.Translations[t.Lang] = api.Translation{Name: t.Name, Description: t.Description}
	}
	api.NormalizeCategory(cat)
	return cat
}

func formFromCategory(cat *api.Category) view.CategoryForm {
	f := view.CategoryForm{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		ImageURL:    cat.ImageURL,
	}
	for _, lang := range api.Languages {
		t := cat.Translations[lang]
		f.Translations = append(f.Translations, view.TranslationFields{
			Lang:        lang,
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return f
}

func emptyCategoryForm() view.CategoryForm {
	f := view.CategoryForm{}
	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.TranslationFields{Lang: lang})
	}
	return f
}
