package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/internal/http/validation"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/pkg/view"
)

type FAQHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewFAQHandler(f *flash.Codec, r *render.Renderer) *FAQHandler {
	return &FAQHandler{Flash: f, Render: r}
}

func (h *FAQHandler) List(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	page := view.FAQPage{Base: basePage(c, "FAQ", "faq")}

	items, err := cl.ListFAQ(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load FAQ entries from the storefront.")
		h.Render.HTML(c, http.StatusOK, "faq_list", page)
		return
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	for _, it := range items {
		page.Rows = append(page.Rows, view.FAQRow{
			ID:       it.ID,
			Order:    it.Order,
			Category: it.Category,
			Question: faqQuestion(it),
		})
	}

	h.Render.HTML(c, http.StatusOK, "faq_list", page)
}

func (h *FAQHandler) NewForm(c *gin.Context) {
	page := view.FAQFormPage{
		Base:  basePage(c, "New FAQ entry", "faq"),
		IsNew: true,
		Form:  emptyFAQForm(),
	}
	h.Render.HTML(c, http.StatusOK, "faq_form", page)
}

func (h *FAQHandler) Create(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	form, errs := parseFAQForm(c)
	if len(errs) > 0 {
		page := view.FAQFormPage{
			Base:   basePage(c, "New FAQ entry", "faq"),
			IsNew:  true,
			Form:   form,
			Errors: errs,
		}
		h.Render.HTML(c, http.StatusBadRequest, "faq_form", page)
		return
	}

	if _, err := cl.CreateFAQ(c.Request.Context(), faqFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.FAQFormPage{
			Base:   basePage(c, "New FAQ entry", "faq"),
			IsNew:  true,
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the entry.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "faq_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/faq", view.FlashSuccess, "FAQ entry created.")
}

func (h *FAQHandler) EditForm(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	item, err := cl.GetFAQ(c.Request.Context(), c.Param("id"))
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such FAQ entry."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/faq", view.FlashError, "Could not load the FAQ entry.")
		return
	}

	page := view.FAQFormPage{
		Base: basePage(c, "Edit FAQ entry", "faq"),
		Form: formFromFAQ(item),
	}
	h.Render.HTML(c, http.StatusOK, "faq_form", page)
}

func (h *FAQHandler) Update(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form, errs := parseFAQForm(c)
	form.ID = id
	if len(errs) > 0 {
		page := view.FAQFormPage{
			Base:   basePage(c, "Edit FAQ entry", "faq"),
			Form:   form,
			Errors: errs,
		}
		h.Render.HTML(c, http.StatusBadRequest, "faq_form", page)
		return
	}

	if _, err := cl.UpdateFAQ(c.Request.Context(), id, faqFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.FAQFormPage{
			Base:   basePage(c, "Edit FAQ entry", "faq"),
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the changes.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "faq_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/faq", view.FlashSuccess, "FAQ entry updated.")
}

func (h *FAQHandler) Delete(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	if c.PostForm("confirm") != "1" {
		c.Redirect(http.StatusFound, "/faq")
		return
	}

	if err := cl.DeleteFAQ(c.Request.Context(), c.Param("id")); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/faq", view.FlashError,
			apiMessage(err, "Could not delete the FAQ entry."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/faq", view.FlashSuccess, "FAQ entry deleted.")
}

func faqQuestion(f api.FAQItem) string {
	for _, lang := range api.Languages {
		if t, ok := f.Translations[lang]; ok && t.Question != "" {
			return t.Question
		}
	}
	return ""
}

type faqInput struct {
	Category string `form:"category" binding:"required"`
	Order    string `form:"order"`
}

func parseFAQForm(c *gin.Context) (view.FAQForm, validation.FieldErrors) {
	var in faqInput
	bindErr := c.ShouldBind(&in)

	f := view.FAQForm{
		Category: strings.TrimSpace(in.Category),
		Order:    strings.TrimSpace(in.Order),
	}
	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.FAQTranslationFields{
			Lang:     lang,
			Question: strings.TrimSpace(c.PostForm("question_" + lang)),
			Answer:   strings.TrimSpace(c.PostForm("answer_" + lang)),
			Category: strings.TrimSpace(c.PostForm("category_" + lang)),
		})
	}

	errs := validation.FieldErrors{}
	if bindErr != nil {
		errs = validation.FromBindError(bindErr, &in)
	}
	if _, taken := errs["order"]; !taken && f.Order != "" {
		if v, oerr := strconv.Atoi(f.Order); oerr != nil || v < 0 {
			errs["order"] = "Enter a non-negative whole number."
		}
	}

	if len(errs) == 0 {
		return f, nil
	}
	return f, errs
}

func faqFromForm(f view.FAQForm) *api.FAQItem {
	order := 0
	if f.Order != "" {
		order, _ = strconv.Atoi(f.Order)
	}

	item := &api.FAQItem{
		ID:           f.ID,
		Category:     f.Category,
		Order:        order,
		Translations: map[string]api.FAQTranslation{},
	}
	for _, t := range f.Translations {
		if t.Question == "" && t.Answer == "" && t.Category == "" {
			continue
		}
		item.Translations[t.Lang] = api.FAQTranslation{
			Question: t.Question,
			Answer:   t.Answer,
			Category: t.Category,
		}
	}
	api.NormalizeFAQ(item)
	return item
}

func formFromFAQ(item *api.FAQItem) view.FAQForm {
	f := view.FAQForm{
		ID:       item.ID,
		Category: item.Category,
		Order:    strconv.Itoa(item.Order),
	}
	for _, lang := range api.Languages {
		t := item.Translations[lang]
		f.Translations = append(f.Translations, view.FAQTranslationFields{
			Lang:     lang,
			Question: t.Question,
			Answer:   t.Answer,
			Category: t.Category,
		})
	}
	return f
}

func emptyFAQForm() view.FAQForm {
	f := view.FAQForm{Order: "0"}
	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.FAQTranslationFields{Lang: lang})
	}
	return f
}
