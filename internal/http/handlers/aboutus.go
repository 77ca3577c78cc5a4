package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
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

// AboutHandler edits the storefront's about-us sections: free-form
// per-language field sets under an immutable key.
type AboutHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewAboutHandler(f *flash.Codec, r *render.Renderer) *AboutHandler {
	return &AboutHandler{Flash: f, Render: r}
}

func (h *AboutHandler) List(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	page := view.AboutPage{Base: basePage(c, "About us", "about")}

	sections, err := cl.ListAboutSections(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load the about-us sections from the storefront.")
		h.Render.HTML(c, http.StatusOK, "about_list", page)
		return
	}

	for _, s := range sections {
		page.Rows = append(page.Rows, view.AboutRow{
			ID:      s.ID,
			Key:     s.Key,
			Summary: aboutSummary(s),
		})
	}

	h.Render.HTML(c, http.StatusOK, "about_list", page)
}

func (h *AboutHandler) NewForm(c *gin.Context) {
	page := view.AboutFormPage{
		Base:  basePage(c, "New section", "about"),
		IsNew: true,
		Form:  emptyAboutForm(),
	}
	h.Render.HTML(c, http.StatusOK, "about_form", page)
}

func (h *AboutHandler) Create(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	form := parseAboutForm(c)
	if form.Key == "" {
		page := view.AboutFormPage{
			Base:   basePage(c, "New section", "about"),
			IsNew:  true,
			Form:   form,
			Errors: validation.FieldErrors{"key": "This field is required."},
		}
		h.Render.HTML(c, http.StatusBadRequest, "about_form", page)
		return
	}

	if _, err := cl.CreateAboutSection(c.Request.Context(), aboutFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.AboutFormPage{
			Base:   basePage(c, "New section", "about"),
			IsNew:  true,
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the section.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "about_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/about-us", view.FlashSuccess, "Section created.")
}

func (h *AboutHandler) EditForm(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	s, err := cl.GetAboutSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such section."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/about-us", view.FlashError, "Could not load the section.")
		return
	}

	page := view.AboutFormPage{
		Base: basePage(c, "Edit section", "about"),
		Form: formFromAboutSection(s),
	}
	h.Render.HTML(c, http.StatusOK, "about_form", page)
}

func (h *AboutHandler) Update(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form := parseAboutForm(c)
	form.ID = id

	if _, err := cl.UpdateAboutSection(c.Request.Context(), id, aboutFromForm(form)); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page := view.AboutFormPage{
			Base:   basePage(c, "Edit section", "about"),
			Form:   form,
			Errors: validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the changes.")},
		}
		h.Render.HTML(c, upstreamStatus(err), "about_form", page)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/about-us", view.FlashSuccess, "Section updated.")
}

func (h *AboutHandler) Delete(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	if c.PostForm("confirm") != "1" {
		c.Redirect(http.StatusFound, "/about-us")
		return
	}

	if err := cl.DeleteAboutSection(c.Request.Context(), c.Param("id")); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/about-us", view.FlashError,
			apiMessage(err, "Could not delete the section."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/about-us", view.FlashSuccess, "Section deleted.")
}

func aboutSummary(s api.AboutSection) string {
	if v := s.Translations["en"]["title"]; v != "" {
		return v
	}
	n := 0
	for _, lang := range api.Languages {
		if len(s.Translations[lang]) > n {
			n = len(s.Translations[lang])
		}
	}
	if n == 1 {
		return "1 field"
	}
	return fmt.Sprintf("%d fields", n)
}

func parseAboutForm(c *gin.Context) view.AboutForm {
	f := view.AboutForm{Key: strings.TrimSpace(c.PostForm("key"))}
	for _, lang := range api.Languages {
		labels := c.PostFormArray("label_" + lang)
		values := c.PostFormArray("value_" + lang)

		al := view.AboutLang{Lang: lang}
		for i, label := range labels {
			label = strings.TrimSpace(label)
			value := ""
			if i < len(values) {
				value = strings.TrimSpace(values[i])
			}
			if label == "" && value == "" {
				continue
			}
			al.Fields = append(al.Fields, view.FieldRow{Label: label, Value: value})
		}
		al.Fields = padFields(al.Fields)
		f.Langs = append(f.Langs, al)
	}
	return f
}

func aboutFromForm(f view.AboutForm) *api.AboutSection {
	s := &api.AboutSection{
		ID:           f.ID,
		Key:          f.Key,
		Translations: map[string]map[string]string{},
	}
	for _, al := range f.Langs {
		m := map[string]string{}
		for _, row := range al.Fields {
			if row.Label == "" {
				continue
			}
			m[row.Label] = row.Value
		}
		s.Translations[al.Lang] = m
	}
	api.NormalizeAboutSection(s)
	return s
}

func formFromAboutSection(s *api.AboutSection) view.AboutForm {
	f := view.AboutForm{ID: s.ID, Key: s.Key}
	for _, lang := range api.Languages {
		fields := s.Translations[lang]

		labels := make([]string, 0, len(fields))
		for label := range fields {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		al := view.AboutLang{Lang: lang}
		for _, label := range labels {
			al.Fields = append(al.Fields, view.FieldRow{Label: label, Value: fields[label]})
		}
		al.Fields = padFields(al.Fields)
		f.Langs = append(f.Langs, al)
	}
	return f
}

func emptyAboutForm() view.AboutForm {
	f := view.AboutForm{}
	for _, lang := range api.Languages {
		f.Langs = append(f.Langs, view.AboutLang{Lang: lang, Fields: padFields(nil)})
	}
	return f
}

func padFields(rows []view.FieldRow) []view.FieldRow {
	for len(rows) < 2 {
		rows = append(rows, view.FieldRow{})
	}
	return append(rows, view.FieldRow{}, view.FieldRow{})
}
