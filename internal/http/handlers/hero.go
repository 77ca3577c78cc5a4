package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/pkg/view"
)

// HeroHandler edits the storefront's singleton hero banner.
type HeroHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewHeroHandler(f *flash.Codec, r *render.Renderer) *HeroHandler {
	return &HeroHandler{Flash: f, Render: r}
}

func (h *HeroHandler) Show(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	page := view.HeroPage{Base: basePage(c, "Hero banner", "hero")}

	hero, err := cl.Hero(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load the hero settings from the storefront.")
		h.Render.HTML(c, http.StatusOK, "hero", page)
		return
	}

	page.ImagePath = hero.ImagePath
	page.ImageURL = assetURL(cl.BaseURL(), hero.ImagePath)
	h.Render.HTML(c, http.StatusOK, "hero", page)
}

func (h *HeroHandler) UploadImage(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	files, err := formFiles(c, "image")
	if err != nil || len(files) == 0 {
		render.RedirectWithFlash(c, h.Flash, "/hero-settings", view.FlashError, "Choose an image to upload.")
		return
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/hero-settings", view.FlashError, "The uploaded file could not be read.")
		return
	}
	defer f.Close()

	up := api.Upload{
		Field:       "image",
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		R:           f,
	}
	if _, err := cl.UploadHeroImage(c.Request.Context(), up); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/hero-settings", view.FlashError,
			apiMessage(err, "The storefront rejected the image."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/hero-settings", view.FlashSuccess, "Hero image updated.")
}
