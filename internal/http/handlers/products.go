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
	"github.com/Marat1506/apple-admin/internal/shared/slug"
	"github.com/Marat1506/apple-admin/pkg/view"
)

type ProductsHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewProductsHandler(f *flash.Codec, r *render.Renderer) *ProductsHandler {
	return &ProductsHandler{Flash: f, Render: r}
}

func (h *ProductsHandler) List(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	page := view.ProductsPage{Base: basePage(c, "Products", "products")}

	prods, err := cl.ListProducts(ctx)
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load products from the storefront.")
		h.Render.HTML(c, http.StatusOK, "products_list", page)
		return
	}

	catNames := map[string]string{}
	if cats, cerr := cl.ListCategories(ctx); cerr == nil {
		for _, cat := range cats {
			catNames[cat.ID] = cat.Name
		}
	}

	for _, p := range prods {
		row := view.ProductRow{
			ID:       p.ID,
			Name:     p.Name,
			Price:    view.Money(p.Price),
			Category: catNames[p.CategoryID],
			Stock:    p.Stock,
			Featured: p.Featured,
			Badge:    p.Badge,
		}
		if row.Category == "" {
			row.Category = p.CategoryID
		}
		if len(p.Images) > 0 {
			row.Image = assetURL(cl.BaseURL(), p.Images[0])
		}
		page.Rows = append(page.Rows, row)
	}

	h.Render.HTML(c, http.StatusOK, "products_list", page)
}

func (h *ProductsHandler) NewForm(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	page := view.ProductFormPage{
		Base:  basePage(c, "New product", "products"),
		IsNew: true,
		Form:  emptyProductForm(),
	}
	var err error
	page.Categories, err = categoryOptions(c, cl)
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load categories; the picker is empty.")
	}
	h.Render.HTML(c, http.StatusOK, "product_form", page)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	form, errs := parseProductForm(c)
	renderForm := func(status int) {
		page := view.ProductFormPage{
			Base:   basePage(c, "New product", "products"),
			IsNew:  true,
			Form:   form,
			Errors: errs,
		}
		page.Categories, _ = categoryOptions(c, cl)
		h.Render.HTML(c, status, "product_form", page)
	}
	if len(errs) > 0 {
		renderForm(http.StatusBadRequest)
		return
	}

	p := productFromForm(form)

	urls, err := uploadImages(c, cl, "image_files")
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		errs = validation.FieldErrors{"_": apiMessage(err, "Image upload failed.")}
		renderForm(upstreamStatus(err))
		return
	}
	p.Images = append(p.Images, urls...)

	if _, err := cl.CreateProduct(c.Request.Context(), p); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		errs = validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the product.")}
		renderForm(upstreamStatus(err))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/products", view.FlashSuccess, "Product created.")
}

func (h *ProductsHandler) EditForm(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	p, err := cl.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such product."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/products", view.FlashError, "Could not load the product.")
		return
	}

	page := view.ProductFormPage{
		Base: basePage(c, "Edit product", "products"),
		Form: formFromProduct(p),
	}
	page.Categories, _ = categoryOptions(c, cl)
	h.Render.HTML(c, http.StatusOK, "product_form", page)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form, errs := parseProductForm(c)
	form.ID = id
	renderForm := func(status int) {
		page := view.ProductFormPage{
			Base:   basePage(c, "Edit product", "products"),
			Form:   form,
			Errors: errs,
		}
		page.Categories, _ = categoryOptions(c, cl)
		h.Render.HTML(c, status, "product_form", page)
	}
	if len(errs) > 0 {
		renderForm(http.StatusBadRequest)
		return
	}

	p := productFromForm(form)

	urls, err := uploadImages(c, cl, "image_files")
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		errs = validation.FieldErrors{"_": apiMessage(err, "Image upload failed.")}
		renderForm(upstreamStatus(err))
		return
	}
	p.Images = append(p.Images, urls...)

	if _, err := cl.UpdateProduct(c.Request.Context(), id, p); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		errs = validation.FieldErrors{"_": apiMessage(err, "The storefront rejected the changes.")}
		renderForm(upstreamStatus(err))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/products", view.FlashSuccess, "Product updated.")
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	if c.PostForm("confirm") != "1" {
		c.Redirect(http.StatusFound, "/products")
		return
	}

	if err := cl.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/products", view.FlashError,
			apiMessage(err, "Could not delete the product."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/products", view.FlashSuccess, "Product deleted.")
}

func categoryOptions(c *gin.Context, cl *api.Client) ([]view.CategoryOption, error) {
	cats, err := cl.ListCategories(c.Request.Context())
	if err != nil {
		return nil, err
	}
	opts := make([]view.CategoryOption, 0, len(cats))
	for _, cat := range cats {
		opts = append(opts, view.CategoryOption{ID: cat.ID, Name: cat.Name})
	}
	return opts, nil
}

// uploadImages ships attached files to the backend and returns the
// stored URLs.
func uploadImages(c *gin.Context, cl *api.Client, field string) ([]string, error) {
	files, err := formFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}

	ups := make([]api.Upload, 0, len(files))
	for _, fh := range files {
		f, oerr := fh.Open()
		if oerr != nil {
			return nil, oerr
		}
		defer f.Close()
		ups = append(ups, api.Upload{
			Field:       "images",
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			R:           f,
		})
	}
	return cl.UploadProductImages(c.Request.Context(), ups)
}

type productInput struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	CategoryID  string `form:"category_id" binding:"required"`
	Stock       string `form:"stock"`
	Featured    bool   `form:"featured"`
	Badge       string `form:"badge"`
	Images      string `form:"images"`
	Colors      string `form:"colors"`
	Storage     string `form:"storage"`
	Versions    string `form:"versions"`
}

func parseProductForm(c *gin.Context) (view.ProductForm, validation.FieldErrors) {
	var in productInput
	bindErr := c.ShouldBind(&in)

	f := view.ProductForm{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       strings.TrimSpace(in.Price),
		CategoryID:  in.CategoryID,
		Stock:       strings.TrimSpace(in.Stock),
		Featured:    in.Featured,
		Badge:       strings.TrimSpace(in.Badge),
		Images:      in.Images,
		Colors:      in.Colors,
		Storage:     in.Storage,
		Versions:    in.Versions,
	}
	f.Slug = slug.FromName(f.Name)

	keys := c.PostFormArray("spec_key")
	vals := c.PostFormArray("spec_value")
	for i, k := range keys {
		k = strings.TrimSpace(k)
		v := ""
		if i < len(vals) {
			v = strings.TrimSpace(vals[i])
		}
		if k == "" && v == "" {
			continue
		}
		f.Specs = append(f.Specs, view.SpecRow{Key: k, Value: v})
	}
	f.Specs = padSpecs(f.Specs)

	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.TranslationFields{
			Lang:        lang,
			Name:        strings.TrimSpace(c.PostForm("name_" + lang)),
			Description: strings.TrimSpace(c.PostForm("description_" + lang)),
		})
	}

	errs := validation.FieldErrors{}
	if bindErr != nil {
		errs = validation.FromBindError(bindErr, &in)
	}
	if _, taken := errs["price"]; !taken && f.Price != "" {
		if v, perr := strconv.ParseFloat(f.Price, 64); perr != nil || v < 0 {
			errs["price"] = "Enter a non-negative price."
		}
	}
	if _, taken := errs["stock"]; !taken && f.Stock != "" {
		if v, serr := strconv.Atoi(f.Stock); serr != nil || v < 0 {
			errs["stock"] = "Enter a non-negative whole number."
		}
	}

	if len(errs) == 0 {
		return f, nil
	}
	return f, errs
}

func productFromForm(f view.ProductForm) *api.Product {
	price, _ := strconv.ParseFloat(f.Price, 64)
	stock := 0
	if f.Stock != "" {
		stock, _ = strconv.Atoi(f.Stock)
	}

	p := &api.Product{
		ID:          f.ID,
		Name:        f.Name,
		Slug:        slug.FromName(f.Name),
		Description: f.Description,
		Price:       price,
		CategoryID:  f.CategoryID,
		Stock:       stock,
		Featured:    f.Featured,
		Badge:       f.Badge,
		Images:      splitLines(f.Images),
		Specs:       map[string]string{},
		Variants: api.Variants{
			Colors:   splitCSV(f.Colors),
			Storage:  splitCSV(f.Storage),
			Versions: splitCSV(f.Versions),
		},
		Translations: map[string]api.Translation{},
	}
	for _, row := range f.Specs {
		if row.Key != "" {
			p.Specs[row.Key] = row.Value
		}
	}
	for _, t := range f.Translations {
		if t.Name == "" && t.Description == "" {
			continue
		}
		p.Translations[t.Lang] = api.Translation{Name: t.Name, Description: t.Description}
	}
	api.NormalizeProduct(p)
	return p
}

func formFromProduct(p *api.Product) view.ProductForm {
	f := view.ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		CategoryID:  p.CategoryID,
		Stock:       strconv.Itoa(p.Stock),
		Featured:    p.Featured,
		Badge:       p.Badge,
		Images:      joinLines(p.Images),
		Colors:      joinCSV(p.Variants.Colors),
		Storage:     joinCSV(p.Variants.Storage),
		Versions:    joinCSV(p.Variants.Versions),
	}

	keys := make([]string, 0, len(p.Specs))
	for k := range p.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Specs = append(f.Specs, view.SpecRow{Key: k, Value: p.Specs[k]})
	}
	f.Specs = padSpecs(f.Specs)

	for _, lang := range api.Languages {
		t := p.Translations[lang]
		f.Translations = append(f.Translations, view.TranslationFields{
			Lang:        lang,
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return f
}

func emptyProductForm() view.ProductForm {
	f := view.ProductForm{Stock: "0", Specs: padSpecs(nil)}
	for _, lang := range api.Languages {
		f.Translations = append(f.Translations, view.TranslationFields{Lang: lang})
	}
	return f
}

// padSpecs appends blank rows so the form always has room for new
// entries.
func padSpecs(rows []view.SpecRow) []view.SpecRow {
	for len(rows) < 2 {
		rows = append(rows, view.SpecRow{})
	}
	return append(rows, view.SpecRow{}, view.SpecRow{})
}
