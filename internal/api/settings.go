package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Hero returns the singleton hero banner settings.
func (c *Client) Hero(ctx context.Context) (*HeroSettings, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/settings/hero", nil)
	if err != nil {
		return nil, err
	}
	var out HeroSettings
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadHeroImage replaces the hero banner image. The backend stores
// the file and returns the updated settings record.
func (c *Client) UploadHeroImage(ctx context.Context, up Upload) (*HeroSettings, error) {
	var out HeroSettings
	if err := c.uploadMultipart(ctx, "/settings/hero/image", []Upload{up}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListFAQ(ctx context.Context) ([]FAQItem, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/settings/faq", nil)
	if err != nil {
		return nil, err
	}
	var out []FAQItem
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out {
		NormalizeFAQ(&out[i])
	}
	return out, nil
}

func (c *Client) GetFAQ(ctx context.Context, id string) (*FAQItem, error) {
	list, err := c.ListFAQ(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("faq item %s: %w", id, ErrNotFound)
}

func (c *Client) CreateFAQ(ctx context.Context, f *FAQItem) (*FAQItem, error) {
	payload := *f
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPost, "/settings/faq", payload)
	if err != nil {
		return nil, err
	}
	var out FAQItem
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeFAQ(&out)
	return &out, nil
}

func (c *Client) UpdateFAQ(ctx context.Context, id string, f *FAQItem) (*FAQItem, error) {
	payload := *f
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPatch, "/settings/faq/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	var out FAQItem
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeFAQ(&out)
	return &out, nil
}

func (c *Client) DeleteFAQ(ctx context.Context, id string) error {
	req, err := c.newReq(ctx, http.MethodDelete, "/settings/faq/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) ListAboutSections(ctx context.Context) ([]AboutSection, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/settings/about-us", nil)
	if err != nil {
		return nil, err
	}
	var out []AboutSection
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out {
		NormalizeAboutSection(&out[i])
	}
	return out, nil
}

func (c *Client) GetAboutSection(ctx context.Context, id string) (*AboutSection, error) {
	list, err := c.ListAboutSections(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("about section %s: %w", id, ErrNotFound)
}

func (c *Client) CreateAboutSection(ctx context.Context, s *AboutSection) (*AboutSection, error) {
	payload := *s
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPost, "/settings/about-us", payload)
	if err != nil {
		return nil, err
	}
	var out AboutSection
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeAboutSection(&out)
	return &out, nil
}

// UpdateAboutSection sends only the translations. The key identifies
// the section on the storefront and never changes after creation.
func (c *Client) UpdateAboutSection(ctx context.Context, id string, s *AboutSection) (*AboutSection, error) {
	body := struct {
		Translations map[string]map[string]string `json:"translations"`
	}{Translations: s.Translations}

	req, err := c.newReq(ctx, http.MethodPatch, "/settings/about-us/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	var out AboutSection
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeAboutSection(&out)
	return &out, nil
}

func (c *Client) DeleteAboutSection(ctx context.Context, id string) error {
	req, err := c.newReq(ctx, http.MethodDelete, "/settings/about-us/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
