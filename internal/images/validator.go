package images

import (
	"context"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-resty/resty/v2"
)

// Validator checks that a candidate image URL actually serves an image.
type Validator interface {
	Validate(ctx context.Context, url string) bool
}

// HeadValidator probes candidates with a HEAD request and accepts them only
// when the resource responds successfully with an image/* content type.
type HeadValidator struct {
	client *resty.Client
}

// NewHeadValidator creates a HeadValidator with its own bounded client.
func NewHeadValidator() *HeadValidator {
	return &HeadValidator{
		client: resty.New().SetTimeout(DefaultValidatorTimeout),
	}
}

// Validate reports whether the URL points at a live image resource.
func (v *HeadValidator) Validate(ctx context.Context, url string) bool {
	if !govalidator.IsURL(url) {
		return false
	}

	resp, err := v.client.R().SetContext(ctx).Head(url)
	if err != nil || resp.IsError() {
		return false
	}

	return strings.HasPrefix(resp.Header().Get("Content-Type"), "image/")
}
