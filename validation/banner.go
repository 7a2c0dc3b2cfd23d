package validation

import "time"

// BannerRequest is the admin banner create/update payload.
type BannerRequest struct {
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Active    *bool      `json:"active"`
}

func ValidateBannerCreate(req *BannerRequest) []FieldError {
	return Run(
		NotEmpty("title", req.Title),
		LenBetween("title", req.Title, 2, 120),
		NotEmpty("image_url", req.ImageURL),
		MaxLen("image_url", req.ImageURL, 2048),
		MaxLen("link_url", req.LinkURL, 2048),
		DateOrder("start_date", "end_date", req.StartDate, req.EndDate),
	)
}

func ValidateBannerUpdate(req *BannerRequest) []FieldError {
	return Run(
		LenBetween("title", req.Title, 2, 120),
		MaxLen("image_url", req.ImageURL, 2048),
		MaxLen("link_url", req.LinkURL, 2048),
		DateOrder("start_date", "end_date", req.StartDate, req.EndDate),
	)
}
