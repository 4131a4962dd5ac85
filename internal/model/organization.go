package model

// Organization identifies one entity whose website is crawled and
// evaluated. Loaded from configuration or imported from CSV.
type Organization struct {
	// Name is the display name of the organization.
	Name string `json:"name" yaml:"name"`

	// URL is the absolute URL of the organization's homepage.
	URL string `json:"url" yaml:"url"`
}
