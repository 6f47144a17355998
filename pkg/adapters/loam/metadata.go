package loam

// TemplateMetadata is the frontmatter of a template document.
// It uses "mapstructure" tags to match the blueprint header keys.
type TemplateMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Seed        string `json:"seed" mapstructure:"seed"`
	Count       int    `json:"count" mapstructure:"count"`
}
