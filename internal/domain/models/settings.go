package models

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

type BrandingSettings struct {
	SiteName       string `json:"siteName" validate:"required"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
}

type ContactSettings struct {
	Phone   string      `json:"phone"`
	Email   string      `json:"email" validate:"omitempty,email"`
	Address string      `json:"address"`
	Social  SocialLinks `json:"social"`
}

type FeatureItem struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type NearbyPlace struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Distance string `json:"distance"`
	Type     string `json:"type"`
	Image    string `json:"image"`
}

type ContentSettings struct {
	HeroTitle        string        `json:"heroTitle"`
	HeroSubtitle     string        `json:"heroSubtitle"`
	FeaturesTitle    string        `json:"featuresTitle"`
	FeaturesSubtitle string        `json:"featuresSubtitle"`
	HotelsTitle      string        `json:"hotelsTitle"`
	HotelsSubtitle   string        `json:"hotelsSubtitle"`
	AboutContent     string        `json:"aboutContent"`
	Features         []FeatureItem `json:"features"`
	NearbyPlaces     []NearbyPlace `json:"nearbyPlaces"`
}

// SiteSettings is the branding, contact and content configuration of the site.
type SiteSettings struct {
	Branding BrandingSettings `json:"branding" validate:"required"`
	Contact  ContactSettings  `json:"contact"`
	Content  ContentSettings  `json:"content"`
}
