package services

import (
	"fmt"
	"strings"
	"sync"

	"hotelbook/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

// DefaultSiteSettings is the stock branding, contact and content of the site.
func DefaultSiteSettings() models.SiteSettings {
	return models.SiteSettings{
		Branding: models.BrandingSettings{
			SiteName:       "HotelBook",
			Logo:           "/placeholder.svg",
			PrimaryColor:   "hsl(220, 70%, 50%)",
			SecondaryColor: "hsl(45, 90%, 60%)",
			AccentColor:    "hsl(280, 80%, 60%)",
		},
		Contact: models.ContactSettings{
			Phone:   "+1 (555) 123-4567",
			Email:   "contact@hotelbook.com",
			Address: "123 Business Street, Suite 100, City, State 12345",
			Social: models.SocialLinks{
				Facebook:  "https://facebook.com/hotelbook",
				Twitter:   "https://twitter.com/hotelbook",
				Instagram: "https://instagram.com/hotelbook",
			},
		},
		Content: models.ContentSettings{
			HeroTitle:        "Find Your Perfect Hotel Stay",
			HeroSubtitle:     "Discover amazing hotels, resorts, and accommodations for your next adventure. Book with confidence and travel with ease.",
			FeaturesTitle:    "Why Choose HotelBook?",
			FeaturesSubtitle: "We provide the best hotel booking experience with unmatched service and value",
			HotelsTitle:      "Featured Hotels",
			HotelsSubtitle:   "Discover our handpicked selection of premium hotels and resorts",
			AboutContent:     "We are a leading hotel booking platform dedicated to providing exceptional travel experiences.",
			Features: []models.FeatureItem{
				{ID: "1", Icon: "Shield", Title: "Best Price Guarantee", Description: "We guarantee the best prices for your hotel bookings"},
				{ID: "2", Icon: "Clock", Title: "24/7 Customer Support", Description: "Round-the-clock assistance for all your travel needs"},
				{ID: "3", Icon: "Star", Title: "Premium Hotels", Description: "Handpicked selection of luxury and comfort accommodations"},
				{ID: "4", Icon: "Users", Title: "Trusted by Millions", Description: "Join millions of satisfied customers worldwide"},
			},
			NearbyPlaces: []models.NearbyPlace{
				{ID: "1", Name: "Central Park", Distance: "0.5 km", Type: "Park", Image: "/placeholder.svg"},
				{ID: "2", Name: "Times Square", Distance: "1.2 km", Type: "Tourist Attraction", Image: "/placeholder.svg"},
				{ID: "3", Name: "Metropolitan Museum", Distance: "2.1 km", Type: "Museum", Image: "/placeholder.svg"},
				{ID: "4", Name: "Empire State Building", Distance: "1.8 km", Type: "Landmark", Image: "/placeholder.svg"},
			},
		},
	}
}

// SettingsPatch replaces whole sections; nil sections are left alone.
type SettingsPatch struct {
	Branding *models.BrandingSettings `json:"branding,omitempty"`
	Contact  *models.ContactSettings  `json:"contact,omitempty"`
	Content  *models.ContentSettings  `json:"content,omitempty"`
}

// SettingsService holds the live site settings and the theme derived from
// them. OnApply runs after every change with the new value.
type SettingsService struct {
	mu       sync.RWMutex
	defaults models.SiteSettings
	current  models.SiteSettings
	theme    string
	validate *validator.Validate
	OnApply  func(models.SiteSettings)
}

func NewSettingsService(defaults models.SiteSettings, v *validator.Validate) *SettingsService {
	return &SettingsService{
		defaults: defaults,
		current:  defaults,
		theme:    ThemeCSS(defaults.Branding),
		validate: v,
	}
}

// Theme returns the CSS custom properties of the current branding.
func (s *SettingsService) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *SettingsService) Get() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SettingsService) Update(p SettingsPatch) (models.SiteSettings, error) {
	s.mu.Lock()
	next := s.current
	if p.Branding != nil {
		next.Branding = *p.Branding
	}
	if p.Contact != nil {
		next.Contact = *p.Contact
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if err := validateStruct(s.validate, next); err != nil {
		s.mu.Unlock()
		return models.SiteSettings{}, err
	}
	s.current = next
	s.theme = ThemeCSS(next.Branding)
	s.mu.Unlock()

	s.apply(next)
	return next, nil
}

func (s *SettingsService) Reset() models.SiteSettings {
	s.mu.Lock()
	s.current = s.defaults
	s.theme = ThemeCSS(s.defaults.Branding)
	s.mu.Unlock()

	s.apply(s.defaults)
	return s.defaults
}

func (s *SettingsService) apply(v models.SiteSettings) {
	if s.OnApply != nil {
		s.OnApply(v)
	}
}

// ThemeCSS renders the branding colors as CSS custom properties.
func ThemeCSS(b models.BrandingSettings) string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, kv := range [][2]string{
		{"--primary", b.PrimaryColor},
		{"--secondary", b.SecondaryColor},
		{"--accent", b.AccentColor},
	} {
		if strings.TrimSpace(kv[1]) == "" {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s;\n", kv[0], cssValue(kv[1]))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// cssValue drops characters that could close the declaration block.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}
