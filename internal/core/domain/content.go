package domain

import (
	"strings"
	"time"
)

// ContentSection names a CMS singleton.
type ContentSection string

const (
	SectionHeroStats        ContentSection = "hero-stats"
	SectionTestimonialStats ContentSection = "testimonial-stats"
	SectionFooterInfo       ContentSection = "footer-info"
	SectionPortfolioStats   ContentSection = "portfolio-stats"
	SectionSocialLinks      ContentSection = "social-links"
)

// ContentSections lists every section in route order.
var ContentSections = []ContentSection{
	SectionHeroStats,
	SectionTestimonialStats,
	SectionFooterInfo,
	SectionPortfolioStats,
	SectionSocialLinks,
}

func ParseContentSection(s string) (ContentSection, error) {
	for _, sec := range ContentSections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", ErrUnknownContentSection
}

// ContentPayload is the typed body of a section.
type ContentPayload interface {
	Validate() error
}

type HeroStats struct {
	ProjectsCompleted int `json:"projectsCompleted"`
	HappyClients      int `json:"happyClients"`
	YearsExperience   int `json:"yearsExperience"`
	PropertiesSold    int `json:"propertiesSold"`
}

func (h *HeroStats) Validate() error {
	v := NewValidationError()
	validateNonNegative(v, "projectsCompleted", h.ProjectsCompleted)
	validateNonNegative(v, "happyClients", h.HappyClients)
	validateNonNegative(v, "yearsExperience", h.YearsExperience)
	validateNonNegative(v, "propertiesSold", h.PropertiesSold)
	return v.OrNil()
}

type TestimonialStats struct {
	AverageRating    float64 `json:"averageRating"`
	TotalReviews     int     `json:"totalReviews"`
	SatisfactionRate int     `json:"satisfactionRate"`
	RecommendRate    int     `json:"recommendRate"`
}

func (t *TestimonialStats) Validate() error {
	v := NewValidationError()
	if t.AverageRating < 0 || t.AverageRating > 5 {
		v.Add("averageRating", "يجب أن يكون التقييم بين 0 و 5")
	}
	validateNonNegative(v, "totalReviews", t.TotalReviews)
	if t.SatisfactionRate < 0 || t.SatisfactionRate > 100 {
		v.Add("satisfactionRate", "يجب أن تكون النسبة بين 0 و 100")
	}
	if t.RecommendRate < 0 || t.RecommendRate > 100 {
		v.Add("recommendRate", "يجب أن تكون النسبة بين 0 و 100")
	}
	return v.OrNil()
}

type FooterInfo struct {
	CompanyName  string `json:"companyName"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingHours string `json:"workingHours"`
}

func (f *FooterInfo) Validate() error {
	v := NewValidationError()
	if strings.TrimSpace(f.CompanyName) == "" {
		v.Add("companyName", MsgRequired)
	}
	if f.Phone != "" {
		ValidatePhone(v, "phone", f.Phone)
	}
	ValidateOptionalEmail(v, "email", f.Email)
	return v.OrNil()
}

type PortfolioStats struct {
	TotalProjects     int `json:"totalProjects"`
	CompletedProjects int `json:"completedProjects"`
	OngoingProjects   int `json:"ongoingProjects"`
	TotalArea         int `json:"totalArea"`
}

func (p *PortfolioStats) Validate() error {
	v := NewValidationError()
	validateNonNegative(v, "totalProjects", p.TotalProjects)
	validateNonNegative(v, "completedProjects", p.CompletedProjects)
	validateNonNegative(v, "ongoingProjects", p.OngoingProjects)
	validateNonNegative(v, "totalArea", p.TotalArea)
	if p.CompletedProjects+p.OngoingProjects > p.TotalProjects {
		v.Add("totalProjects", "إجمالي المشروعات أقل من مجموع المكتملة والجارية")
	}
	return v.OrNil()
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
	WhatsApp  string `json:"whatsapp"`
}

func (s *SocialLinks) Validate() error {
	v := NewValidationError()
	ValidateOptionalURL(v, "facebook", s.Facebook)
	ValidateOptionalURL(v, "instagram", s.Instagram)
	ValidateOptionalURL(v, "twitter", s.Twitter)
	ValidateOptionalURL(v, "linkedin", s.LinkedIn)
	ValidateOptionalURL(v, "youtube", s.YouTube)
	ValidateOptionalURL(v, "tiktok", s.TikTok)
	ValidateOptionalURL(v, "whatsapp", s.WhatsApp)
	return v.OrNil()
}

// NewContentPayload returns an empty payload to decode a section body into.
func NewContentPayload(section ContentSection) (ContentPayload, error) {
	switch section {
	case SectionHeroStats:
		return &HeroStats{}, nil
	case SectionTestimonialStats:
		return &TestimonialStats{}, nil
	case SectionFooterInfo:
		return &FooterInfo{}, nil
	case SectionPortfolioStats:
		return &PortfolioStats{}, nil
	case SectionSocialLinks:
		return &SocialLinks{}, nil
	}
	return nil, ErrUnknownContentSection
}

// DefaultContent is served until an admin saves the section.
func DefaultContent(section ContentSection) (ContentPayload, error) {
	switch section {
	case SectionHeroStats:
		return &HeroStats{ProjectsCompleted: 150, HappyClients: 500, YearsExperience: 10, PropertiesSold: 300}, nil
	case SectionTestimonialStats:
		return &TestimonialStats{AverageRating: 4.9, TotalReviews: 250, SatisfactionRate: 98, RecommendRate: 95}, nil
	case SectionFooterInfo:
		return &FooterInfo{
			CompanyName:  "AMG للتطوير العقاري",
			Description:  "شريكك الموثوق في عالم العقارات والتشطيبات",
			Address:      "القاهرة، مصر",
			WorkingHours: "السبت - الخميس: 9 صباحاً - 6 مساءً",
		}, nil
	case SectionPortfolioStats:
		return &PortfolioStats{TotalProjects: 150, CompletedProjects: 140, OngoingProjects: 10, TotalArea: 50000}, nil
	case SectionSocialLinks:
		return &SocialLinks{}, nil
	}
	return nil, ErrUnknownContentSection
}

// Content is a stored section.
type Content struct {
	Section   ContentSection `json:"section"`
	Data      ContentPayload `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
	IsDefault bool           `json:"isDefault"`
}
