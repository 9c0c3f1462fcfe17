package models

import "time"

type User struct {
	ID           int       `gorm:"primary_key;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PortfolioItem struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"column:image_url;not null" json:"image_url"`
	Link        string    `json:"link"`
	Category    string    `gorm:"not null;index" json:"category"`
	OrderIndex  int       `gorm:"default:0;index" json:"order_index"`
	Published   bool      `gorm:"default:true;index" json:"published"` // only published items appear on the public site
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }

type Skill struct {
	ID         int       `gorm:"primary_key;autoIncrement" json:"id"`
	Category   string    `gorm:"not null" json:"category"`
	Items      []string  `gorm:"serializer:json;type:text" json:"items"`
	OrderIndex int       `gorm:"default:0;index" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Experience struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	JobTitle    string    `gorm:"not null" json:"job_title"`
	Company     string    `gorm:"not null" json:"company"`
	Period      string    `gorm:"not null" json:"period"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OrderIndex  int       `gorm:"default:0;index" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HeroContent, AboutContent and ContactInfo are singleton tables: at most one
// active row each, upserted by the content handlers.
type HeroContent struct {
	ID               int       `gorm:"primary_key;autoIncrement" json:"id"`
	Title            string    `json:"title"`
	Subtitle         string    `gorm:"type:text" json:"subtitle"`
	CtaPrimaryText   string    `json:"cta_primary_text"`
	CtaPrimaryLink   string    `json:"cta_primary_link"`
	CtaSecondaryText string    `json:"cta_secondary_text"`
	CtaSecondaryLink string    `json:"cta_secondary_link"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (HeroContent) TableName() string { return "hero_content" }

type AboutContent struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AboutContent) TableName() string { return "about_content" }

type ContactInfo struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	Email     string    `json:"email"`
	Linkedin  string    `json:"linkedin"`
	Github    string    `json:"github"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string { return "contact_info" }

type BlogSettings struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	Platform  string    `gorm:"not null" json:"platform"` // "medium" or "substack"
	RssURL    string    `gorm:"column:rss_url;not null" json:"rss_url"`
	Username  string    `json:"username"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BlogSettings) TableName() string { return "blog_settings" }

// Migration is the append-only ledger of applied schema files.
type Migration struct {
	ID         int       `gorm:"primary_key;autoIncrement" json:"id"`
	Name       string    `gorm:"unique;not null" json:"name"`
	ExecutedAt time.Time `gorm:"autoCreateTime" json:"executed_at"`
}

func (Migration) TableName() string { return "migrations" }
