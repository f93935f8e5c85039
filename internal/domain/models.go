// Package domain contains core models shared by the pipeline, screen and view.
package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TranslationUnavailable replaces a field that had no source text to translate.
	TranslationUnavailable = "Translation unavailable"
	// PlaceholderImageURL is shown for articles without an image.
	PlaceholderImageURL = "https://via.placeholder.com/150"
)

// Source names the outlet that published an article.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is one news item as returned by the news source. Title and
// Description are rewritten in place by the translation step.
type Article struct {
	Source      *Source    `json:"source"`
	Author      string     `json:"author,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Content     string     `json:"content,omitempty"`
}

// SourceName returns the outlet name or an empty string.
func (a Article) SourceName() string {
	if a.Source == nil {
		return ""
	}
	return a.Source.Name
}

// ImageOrPlaceholder returns the article image URL, falling back to the placeholder.
func (a Article) ImageOrPlaceholder() string {
	if strings.TrimSpace(a.URLToImage) == "" {
		return PlaceholderImageURL
	}
	return a.URLToImage
}

// Category refines the fixed news topic.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

var categories = []Category{
	CategoryGeneral,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// Categories returns every supported category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(raw string) (Category, error) {
	want := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range categories {
		if c == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Language is one entry of the language picker.
type Language struct {
	Code string
	Name string
}

var languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "mr", Name: "Marathi"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "ta", Name: "Tamil"},
	{Code: "te", Name: "Telugu"},
	{Code: "bn", Name: "Bengali"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "ur", Name: "Urdu"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "or", Name: "Odia"},
	{Code: "as", Name: "Assamese"},
	{Code: "mai", Name: "Maithili"},
	{Code: "ks", Name: "Kashmiri"},
	{Code: "mni", Name: "Manipuri"},
	{Code: "sd", Name: "Sindhi"},
	{Code: "kok", Name: "Konkani"},
	{Code: "sat", Name: "Santali"},
	{Code: "brx", Name: "Bodo"},
	{Code: "doi", Name: "Dogri"},
	{Code: "ar", Name: "Arabic"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "es", Name: "Spanish"},
	{Code: "it", Name: "Italian"},
	{Code: "zh-CN", Name: "Chinese"},
}

// Languages returns the picker catalogue in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a catalogue entry by code (case-insensitive).
func LookupLanguage(code string) (Language, bool) {
	code = strings.TrimSpace(code)
	for _, l := range languages {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return Language{}, false
}
