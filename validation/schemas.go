package validation

import "strings"

// SignIn is the credential payload of /api/auth/signin.
type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=32"`
}

func (SignIn) ValidationMessages() map[string]string {
	return credentialMessages
}

var credentialMessages = map[string]string{
	"email.required":    "Email is required",
	"email.email":       "Invalid Email",
	"password.required": "Password is required",
	"password.min":      "Password must be 6 letters long",
	"password.max":      "Passwords must be less than 32 characters",
}

// SignUp is the registration payload of /api/auth/signup.
type SignUp struct {
	Name     string `json:"name" validate:"required,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=32"`
}

func (SignUp) ValidationMessages() map[string]string {
	m := map[string]string{
		"name.required": "Name is required",
		"name.max":      "Name must be less than 32 characters",
	}
	for k, v := range credentialMessages {
		m[k] = v
	}
	return m
}

// Normalize trims whitespace around identity fields; passwords are left as typed.
func (s *SignUp) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
}

// Project carries the writable project fields plus the desired associations.
type Project struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,max=500"`
	Detail       string   `json:"detail"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	GitLink      string   `json:"gitLink" validate:"required,url"`
	ProjectLink  string   `json:"projectLink"`
	YtLink       string   `json:"ytLink"`
	Slug         string   `json:"slug" validate:"required,max=100,slug"`
	BuiltAt      string   `json:"builtAt" validate:"required"`
	Tags         []string `json:"tags"`
	Techs        []string `json:"techs"`
}

func (Project) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":        "Title is required",
		"name.max":             "Title must be less than 100 characters",
		"description.required": "Description is required",
		"description.max":      "Description must be less than 500 characters",
		"thumbnailUrl.url":     "Invalid URL",
		"gitLink.required":     "Git Link is required",
		"gitLink.url":          "Invalid URL",
		"slug.required":        "Slug is required",
		"slug.max":             "Slug must be less than 100 characters",
		"slug.slug":            "Slug can only contain lowercase letters, numbers, and hyphens",
		"builtAt.required":     "Built At is required",
	}
}

// TechStack is the create/update payload of /api/techstack.
type TechStack struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=50"`
	IconURL  string `json:"iconUrl" validate:"omitempty,url"`
	Progress string `json:"progress"`
}

func (TechStack) ValidationMessages() map[string]string {
	return nameIconMessages
}

// Skill is the create/update payload of /api/skill.
type Skill struct {
	Name     string `json:"name" validate:"required,max=50"`
	IconURL  string `json:"iconUrl" validate:"omitempty,url"`
	Progress string `json:"progress"`
}

func (Skill) ValidationMessages() map[string]string {
	return nameIconMessages
}

var nameIconMessages = map[string]string{
	"name.required": "Name is required",
	"name.max":      "Name must be less than 50 characters",
	"iconUrl.url":   "Invalid URL",
}

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (Message) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":    "Name is required",
		"name.max":         "Name must be less than 50 characters",
		"email.required":   "Email is required",
		"email.email":      "Invalid Email",
		"message.required": "Message is required",
		"message.max":      "Message must be less than 2000 characters",
	}
}

// MessageRead toggles the read flag of a contact message.
type MessageRead struct {
	Read *bool `json:"read" validate:"required"`
}

func (MessageRead) ValidationMessages() map[string]string {
	return map[string]string{"read.required": "Read is required"}
}

// Blog carries the writable blog fields plus the desired category ids.
type Blog struct {
	Title        string   `json:"title" validate:"required,max=150"`
	Content      string   `json:"content" validate:"required"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Slug         string   `json:"slug" validate:"required,max=100,slug"`
	Published    bool     `json:"published"`
	Categories   []string `json:"categories"`
}

func (Blog) ValidationMessages() map[string]string {
	return map[string]string{
		"title.required":   "Title is required",
		"title.max":        "Title must be less than 150 characters",
		"content.required": "Content is required",
		"thumbnailUrl.url": "Invalid URL",
		"slug.required":    "Slug is required",
		"slug.max":         "Slug must be less than 100 characters",
		"slug.slug":        "Slug can only contain lowercase letters, numbers, and hyphens",
	}
}

// Category is the create payload of /api/category.
type Category struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (Category) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required": "Name is required",
		"name.max":      "Name must be less than 50 characters",
	}
}
