package templates

// Branding carries the sender-side fields shared by every template.
type Branding struct {
	CompanyName string
	AppName     string
	AppURL      string
}

// NewWelcomeData builds the payload for the welcome template. Keys match the
// template field names.
func NewWelcomeData(b Branding, name, email string) map[string]any {
	return map[string]any{
		"Name":        name,
		"Email":       email,
		"Type":        Welcome,
		"CompanyName": b.CompanyName,
		"AppName":     b.AppName,
		"AppURL":      b.AppURL,
	}
}
