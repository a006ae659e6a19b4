package request

// ConnectCalendarRequest is POST /api/google-calendar/connect: the OAuth
// authorization code handed back by Google's consent screen.
type ConnectCalendarRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}
