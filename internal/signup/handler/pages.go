package handler

import (
	_ "embed"
	"net/http"
)

// Static documents. Each route serves a fixed body; there is no templating.
var (
	//go:embed pages/home.html
	homePage []byte
	//go:embed pages/login_signup_form.html
	loginSignupFormPage []byte
	//go:embed pages/signup_ok.html
	signupOKPage []byte
	//go:embed pages/confirmed.html
	confirmedPage []byte
	//go:embed pages/learn_more.html
	learnMorePage []byte
	//go:embed pages/design.html
	designPage []byte
)

func servePage(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeHTML(w, body)
	}
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
