package main

import (
	"log"
	"net/http"
	"os"

	"github.com/samhotchkiss/bark/internal/nslmock"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	email := os.Getenv("NSL_MOCK_EMAIL")
	if email == "" {
		email = "ops@example.com"
	}
	apiKey := os.Getenv("NSL_MOCK_API_KEY")
	if apiKey == "" {
		apiKey = "nsl_key_local"
	}

	mock := nslmock.New(email, apiKey)

	log.Printf("nsl-mock serving /webAPI.php on port %s (email=%s)", port, email)
	if err := http.ListenAndServe(":"+port, mock.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
