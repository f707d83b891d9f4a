package config

import "testing"

func TestLoadIncludesFrontendOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com")
	t.Setenv("FRONTEND_URL", "https://www.example.com")

	cfg := Load()

	if !containsString(cfg.AllowedOrigins, "https://www.example.com") {
		t.Fatalf("allowed origins = %v, missing frontend url", cfg.AllowedOrigins)
	}
	if !containsString(cfg.AllowedOrigins, "https://admin.example.com") {
		t.Fatalf("allowed origins = %v, missing configured origin", cfg.AllowedOrigins)
	}
}

func TestLoadDoesNotDuplicateFrontendOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://www.example.com")
	t.Setenv("FRONTEND_URL", "https://www.example.com")

	cfg := Load()

	count := 0
	for _, o := range cfg.AllowedOrigins {
		if o == "https://www.example.com" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("origin listed %d times in %v", count, cfg.AllowedOrigins)
	}
}
