package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"payment": map[string]any{
			"keySecret": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "PAYMENT_KEYSECRET", want: "payment.keySecret"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsCouponAndPayment(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Storage.Driver != "memory" {
		t.Fatalf("storage driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Payment.Currency != "INR" {
		t.Fatalf("currency = %q, want INR", cfg.Payment.Currency)
	}
	if got := cfg.Coupon.PriceTiers["25"]; got != 499 {
		t.Fatalf("price tier 25 = %d, want 499", got)
	}
	if cfg.Coupon.DefaultPrice != 99 {
		t.Fatalf("default price = %d, want 99", cfg.Coupon.DefaultPrice)
	}
	if cfg.HTTP.MaxRequestBodySize != "100KB" {
		t.Fatalf("body size = %q, want 100KB", cfg.HTTP.MaxRequestBodySize)
	}
}
