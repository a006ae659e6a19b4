package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Supabase SupabaseConfig
	Stripe   StripeConfig
	Google   GoogleConfig
	OpenAI   OpenAIConfig
	Pricing  PricingConfig
	Admin    AdminConfig
	Sync     SyncConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

type SupabaseConfig struct {
	URL        string
	ServiceKey string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CalendarID   string
	Timezone     string
	EventHours   int
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type PricingConfig struct {
	HourlyRate     int
	MinCustomPrice int
	MaxCustomPrice int
}

type AdminConfig struct {
	// bcrypt hash of the admin API key
	KeyHash string
}

type SyncConfig struct {
	// cron expression, empty disables the scheduled calendar sync
	Schedule string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STRIPE_CURRENCY", "gbp")
	viper.SetDefault("GOOGLE_TIMEZONE", "Europe/London")
	viper.SetDefault("GOOGLE_EVENT_HOURS", 3)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("PRICING_HOURLY_RATE", 55)
	viper.SetDefault("MIN_CUSTOM_PRICE", 30)
	viper.SetDefault("MAX_CUSTOM_PRICE", 400)
	viper.SetDefault("SYNC_SCHEDULE", "")

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional on deployed environments, env vars take over
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			BaseURL: viper.GetString("BASE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:        viper.GetString("SUPABASE_URL"),
			ServiceKey: viper.GetString("SUPABASE_SERVICE_KEY"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      viper.GetString("STRIPE_CURRENCY"),
		},
		Google: GoogleConfig{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			CalendarID:   viper.GetString("GOOGLE_CALENDAR_ID"),
			Timezone:     viper.GetString("GOOGLE_TIMEZONE"),
			EventHours:   viper.GetInt("GOOGLE_EVENT_HOURS"),
		},
		OpenAI: OpenAIConfig{
			APIKey: viper.GetString("OPENAI_API_KEY"),
			Model:  viper.GetString("OPENAI_MODEL"),
		},
		Pricing: PricingConfig{
			HourlyRate:     viper.GetInt("PRICING_HOURLY_RATE"),
			MinCustomPrice: viper.GetInt("MIN_CUSTOM_PRICE"),
			MaxCustomPrice: viper.GetInt("MAX_CUSTOM_PRICE"),
		},
		Admin: AdminConfig{
			KeyHash: viper.GetString("ADMIN_KEY_HASH"),
		},
		Sync: SyncConfig{
			Schedule: viper.GetString("SYNC_SCHEDULE"),
		},
	}

	return config, nil
}
