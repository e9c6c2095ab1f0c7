package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	Store Store `envPrefix:"STORE_"`

	Stripe    Stripe    `envPrefix:"STRIPE_"`
	Tap       Tap       `envPrefix:"TAP_"`
	Tamara    Tamara    `envPrefix:"TAMARA_"`
	Tabby     Tabby     `envPrefix:"TABBY_"`
	STCPay    STCPay    `envPrefix:"STCPAY_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
}

// Store holds merchant-level commerce settings shared by pricing and checkout.
type Store struct {
	Currency        string  `env:"CURRENCY" envDefault:"SAR"`
	Country         string  `env:"COUNTRY" envDefault:"SA"`
	TaxRatePercent  float64 `env:"TAX_RATE_PERCENT" envDefault:"15"`
	ShippingPerKg   float64 `env:"SHIPPING_PER_KG" envDefault:"5"`
	DownloadBaseURL string  `env:"DOWNLOAD_BASE_URL" envDefault:"/downloads"`
}

type Stripe struct {
	PublishableKey string `env:"PUBLISHABLE_KEY"`
	SecretKey      string `env:"SECRET_KEY"`
	WebhookSecret  string `env:"WEBHOOK_SECRET"`
}

type Tap struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.tap.company"`
	PublicKey  string `env:"PUBLIC_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
}

type Tamara struct {
	ApiKey      string `env:"API_KEY"`
	MerchantURL string `env:"MERCHANT_URL"`
}

type Tabby struct {
	PublicKey  string `env:"PUBLIC_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	MerchantID string `env:"MERCHANT_ID"`
}

type STCPay struct {
	MerchantID string `env:"MERCHANT_ID"`
	ApiKey     string `env:"API_KEY"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
