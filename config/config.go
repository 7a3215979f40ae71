package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	JWT  JWTConfig  `mapstructure:"jwt"`
	Hash HashConfig `mapstructure:"hash"`
}

// JWTConfig carries one signing secret and one default lifetime per token kind.
// All four secrets must differ so a token minted for one purpose can never pass
// another purpose's verification.
type JWTConfig struct {
	AccessSecret         string        `mapstructure:"access_secret"`
	RefreshSecret        string        `mapstructure:"refresh_secret"`
	EmailVerifySecret    string        `mapstructure:"email_verify_secret"`
	ForgotPasswordSecret string        `mapstructure:"forgot_password_secret"`
	AccessLifetime       time.Duration `mapstructure:"access_lifetime"`
	RefreshLifetime      time.Duration `mapstructure:"refresh_lifetime"`
	EmailVerifyLifetime  time.Duration `mapstructure:"email_verify_lifetime"`
	ForgotPwLifetime     time.Duration `mapstructure:"forgot_password_lifetime"`
	Leeway               time.Duration `mapstructure:"leeway"`
}

// HashConfig holds the server-side pepper mixed into every password digest.
type HashConfig struct {
	Pepper string `mapstructure:"pepper"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	setLifetimeDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}

// Token lifetimes are policy, not protocol; deployments may shorten or extend them.
func setLifetimeDefaults() {
	viper.SetDefault("jwt.access_lifetime", "15m")
	viper.SetDefault("jwt.refresh_lifetime", "720h") // 30 days
	viper.SetDefault("jwt.email_verify_lifetime", "24h")
	viper.SetDefault("jwt.forgot_password_lifetime", "24h")
	viper.SetDefault("jwt.leeway", "30s")
}
