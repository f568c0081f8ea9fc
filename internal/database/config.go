package database

import "fmt"

// Config holds database configuration
type Config struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"expenses"`
	Password string `env:"PASSWORD" envDefault:"expenses"`
	DBName   string `env:"NAME" envDefault:"expenses"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the connection string in the URL form golang-migrate expects.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
