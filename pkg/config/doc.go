// Package config loads configuration structs from environment variables.
//
// Field mapping follows caarlos0/env struct tags; a .env file in the working
// directory is loaded once per process before the first parse:
//
//	type ServerConfig struct {
//	    Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
