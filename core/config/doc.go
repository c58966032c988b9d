// Package config loads environment variables into typed structs.
//
// A .env file in the working directory is read once, on first use, with
// godotenv; variables already present in the environment win. Parsing is done by
// caarlos0/env, so struct tags follow its syntax:
//
//	type Settings struct {
//		Database   string `env:"ONTOLOGY_DATABASE" envDefault:"ontologies"`
//		Collection string `env:"ONTOLOGY_COLLECTION" envDefault:"anatomic_locations"`
//		APIKey     string `env:"OPENAI_API_KEY,required"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		return err
//	}
//
// The parsed value is cached per type. Later calls for the same type copy the
// cached value without reading the environment again. MustLoad panics instead of
// returning an error and is meant for program start-up.
package config
