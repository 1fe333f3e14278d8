// Package config handles loading and validating solar-export configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - InfluxDB passwords and tokens should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - Legacy mode sends credentials in the query string; prefer https URLs
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Plant.Name)
package config
