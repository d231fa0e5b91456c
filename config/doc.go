// Package config provides configuration loading and validation for stowgate.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (STOWGATE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with STOWGATE_ prefix:
//   - server.port → STOWGATE_SERVER_PORT
//   - admin.token → STOWGATE_ADMIN_TOKEN
//   - storage.s3.bucket → STOWGATE_STORAGE_S3_BUCKET
//
// # Example File
//
//	env: production
//	server:
//	  port: 8080
//	admin:
//	  token: change-me
//	cors:
//	  allow_origin: https://app.example.com
//	uploads:
//	  public_base_url: https://assets.example.com
//	storage:
//	  type: s3
//	  s3:
//	    bucket: assets
//	    region: auto
//	    endpoint: https://<account>.r2.cloudflarestorage.com
//	database:
//	  type: sqlite
//	  dsn: stowgate.db
//	log:
//	  level: info
package config
