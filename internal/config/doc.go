// Package config provides configuration management for the reconciler.
//
// Values come from struct-tag defaults, an optional .env file,
// RECONCILER_-prefixed environment variables and the command-line flags
// added by RegisterFlags, in increasing priority.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Input.MainPath())
package config
