// Package config provides configuration parsing for reactree projects.
//
// The configuration is stored in reactree.json (or reactree.yaml) at the
// project root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "counter",
//	  "el": "app",
//	  "mount": {"tag": "div"},
//	  "data": {"count": 0},
//	  "view": {"tag": "span", "text": "{{get \"count\"}}"},
//	  "render": {"childOrder": "reverse"},
//	  "preview": {"host": "localhost", "port": 4000},
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "bucket": "",
//	    "prefix": "reactree/",
//	    "region": "us-east-1"
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "metrics": {"namespace": "reactree", "enabled": true}
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
