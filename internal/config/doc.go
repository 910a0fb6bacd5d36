// Package config provides configuration loading for microfun applications.
//
// The configuration lives at the project root as microfun.json. YAML
// (microfun.yaml, microfun.yml) and TOML (microfun.toml) are accepted too;
// the format is picked from the file extension.
//
// # Configuration File Structure
//
//	{
//	  "name": "counter",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "frame": {
//	    "interval": "16ms"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "auto"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "snapshot": {
//	    "driver": "bolt",
//	    "path": "microfun.db"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
