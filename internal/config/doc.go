// Package config provides configuration parsing for Lumen projects.
//
// The configuration is stored in lumen.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "https": false
//	  },
//	  "log": {
//	    "level": "info",
//	    "development": true
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "trace": {
//	    "enabled": false,
//	    "serviceName": "lumen"
//	  },
//	  "session": {
//	    "maxEventSize": 1048576,
//	    "writeTimeout": "10s"
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
//	fmt.Println("Port:", cfg.Server.Port)
package config
