// Package config loads inject.json, the configuration shared by the
// inject CLI commands.
//
// # Configuration File Structure
//
//	{
//	  "reportErrors": "log",
//	  "marker": {
//	    "keyword": "Marker"
//	  },
//	  "arrays": {
//	    "htmlEncode": true
//	  },
//	  "templates": {
//	    "engine": "knockout"
//	  },
//	  "assets": {
//	    "prefix": "/app/",
//	    "manifest": "dist/manifest.json"
//	  },
//	  "output": {
//	    "minify": true
//	  },
//	  "server": {
//	    "port": 3000,
//	    "dir": "public"
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
//	mcfg, err := cfg.ManagerConfig(logger)
package config
