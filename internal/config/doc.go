// Package config provides configuration parsing for the backtension
// command.
//
// The configuration is stored in backtension.json next to the documents
// it describes. Every field has a command-line flag counterpart; flags
// win over the file.
//
// # Configuration File Structure
//
//	{
//	  "document": "index.html",
//	  "regions": "regions.yaml",
//	  "root": "#app",
//	  "logLevel": "info",
//	  "serve": {
//	    "addr": ":9090"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "backtension"
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
//	fmt.Println("Document:", cfg.DocumentPath())
package config
