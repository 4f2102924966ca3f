// Package config loads configuration for the reactive CLI.
//
// Configuration is read from reactive.json in the given directory and then
// overlaid with REACTIVE_* environment variables.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "addr": ":9464",
//	    "namespace": "reactive"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "endpoint": "localhost:4318",
//	    "tracerName": "reactive",
//	    "insecure": true
//	  }
//	}
//
// # Environment Overrides
//
//	REACTIVE_LOG_LEVEL, REACTIVE_LOG_FORMAT
//	REACTIVE_METRICS_ENABLED, REACTIVE_METRICS_ADDR, REACTIVE_METRICS_NAMESPACE
//	REACTIVE_TRACING_ENABLED, REACTIVE_TRACING_ENDPOINT, REACTIVE_TRACING_NAME,
//	REACTIVE_TRACING_INSECURE
package config
