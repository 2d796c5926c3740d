// Package config defines the environment file consumed by blitzem.
//
// An environment file declares nodes and load balancers by name and tag:
//
//	environment: demo
//	defaults:
//	  location: nbg1
//	nodes:
//	  - name: web-1
//	    tags: [web]
//	loadBalancers:
//	  - name: lb-1
//	    port: 80
//	    nodePort: 8080
//	    appliesToTag: web
//
// [Load] decodes the file, applies defaults and validates the result.
// Provider timeouts are configured separately through environment variables,
// see [LoadTimeouts].
package config
