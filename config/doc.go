/*
Package config loads the JSON document configuring a crossweb server.

The document declares the routes, the filter chain and the guard:

	{
		// comments and trailing commas are accepted
		"name": "sample",
		"port": 8080,
		"filters": ["FormFilter", "GuardFilter"],
		"routes": {
			"post:/signin": { "handler": "GuardHandler.authenticate" },
			"get|post:/resource/1": { "handler": "Resource.read", "allow": ["role1"] },
		},
		"guard": {
			"session": "session",
			"encryption": { "method": "aes128", "key": "<hex>", "iv": "<hex>" },
			"locations": { "index": "/", "login": "/login.html" },
		},
	}

Routes keep the order they are declared in; [Config.Routes] is a slice, not a map.
*/
package config
