// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAdmin                       // Admin session token required
)

// EndpointSecurityConfig maps report API route templates to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"/health": SecurityPublic,

	"/reports/payments":           SecurityAdmin,
	"/vehicles/{plate}/incidents": SecurityAdmin,
	"/fleet/stats":                SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route template
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
