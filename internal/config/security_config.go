package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAdmin                       // Admin session token required
)

// RouteSecurityConfig maps route names to their required security level
var RouteSecurityConfig = map[string]SecurityLevel{
	// Public
	"health":         SecurityPublic,
	"metrics":        SecurityPublic,
	"vehicles.list":  SecurityPublic,
	"vehicles.find":  SecurityPublic,
	"vehicles.image": SecurityPublic,
	"requests.new":   SecurityPublic,
	"contact.new":    SecurityPublic,
	"admin.login":    SecurityPublic,

	// Back office
	"admin.dashboard":        SecurityAdmin,
	"admin.requests":         SecurityAdmin,
	"admin.request":          SecurityAdmin,
	"admin.request.status":   SecurityAdmin,
	"admin.request.invoice":  SecurityAdmin,
	"admin.vehicles":         SecurityAdmin,
	"admin.vehicles.new":     SecurityAdmin,
	"admin.vehicle.image":    SecurityAdmin,
	"admin.clients":          SecurityAdmin,
	"admin.clients.new":      SecurityAdmin,
	"admin.contacts":         SecurityAdmin,
	"admin.contracts":        SecurityAdmin,
	"admin.contracts.new":    SecurityAdmin,
	"admin.contracts.export": SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := RouteSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}
