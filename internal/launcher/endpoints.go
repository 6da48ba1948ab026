package launcher

import "fmt"

// Fixed dashboard asset paths served relative to the repo root
const (
	starterPagePath   = "AI_first/index.html"
	dashboardPagePath = "AI_first/ui/ai_first_dashboard.html"
	statusAPIPath     = "api/status"
)

// Endpoints are the operator-facing URLs printed after a successful launch
type Endpoints struct {
	StarterPage string
	Dashboard   string
	StatusAPI   string
}

// ResolveEndpoints forms the three launch URLs for the configured ports
func ResolveEndpoints(cfg *LaunchConfig) Endpoints {
	return Endpoints{
		StarterPage: fmt.Sprintf("http://127.0.0.1:%d/%s", cfg.WebPort, starterPagePath),
		Dashboard:   fmt.Sprintf("http://127.0.0.1:%d/%s", cfg.WebPort, dashboardPagePath),
		StatusAPI:   fmt.Sprintf("http://127.0.0.1:%d/%s", cfg.APIPort, statusAPIPath),
	}
}
