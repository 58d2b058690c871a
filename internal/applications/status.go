package applications

import "hr-tracker/internal/models"

// Dashboard routes.
const (
	RouteTotal                = "total_applications"
	RoutePending              = "pending_applications"
	RouteReviewed             = "reviewed_applications"
	RouteRejected             = "rejected_applications"
	RouteAcceptedForInterview = "accepted_for_interview"
	RouteAcceptedToJoin       = "accepted_to_join"
)

// View describes which applications a dashboard route lists.
type View struct {
	Route  string
	All    bool
	Status models.ApplicationStatus
	// Remote views are served by the by-status endpoint, not by filtering
	// the full list.
	Remote bool
}

// StatusView resolves a route. Unknown routes are taken as a literal status.
func StatusView(route string) View {
	switch route {
	case RouteTotal:
		return View{Route: route, All: true}
	case RoutePending:
		return View{Route: route, Status: models.StatusPending}
	case RouteReviewed:
		return View{Route: route, Status: models.StatusReviewed}
	case RouteRejected:
		return View{Route: route, Status: models.StatusRejected}
	case RouteAcceptedForInterview:
		return View{Route: route, Status: models.StatusAcceptedForInterview}
	case RouteAcceptedToJoin:
		return View{Route: route, Status: models.StatusAcceptedToJoin, Remote: true}
	default:
		return View{Route: route, Status: models.ApplicationStatus(route)}
	}
}

// Select picks the view's applications from the full list.
func (v View) Select(apps []models.Application) []models.Application {
	if v.All {
		return apps
	}
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == v.Status {
			out = append(out, a)
		}
	}
	return out
}

// Stats counts applications per status. Every known status is present.
func Stats(apps []models.Application) models.ApplicationStats {
	s := models.ApplicationStats{
		TotalApplications: len(apps),
		ByStatus:          make(map[models.ApplicationStatus]int, len(models.AllStatuses)),
	}
	for _, st := range models.AllStatuses {
		s.ByStatus[st] = 0
	}
	for _, a := range apps {
		s.ByStatus[a.Status]++
	}
	return s
}
