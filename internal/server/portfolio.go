package server

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type portfolioResponse struct {
	Profile        any                    `json:"profile"`
	Experiences    []dbpkg.Experience     `json:"experiences"`
	Projects       []dbpkg.Project        `json:"projects"`
	Skills         []dbpkg.Skill          `json:"skills"`
	TechStack      []dbpkg.TechStackEntry `json:"techStack"`
	Certifications []dbpkg.Certification  `json:"certifications"`
	Deliveries     []dbpkg.Delivery       `json:"deliveries"`
	DeliveryStats  deliveryStats          `json:"deliveryStats"`
	Settings       map[string]bool        `json:"settings"`
}

type deliveryStats struct {
	TotalBudget   float64    `json:"totalBudget"`
	TotalProjects int        `json:"totalProjects"`
	Years         *yearRange `json:"years"`
}

type yearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// handlePortfolio assembles the whole public site payload in one response.
// The reads are independent, so they run concurrently; any failure fails
// the request.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	q := s.queries()

	var (
		profile      dbpkg.Profile
		profileFound bool
		resp         portfolioResponse
		rawSettings  map[string]string
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		p, err := q.GetProfile(ctx)
		if errors.Is(err, dbpkg.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		profile, profileFound = p, true
		return nil
	})
	g.Go(func() (err error) {
		resp.Experiences, err = q.ListExperiences(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Projects, err = q.ListProjectsWithImages(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Skills, err = q.ListSkills(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.TechStack, err = q.ListTechStack(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Certifications, err = q.ListCertifications(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Deliveries, err = q.ListDeliveriesWithImages(ctx)
		return err
	})
	g.Go(func() (err error) {
		rawSettings, err = q.ListSettings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeInternalAPIError(w, r, "assemble portfolio failed", err)
		return
	}

	if profileFound {
		resp.Profile = profile
	} else {
		resp.Profile = map[string]any{}
	}
	resp.DeliveryStats = summarizeDeliveries(resp.Deliveries)
	resp.Settings = make(map[string]bool, len(rawSettings))
	for key, value := range rawSettings {
		resp.Settings[key] = value == "true"
	}

	writeJSON(w, http.StatusOK, resp)
}

func summarizeDeliveries(deliveries []dbpkg.Delivery) deliveryStats {
	stats := deliveryStats{TotalProjects: len(deliveries)}
	for _, d := range deliveries {
		stats.TotalBudget += d.Budget
		if d.Year == nil {
			continue
		}
		if stats.Years == nil {
			stats.Years = &yearRange{Min: *d.Year, Max: *d.Year}
			continue
		}
		if *d.Year < stats.Years.Min {
			stats.Years.Min = *d.Year
		}
		if *d.Year > stats.Years.Max {
			stats.Years.Max = *d.Year
		}
	}
	return stats
}
